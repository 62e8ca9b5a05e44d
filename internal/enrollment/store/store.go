// Package store persists enrollment records.
//
// The (course_id, student_id) uniqueness constraint enforced here is the only
// serialization point of the enrollment flow: concurrent duplicate creates
// resolve to exactly one success and sentinel.ErrConflict for the rest.
// Listings are ordered by enrollment time, then ID.
package store

import (
	"sort"

	"coursecloud/internal/enrollment/models"
)

// sortRecords orders records by EnrolledAt, then ID.
func sortRecords(records []*models.EnrollmentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.EnrolledAt.Equal(b.EnrolledAt) {
			return a.EnrolledAt.Before(b.EnrolledAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func copyRecord(r *models.EnrollmentRecord) *models.EnrollmentRecord {
	c := *r
	return &c
}
