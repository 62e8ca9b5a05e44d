package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"coursecloud/internal/enrollment/models"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

const selectColumns = `SELECT id, course_id, student_id, enrolled_at FROM enrollments`

// PostgresStore persists enrollments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed enrollment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ExistsPair(ctx context.Context, courseID id.CourseID, studentID id.StudentID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1 AND student_id = $2)`,
		courseID.String(), studentID.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check enrollment pair: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Create(ctx context.Context, record *models.EnrollmentRecord) error {
	if record == nil {
		return fmt.Errorf("enrollment record is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrollments (id, course_id, student_id, enrolled_at) VALUES ($1, $2, $3, $4)`,
		uuid.UUID(record.ID), record.CourseID.String(), record.StudentID.String(), record.EnrolledAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByCourse(ctx context.Context, courseID id.CourseID) ([]*models.EnrollmentRecord, error) {
	return s.list(ctx, selectColumns+` WHERE course_id = $1 ORDER BY enrolled_at, id`, courseID.String())
}

func (s *PostgresStore) FindByStudent(ctx context.Context, studentID id.StudentID) ([]*models.EnrollmentRecord, error) {
	return s.list(ctx, selectColumns+` WHERE student_id = $1 ORDER BY enrolled_at, id`, studentID.String())
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.EnrollmentRecord, error) {
	return s.list(ctx, selectColumns+` ORDER BY enrolled_at, id`)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.EnrollmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	records := make([]*models.EnrollmentRecord, 0)
	for rows.Next() {
		var (
			recordID            uuid.UUID
			courseID, studentID string
			r                   models.EnrollmentRecord
		)
		if err := rows.Scan(&recordID, &courseID, &studentID, &r.EnrolledAt); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		r.ID = id.EnrollmentID(recordID)
		r.CourseID = id.CourseID(courseID)
		r.StudentID = id.StudentID(studentID)
		r.EnrolledAt = r.EnrolledAt.UTC()
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}
	return records, nil
}

// isUniqueViolation recognizes 23505 from either Postgres driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
