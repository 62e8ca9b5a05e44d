// Command catalog-service is a stand-in course catalog serving the lookup
// contract the enrollment service validates against.
package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	directory "coursecloud/contracts/directory"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	courses, err := loadSeed(os.Getenv("SEED_FILE"))
	if err != nil {
		logger.Error("failed to load seed data", "error", err)
		os.Exit(1)
	}

	addr := os.Getenv("CATALOG_ADDR")
	if addr == "" {
		addr = ":8081"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(courses, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting catalog stand-in", "addr", addr, "courses", len(courses))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func loadSeed(path string) ([]directory.Course, error) {
	if path == "" {
		return defaultCourses(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var courses []directory.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func defaultCourses() []directory.Course {
	return []directory.Course{
		{ID: "C1", Code: "CS101", Title: "Introduction to Programming", InstructorName: "Grace Hopper", Capacity: directory.IntPtr(80), Enrolled: directory.IntPtr(60)},
		{ID: "C2", Code: "CS201", Title: "Data Structures", InstructorName: "Edsger Dijkstra", Capacity: directory.IntPtr(40), Enrolled: directory.IntPtr(0)},
		{ID: "C-FULL", Code: "CS499", Title: "Capstone Seminar", InstructorName: "Barbara Liskov", Capacity: directory.IntPtr(10), Enrolled: directory.IntPtr(10)},
	}
}
