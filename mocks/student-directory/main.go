// Command student-directory is a stand-in for the user service's student
// lookup, serving the contract the enrollment service validates against.
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

	students, err := loadSeed(os.Getenv("SEED_FILE"))
	if err != nil {
		logger.Error("failed to load seed data", "error", err)
		os.Exit(1)
	}

	addr := os.Getenv("DIRECTORY_ADDR")
	if addr == "" {
		addr = ":8082"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(students, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting student directory stand-in", "addr", addr, "students", len(students))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func loadSeed(path string) ([]directory.Student, error) {
	if path == "" {
		return defaultStudents(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var students []directory.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func defaultStudents() []directory.Student {
	return []directory.Student{
		{ID: "1", StudentID: "S1", Username: "ada", Name: "Ada Lovelace", Email: "ada@example.edu", Major: "Mathematics"},
		{ID: "2", StudentID: "S2", Username: "alan", Name: "Alan Turing", Email: "alan@example.edu", Major: "Computer Science"},
		{ID: "3", StudentID: "S3", Username: "katherine", Name: "Katherine Johnson", Email: "kj@example.edu", Major: "Physics"},
	}
}
