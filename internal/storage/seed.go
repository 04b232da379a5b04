package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ryanbastic/classtrak/internal/record"
)

// Instructor is a row of the instructors table.
type Instructor struct {
	ID        int
	FirstName string
	LastName  string
}

// ClassRow is a row of the classes table. A nil Days is stored as NULL.
type ClassRow struct {
	ID           int
	Desc         string
	Days         *int
	StartDate    time.Time
	InstructorID int
}

// Enrollment links a student to a class.
type Enrollment struct {
	ClassID   int
	StudentID int
}

// Dataset is a full set of rows to load with Seed.
type Dataset struct {
	Instructors []Instructor
	Students    []record.Student
	Classes     []ClassRow
	Enrollments []Enrollment
}

// Seed inserts ds in one transaction, parents before children.
func Seed(ctx context.Context, pool *pgxpool.Pool, ds Dataset) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		b := &pgx.Batch{}
		for _, i := range ds.Instructors {
			b.Queue(`INSERT INTO instructors (instructor_id, first_name, last_name) VALUES ($1, $2, $3)`,
				i.ID, i.FirstName, i.LastName)
		}
		for _, s := range ds.Students {
			b.Queue(`INSERT INTO students (student_id, first_name, last_name, school_id) VALUES ($1, $2, $3, $4)`,
				s.StudentID, s.FirstName, s.LastName, s.SchoolID)
		}
		for _, c := range ds.Classes {
			b.Queue(`INSERT INTO classes (class_id, class_desc, days, start_date, instructor_id) VALUES ($1, $2, $3, $4, $5)`,
				c.ID, c.Desc, c.Days, c.StartDate, c.InstructorID)
		}
		for _, e := range ds.Enrollments {
			b.Queue(`INSERT INTO class_to_student (class_id, student_id) VALUES ($1, $2)`,
				e.ClassID, e.StudentID)
		}
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		return nil
	})
}

// Reset deletes every row from the ClassTrak tables.
func Reset(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `TRUNCATE class_to_student, classes, students, instructors`); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// DemoDataset is a small school used by the seeder and local runs.
func DemoDataset() Dataset {
	three, two := 3, 2
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	return Dataset{
		Instructors: []Instructor{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
			{ID: 2, FirstName: "Alan", LastName: "Turing"},
			{ID: 3, FirstName: "Grace", LastName: "Hopper"},
		},
		Students: []record.Student{
			{StudentID: 1, FirstName: "Eve", LastName: "Adams", SchoolID: 10},
			{StudentID: 2, FirstName: "Frank", LastName: "Baker", SchoolID: 10},
			{StudentID: 3, FirstName: "Emma", LastName: "Clark", SchoolID: 20},
			{StudentID: 4, FirstName: "Felix", LastName: "Davis", SchoolID: 20},
			{StudentID: 5, FirstName: "Alice", LastName: "Evans", SchoolID: 10},
			{StudentID: 6, FirstName: "bob", LastName: "Foster", SchoolID: 30},
			{StudentID: 7, FirstName: "fiona", LastName: "Grant", SchoolID: 30},
		},
		Classes: []ClassRow{
			{ID: 100, Desc: "Algebra", Days: &three, StartDate: date(2024, time.January, 15), InstructorID: 1},
			{ID: 101, Desc: "Computability", Days: &two, StartDate: date(2024, time.February, 1), InstructorID: 2},
			{ID: 102, Desc: "Compilers", Days: nil, StartDate: date(2024, time.March, 4), InstructorID: 3},
		},
		Enrollments: []Enrollment{
			{ClassID: 100, StudentID: 1},
			{ClassID: 102, StudentID: 1},
			{ClassID: 101, StudentID: 2},
			{ClassID: 100, StudentID: 3},
			{ClassID: 101, StudentID: 3},
			{ClassID: 102, StudentID: 3},
		},
	}
}
