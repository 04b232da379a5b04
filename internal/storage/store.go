package storage

import (
	"context"

	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/tabular"
)

// Names of the stored functions the store calls.
const (
	DeleteStudentFunc = "delete_student"
	EditStudentFunc   = "edit_student"
)

// StudentStore is the record repository behind the API.
type StudentStore interface {
	// ListStudents returns students whose first name starts with E or F,
	// ordered by first name. Header: StudentID, First Name, Last Name, School ID.
	ListStudents(ctx context.Context) (tabular.Result, error)

	// ListClassesForStudent returns the classes one student attends, joined
	// with their instructors. Days is never empty.
	ListClassesForStudent(ctx context.Context, studentID int) (tabular.Result, error)

	// DeleteStudent calls the delete stored function and surfaces its
	// affected row count, message and status.
	DeleteStudent(ctx context.Context, studentID int) (*record.DeleteOutcome, error)

	// UpdateStudent calls the edit stored function and returns the affected
	// row count. Field contents are passed through unchecked.
	UpdateStudent(ctx context.Context, req record.UpdateRequest) (int, error)
}
