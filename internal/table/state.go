// Package table holds the client-side student table: the cache of the last
// fetched student list, the per-row view/edit state machine, and rendering.
package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownRow is returned for a student id not in the cached table.
	ErrUnknownRow = errors.New("no such row")
	// ErrNotEditing is returned for update, cancel or set on a row in view state.
	ErrNotEditing = errors.New("row is not being edited")
	// ErrEditing is returned for edit, retrieve or delete on a row in edit state.
	ErrEditing = errors.New("row is being edited")
)

// RowState is the per-row UI state.
type RowState int

const (
	View RowState = iota
	Edit
)

func (s RowState) String() string {
	switch s {
	case View:
		return "view"
	case Edit:
		return "edit"
	default:
		return "unknown"
	}
}

// Field is one of the editable student fields.
type Field int

const (
	FirstName Field = iota
	LastName
	SchoolID
)

func (f Field) String() string {
	switch f {
	case FirstName:
		return "first"
	case LastName:
		return "last"
	case SchoolID:
		return "school"
	default:
		return "unknown"
	}
}

// ParseField accepts first, last or school.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(s) {
	case "first":
		return FirstName, nil
	case "last":
		return LastName, nil
	case "school":
		return SchoolID, nil
	}
	return 0, fmt.Errorf("unknown field %q (want first, last or school)", s)
}

// Draft holds the editor contents of a row in edit state. SchoolID stays
// text until submit, like an input box.
type Draft struct {
	FirstName string
	LastName  string
	SchoolID  string
}

func (d *Draft) set(f Field, v string) {
	switch f {
	case FirstName:
		d.FirstName = v
	case LastName:
		d.LastName = v
	case SchoolID:
		d.SchoolID = v
	}
}
