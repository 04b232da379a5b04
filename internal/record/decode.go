package record

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ryanbastic/classtrak/internal/tabular"
)

// ErrMissingColumn is returned when a table lacks a column the decoder needs.
var ErrMissingColumn = errors.New("missing column")

// columnIndex resolves every name against the header, so cells are read by
// name and a reordered header still decodes correctly.
func columnIndex(t tabular.Result, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for _, name := range names {
		i := t.Column(name)
		if i < 0 {
			return nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
		}
		idx[name] = i
	}
	return idx, nil
}

// DecodeStudents converts a student table into records.
func DecodeStudents(t tabular.Result) ([]Student, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	idx, err := columnIndex(t, StudentColumns...)
	if err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}

	out := make([]Student, 0, t.Len())
	for i, row := range t.Rows() {
		id, err := strconv.Atoi(row[idx[ColStudentID]])
		if err != nil {
			return nil, fmt.Errorf("decode students: row %d %s: %w", i+1, ColStudentID, err)
		}
		school, err := strconv.Atoi(row[idx[ColSchoolID]])
		if err != nil {
			return nil, fmt.Errorf("decode students: row %d %s: %w", i+1, ColSchoolID, err)
		}
		out = append(out, Student{
			StudentID: id,
			FirstName: row[idx[ColFirstName]],
			LastName:  row[idx[ColLastName]],
			SchoolID:  school,
		})
	}
	return out, nil
}

// DecodeClasses converts a class table into records. An empty Days cell
// decodes as zero.
func DecodeClasses(t tabular.Result) ([]Class, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	idx, err := columnIndex(t, ClassColumns...)
	if err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}

	out := make([]Class, 0, t.Len())
	for i, row := range t.Rows() {
		classID, err := strconv.Atoi(row[idx[ColClassID]])
		if err != nil {
			return nil, fmt.Errorf("decode classes: row %d %s: %w", i+1, ColClassID, err)
		}
		days := 0
		if s := row[idx[ColDays]]; s != "" {
			if days, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("decode classes: row %d %s: %w", i+1, ColDays, err)
			}
		}
		instructorID, err := strconv.Atoi(row[idx[ColInstructorID]])
		if err != nil {
			return nil, fmt.Errorf("decode classes: row %d %s: %w", i+1, ColInstructorID, err)
		}
		out = append(out, Class{
			ClassID:             classID,
			ClassDesc:           row[idx[ColClassDesc]],
			Days:                days,
			StartDate:           row[idx[ColStartDate]],
			InstructorID:        instructorID,
			InstructorFirstName: row[idx[ColInstructorFirstName]],
			InstructorLastName:  row[idx[ColInstructorLastName]],
		})
	}
	return out, nil
}
