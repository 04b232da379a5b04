package table

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/ryanbastic/classtrak/internal/record"
)

var classPanelHeader = []string{
	"Class ID", "Class Desc", "Days", "Start Date",
	"Instructor ID", "Instructor First Name", "Instructor Last Name",
}

// TextRenderer draws the student panel and the class panel as text tables.
type TextRenderer struct {
	out io.Writer
}

func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out}
}

// Render implements Renderer.
func (r *TextRenderer) Render(s Snapshot) error {
	students := tablewriter.NewWriter(r.out)
	students.SetHeader(append(append([]string(nil), record.StudentColumns...), "State", "Actions"))
	students.SetAutoFormatHeaders(false)
	students.SetAutoWrapText(false)
	for _, st := range s.Students {
		students.Append(studentRow(st, s.States[st.StudentID], s.Drafts))
	}
	if s.TableStatus != "" {
		students.SetCaption(true, s.TableStatus)
	}
	students.Render()

	if s.ShowClasses {
		if _, err := fmt.Fprintf(r.out, "\nClasses for student %d\n", s.ClassesFor); err != nil {
			return err
		}
		classes := tablewriter.NewWriter(r.out)
		classes.SetHeader(classPanelHeader)
		classes.SetAutoFormatHeaders(false)
		classes.SetAutoWrapText(false)
		for _, c := range s.Classes {
			classes.Append(classRow(c))
		}
		classes.Render()
	}

	for _, line := range []string{s.DataStatus, s.Diagnostics, s.Failure} {
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}
	return nil
}

func studentRow(st record.Student, state RowState, drafts map[int]Draft) []string {
	if state == Edit {
		d := drafts[st.StudentID]
		return []string{
			strconv.Itoa(st.StudentID),
			"[" + d.FirstName + "]",
			"[" + d.LastName + "]",
			"[" + d.SchoolID + "]",
			state.String(),
			"update cancel",
		}
	}
	return []string{
		strconv.Itoa(st.StudentID),
		st.FirstName,
		st.LastName,
		strconv.Itoa(st.SchoolID),
		state.String(),
		"retrieve delete edit",
	}
}

func classRow(c record.Class) []string {
	return []string{
		strconv.Itoa(c.ClassID),
		c.ClassDesc,
		strconv.Itoa(c.Days),
		c.StartDate,
		strconv.Itoa(c.InstructorID),
		c.InstructorFirstName,
		c.InstructorLastName,
	}
}
