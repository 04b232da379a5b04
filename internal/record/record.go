package record

// Column names of the student table, in wire order.
const (
	ColStudentID = "StudentID"
	ColFirstName = "First Name"
	ColLastName  = "Last Name"
	ColSchoolID  = "School ID"
)

// Column names of the class table, in wire order. The instructor name
// columns share their labels with the student table.
const (
	ColClassID             = "Class ID"
	ColClassDesc           = "Class Desc"
	ColDays                = "Days"
	ColStartDate           = "StartDate"
	ColInstructorID        = "Instructor ID"
	ColInstructorFirstName = "First Name"
	ColInstructorLastName  = "Last Name"
)

// StudentColumns is the header of every student table.
var StudentColumns = []string{ColStudentID, ColFirstName, ColLastName, ColSchoolID}

// ClassColumns is the header of every class table.
var ClassColumns = []string{
	ColClassID, ColClassDesc, ColDays, ColStartDate,
	ColInstructorID, ColInstructorFirstName, ColInstructorLastName,
}

// Student is one row of the student table.
type Student struct {
	StudentID int    `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SchoolID  int    `json:"school_id"`
}

// Class is one class a student is enrolled in, with its instructor.
type Class struct {
	ClassID             int    `json:"class_id"`
	ClassDesc           string `json:"class_desc"`
	Days                int    `json:"days"`
	StartDate           string `json:"start_date"`
	InstructorID        int    `json:"instructor_id"`
	InstructorFirstName string `json:"instructor_first_name"`
	InstructorLastName  string `json:"instructor_last_name"`
}

// UpdateRequest replaces all mutable fields of one student. ID and SchoolID
// may arrive as numbers or numeric strings.
type UpdateRequest struct {
	ID       FlexInt `json:"id" doc:"Student ID"`
	FName    string  `json:"FName" doc:"First name"`
	LName    string  `json:"LName" doc:"Last name"`
	SchoolID FlexInt `json:"SchoolID" doc:"School ID"`
}

// DeleteOutcome is what the delete stored function reports. Message and
// Status are free text from the store and are never interpreted.
type DeleteOutcome struct {
	Rows    int
	Message string
	Status  string
}
