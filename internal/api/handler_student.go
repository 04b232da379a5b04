package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/storage"
)

// --- Huma Input/Output types ---

type StartUpInput struct{}

type StartUpOutput struct {
	Body record.StartUpResponse
}

type StudentIDInput struct {
	ID int `query:"id" required:"true" doc:"Student ID"`
}

type RetrieveOutput struct {
	Body record.RetrieveResponse
}

type DeleteOutput struct {
	Body record.DeleteResponse
}

type UpdateInput struct {
	Body record.UpdateRequest
}

type UpdateOutput struct {
	Body record.UpdateResponse
}

// --- Handler ---

// StudentHandler maps each endpoint onto one repository call. Delete also
// returns the refreshed student table; update does not.
type StudentHandler struct {
	store  storage.StudentStore
	logger *slog.Logger
}

func NewStudentHandler(store storage.StudentStore, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{store: store, logger: logger}
}

func registerStudentRoutes(api huma.API, h *StudentHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "start-up",
		Method:      http.MethodGet,
		Path:        "/StartUp",
		Summary:     "List students",
		Tags:        []string{"students"},
	}, h.StartUp)

	huma.Register(api, huma.Operation{
		OperationID: "retrieve",
		Method:      http.MethodGet,
		Path:        "/Retrieve",
		Summary:     "List the classes of one student",
		Tags:        []string{"classes"},
	}, h.Retrieve)

	huma.Register(api, huma.Operation{
		OperationID: "delete",
		Method:      http.MethodDelete,
		Path:        "/Delete",
		Summary:     "Delete a student and return the refreshed student list",
		Tags:        []string{"students"},
	}, h.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "update",
		Method:      http.MethodPut,
		Path:        "/Update",
		Summary:     "Replace a student's names and school",
		Description: "Returns only the affected row count; re-fetch /StartUp to see the change.",
		Tags:        []string{"students"},
	}, h.Update)
}

func (h *StudentHandler) StartUp(ctx context.Context, _ *StartUpInput) (*StartUpOutput, error) {
	students, err := h.store.ListStudents(ctx)
	if err != nil {
		h.logger.Error("failed to list students", "error", err)
		return nil, huma.Error500InternalServerError("failed to list students")
	}
	return &StartUpOutput{Body: record.StartUpResponse{Students: students}}, nil
}

func (h *StudentHandler) Retrieve(ctx context.Context, input *StudentIDInput) (*RetrieveOutput, error) {
	classes, err := h.store.ListClassesForStudent(ctx, input.ID)
	if err != nil {
		h.logger.Error("failed to list classes", "student_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to list classes")
	}
	return &RetrieveOutput{Body: record.RetrieveResponse{Table: classes}}, nil
}

func (h *StudentHandler) Delete(ctx context.Context, input *StudentIDInput) (*DeleteOutput, error) {
	outcome, err := h.store.DeleteStudent(ctx, input.ID)
	if err != nil {
		h.logger.Error("failed to delete student", "student_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to delete student")
	}
	h.logger.Info("delete student",
		"student_id", input.ID,
		"rows", outcome.Rows,
		"message", outcome.Message,
		"status", outcome.Status,
	)

	students, err := h.store.ListStudents(ctx)
	if err != nil {
		h.logger.Error("failed to list students after delete", "student_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to list students")
	}

	return &DeleteOutput{Body: record.DeleteResponse{
		Rows:     outcome.Rows,
		Students: students,
		Message:  outcome.Message,
		Status:   outcome.Status,
	}}, nil
}

func (h *StudentHandler) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	rows, err := h.store.UpdateStudent(ctx, input.Body)
	if err != nil {
		h.logger.Error("failed to update student", "student_id", input.Body.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to update student")
	}
	return &UpdateOutput{Body: record.UpdateResponse{Rows: rows}}, nil
}
