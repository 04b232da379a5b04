package record

import "github.com/ryanbastic/classtrak/internal/tabular"

// StartUpResponse is the body of GET /StartUp.
type StartUpResponse struct {
	Students tabular.Result `json:"students" doc:"Student table, header row first"`
}

// RetrieveResponse is the body of GET /Retrieve.
type RetrieveResponse struct {
	Table tabular.Result `json:"table" doc:"Class table for one student, header row first"`
}

// DeleteResponse is the body of DELETE /Delete. It carries the refreshed
// student table so callers need no second round trip.
type DeleteResponse struct {
	Rows     int            `json:"rows" doc:"Rows deleted (0 or 1)"`
	Students tabular.Result `json:"students" doc:"Student table after the delete"`
	Message  string         `json:"message" doc:"Opaque message from the store"`
	Status   string         `json:"status" doc:"Opaque status from the store"`
}

// UpdateResponse is the body of PUT /Update. It does not carry the student
// table; callers re-fetch it.
type UpdateResponse struct {
	Rows int `json:"rows" doc:"Rows updated (0 or 1)"`
}
