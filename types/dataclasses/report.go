package dataclasses

import (
	"github.com/google/uuid"

	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

// Report is the outcome of linting one document.
type Report struct {
	ProcessingID uuid.UUID                   `json:"processing_id"`
	Path         string                      `json:"path"`
	Status       interfaces.ProcessingStatus `json:"status"`
	Messages     []interfaces.Diagnostic     `json:"messages"`
	Log          string                      `json:"log,omitempty"`
}

func NewReport(document interfaces.Document, log string) Report {
	return Report{
		ProcessingID: document.GetId(),
		Path:         document.GetPath(),
		Status:       document.GetStatus(),
		Messages:     document.GetMessages(),
		Log:          log,
	}
}

// HasFatal reports whether the report contains a fatal diagnostic.
func (r Report) HasFatal() bool {
	for _, message := range r.Messages {
		if message.Fatal {
			return true
		}
	}
	return false
}
