package schemas

import (
	"github.com/google/uuid"

	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

// LintInputSchema is a document to lint.
//
// swagger:model
type LintInputSchema struct {
	// Path of the document, used for include patterns and relative schema urls
	// required: true
	// example: "doc/odr/0001-use-markdown.md"
	Path string `json:"path"`

	// Markdown content of the document
	// required: true
	Content string `json:"content"`
}

// LintOutputSchema is the outcome of linting a document.
//
// swagger:model
type LintOutputSchema struct {
	// The unique processing ID of this lint run
	// example: "d9b2d63d-5f23-4e4d-b6f3-f2f25d93a7a1"
	ProcessingID uuid.UUID `json:"processing_id"`

	// example: "failed"
	Status interfaces.ProcessingStatus `json:"status"`

	Messages []interfaces.Diagnostic `json:"messages"`

	// Log lines written while processing the document
	Log string `json:"log"`

	// Name of the stored report, empty when reports are not stored
	Report string `json:"report,omitempty"`
}

// ErrorOutputSchema is returned for requests that could not be processed.
//
// swagger:model
type ErrorOutputSchema struct {
	Error string `json:"error"`
}
