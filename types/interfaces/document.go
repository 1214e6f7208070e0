package interfaces

import (
	"github.com/google/uuid"
)

type Document interface {
	DiagnosticSink

	GetId() uuid.UUID
	GetPath() string
	GetDirectory() string
	GetValue() []byte
	GetTree() Node
	SetTree(Node)

	GetStatus() ProcessingStatus
	SetStatus(ProcessingStatus)

	// Document scoped processing state shared between plugins.
	GetData(key string) (any, bool)
	SetData(key string, value any)
}
