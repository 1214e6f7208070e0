package dataclasses

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
	"github.com/Marvin-Brouwer/open-adr/types/markdown"
)

// Document is a single markdown file moving through the lint plugins.
type Document struct {
	sync.Mutex

	Id     uuid.UUID
	path   string
	value  []byte
	tree   interfaces.Node
	status interfaces.ProcessingStatus

	messages []interfaces.Diagnostic
	data     map[string]any
}

func NewDocument(path string, value []byte) *Document {
	return &Document{
		Id:       uuid.New(),
		path:     path,
		value:    value,
		status:   interfaces.ProcessingStatusPending,
		messages: make([]interfaces.Diagnostic, 0),
		data:     make(map[string]any),
	}
}

func (d *Document) GetId() uuid.UUID {
	d.Lock()
	defer d.Unlock()

	return d.Id
}

func (d *Document) GetPath() string {
	d.Lock()
	defer d.Unlock()

	return d.path
}

// GetDirectory is the directory relative file references are resolved against.
func (d *Document) GetDirectory() string {
	return filepath.Dir(d.GetPath())
}

func (d *Document) GetValue() []byte {
	d.Lock()
	defer d.Unlock()

	return d.value
}

func (d *Document) GetTree() interfaces.Node {
	d.Lock()
	defer d.Unlock()

	return d.tree
}

func (d *Document) SetTree(tree interfaces.Node) {
	d.Lock()
	defer d.Unlock()

	d.tree = tree
}

func (d *Document) GetStatus() interfaces.ProcessingStatus {
	d.Lock()
	defer d.Unlock()

	return d.status
}

func (d *Document) SetStatus(status interfaces.ProcessingStatus) {
	d.Lock()
	defer d.Unlock()

	d.status = status
}

func (d *Document) GetData(key string) (any, bool) {
	d.Lock()
	defer d.Unlock()

	value, ok := d.data[key]
	return value, ok
}

func (d *Document) SetData(key string, value any) {
	d.Lock()
	defer d.Unlock()

	d.data[key] = value
}

func (d *Document) Add(diagnostic interfaces.Diagnostic) interfaces.Diagnostic {
	d.Lock()
	defer d.Unlock()

	if diagnostic.Place == nil {
		anchor := diagnostic.Node
		if anchor == nil {
			anchor = d.tree
		}
		diagnostic.Place = markdown.PositionOf(anchor)
	}
	if diagnostic.File == "" {
		diagnostic.File = d.path
	}
	diagnostic.Fatal = diagnostic.Level == interfaces.DiagnosticLevelFatal

	d.messages = append(d.messages, diagnostic)
	return diagnostic
}

func (d *Document) Info(message string, node interfaces.Node) interfaces.Diagnostic {
	return d.Add(interfaces.Diagnostic{
		Message: message,
		Level:   interfaces.DiagnosticLevelInfo,
		Node:    node,
	})
}

func (d *Document) Warn(message string, node interfaces.Node) interfaces.Diagnostic {
	return d.Add(interfaces.Diagnostic{
		Message: message,
		Level:   interfaces.DiagnosticLevelWarning,
		Node:    node,
	})
}

func (d *Document) Fail(message string, node interfaces.Node) interfaces.Diagnostic {
	return d.Add(interfaces.Diagnostic{
		Message: message,
		Level:   interfaces.DiagnosticLevelFatal,
		Node:    node,
	})
}

// GetMessages returns a copy of the diagnostics in the order they were added.
func (d *Document) GetMessages() []interfaces.Diagnostic {
	d.Lock()
	defer d.Unlock()

	messages := make([]interfaces.Diagnostic, len(d.messages))
	copy(messages, d.messages)
	return messages
}

// HasFatal reports whether any fatal diagnostic was recorded.
func (d *Document) HasFatal() bool {
	for _, message := range d.GetMessages() {
		if message.Fatal {
			return true
		}
	}
	return false
}
