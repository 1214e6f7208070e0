package interfaces

import "fmt"

// Node is a syntax tree node: a plain mapping so validators can walk it as JSON.
type Node = map[string]any

type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

type DiagnosticLevel int

const (
	DiagnosticLevelInfo DiagnosticLevel = iota
	DiagnosticLevelWarning
	DiagnosticLevelFatal
)

func (l DiagnosticLevel) String() string {
	switch l {
	case DiagnosticLevelInfo:
		return "info"
	case DiagnosticLevelWarning:
		return "warning"
	default:
		return "error"
	}
}

func (l DiagnosticLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *DiagnosticLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*l = DiagnosticLevelInfo
	case "warning":
		*l = DiagnosticLevelWarning
	case "error":
		*l = DiagnosticLevelFatal
	default:
		return fmt.Errorf("unknown diagnostic level %q", text)
	}
	return nil
}

type Diagnostic struct {
	Message string          `json:"message"`
	Level   DiagnosticLevel `json:"level"`
	Fatal   bool            `json:"fatal"`
	Place   *Position       `json:"place,omitempty"`

	// Node is the tree node the diagnostic is anchored to, nil for positional anchors.
	Node Node `json:"-"`

	Cause    string   `json:"cause,omitempty"`
	Stack    string   `json:"stack,omitempty"`
	File     string   `json:"file,omitempty"`
	Note     string   `json:"note,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Source   string   `json:"source,omitempty"`
	RuleID   string   `json:"ruleId,omitempty"`
}

// DiagnosticSink collects diagnostics for a single document. It only ever grows.
type DiagnosticSink interface {
	// Add appends the diagnostic, filling Place from Node (or the document root)
	// and File from the document path when they are unset.
	Add(diagnostic Diagnostic) Diagnostic

	Info(message string, node Node) Diagnostic
	Warn(message string, node Node) Diagnostic
	Fail(message string, node Node) Diagnostic

	GetMessages() []Diagnostic
}
