package schema

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Violation is a single broken constraint, keyed by the schema keyword.
type Violation struct {
	InstancePath    string
	KeywordLocation string
	Keyword         string
	Message         string
	Params          map[string]any
	Kind            jsonschema.ErrorKind

	instanceLocation []string
}

// Validator is a compiled schema. It keeps the violations of its latest run.
type Validator struct {
	sync.Mutex

	schema     *jsonschema.Schema
	violations []Violation
	printer    *message.Printer
}

// Compile builds a validator for the schema document registered at location.
// Nested references are fetched through resolver.
func Compile(ctx context.Context, resolver *Resolver, location string, document any) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)

	loader := resolver.URLLoader(ctx)
	compiler.UseLoader(jsonschema.SchemeURLLoader{
		SCHEME_HTTPS: loader,
		SCHEME_HTTP:  loader,
		SCHEME_FILE:  loader,
	})

	vocabulary, err := orderVocabulary()
	if err != nil {
		return nil, err
	}
	compiler.RegisterVocabulary(vocabulary)

	if err := compiler.AddResource(location, document); err != nil {
		return nil, err
	}

	compiled, err := compiler.Compile(location)
	if err != nil {
		return nil, err
	}

	return &Validator{
		schema:  compiled,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Validate checks value against the schema and records the violations.
func (v *Validator) Validate(value any) bool {
	v.Lock()
	defer v.Unlock()

	v.violations = nil

	err := v.schema.Validate(value)
	if err == nil {
		return true
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		v.violations = []Violation{{Message: err.Error()}}
		return false
	}

	v.violations = v.collect(validationErr, nil)
	sortViolations(v.violations)
	return false
}

// Violations returns the violations of the most recent Validate call.
func (v *Validator) Violations() []Violation {
	v.Lock()
	defer v.Unlock()

	violations := make([]Violation, len(v.violations))
	copy(violations, v.violations)
	return violations
}

func (v *Validator) collect(err *jsonschema.ValidationError, violations []Violation) []Violation {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			violations = v.collect(cause, violations)
		}
		return violations
	}

	return append(violations, Violation{
		InstancePath:     instancePath(err.InstanceLocation),
		KeywordLocation:  keywordLocation(err),
		Keyword:          keyword(err.ErrorKind),
		Message:          err.ErrorKind.LocalizedString(v.printer),
		Params:           params(err.ErrorKind),
		Kind:             err.ErrorKind,
		instanceLocation: err.InstanceLocation,
	})
}

// sortViolations orders violations by their place in the document, then by
// the schema keyword. The engine walks properties in map order.
func sortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if order := compareLocations(violations[i].instanceLocation, violations[j].instanceLocation); order != 0 {
			return order < 0
		}
		return violations[i].KeywordLocation < violations[j].KeywordLocation
	})
}

// compareLocations compares instance locations segment by segment. Array
// indexes compare as numbers and a parent sorts before its children.
func compareLocations(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		left, leftErr := strconv.Atoi(a[i])
		right, rightErr := strconv.Atoi(b[i])
		if leftErr == nil && rightErr == nil && left != right {
			if left < right {
				return -1
			}
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
		return 1
	}
	return len(a) - len(b)
}

func keywordLocation(err *jsonschema.ValidationError) string {
	return err.SchemaURL + "#/" + strings.Join(err.ErrorKind.KeywordPath(), "/")
}

func instancePath(location []string) string {
	if len(location) == 0 {
		return ""
	}
	return "/" + strings.Join(location, "/")
}

func keyword(errorKind jsonschema.ErrorKind) string {
	path := errorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

func params(errorKind jsonschema.ErrorKind) map[string]any {
	switch typed := errorKind.(type) {
	case *kind.Const:
		return map[string]any{"allowedValue": typed.Want}
	case *kind.AdditionalItems:
		return map[string]any{"count": typed.Count}
	}
	return map[string]any{}
}
