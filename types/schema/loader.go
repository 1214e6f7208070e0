package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/helpers"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
	"github.com/Marvin-Brouwer/open-adr/types/markdown"
	"github.com/Marvin-Brouwer/open-adr/types/validators"
)

const (
	LOADER_NAME = "schema-loader"

	MESSAGE_FAILED_TO_LOAD = "Failed to load schema"
)

// SchemaReference is the schema url declared in a document header.
type SchemaReference struct {
	URL      string
	Position *interfaces.Position
}

// Loader reads the schema reference from a document header, resolves and
// compiles the schema and stores the validator on the document.
type Loader struct {
	settings     config.Settings
	storage      interfaces.Storage
	fetchTimeout time.Duration
	logger       echo.Logger
}

func NewLoader(
	settings config.Settings,
	storage interfaces.Storage,
	fetchTimeout time.Duration,
	logger echo.Logger,
) *Loader {
	if logger == nil {
		logger = config.GetLogger()
	}

	return &Loader{
		settings:     settings,
		storage:      storage,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

func (l *Loader) GetName() string {
	return LOADER_NAME
}

// Run never returns content problems, those become fatal diagnostics.
func (l *Loader) Run(ctx context.Context, document interfaces.Document) error {
	tree := document.GetTree()
	if tree == nil {
		return ErrTreeMissing
	}

	frontMatter, err := markdown.ReadFrontMatter(tree)
	if err != nil {
		var frontMatterErr *markdown.FrontMatterError
		if !errors.As(err, &frontMatterErr) {
			return err
		}
		document.Add(interfaces.Diagnostic{
			Message: frontMatterErr.Message,
			Level:   interfaces.DiagnosticLevelFatal,
			Node:    frontMatterErr.Node,
			Place:   frontMatterErr.Position,
			Source:  LOADER_NAME,
			RuleID:  "front-matter",
		})
		return nil
	}

	reference, ok, err := l.extractReference(document, frontMatter)
	if err != nil || !ok {
		return err
	}

	if !l.isAllowed(reference.URL) {
		document.Add(interfaces.Diagnostic{
			Message: fmt.Sprintf(
				"Schema \"%s\" is not allowed. Allowed: %s",
				reference.URL,
				strings.Join(l.settings.AllowedSchemas, ", "),
			),
			Level:  interfaces.DiagnosticLevelFatal,
			Node:   frontMatter.Node,
			Place:  reference.Position,
			Source: LOADER_NAME,
			RuleID: "allowed-schemas",
		})
		return nil
	}

	resolver := NewResolver(document.GetDirectory(), l.storage, l.fetchTimeout, l.logger)

	location := l.compileLocation(resolver, reference.URL)
	schemaDocument, err := resolver.Resolve(ctx, location)
	if err != nil {
		l.reportResolutionError(document, frontMatter, reference, err)
		return nil
	}

	l.logger.Debugf("Compiling schema %s", reference.URL)
	validator, err := Compile(ctx, resolver, location, schemaDocument)
	if err != nil {
		document.Add(interfaces.Diagnostic{
			Message: MESSAGE_FAILED_TO_LOAD,
			Level:   interfaces.DiagnosticLevelFatal,
			Node:    frontMatter.Node,
			Place:   reference.Position,
			Cause:   err.Error(),
			Stack:   errorChain(err),
			File:    reference.URL,
			Source:  LOADER_NAME,
			RuleID:  "schema-compile",
		})
		return nil
	}

	SetSchemaData(document, &SchemaData{
		SchemaURL: reference.URL,
		Validator: validator,
	})
	return nil
}

func (l *Loader) extractReference(
	document interfaces.Document,
	frontMatter *markdown.FrontMatter,
) (SchemaReference, bool, error) {
	headerErr, err := validators.ValidateHeader(frontMatter.Data)
	if err != nil {
		return SchemaReference{}, false, err
	}
	if headerErr != nil {
		place := markdown.PositionOf(frontMatter.Node)
		if headerErr.Field != "" {
			place = frontMatter.ValuePosition(headerErr.Field)
		}
		document.Add(interfaces.Diagnostic{
			Message: headerErr.Message,
			Level:   interfaces.DiagnosticLevelFatal,
			Node:    frontMatter.Node,
			Place:   place,
			Source:  LOADER_NAME,
			RuleID:  "front-matter",
		})
		return SchemaReference{}, false, nil
	}

	url, err := helpers.GetValue[string](frontMatter.Data, validators.SCHEMA_KEY)
	if err != nil {
		return SchemaReference{}, false, err
	}

	return SchemaReference{
		URL:      url,
		Position: frontMatter.ValuePosition(validators.SCHEMA_KEY),
	}, true, nil
}

func (l *Loader) isAllowed(url string) bool {
	if len(l.settings.AllowedSchemas) == 0 {
		return true
	}
	return slices.Contains(l.settings.AllowedSchemas, url)
}

// compileLocation turns relative file urls into absolute ones, so references
// inside the schema resolve next to it.
func (l *Loader) compileLocation(resolver *Resolver, url string) string {
	if !strings.HasPrefix(url, FILE_URL_PREFIX) {
		return url
	}

	filePath := resolver.LocalPath(url)
	if absolute, err := filepath.Abs(filePath); err == nil {
		filePath = absolute
	}
	return FILE_URL_PREFIX + filepath.ToSlash(filePath)
}

func (l *Loader) reportResolutionError(
	document interfaces.Document,
	frontMatter *markdown.FrontMatter,
	reference SchemaReference,
	err error,
) {
	l.logger.Debugf("Failed to resolve schema %s: %v", reference.URL, err)

	message, tail := describeResolutionError(err)
	tail = helpers.EscapeControlCharacters(tail)

	diagnostic := interfaces.Diagnostic{
		Message: message,
		Level:   interfaces.DiagnosticLevelFatal,
		Node:    frontMatter.Node,
		Place:   reference.Position,
		Stack:   strings.TrimPrefix(fmt.Sprintf("%s\n    at decode(%s)", tail, reference.URL), "\n"),
		Source:  LOADER_NAME,
		RuleID:  "schema-resolve",
	}
	if tail != "" {
		diagnostic.Cause = tail
		diagnostic.Note = tail
	}

	document.Add(diagnostic)
}

// describeResolutionError splits an error into a headline and the context
// that follows it. Decoder errors carry an offset, which gives the context
// directly; other errors are split at their first `, "`.
func describeResolutionError(err error) (string, string) {
	var resolutionErr *ResolutionError
	errors.As(err, &resolutionErr)

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		tail := ""
		if resolutionErr != nil && resolutionErr.Body != "" {
			tail = syntaxContext(resolutionErr.Body, syntaxErr.Offset)
		}
		return syntaxErr.Error(), tail
	}

	text := err.Error()
	if index := strings.Index(text, `, "`); index >= 0 {
		return text[:index], text[index+2:]
	}

	if resolutionErr != nil && resolutionErr.StatusCode != 0 {
		return text, resolutionErr.Body
	}
	return text, ""
}

func syntaxContext(body string, offset int64) string {
	position := int(offset) - 1
	if position < 0 {
		position = 0
	}
	if position > len(body) {
		position = len(body)
	}

	line := strings.Count(body[:position], "\n") + 1
	lineStart := strings.LastIndexByte(body[:position], '\n') + 1
	lineEnd := strings.IndexByte(body[position:], '\n')
	if lineEnd < 0 {
		lineEnd = len(body)
	} else {
		lineEnd += position
	}
	column := position - lineStart + 1

	return fmt.Sprintf(
		"at line %d, column %d:\n%s\n%s^",
		line,
		column,
		body[lineStart:lineEnd],
		strings.Repeat(" ", column-1),
	)
}

func errorChain(err error) string {
	var lines []string
	for current := err; current != nil; current = errors.Unwrap(current) {
		lines = append(lines, current.Error())
	}
	return strings.Join(lines, "\n    caused by: ")
}
