package schema

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/files"
	"github.com/Marvin-Brouwer/open-adr/types/helpers"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

const LINTER_NAME = "schema-linter"

// Linter validates the syntax tree of a document with the validator the
// Loader stored on it, reporting every violation at the closest tree node.
type Linter struct {
	settings config.Settings
	logger   echo.Logger
}

func NewLinter(settings config.Settings, logger echo.Logger) *Linter {
	if logger == nil {
		logger = config.GetLogger()
	}

	return &Linter{
		settings: settings,
		logger:   logger,
	}
}

func (l *Linter) GetName() string {
	return LINTER_NAME
}

func (l *Linter) Run(ctx context.Context, document interfaces.Document) error {
	if !files.CheckFileIncluded(document.GetPath(), l.settings.Include) {
		return nil
	}

	state, ok := GetSchemaData(document)
	if !ok {
		return ErrSchemaStateMissing
	}

	tree := document.GetTree()
	if tree == nil {
		return ErrTreeMissing
	}

	if state.Validator.Validate(tree) {
		return nil
	}

	for _, violation := range state.Validator.Violations() {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.report(document, tree, violation)
	}
	return nil
}

func (l *Linter) report(document interfaces.Document, tree interfaces.Node, violation Violation) {
	trail := helpers.TrailJSONPath(tree, violation.InstancePath)
	if len(trail) == 0 {
		document.Add(interfaces.Diagnostic{
			Message: fmt.Sprintf("Invalid error state, tree does not contain `%s`", violation.InstancePath),
			Level:   interfaces.DiagnosticLevelFatal,
			Cause:   violation.Message,
			Stack:   violation.InstancePath,
			Source:  LINTER_NAME,
			RuleID:  violation.Keyword,
		})
		return
	}

	formatted := FormatMessage(violation, trail[0])
	if !formatted.Known {
		l.logger.Warnf(
			"No message for schema keyword %q at %s: %s",
			violation.Keyword,
			violation.InstancePath,
			violation.Message,
		)
	}

	document.Add(interfaces.Diagnostic{
		Message:  formatted.Text,
		Level:    interfaces.DiagnosticLevelFatal,
		Node:     AnchorNode(trail),
		File:     document.GetPath(),
		Cause:    violation.Message,
		Stack:    violation.InstancePath,
		Expected: formatted.Expected,
		Source:   LINTER_NAME,
		RuleID:   violation.Keyword,
	})
}

// AnchorNode picks the node a violation is reported on: the deepest trail
// entry with a `type`, skipping objects that are not tree nodes such as
// `position`. A primitive or a sequence at the end of the trail is therefore
// reported on the node that holds it.
func AnchorNode(trail []any) interfaces.Node {
	for _, item := range trail {
		node, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := node["type"]; ok {
			return node
		}
	}
	return nil
}
