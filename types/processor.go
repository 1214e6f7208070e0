package types

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/dataclasses"
	"github.com/Marvin-Brouwer/open-adr/types/files"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
	"github.com/Marvin-Brouwer/open-adr/types/markdown"
	"github.com/Marvin-Brouwer/open-adr/types/schema"
)

const ENTITY_DOCUMENT = "document"

var ErrUnsupportedDocument = errors.New("document is not a markdown file")

// Processor lints documents: parse, include check, schema loader, schema linter.
type Processor struct {
	config config.Config

	// documentStorage reads documents and local schemas.
	documentStorage interfaces.Storage
}

func NewProcessor(_config config.Config, documentStorage interfaces.Storage) *Processor {
	if documentStorage == nil {
		documentStorage = NewLocalStorage("")
	}

	return &Processor{
		config:          _config,
		documentStorage: documentStorage,
	}
}

func (p *Processor) plugins(logger echo.Logger) []interfaces.Plugin {
	return []interfaces.Plugin{
		schema.NewLoader(
			p.config.ODR,
			p.documentStorage,
			p.config.Schema.FetchTimeout,
			logger,
		),
		schema.NewLinter(p.config.ODR, logger),
	}
}

// Process lints a single document. A returned error is a configuration
// problem; problems with the document itself are in the report.
func (p *Processor) Process(ctx context.Context, path string, content []byte) (dataclasses.Report, error) {
	document := dataclasses.NewDocument(path, content)
	logger, logBuffer := config.GetLoggerForEntity(ENTITY_DOCUMENT, document.GetId())

	err := p.run(ctx, document, logger)
	if err != nil {
		document.SetStatus(interfaces.ProcessingStatusFailed)
		logger.Errorf("Processing %s failed: %v", path, err)
	}

	return dataclasses.NewReport(document, logBuffer.String()), err
}

func (p *Processor) run(ctx context.Context, document *dataclasses.Document, logger echo.Logger) error {
	if !files.CheckFileIncluded(document.GetPath(), p.config.ODR.Include) {
		logger.Debugf("Skipping %s, it does not match the include patterns", document.GetPath())
		document.SetStatus(interfaces.ProcessingStatusSkipped)
		return nil
	}

	document.SetStatus(interfaces.ProcessingStatusRunning)
	document.SetTree(markdown.Parse(document.GetValue()))

	for _, plugin := range p.plugins(logger) {
		logger.Debugf("Running %s on %s", plugin.GetName(), document.GetPath())
		if err := plugin.Run(ctx, document); err != nil {
			return err
		}

		// A plugin that failed the document leaves nothing for the next one.
		if document.HasFatal() {
			break
		}
	}

	if document.HasFatal() {
		document.SetStatus(interfaces.ProcessingStatusFailed)
	} else {
		document.SetStatus(interfaces.ProcessingStatusCompleted)
	}
	return nil
}

// ProcessFile reads a document through the document storage and lints it.
func (p *Processor) ProcessFile(ctx context.Context, path string) (dataclasses.Report, error) {
	if ext := filepath.Ext(path); ext != ".md" && ext != ".markdown" {
		return dataclasses.Report{Path: path, Status: interfaces.ProcessingStatusSkipped}, ErrUnsupportedDocument
	}

	content, err := p.documentStorage.GetObjectBytes(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return dataclasses.Report{Path: path, Status: interfaces.ProcessingStatusFailed}, err
	}

	return p.Process(ctx, path, content.Bytes())
}

// ProcessAll lints documents concurrently. Reports keep the order of paths.
func (p *Processor) ProcessAll(ctx context.Context, paths []string) ([]dataclasses.Report, error) {
	reports := make([]dataclasses.Report, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(p.config.Processing.Concurrency, 1))

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			report, err := p.ProcessFile(groupCtx, path)
			reports[i] = report
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
