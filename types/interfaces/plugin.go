package interfaces

import "context"

// Plugin is a single processing step run against a parsed document.
type Plugin interface {
	GetName() string
	Run(ctx context.Context, document Document) error
}
