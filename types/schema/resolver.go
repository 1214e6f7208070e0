package schema

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

const (
	SCHEME_HTTPS = "https"
	SCHEME_HTTP  = "http"
	SCHEME_FILE  = "file"

	FILE_URL_PREFIX = "file://"
)

var metaSchemaPrefixes = []string{
	"https://json-schema.org/draft",
	"http://json-schema.org/draft",
}

// Resolver fetches schema documents over https or from the local filesystem.
// File references are resolved against baseDirectory.
type Resolver struct {
	baseDirectory string
	storage       interfaces.Storage
	client        *http.Client
	logger        echo.Logger
}

func NewResolver(
	baseDirectory string,
	storage interfaces.Storage,
	fetchTimeout time.Duration,
	logger echo.Logger,
) *Resolver {
	if fetchTimeout <= 0 {
		fetchTimeout = config.DEFAULT_FETCH_TIMEOUT
	}
	if logger == nil {
		logger = config.GetLogger()
	}

	return &Resolver{
		baseDirectory: baseDirectory,
		storage:       storage,
		client:        &http.Client{Timeout: fetchTimeout},
		logger:        logger,
	}
}

// SetHTTPClient replaces the client used for remote schemas.
func (r *Resolver) SetHTTPClient(client *http.Client) {
	r.client = client
}

// IsMetaSchema reports whether uri points at one of the JSON Schema drafts.
func IsMetaSchema(uri string) bool {
	for _, prefix := range metaSchemaPrefixes {
		if strings.HasPrefix(uri, prefix) {
			return true
		}
	}
	return false
}

// Resolve returns the schema document behind uri. Meta schemas and
// unsupported schemes resolve to an empty schema.
func (r *Resolver) Resolve(ctx context.Context, uri string) (any, error) {
	if IsMetaSchema(uri) {
		return map[string]any{}, nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, &ResolutionError{URI: uri, Err: err}
	}

	switch parsed.Scheme {
	case SCHEME_HTTPS:
		return r.resolveRemote(ctx, uri)
	case SCHEME_FILE:
		return r.resolveLocal(uri)
	}

	r.logger.Debugf("Unsupported schema scheme %q, resolving %s to an empty schema", parsed.Scheme, uri)
	return map[string]any{}, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, uri string) (any, error) {
	r.logger.Debugf("Fetching schema %s", uri)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &ResolutionError{URI: uri, Err: err}
	}
	request.Header.Set("Accept", "application/schema+json, application/json")

	response, err := r.client.Do(request)
	if err != nil {
		return nil, &ResolutionError{URI: uri, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &ResolutionError{URI: uri, StatusCode: response.StatusCode, Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &ResolutionError{
			URI:        uri,
			StatusCode: response.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("failed to fetch schema %s: %s", uri, response.Status),
		}
	}

	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, &ResolutionError{URI: uri, StatusCode: response.StatusCode, Body: string(body), Err: err}
	}

	return withID(document, stripFragment(uri)), nil
}

func (r *Resolver) resolveLocal(uri string) (any, error) {
	filePath := r.LocalPath(uri)
	r.logger.Debugf("Reading schema %s from %s", uri, filePath)

	content, err := r.storage.GetObjectBytes(filepath.Dir(filePath), filepath.Base(filePath))
	if err != nil {
		return nil, &ResolutionError{URI: uri, Err: err}
	}

	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(content.Bytes()))
	if err != nil {
		return nil, &ResolutionError{URI: uri, Body: content.String(), Err: err}
	}

	return withoutID(document), nil
}

// LocalPath maps a file url onto the filesystem, relative to the base directory.
func (r *Resolver) LocalPath(uri string) string {
	filePath := strings.TrimPrefix(stripFragment(uri), FILE_URL_PREFIX)
	if unescaped, err := url.PathUnescape(filePath); err == nil {
		filePath = unescaped
	}
	filePath = filepath.FromSlash(filePath)

	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Join(r.baseDirectory, filePath)
}

// URLLoader adapts the resolver for the schema compiler, which has no context of its own.
func (r *Resolver) URLLoader(ctx context.Context) jsonschema.URLLoader {
	return &contextLoader{ctx: ctx, resolver: r}
}

type contextLoader struct {
	ctx      context.Context
	resolver *Resolver
}

func (l *contextLoader) Load(uri string) (any, error) {
	return l.resolver.Resolve(l.ctx, uri)
}

func stripFragment(uri string) string {
	if index := strings.IndexByte(uri, '#'); index >= 0 {
		return uri[:index]
	}
	return uri
}

// withID returns a copy of a remote schema that identifies itself as uri, so
// the compiler never fetches it again to resolve its own references.
func withID(document any, uri string) any {
	schema, ok := document.(map[string]any)
	if !ok {
		return document
	}
	if id, ok := schema["$id"].(string); ok && id != "" {
		return document
	}

	copied := make(map[string]any, len(schema)+1)
	for key, value := range schema {
		copied[key] = value
	}
	copied["$id"] = uri
	return copied
}

// withoutID returns a copy of a local schema without its identifier, so
// references inside it resolve on disk instead of on the web.
func withoutID(document any) any {
	schema, ok := document.(map[string]any)
	if !ok {
		return document
	}
	if _, ok := schema["$id"]; !ok {
		return document
	}

	copied := make(map[string]any, len(schema))
	for key, value := range schema {
		if key == "$id" {
			continue
		}
		copied[key] = value
	}
	return copied
}
