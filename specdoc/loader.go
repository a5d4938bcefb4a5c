package specdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oasdocs/oasdocs"
	"go.yaml.in/yaml/v4"
)

// DefaultFetchTimeout bounds the single remote fetch performed at startup.
// A timeout is a terminal load failure; it is never retried.
const DefaultFetchTimeout = 30 * time.Second

// Format identifies the serialization format of a spec source.
type Format string

const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// Document is a fully parsed spec: an immutable tree rooted at a mapping
// that carries an "openapi" or "swagger" key. It is loaded once and never
// mutated, so it can be shared across concurrent queries without locking.
type Document struct {
	root   Value
	source string
	format Format
}

// Root returns the document's root mapping.
func (d *Document) Root() Value { return d.root }

// Source returns the path or URL the document was loaded from.
func (d *Document) Source() string { return d.source }

// Format returns the detected serialization format.
func (d *Document) Format() Format { return d.format }

// Loader loads spec documents. The zero value is not usable; create one with
// NewLoader.
type Loader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets a custom HTTP client for remote fetches. When set, the
// client's own timeout applies and WithTimeout is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the remote fetch timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header for remote fetches.
func WithUserAgent(ua string) Option {
	return func(l *Loader) { l.userAgent = ua }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader with the given options applied.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:   DefaultFetchTimeout,
		userAgent: oasdocs.UserAgent(),
		logger:    NopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads a spec from a local file path or an http(s) URL using a Loader
// with the given options. See Loader.Load.
func Load(source string, opts ...Option) (*Document, error) {
	return NewLoader(opts...).Load(source)
}

// Load obtains the raw spec text from source, detects its format, and parses
// it. Any failure is a *LoadError matching one of the package sentinels.
func (l *Loader) Load(source string) (*Document, error) {
	if isURL(source) {
		return l.loadURL(source)
	}
	return l.loadFile(source)
}

// Parse parses raw spec content, sniffing JSON vs YAML from the first
// non-whitespace byte. Useful for inline content and tests.
func Parse(data []byte) (*Document, error) {
	return parse(data, detectFormatFromContent(data), "inline")
}

// isURL determines if the given source is a URL (http:// or https://).
func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) loadFile(path string) (*Document, error) {
	format := detectFormatFromPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Source: path, Reason: ReasonNotFound, Cause: err}
		}
		return nil, &LoadError{Source: path, Reason: ReasonNotFound, Message: "reading spec file", Cause: err}
	}

	// The extension check comes after the existence check so a missing
	// "spec.txt" reports not-found rather than unsupported-format.
	if format == FormatUnknown {
		return nil, &LoadError{
			Source:  path,
			Reason:  ReasonUnsupportedFormat,
			Message: fmt.Sprintf("extension %q is not one of .yaml, .yml, .json", filepath.Ext(path)),
		}
	}

	l.logger.Debug("read spec file", "path", path, "bytes", len(data), "format", string(format))
	return parse(data, format, path)
}

func (l *Loader) loadURL(urlStr string) (*Document, error) {
	data, contentType, err := l.fetch(urlStr)
	if err != nil {
		return nil, err
	}

	format := detectFormatFromURL(urlStr, contentType)
	if format == FormatUnknown {
		format = detectFormatFromContent(data)
	}

	l.logger.Debug("fetched spec", "url", urlStr, "bytes", len(data), "format", string(format))
	return parse(data, format, urlStr)
}

// fetch performs the single synchronous HTTP GET for a remote spec.
func (l *Loader) fetch(urlStr string) ([]byte, string, error) {
	client := l.client
	if client == nil {
		client = &http.Client{Timeout: l.timeout}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", &LoadError{Source: urlStr, Reason: ReasonNetwork, Message: "creating request", Cause: err}
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &LoadError{Source: urlStr, Reason: ReasonNetwork, Message: "fetching spec", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &LoadError{
			Source:  urlStr,
			Reason:  ReasonNetwork,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &LoadError{Source: urlStr, Reason: ReasonNetwork, Message: "reading response body", Cause: err}
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// parse deserializes data in the given format and validates the root marker.
func parse(data []byte, format Format, source string) (*Document, error) {
	// JSON must fail strictly on malformed input. The YAML parser would
	// happily accept broken JSON as a plain scalar, so validate first.
	if format == FormatJSON && !json.Valid(data) {
		return nil, &LoadError{Source: source, Reason: ReasonParse, Message: "malformed JSON"}
	}

	// The node-based YAML loader handles both YAML and JSON, preserves
	// mapping key order, and never constructs arbitrary objects.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &LoadError{Source: source, Reason: ReasonParse, Cause: err}
	}

	root, err := fromNode(&node, 0)
	if err != nil {
		return nil, &LoadError{Source: source, Reason: ReasonParse, Cause: err}
	}

	if !root.IsMapping() {
		return nil, &LoadError{Source: source, Reason: ReasonInvalidSpec, Message: "document root is not a mapping"}
	}
	if !root.Has("openapi") && !root.Has("swagger") {
		return nil, &LoadError{Source: source, Reason: ReasonInvalidSpec, Message: `missing "openapi" or "swagger" key at document root`}
	}

	return &Document{root: root, source: source, format: format}, nil
}

// detectFormatFromPath detects the source format from a file path extension.
func detectFormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// detectFormatFromContent sniffs the format from the content bytes.
// JSON documents start with '{' or '['; anything else is treated as YAML.
func detectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// detectFormatFromURL detects the format from a URL path suffix, then from
// the Content-Type header.
func detectFormatFromURL(urlStr, contentType string) Format {
	if parsed, err := url.Parse(urlStr); err == nil && parsed.Path != "" {
		if format := detectFormatFromPath(parsed.Path); format != FormatUnknown {
			return format
		}
	}

	if contentType != "" {
		contentType = strings.ToLower(contentType)
		if idx := strings.Index(contentType, ";"); idx != -1 {
			contentType = contentType[:idx]
		}
		switch strings.TrimSpace(contentType) {
		case "application/json":
			return FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return FormatYAML
		}
	}

	return FormatUnknown
}
