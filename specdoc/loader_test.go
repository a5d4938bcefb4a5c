package specdoc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `openapi: 3.0.3
info:
  title: Test API
  version: 1.0.0
paths: {}
`

const minimalJSON = `{
  "swagger": "2.0",
  "info": {"title": "Test API", "version": "1.0.0"},
  "paths": {}
}`

// writeSpec writes content to a temp file with the given name and returns its
// path.
func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeSpec(t, "spec.yaml", minimalYAML)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format())
	assert.Equal(t, path, doc.Source())
	assert.Equal(t, "3.0.3", doc.Root().GetString("openapi"))
}

func TestLoadJSONFile(t *testing.T) {
	path := writeSpec(t, "spec.json", minimalJSON)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format())
	assert.Equal(t, "2.0", doc.Root().GetString("swagger"))
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ReasonNotFound, loadErr.Reason)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeSpec(t, "spec.txt", minimalYAML)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".txt")
}

func TestLoadMissingFileWithBadExtensionReportsNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeSpec(t, "bad.json", `{"openapi": "3.0.3",`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeSpec(t, "bad.yaml", "openapi: 3.0.3\n  bad indent: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadMissingRootMarker(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no version key", "info:\n  title: Not a spec\n"},
		{"sequence root", "- one\n- two\n"},
		{"scalar root", "just a string\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSpec(t, "doc.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestLoadURL(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(minimalYAML))
	}))
	defer srv.Close()

	doc, err := Load(srv.URL + "/spec")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format())
	assert.Equal(t, srv.URL+"/spec", doc.Source())
	assert.Contains(t, gotUserAgent, "oasdocs/")
}

func TestLoadURLFormatFromPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(minimalJSON))
	}))
	defer srv.Close()

	doc, err := Load(srv.URL + "/api/openapi.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format())
}

func TestLoadURLSniffsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(minimalJSON))
	}))
	defer srv.Close()

	doc, err := Load(srv.URL + "/spec")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format())
}

func TestLoadURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(srv.URL + "/spec.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestLoadURLConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := Load(srv.URL + "/spec.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestLoadWithCustomHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(minimalYAML))
	}))
	defer srv.Close()

	doc, err := Load(srv.URL+"/spec.yaml", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format())
}

func TestParseInline(t *testing.T) {
	doc, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format())
	assert.Equal(t, "inline", doc.Source())

	doc, err = Parse([]byte(minimalJSON))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format())
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected Format
	}{
		{"json object", `{"a": 1}`, FormatJSON},
		{"json array", `[1]`, FormatJSON},
		{"json with leading whitespace", "\n\t {\"a\": 1}", FormatJSON},
		{"yaml mapping", "a: 1", FormatYAML},
		{"empty", "", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectFormatFromContent([]byte(tt.content)))
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	err := &LoadError{
		Source:  "spec.yaml",
		Reason:  ReasonParse,
		Message: "bad document",
		Cause:   errors.New("line 3"),
	}
	assert.Equal(t, "failed to load spec (parse error) from spec.yaml: bad document: line 3", err.Error())
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrNetwork)
}
