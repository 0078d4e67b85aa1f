package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fixgen/internal/openapi/loader"
	"github.com/goliatone/go-fixgen/pkg/openapi"
)

const specBody = `{"openapi": "3.0.0"}`

func TestLoaderReadsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(specBody), 0o600))

	l := loader.New(openapi.NewLoaderOptions())

	doc, err := l.Load(context.Background(), openapi.SourceFromFile(path))
	require.NoError(t, err)
	assert.Equal(t, []byte(specBody), doc.Raw())
	assert.Equal(t, path, doc.Location())
}

func TestLoaderReadsFromFS(t *testing.T) {
	files := fstest.MapFS{
		"specs/api.json": &fstest.MapFile{Data: []byte(specBody)},
	}
	l := loader.New(openapi.NewLoaderOptions(openapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), openapi.SourceFromFS("specs/api.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte(specBody), doc.Raw())
}

func TestLoaderRequiresConfiguredFS(t *testing.T) {
	l := loader.New(openapi.NewLoaderOptions())

	_, err := l.Load(context.Background(), openapi.SourceFromFS("specs/api.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filesystem is not configured")
}

func TestLoaderFetchesHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(specBody))
	}))
	defer server.Close()

	l := loader.New(openapi.NewLoaderOptions(openapi.WithHTTPFallback(5 * time.Second)))

	doc, err := l.Load(context.Background(), openapi.SourceFromURL(server.URL))
	require.NoError(t, err)
	assert.Equal(t, []byte(specBody), doc.Raw())
}

func TestLoaderRejectsHTTPWhenDisabled(t *testing.T) {
	l := loader.New(openapi.NewLoaderOptions())

	_, err := l.Load(context.Background(), openapi.SourceFromURL("https://example.com/spec.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http support disabled")
}

func TestLoaderSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	l := loader.New(openapi.NewLoaderOptions(openapi.WithHTTPFallback(5 * time.Second)))

	_, err := l.Load(context.Background(), openapi.SourceFromURL(server.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestLoaderRejectsNilSource(t *testing.T) {
	l := loader.New(openapi.NewLoaderOptions())

	_, err := l.Load(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	l := loader.New(openapi.NewLoaderOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, openapi.SourceFromFile("spec.json"))
	assert.ErrorIs(t, err, context.Canceled)
}
