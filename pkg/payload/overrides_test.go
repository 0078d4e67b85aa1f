package payload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fixgen/pkg/fixture"
	"github.com/goliatone/go-fixgen/pkg/payload"
)

func TestParseOverridesYAML(t *testing.T) {
	overrides, err := payload.ParseOverrides([]byte("name: Alice\nage: 30\ntags:\n  - a\n  - b\n"))
	require.NoError(t, err)

	assert.Equal(t, fixture.Overrides{
		"name": "Alice",
		"age":  30,
		"tags": []any{"a", "b"},
	}, overrides)
}

func TestParseOverridesJSON(t *testing.T) {
	overrides, err := payload.ParseOverrides([]byte(`{"name": "Alice", "active": true}`))
	require.NoError(t, err)

	assert.Equal(t, fixture.Overrides{"name": "Alice", "active": true}, overrides)
}

func TestParseOverridesNestedMapping(t *testing.T) {
	overrides, err := payload.ParseOverrides([]byte("address:\n  city: Valencia\n  zip: \"46001\"\n"))
	require.NoError(t, err)

	require.Contains(t, overrides, "address")
	nested, ok := overrides["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Valencia", nested["city"])
	assert.Equal(t, "46001", nested["zip"])
}

func TestParseOverridesEmptyInput(t *testing.T) {
	overrides, err := payload.ParseOverrides(nil)
	require.NoError(t, err)
	assert.Nil(t, overrides)

	overrides, err = payload.ParseOverrides([]byte("{}"))
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestParseOverridesRejectsNonMappings(t *testing.T) {
	_, err := payload.ParseOverrides([]byte("- just\n- a\n- list\n"))
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Alice\n"), 0o600))

	overrides, err := payload.LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, fixture.Overrides{"name": "Alice"}, overrides)
}

func TestLoadOverridesMissingFile(t *testing.T) {
	_, err := payload.LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
