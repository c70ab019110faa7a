package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ichiban/backtrack/engine"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("empty file", func(t *testing.T) {
		c, err := Load(writeFile(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("overrides", func(t *testing.T) {
		c, err := Load(writeFile(t, `
heap_limit: 1024
trail_limit: 512
timeout: 250ms
unknown: fail
demo:
  list1: [a, b]
`))
		require.NoError(t, err)
		assert.Equal(t, 1024, c.HeapLimit)
		assert.Equal(t, 512, c.TrailLimit)
		assert.Equal(t, 250*time.Millisecond, c.Timeout)
		assert.Equal(t, "fail", c.Unknown)
		assert.Equal(t, []string{"a", "b"}, c.Demo.List1)
		assert.Equal(t, Default().Demo.List2, c.Demo.List2)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeFile(t, "heap: 1\n"))
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Load(writeFile(t, "unknown: panic\n"))
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		title string
		c     Config
		ok    bool
	}{
		{title: "default", c: Default(), ok: true},
		{title: "negative heap", c: Config{HeapLimit: -1}},
		{title: "negative trail", c: Config{TrailLimit: -1}},
		{title: "negative timeout", c: Config{Timeout: -time.Second}},
		{title: "bad unknown", c: Config{Unknown: "ignore"}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_UnknownAction(t *testing.T) {
	for s, want := range map[string]engine.Unknown{
		"":        engine.UnknownError,
		"error":   engine.UnknownError,
		"fail":    engine.UnknownFail,
		"warning": engine.UnknownWarning,
	} {
		c := Config{Unknown: s}
		got, err := c.UnknownAction()
		assert.NoError(t, err)
		assert.Equal(t, want, got, s)
	}
}

func TestConfig_Options(t *testing.T) {
	c := Config{HeapLimit: 8, Unknown: "fail"}
	vm := engine.New(c.Options()...)
	assert.Equal(t, engine.UnknownFail, vm.Unknown)

	// The heap limit applies to the VM's heap.
	for i := 0; i < 8; i++ {
		_, err := vm.Terms.NewVariable()
		require.NoError(t, err)
	}
	_, err := vm.Terms.NewVariable()
	assert.ErrorIs(t, err, engine.ErrResourceExhausted)
}
