package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/poiesic/docseek/history"
	"github.com/poiesic/docseek/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.CorpusPath)
	assert.Equal(t, BackendBadger, cfg.StorageBackend)
	assert.Empty(t, cfg.StoragePath)
	assert.Equal(t, "docseek.recent-queries", cfg.HistoryKey)
	assert.Equal(t, 150, cfg.ExcerptLength)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, max(runtime.NumCPU()/2, 1), cfg.LoadWorkers)
	assert.Equal(t, "ctrl+k", cfg.ToggleKey)
}

func TestDefaultConfig_MatchesComponentDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, history.DefaultKey, cfg.HistoryKey)
	assert.Equal(t, search.DefaultExcerptLength, cfg.ExcerptLength)
	assert.Equal(t, search.DefaultCacheSize, cfg.CacheSize)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithCorpusPath("./docs"),
			WithStorage(BackendSQLite, "/tmp/state.db"),
			WithHistoryKey("custom"),
			WithExcerptLength(80),
			WithCacheSize(0),
			WithLoadWorkers(3),
			WithToggleKey("ctrl+o"),
		)

		assert.Equal(t, "./docs", cfg.CorpusPath)
		assert.Equal(t, BackendSQLite, cfg.StorageBackend)
		assert.Equal(t, "/tmp/state.db", cfg.StoragePath)
		assert.Equal(t, "custom", cfg.HistoryKey)
		assert.Equal(t, 80, cfg.ExcerptLength)
		assert.Equal(t, 0, cfg.CacheSize)
		assert.Equal(t, 3, cfg.LoadWorkers)
		assert.Equal(t, "ctrl+o", cfg.ToggleKey)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name            string
		backend         string
		path            string
		toggle          string
		expectedBackend string
		expectedPath    string
		expectedToggle  string
	}{
		{
			name:            "already canonical",
			backend:         "sqlite",
			path:            "/tmp/x.db",
			toggle:          "ctrl+k",
			expectedBackend: "sqlite",
			expectedPath:    "/tmp/x.db",
			expectedToggle:  "ctrl+k",
		},
		{
			name:            "mixed case and spaces",
			backend:         "  Badger ",
			path:            " /tmp/state ",
			toggle:          " Ctrl+K",
			expectedBackend: "badger",
			expectedPath:    "/tmp/state",
			expectedToggle:  "ctrl+k",
		},
		{
			name:            "empty backend",
			backend:         "",
			path:            "/tmp/state",
			toggle:          "ctrl+k",
			expectedBackend: "badger",
			expectedPath:    "/tmp/state",
			expectedToggle:  "ctrl+k",
		},
		{
			name:            "default badger path",
			backend:         "badger",
			path:            "",
			toggle:          "ctrl+k",
			expectedBackend: "badger",
			expectedPath:    filepath.Join(DefaultStateDir(), "state"),
			expectedToggle:  "ctrl+k",
		},
		{
			name:            "default sqlite path",
			backend:         "sqlite",
			path:            "",
			toggle:          "ctrl+k",
			expectedBackend: "sqlite",
			expectedPath:    filepath.Join(DefaultStateDir(), "state.db"),
			expectedToggle:  "ctrl+k",
		},
		{
			name:            "memory needs no path",
			backend:         "memory",
			path:            "",
			toggle:          "ctrl+k",
			expectedBackend: "memory",
			expectedPath:    "",
			expectedToggle:  "ctrl+k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				StorageBackend: tt.backend,
				StoragePath:    tt.path,
				ToggleKey:      tt.toggle,
			}

			cfg.Normalize()

			assert.Equal(t, tt.expectedBackend, cfg.StorageBackend)
			assert.Equal(t, tt.expectedPath, cfg.StoragePath)
			assert.Equal(t, tt.expectedToggle, cfg.ToggleKey)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return NewConfig(WithCorpusPath("./docs"), WithStorage(BackendMemory, ""))
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()
		cfg.StorageBackend = " MEMORY "

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, BackendMemory, cfg.StorageBackend)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing corpus path", func(c *Config) { c.CorpusPath = "  " }, "CorpusPath"},
		{"unknown backend", func(c *Config) { c.StorageBackend = "redis" }, "StorageBackend"},
		{"missing history key", func(c *Config) { c.HistoryKey = "" }, "HistoryKey"},
		{"zero excerpt length", func(c *Config) { c.ExcerptLength = 0 }, "ExcerptLength"},
		{"negative cache size", func(c *Config) { c.CacheSize = -1 }, "CacheSize"},
		{"zero load workers", func(c *Config) { c.LoadWorkers = 0 }, "LoadWorkers"},
		{"missing toggle key", func(c *Config) { c.ToggleKey = " " }, "ToggleKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("cache size zero is allowed", func(t *testing.T) {
		cfg := valid()
		cfg.CacheSize = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestDecode(t *testing.T) {
	input := `
corpus_path = "./site/search"
storage_backend = "sqlite"
storage_path = "/var/lib/docseek/state.db"
excerpt_length = 200
`
	cfg, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "./site/search", cfg.CorpusPath)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, "/var/lib/docseek/state.db", cfg.StoragePath)
	assert.Equal(t, 200, cfg.ExcerptLength)

	// Absent keys keep their defaults
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, "ctrl+k", cfg.ToggleKey)
	assert.Equal(t, "docseek.recent-queries", cfg.HistoryKey)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax error", `corpus_path = `},
		{"wrong type", `excerpt_length = "long"`},
		{"unknown key", `corpus = "./docs"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docseek.toml")
	require.NoError(t, os.WriteFile(path, []byte(`corpus_path = "./docs"`+"\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./docs", cfg.CorpusPath)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncode(t *testing.T) {
	cfg := NewConfig(WithCorpusPath("./docs"), WithCacheSize(0))

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.Contains(t, buf.String(), "corpus_path = './docs'")

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestConfigValidate_Integration(t *testing.T) {
	// A corpus path is the only setting without a usable default
	cfg := NewConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = NewConfig(WithCorpusPath("./docs"))
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateSettings(t *testing.T) {
	cfg := NewConfig(WithStorage(BackendMemory, ""))
	assert.NoError(t, cfg.ValidateSettings())

	cfg.ExcerptLength = -1
	assert.ErrorIs(t, cfg.ValidateSettings(), ErrInvalidConfig)
}

func TestConfigValidateSettings_ToggleKey(t *testing.T) {
	tests := []struct {
		toggle string
		valid  bool
	}{
		{"ctrl+k", true},
		{"ctrl+o", true},
		{"alt+s", true},
		{"CTRL+O", true},
		{"f2", true},
		{"q", false},
		{"1", false},
		{"é", false},
		{"ctrl+c", false},
		{"enter", false},
		{"esc", false},
		{"up", false},
		{"down", false},
		{"ctrl+n", false},
		{"ctrl+p", false},
		{"backspace", false},
	}

	for _, tt := range tests {
		t.Run(tt.toggle, func(t *testing.T) {
			cfg := NewConfig(WithStorage(BackendMemory, ""), WithToggleKey(tt.toggle))

			err := cfg.ValidateSettings()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), "reserved")
		})
	}
}
