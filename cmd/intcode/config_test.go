package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Default(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), DEFAULT_CONFIG), false)
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
	assert.Equal(int64(DEFAULT_TARGET), cfg.Search.Target)
	assert.Equal(int64(100), cfg.Search.Range)
}

func TestLoadConfig_Missing(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), true)
	assert.Error(err)
	assert.Nil(cfg)
}

func TestLoadConfig_File(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), DEFAULT_CONFIG)
	text := `verbose = true
limit = 5000

[search]
target = 4690667

[patch]
set = ["1=12", "2=2"]
`
	assert.NoError(os.WriteFile(path, []byte(text), 0o644))

	cfg, err := LoadConfig(path, true)
	assert.NoError(err)
	assert.True(cfg.Verbose)
	assert.Equal(5000, cfg.Limit)
	assert.Equal(int64(4690667), cfg.Search.Target)
	assert.Equal(int64(100), cfg.Search.Range)
	assert.Equal([]string{"1=12", "2=2"}, cfg.Patch.Set)
}

func TestLoadConfig_Invalid(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), DEFAULT_CONFIG)
	assert.NoError(os.WriteFile(path, []byte("limit = \"lots\"\n"), 0o644))

	cfg, err := LoadConfig(path, false)
	assert.Error(err)
	assert.Nil(cfg)
}
