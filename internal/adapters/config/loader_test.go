package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/internal/adapters/config"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), domain.PrivateFilePerm)
	require.NoError(t, err)
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoader_Load_Full(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.SettingsFileName, `
cache_root: /var/cache/modcache
deps_file: puppet/deps.yaml
link_path: /etc/puppetlabs/code/modules
lock_timeout: 5m
env_overrides:
  - id: Debian
    version_id: "11"
    env:
      RUBYOPT: "-W0"
  - id: alpine
    env:
      LANG: C.UTF-8
`)

	settings, err := newLoader(t).Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "/var/cache/modcache", settings.CacheRoot)
	assert.Equal(t, filepath.Join(dir, "puppet", "deps.yaml"), settings.DepsFile)
	assert.Equal(t, "/etc/puppetlabs/code/modules", settings.LinkPath)
	assert.Equal(t, 5*time.Minute, settings.LockTimeout)
	assert.Equal(t, []domain.EnvOverride{
		{ID: "debian", VersionID: "11", Env: map[string]string{"RUBYOPT": "-W0"}},
		{ID: "alpine", Env: map[string]string{"LANG": "C.UTF-8"}},
	}, settings.EnvOverrides)

	// Configured rows come after the built-in ones.
	table := settings.OverrideTable()
	assert.Equal(t, domain.DefaultEnvOverrides[0], table[0])
	assert.Len(t, table, len(domain.DefaultEnvOverrides)+2)
}

func TestLoader_Load_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.SettingsFileName, "cache_root: cache\n")

	settings, err := newLoader(t).Load(path, false)
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.CacheRoot = filepath.Join(dir, "cache")
	assert.Equal(t, want, settings)
	assert.Equal(t, filepath.Join(dir, "cache", domain.CurrentLinkName), settings.ResolvedLinkPath())
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	path := createFile(t, t.TempDir(), domain.SettingsFileName, "")

	settings, err := newLoader(t).Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.SettingsFileName)

	t.Run("optional yields defaults", func(t *testing.T) {
		settings, err := newLoader(t).Load(path, false)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSettings(), settings)
	})

	t.Run("required is an error", func(t *testing.T) {
		_, err := newLoader(t).Load(path, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrSettingsRead.Error())
	})
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "invalid yaml", content: "cache_root: [\n", wantErr: domain.ErrSettingsParse},
		{name: "unknown key", content: "cache_dir: /tmp\n", wantErr: domain.ErrSettingsParse},
		{name: "bad duration", content: "lock_timeout: soon\n", wantErr: domain.ErrInvalidLockTimeout},
		{name: "zero duration", content: "lock_timeout: 0s\n", wantErr: domain.ErrInvalidLockTimeout},
		{name: "negative duration", content: "lock_timeout: -1m\n", wantErr: domain.ErrInvalidLockTimeout},
		{
			name:    "override without id",
			content: "env_overrides:\n  - version_id: \"1\"\n    env: {A: b}\n",
			wantErr: domain.ErrSettingsParse,
		},
		{
			name:    "override with invalid variable",
			content: "env_overrides:\n  - id: ubuntu\n    env: {\"A=B\": c}\n",
			wantErr: domain.ErrSettingsParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createFile(t, t.TempDir(), domain.SettingsFileName, tt.content)

			_, err := newLoader(t).Load(path, true)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_Load_WarnsOnEmptyOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("env override for ubuntu sets no variables and has no effect").Times(1)

	path := createFile(t, t.TempDir(), domain.SettingsFileName, "env_overrides:\n  - id: ubuntu\n")

	settings, err := config.NewLoader(mockLogger).Load(path, true)
	require.NoError(t, err)
	require.Len(t, settings.EnvOverrides, 1)
}
