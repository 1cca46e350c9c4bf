// Package config provides the settings loader for modcache.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the settings file at path on top of domain.DefaultSettings.
//
// Relative paths in the file are resolved against the directory holding the file.
func (l *Loader) Load(path string, required bool) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	var file SettingsFile
	found, err := readAndDecodeYAML(path, &file)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	if !found {
		if required {
			return domain.Settings{}, zerr.With(zerr.Wrap(fs.ErrNotExist, domain.ErrSettingsRead.Error()), "path", path)
		}
		return settings, nil
	}

	baseDir := filepath.Dir(path)
	if file.CacheRoot != "" {
		settings.CacheRoot = resolvePath(baseDir, file.CacheRoot)
	}
	if file.DepsFile != "" {
		settings.DepsFile = resolvePath(baseDir, file.DepsFile)
	}
	if file.LinkPath != "" {
		settings.LinkPath = resolvePath(baseDir, file.LinkPath)
	}

	if file.LockTimeout != "" {
		timeout, err := parseLockTimeout(file.LockTimeout)
		if err != nil {
			return domain.Settings{}, zerr.With(err, "path", path)
		}
		settings.LockTimeout = timeout
	}

	overrides, err := l.buildOverrides(file.EnvOverrides)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	settings.EnvOverrides = overrides

	return settings, nil
}

func (l *Loader) buildOverrides(dtos []EnvOverrideDTO) ([]domain.EnvOverride, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	overrides := make([]domain.EnvOverride, 0, len(dtos))
	for i, dto := range dtos {
		id := strings.ToLower(strings.TrimSpace(dto.ID))
		if id == "" {
			err := zerr.With(domain.ErrSettingsParse, "reason", "env override needs an id")
			return nil, zerr.With(err, "env_override", i)
		}

		for key := range dto.Env {
			if key == "" || strings.Contains(key, "=") {
				err := zerr.With(domain.ErrSettingsParse, "reason", "invalid environment variable name")
				return nil, zerr.With(zerr.With(err, "env_override", i), "key", key)
			}
		}

		if len(dto.Env) == 0 {
			l.Logger.Warn(fmt.Sprintf("env override for %s sets no variables and has no effect", id))
		}

		overrides = append(overrides, domain.EnvOverride{
			ID:        id,
			VersionID: strings.TrimSpace(dto.VersionID),
			Env:       dto.Env,
		})
	}

	return overrides, nil
}

func parseLockTimeout(value string) (time.Duration, error) {
	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrInvalidLockTimeout.Error()), "lock_timeout", value)
	}
	if timeout <= 0 {
		return 0, zerr.With(domain.ErrInvalidLockTimeout, "lock_timeout", value)
	}
	return timeout, nil
}

// readAndDecodeYAML decodes the file at path into target, rejecting unknown keys.
// It reports false without error when the file does not exist.
func readAndDecodeYAML[T any](path string, target *T) (bool, error) {
	// #nosec G304 -- path is user configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrSettingsRead.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.Wrap(err, domain.ErrSettingsParse.Error())
	}

	return true, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
