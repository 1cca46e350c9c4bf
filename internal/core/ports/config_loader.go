package ports

import "go.trai.ch/modcache/internal/core/domain"

// SettingsLoader defines the interface for loading the tool settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings file at path on top of the defaults.
	// When required is false a missing file yields the defaults.
	Load(path string, required bool) (domain.Settings, error)
}

// DependencyLoader defines the interface for reading the declarative dependency file.
type DependencyLoader interface {
	// Load reads and parses the dependency file at path.
	Load(path string) (*domain.DependencySpec, error)
}
