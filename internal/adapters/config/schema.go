package config

// SettingsFile represents the structure of the modcache.yaml settings file.
type SettingsFile struct {
	CacheRoot    string           `yaml:"cache_root"`
	DepsFile     string           `yaml:"deps_file"`
	LinkPath     string           `yaml:"link_path"`
	LockTimeout  string           `yaml:"lock_timeout"`
	EnvOverrides []EnvOverrideDTO `yaml:"env_overrides"`
}

// EnvOverrideDTO represents one platform environment row in the settings file.
type EnvOverrideDTO struct {
	ID        string            `yaml:"id"`
	VersionID string            `yaml:"version_id"`
	Env       map[string]string `yaml:"env"`
}
