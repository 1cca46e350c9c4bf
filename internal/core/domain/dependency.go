package domain

// Module is one declared dependency.
type Module struct {
	// Name is the module identifier understood by the installer (e.g., "puppetlabs-stdlib").
	Name string

	// Version is the required version, exactly as written in the dependency file.
	Version string
}

// DependencySpec is the parsed dependency file.
// It is immutable for the duration of one cache operation.
type DependencySpec struct {
	// Raw is the file content with leading and trailing whitespace stripped.
	// The fingerprint is computed over Raw, so any formatting change invalidates the cache.
	Raw string

	// Modules are the declared dependencies in file order.
	Modules []Module
}

// InstallRequest asks an installer to place one module into a cache entry.
type InstallRequest struct {
	// Module is the dependency to install.
	Module Module

	// TargetDir is the cache entry directory the module is installed into.
	TargetDir string

	// Env holds "KEY=VALUE" overrides applied on top of the process environment.
	Env []string
}
