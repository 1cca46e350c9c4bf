// Package puppet drives the Puppet module tool as the cache installer.
package puppet

import (
	"context"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Installer  = (*Installer)(nil)
	_ ports.ToolProber = (*Prober)(nil)
)

const (
	// DefaultPuppetBinary is the module tool executable.
	DefaultPuppetBinary = "puppet"

	// DefaultRubyBinary is the interpreter used for the fast version probe.
	DefaultRubyBinary = "ruby"
)

// Installer implements ports.Installer with `puppet module install`.
type Installer struct {
	executor ports.Executor
	binary   string
}

// NewInstaller creates an Installer running DefaultPuppetBinary through executor.
func NewInstaller(executor ports.Executor) *Installer {
	return &Installer{executor: executor, binary: DefaultPuppetBinary}
}

// Install installs one module into req.TargetDir.
//
// --modulepath confines the tool to the entry directory, so installs never read or
// write the host's global module path.
func (i *Installer) Install(ctx context.Context, req domain.InstallRequest) error {
	cmd := domain.Command{
		Name: i.binary,
		Args: []string{
			"module",
			"--modulepath", req.TargetDir,
			"install", req.Module.Name,
			"--version", req.Module.Version,
		},
		Env: req.Env,
	}

	if _, err := i.executor.Execute(ctx, cmd); err != nil {
		return zerr.With(zerr.With(err, "module", req.Module.Name), "version", req.Module.Version)
	}
	return nil
}
