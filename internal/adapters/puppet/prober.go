package puppet

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// versionScript prints the Puppet version without booting the whole application,
// which makes it far quicker than `puppet --version`.
const versionScript = "puts Puppet.version"

// Prober implements ports.ToolProber by asking the Ruby runtime for Puppet's version.
type Prober struct {
	executor ports.Executor
	binary   string
}

// NewProber creates a Prober running DefaultRubyBinary through executor.
func NewProber(executor ports.Executor) *Prober {
	return &Prober{executor: executor, binary: DefaultRubyBinary}
}

// ToolVersion returns the trimmed Puppet version.
func (p *Prober) ToolVersion(ctx context.Context) (string, error) {
	cmd := domain.Command{
		Name:  p.binary,
		Args:  []string{"-r", "puppet/version", "-e", versionScript},
		Quiet: true,
	}

	res, err := p.executor.Execute(ctx, cmd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrToolVersionFailed.Error())
	}

	version := strings.TrimSpace(string(res.Stdout))
	if version == "" {
		return "", zerr.With(domain.ErrToolVersionFailed, "reason", "empty version output")
	}
	if !utf8.ValidString(version) {
		return "", zerr.With(domain.ErrToolVersionFailed, "reason", "version output is not valid UTF-8")
	}
	return version, nil
}
