// Package app implements the application layer for modcache.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// TracerName is the instrumentation name of the spans emitted by App.
const TracerName = "modcache"

// App represents the main application logic.
type App struct {
	settingsLoader ports.SettingsLoader
	depsLoader     ports.DependencyLoader
	prober         ports.ToolProber
	installer      ports.Installer
	store          ports.EntryStore
	publisher      ports.Publisher
	locker         ports.Locker
	detector       ports.PlatformDetector
	hasher         ports.TreeHasher
	logger         ports.Logger
	tracer         trace.Tracer

	// installs collapses concurrent installs of one entry within this process.
	installs singleflight.Group
}

// New creates a new App instance.
func New(
	settingsLoader ports.SettingsLoader,
	depsLoader ports.DependencyLoader,
	prober ports.ToolProber,
	installer ports.Installer,
	store ports.EntryStore,
	publisher ports.Publisher,
	locker ports.Locker,
	detector ports.PlatformDetector,
	hasher ports.TreeHasher,
	log ports.Logger,
) *App {
	return &App{
		settingsLoader: settingsLoader,
		depsLoader:     depsLoader,
		prober:         prober,
		installer:      installer,
		store:          store,
		publisher:      publisher,
		locker:         locker,
		detector:       detector,
		hasher:         hasher,
		logger:         log,
		tracer:         otel.Tracer(TracerName),
	}
}

// WithTracer replaces the tracer taken from the global OpenTelemetry provider.
// This is primarily used for testing to record spans.
func (a *App) WithTracer(tracer trace.Tracer) *App {
	a.tracer = tracer
	return a
}

// Options locate the inputs of one operation. Empty fields fall back to the settings file.
type Options struct {
	// ConfigPath names the settings file. Empty means an optional modcache.yaml in the
	// working directory.
	ConfigPath string

	CacheRoot string
	DepsFile  string
	LinkPath  string
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	Checksum bool
}

// ListOptions configuration for the List method.
type ListOptions struct {
	// Checksum hashes complete entries. Partial entries keep an empty checksum.
	Checksum bool
}

// inputs are the resolved inputs of one cache operation.
type inputs struct {
	settings    domain.Settings
	deps        *domain.DependencySpec
	toolVersion string
	fingerprint domain.Fingerprint
}

// Sync makes the published link point at a complete entry for the current inputs,
// installing the entry first when no complete one exists.
func (a *App) Sync(ctx context.Context, opts Options) (*domain.SyncResult, error) {
	ctx, span := a.tracer.Start(ctx, "sync")
	defer span.End()

	res, err := a.sync(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sync failed")
		return nil, errors.Join(domain.ErrSyncFailed, err)
	}

	span.SetAttributes(
		attribute.String("fingerprint", res.Fingerprint.String()),
		attribute.Bool("installed", res.Installed),
	)
	return res, nil
}

func (a *App) sync(ctx context.Context, opts Options) (*domain.SyncResult, error) {
	in, err := a.resolveInputs(ctx, opts)
	if err != nil {
		return nil, err
	}

	entry := a.store.EntryPath(in.settings.CacheRoot, in.fingerprint)
	installed := false

	if a.store.IsComplete(entry) {
		a.logger.Info(fmt.Sprintf("reusing cache entry %s", in.fingerprint.Short()))
	} else {
		installed, err = a.ensureEntry(ctx, in, entry)
		if err != nil {
			return nil, err
		}
	}

	link := in.settings.ResolvedLinkPath()
	if err := a.publish(ctx, entry, link); err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("published %s -> %s", link, entry))

	return &domain.SyncResult{
		Fingerprint: in.fingerprint,
		EntryPath:   entry,
		LinkPath:    link,
		Installed:   installed,
	}, nil
}

// ensureEntry installs the entry once per process, however many callers ask for it.
func (a *App) ensureEntry(ctx context.Context, in *inputs, entry string) (bool, error) {
	v, err, _ := a.installs.Do(entry, func() (any, error) {
		return a.install(ctx, in, entry)
	})
	if err != nil {
		return false, err
	}
	installed, _ := v.(bool)
	return installed, nil
}

// install populates entry under the per-fingerprint lock.
// It reports false when another process completed the entry while this one waited.
func (a *App) install(ctx context.Context, in *inputs, entry string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "install", trace.WithAttributes(
		attribute.String("fingerprint", in.fingerprint.String()),
		attribute.Int("modules", len(in.deps.Modules)),
	))
	defer span.End()

	installed, err := a.installLocked(ctx, in, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "install failed")
	}
	return installed, err
}

func (a *App) installLocked(ctx context.Context, in *inputs, entry string) (bool, error) {
	lockPath := a.store.LockPath(in.settings.CacheRoot, in.fingerprint)

	lockCtx, cancel := context.WithTimeout(ctx, in.settings.LockTimeout)
	unlock, err := a.locker.Lock(lockCtx, lockPath)
	cancel()
	if err != nil {
		return false, zerr.With(err, "timeout", in.settings.LockTimeout.String())
	}
	defer func() {
		if err := unlock(); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to release lock %s: %v", lockPath, err))
		}
	}()

	// Another process may have finished the entry while we waited.
	if a.store.IsComplete(entry) {
		a.logger.Info(fmt.Sprintf("cache entry %s was completed by another process", in.fingerprint.Short()))
		return false, nil
	}

	platform, err := a.detector.Detect()
	if err != nil {
		return false, err
	}
	env := domain.EnvForPlatform(platform, in.settings.OverrideTable())

	if err := a.store.Prepare(entry); err != nil {
		return false, err
	}

	a.logger.Info(fmt.Sprintf("installing %d modules into %s (platform %s)", len(in.deps.Modules), entry, platform))

	for _, module := range in.deps.Modules {
		a.logger.Info(fmt.Sprintf("installing %s %s", module.Name, module.Version))

		req := domain.InstallRequest{Module: module, TargetDir: entry, Env: env}
		if err := a.installer.Install(ctx, req); err != nil {
			err = zerr.Wrap(err, domain.ErrModuleInstallFailed.Error())
			err = zerr.With(err, "module", module.Name)
			return false, zerr.With(err, "version", module.Version)
		}
	}

	// The marker is the last write; everything before it is recoverable by a rerun.
	if err := a.store.MarkComplete(entry); err != nil {
		return false, err
	}

	return true, nil
}

func (a *App) publish(ctx context.Context, entry, link string) error {
	_, span := a.tracer.Start(ctx, "publish", trace.WithAttributes(
		attribute.String("entry", entry),
		attribute.String("link", link),
	))
	defer span.End()

	if err := a.publisher.Publish(entry, link); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		return err
	}
	return nil
}

// Fingerprint returns the fingerprint of the current inputs without touching the cache.
func (a *App) Fingerprint(ctx context.Context, opts Options) (domain.Fingerprint, error) {
	ctx, span := a.tracer.Start(ctx, "fingerprint")
	defer span.End()

	in, err := a.resolveInputs(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fingerprint failed")
		return "", err
	}
	return in.fingerprint, nil
}

// Status compares the published link against the entry the current inputs select.
func (a *App) Status(ctx context.Context, opts Options, statusOpts StatusOptions) (*domain.Status, error) {
	ctx, span := a.tracer.Start(ctx, "status")
	defer span.End()

	in, err := a.resolveInputs(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "status failed")
		return nil, err
	}

	platform, err := a.detector.Detect()
	if err != nil {
		// The platform is informational here.
		a.logger.Warn(fmt.Sprintf("could not detect platform: %v", err))
	}

	entry := a.store.EntryPath(in.settings.CacheRoot, in.fingerprint)
	link := in.settings.ResolvedLinkPath()

	target, err := a.publisher.Resolve(link)
	if err != nil {
		return nil, err
	}

	status := &domain.Status{
		Fingerprint:     in.fingerprint,
		ToolVersion:     in.toolVersion,
		Platform:        platform,
		ExpectedEntry:   entry,
		LinkPath:        link,
		PublishedTarget: target,
		Complete:        a.store.IsComplete(entry),
	}
	status.UpToDate = status.Complete && target != "" && samePath(target, entry)

	if statusOpts.Checksum && status.Complete {
		sum, err := a.hasher.ComputeTreeHash(entry)
		if err != nil {
			return nil, err
		}
		status.Checksum = sum
	}

	return status, nil
}

// List returns the cache entries under the configured root.
// With a checksum requested, entries are hashed concurrently.
func (a *App) List(ctx context.Context, opts Options, listOpts ListOptions) ([]domain.EntryInfo, error) {
	ctx, span := a.tracer.Start(ctx, "list")
	defer span.End()

	settings, err := a.resolveSettings(opts)
	if err != nil {
		return nil, err
	}

	entries, err := a.store.Entries(settings.CacheRoot)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))

	target, err := a.publisher.Resolve(settings.ResolvedLinkPath())
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Published = target != "" && samePath(target, entries[i].Path)
	}

	if !listOpts.Checksum {
		return entries, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range entries {
		// Partial entries may still be written by a running install.
		if !entries[i].Complete {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := a.hasher.ComputeTreeHash(entries[i].Path)
			if err != nil {
				return err
			}
			entries[i].Checksum = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

// resolveSettings loads the settings file and applies the explicit overrides.
func (a *App) resolveSettings(opts Options) (domain.Settings, error) {
	path, required := opts.ConfigPath, true
	if path == "" {
		path, required = domain.SettingsFileName, false
	}

	settings, err := a.settingsLoader.Load(path, required)
	if err != nil {
		return domain.Settings{}, err
	}

	if opts.CacheRoot != "" {
		settings.CacheRoot = opts.CacheRoot
	}
	if opts.DepsFile != "" {
		settings.DepsFile = opts.DepsFile
	}
	if opts.LinkPath != "" {
		settings.LinkPath = opts.LinkPath
	}
	return settings, nil
}

// resolveInputs reads the dependency file and queries the tool version fresh.
func (a *App) resolveInputs(ctx context.Context, opts Options) (*inputs, error) {
	settings, err := a.resolveSettings(opts)
	if err != nil {
		return nil, err
	}

	deps, err := a.depsLoader.Load(settings.DepsFile)
	if err != nil {
		return nil, err
	}

	version, err := a.prober.ToolVersion(ctx)
	if err != nil {
		return nil, err
	}

	return &inputs{
		settings:    settings,
		deps:        deps,
		toolVersion: version,
		fingerprint: domain.GenerateFingerprint(deps.Raw, version),
	}, nil
}

// samePath compares two paths after making them absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
