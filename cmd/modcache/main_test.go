package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/modcache/internal/adapters/telemetry"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"modcache": func() {
			os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, graphProvider))
		},
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

type appMocks struct {
	settings *mocks.MockSettingsLoader
	deps     *mocks.MockDependencyLoader
	prober   *mocks.MockToolProber
	logger   *mocks.MockLogger
}

func newTestComponents(t *testing.T) (*app.Components, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &appMocks{
		settings: mocks.NewMockSettingsLoader(ctrl),
		deps:     mocks.NewMockDependencyLoader(ctrl),
		prober:   mocks.NewMockToolProber(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	application := app.New(
		m.settings,
		m.deps,
		m.prober,
		mocks.NewMockInstaller(ctrl),
		mocks.NewMockEntryStore(ctrl),
		mocks.NewMockPublisher(ctrl),
		mocks.NewMockLocker(ctrl),
		mocks.NewMockPlatformDetector(ctrl),
		mocks.NewMockTreeHasher(ctrl),
		m.logger,
	)

	tracing := telemetry.NewProvider(m.logger)
	application.WithTracer(tracing.Tracer(app.TracerName))

	return &app.Components{App: application, Logger: m.logger, Tracing: tracing}, m
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	components, _ := newTestComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "modcache version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	components, m := newTestComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	loadErr := errors.New("load failed")
	m.settings.EXPECT().Load("site.yaml", true).Return(domain.Settings{}, loadErr)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, loadErr)
	})

	exitCode := run(context.Background(), []string{"fingerprint", "-c", "site.yaml"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_CleanupIsCalled verifies that the provider's cleanup runs after execution.
func TestRun_CleanupIsCalled(t *testing.T) {
	components, _ := newTestComponents(t)
	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned)
}

// TestRun_TraceLogsSpans verifies that --trace reports the spans of the command.
func TestRun_TraceLogsSpans(t *testing.T) {
	components, m := newTestComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	m.settings.EXPECT().Load(domain.SettingsFileName, false).Return(domain.DefaultSettings(), nil)
	m.deps.EXPECT().Load(gomock.Any()).Return(&domain.DependencySpec{Raw: "alpha: 1.0"}, nil)
	m.prober.EXPECT().ToolVersion(gomock.Any()).Return("7.1.0", nil)

	var lines []string
	m.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).AnyTimes()

	exitCode := run(context.Background(), []string{"fingerprint", "--trace"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Condition(t, func() bool {
		for _, line := range lines {
			if strings.HasPrefix(line, "trace fingerprint ok ") {
				return true
			}
		}
		return false
	}, "span lines: %v", lines)
}

// TestRun_NoTraceByDefault verifies that spans stay silent without --trace.
func TestRun_NoTraceByDefault(t *testing.T) {
	components, m := newTestComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	m.settings.EXPECT().Load(domain.SettingsFileName, false).Return(domain.DefaultSettings(), nil)
	m.deps.EXPECT().Load(gomock.Any()).Return(&domain.DependencySpec{Raw: "alpha: 1.0"}, nil)
	m.prober.EXPECT().ToolVersion(gomock.Any()).Return("7.1.0", nil)

	exitCode := run(context.Background(), []string{"fingerprint"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
}
