package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.trai.ch/modcache/internal/adapters/telemetry"
	"go.trai.ch/modcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestProvider_DisabledIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	p := telemetry.NewProvider(mockLogger)
	defer func() { require.NoError(t, p.Shutdown(context.Background())) }()

	_, span := p.Tracer("test").Start(context.Background(), "sync")
	span.End()
}

func TestProvider_LogsEndedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var lines []string
	mockLogger.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).Times(2)

	p := telemetry.NewProvider(mockLogger)
	defer func() { require.NoError(t, p.Shutdown(context.Background())) }()
	p.SetEnabled(true)

	tracer := p.Tracer("test")
	ctx, parent := tracer.Start(context.Background(), "sync")
	_, child := tracer.Start(ctx, "install")
	child.SetAttributes(attribute.String("fingerprint", "abc"), attribute.Int("modules", 2))
	child.End()
	parent.End()

	require.Len(t, lines, 2)
	assert.Regexp(t, `^trace install ok \S+ fingerprint=abc modules=2$`, lines[0])
	assert.Regexp(t, `^trace sync ok \S+$`, lines[1])
}

func TestProvider_FailedSpanIsAWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var line string
	mockLogger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { line = msg })

	p := telemetry.NewProvider(mockLogger)
	defer func() { require.NoError(t, p.Shutdown(context.Background())) }()
	p.SetEnabled(true)

	_, span := p.Tracer("test").Start(context.Background(), "publish")
	span.SetStatus(codes.Error, "publish failed")
	span.End()

	assert.Regexp(t, `^trace publish error \(publish failed\) \S+$`, line)
}

func TestProvider_SetEnabledToggles(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	p := telemetry.NewProvider(mockLogger)
	defer func() { require.NoError(t, p.Shutdown(context.Background())) }()
	tracer := p.Tracer("test")

	p.SetEnabled(true)
	_, span := tracer.Start(context.Background(), "fingerprint")
	span.End()

	p.SetEnabled(false)
	_, span = tracer.Start(context.Background(), "fingerprint")
	span.End()
}
