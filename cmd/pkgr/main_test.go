package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgr/internal/app"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/pkgr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	tracer *mocks.MockTracer
}

func newTestApp(t *testing.T) (*app.App, testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		tracer: mocks.NewMockTracer(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()
	m.logger.EXPECT().SetVerbose(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	application := app.New(
		m.loader,
		mocks.NewMockManifestReader(ctrl),
		mocks.NewMockSolutionParser(ctrl),
		mocks.NewMockPackageFetcher(ctrl),
		mocks.NewMockInstallState(ctrl),
		mocks.NewMockPackageWriter(ctrl),
		mocks.NewMockPackageCache(ctrl),
		m.logger,
		m.tracer,
	).WithOutput(io.Discard)
	return application, m
}

func providerFor(application *app.App, logger ports.Logger) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	application, m := newTestApp(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, providerFor(application, m.logger))
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when nothing can be restored.
func TestRun_ExecutionError(t *testing.T) {
	t.Chdir(t.TempDir())
	application, m := newTestApp(t)

	var logged error
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	exitCode := run(context.Background(), []string{"restore"}, io.Discard, providerFor(application, m.logger))

	assert.Equal(t, 1, exitCode)
	require.Error(t, logged)
	assert.Contains(t, logged.Error(), domain.ErrNoRestoreTarget.Error())
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName), []byte("<packages />"), 0o600))
	t.Chdir(dir)

	application, m := newTestApp(t)
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	reached := make(chan struct{})
	blockCh := make(chan struct{})
	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_, _ string) (ports.Configuration, error) {
			close(reached)
			select {
			case <-time.After(5 * time.Second):
				return nil, errors.New("timeout in mock")
			case <-blockCh:
				return nil, context.Canceled
			}
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)
	go func() {
		errCh <- run(ctx, []string{"restore"}, io.Discard, providerFor(application, m.logger))
	}()

	<-reached
	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
