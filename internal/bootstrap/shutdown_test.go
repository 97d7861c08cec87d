package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderRecorder struct{ calls []string }

type fakeStopper struct {
	rec  *orderRecorder
	name string
	err  error
}

func (f fakeStopper) Stop(context.Context) error {
	f.rec.calls = append(f.rec.calls, f.name)
	return f.err
}

type fakeFlusher struct {
	rec *orderRecorder
	err error
}

func (f fakeFlusher) Shutdown(context.Context) error {
	f.rec.calls = append(f.rec.calls, "publisher")
	return f.err
}

type fakeStreams struct{ rec *orderRecorder }

func (f fakeStreams) Stop() { f.rec.calls = append(f.rec.calls, "streams") }

type fakePool struct{ rec *orderRecorder }

func (f fakePool) Ping(context.Context) error { return nil }
func (f fakePool) Close()                     { f.rec.calls = append(f.rec.calls, "pool") }

func TestGracefulShutdown_Order(t *testing.T) {
	rec := &orderRecorder{}
	GracefulShutdown(context.Background(), ShutdownComponents{
		Streams: fakeStreams{rec: rec},
		Server:  fakeStopper{rec: rec, name: "server"},
		Workers: []Stopper{
			fakeStopper{rec: rec, name: "scheduler"},
			fakeStopper{rec: rec, name: "pool-workers"},
		},
		Publisher: fakeFlusher{rec: rec},
		DBPool:    fakePool{rec: rec},
	})
	assert.Equal(t, []string{"streams", "server", "scheduler", "pool-workers", "publisher", "pool"}, rec.calls)
}

func TestGracefulShutdown_ContinuesAfterErrors(t *testing.T) {
	rec := &orderRecorder{}
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:    fakeStopper{rec: rec, name: "server", err: errors.New("stuck")},
		Workers:   []Stopper{fakeStopper{rec: rec, name: "scheduler", err: context.DeadlineExceeded}},
		Publisher: fakeFlusher{rec: rec, err: context.DeadlineExceeded},
		DBPool:    fakePool{rec: rec},
	})
	assert.Equal(t, []string{"server", "scheduler", "publisher", "pool"}, rec.calls)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
