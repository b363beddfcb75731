package shutdown

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/mini-cup-backend/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownStopsServicesThenRunsFinalTasks(t *testing.T) {
	graceful := lifecycle.NewManager("graceful")
	forceful := lifecycle.NewManager("forceful")
	c := NewCoordinator(graceful, forceful)

	h, err := graceful.NewServiceHandle("worker")
	require.NoError(t, err)
	stopped := make(chan struct{})
	go func() {
		defer h.Close()
		<-h.Done()
		close(stopped)
	}()

	var order []string
	c.OnFinal("first", func(context.Context) error {
		select {
		case <-stopped:
			order = append(order, "first")
		default:
			order = append(order, "too-early")
		}
		return errors.New("boom")
	})
	c.OnFinal("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	c.Shutdown(nil)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestShutdownClosesHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewCoordinator(lifecycle.NewManager("graceful"), lifecycle.NewManager("forceful"))

	c.Shutdown(srv.Config)

	_, err := http.Get(srv.URL)
	assert.Error(t, err)
}
