package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/movie-ui/models"
	"github.com/webtor-io/movie-ui/services/catalog"
)

func localFactory(calls *int32) ControllerFactory {
	return func() *catalog.Controller {
		atomic.AddInt32(calls, 1)
		cfg := catalog.DefaultConfig()
		cfg.Mode = catalog.ModeLocal
		return catalog.New(cfg, nil)
	}
}

// flakySource fails or panics on the first Movies calls and serves movies afterwards.
type flakySource struct {
	calls    int32
	failures int32
	panics   bool
	movies   []*models.Movie
}

func (m *flakySource) Movies(ctx context.Context) ([]*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if atomic.AddInt32(&m.calls, 1) <= m.failures {
		if m.panics {
			panic("broken record")
		}
		return nil, errors.New("service unavailable")
	}
	return m.movies, nil
}

func (m *flakySource) RandomRecommendations(_ context.Context) ([]*models.Movie, error) {
	return m.movies, nil
}

func (m *flakySource) Recommend(_ context.Context, _ int) (*models.RecommendationsResponse, error) {
	return &models.RecommendationsResponse{}, nil
}

func (m *flakySource) Search(_ context.Context, _ string) ([]*models.Movie, error) {
	return nil, nil
}

func remoteFactory(src catalog.Source) ControllerFactory {
	return func() *catalog.Controller {
		return catalog.New(catalog.DefaultConfig(), src)
	}
}

var served = []*models.Movie{{ID: 100, Title: "Served", Genre: models.GenreComedy}}

func TestRegistry_GetLoadsOnce(t *testing.T) {
	var calls int32
	r := NewRegistryWithTTL(localFactory(&calls), time.Minute, 0)

	var wg sync.WaitGroup
	entries := make([]*Entry, 10)
	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := r.Get(context.Background(), "abc")
			assert.NoError(t, err)
			entries[i] = e
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, e := range entries {
		assert.Same(t, entries[0], e)
	}
	assert.Len(t, entries[0].View.Cards(catalog.ElementRecommended), catalog.RecommendedSize)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	var calls int32
	r := NewRegistryWithTTL(localFactory(&calls), time.Minute, 0)
	ctx := context.Background()

	a, err := r.Get(ctx, "a")
	require.NoError(t, err)
	b, err := r.Get(ctx, "b")
	require.NoError(t, err)
	a.View.SetValue(catalog.ElementSearchInput, "dark")
	require.True(t, a.Dispatch(ctx, catalog.Event{Type: catalog.EventInput, Target: catalog.ElementSearchInput}))

	assert.True(t, a.View.Visible(catalog.ElementResultsSection))
	assert.False(t, b.View.Visible(catalog.ElementResultsSection))
	assert.NotSame(t, a.Controller, b.Controller)
}

func TestRegistry_IdleSessionExpires(t *testing.T) {
	var calls int32
	r := NewRegistryWithTTL(localFactory(&calls), 100*time.Millisecond, 0)
	_, err := r.Get(context.Background(), "a")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return r.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)

	_, err = r.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "expired session is loaded again")
}

func TestRegistry_RequestsProlongSession(t *testing.T) {
	var calls int32
	r := NewRegistryWithTTL(localFactory(&calls), 300*time.Millisecond, 0)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := r.Get(ctx, "a")
		require.NoError(t, err)
		time.Sleep(50 * time.Millisecond)
	}

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRegistry_PanickingLoadDoesNotBlockSession(t *testing.T) {
	src := &flakySource{failures: 1, panics: true, movies: served}
	r := NewRegistryWithTTL(remoteFactory(src), time.Minute, 0)
	ctx := context.Background()

	_, err := r.Get(ctx, "sid")
	require.Error(t, err)

	done := make(chan *Entry, 1)
	go func() {
		e, err := r.Get(ctx, "sid")
		assert.NoError(t, err)
		done <- e
	}()
	select {
	case e := <-done:
		require.NotNil(t, e)
		assert.Equal(t, served, e.Controller.Catalog())
	case <-time.After(2 * time.Second):
		t.Fatal("session stayed blocked after failed load")
	}
}

func TestRegistry_LoadIgnoresRequestCancel(t *testing.T) {
	src := &flakySource{movies: served}
	r := NewRegistryWithTTL(remoteFactory(src), time.Minute, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, err := r.Get(ctx, "sid")

	require.NoError(t, err)
	assert.Equal(t, served, e.Controller.Catalog())
	assert.False(t, e.Controller.Degraded())
}

func TestEntry_RefreshAfterFallback(t *testing.T) {
	src := &flakySource{failures: 1, movies: served}
	r := NewRegistryWithTTL(remoteFactory(src), time.Minute, time.Second)
	ctx := context.Background()

	e, err := r.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, e.Controller.Degraded())
	assert.Equal(t, models.FallbackMovies(), e.Controller.Catalog())

	assert.True(t, e.Refresh(ctx))
	assert.False(t, e.Controller.Degraded())
	assert.Equal(t, served, e.Controller.Catalog())
	assert.Len(t, e.View.Cards(catalog.ElementRecommended), 1)

	assert.False(t, e.Refresh(ctx), "healthy session is not reloaded")
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}
