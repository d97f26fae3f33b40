package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(4.95, 8.32, 4.95, 8.32), 1e-9)
	// Calabar to Lagos is roughly 575 km
	assert.InDelta(t, 575, HaversineKm(4.9757, 8.3417, 6.5244, 3.3792), 5)
	// symmetric
	assert.InDelta(t, HaversineKm(1, 2, 3, 4), HaversineKm(3, 4, 1, 2), 1e-9)
}

func TestEstimated(t *testing.T) {
	// one degree of latitude is about 111.2 km
	e := Estimated(0, 0, 1, 0)
	assert.InDelta(t, 111.19, e.DistanceKm, 0.01)
	assert.Equal(t, 1335, e.WalkingMinutes)
	assert.Equal(t, 267, e.DrivingMinutes)

	zero := Estimated(4.95, 8.32, 4.95, 8.32)
	assert.Equal(t, 0, zero.WalkingMinutes)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(4.95, 8.32))
	assert.False(t, ValidCoordinates(91, 0))
	assert.False(t, ValidCoordinates(0, -181))
}

func TestBounds(t *testing.T) {
	minLat, maxLat, minLng, maxLng, ok := Bounds(4.95, 8.32, 10)
	require.True(t, ok)
	// every edge midpoint sits exactly one radius away
	assert.InDelta(t, 10, HaversineKm(4.95, 8.32, minLat, 8.32), 0.01)
	assert.InDelta(t, 10, HaversineKm(4.95, 8.32, maxLat, 8.32), 0.01)
	assert.Less(t, HaversineKm(4.95, 8.32, 4.95, maxLng), 10.01)
	assert.Less(t, minLng, 8.32)

	_, _, _, _, ok = Bounds(89.99, 0, 50)
	assert.False(t, ok)
	_, _, _, _, ok = Bounds(0, 179.99, 50)
	assert.False(t, ok)
}

func TestNominatim_SearchUsesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "CarnivalXperience/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "millennium park", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"display_name":"Millennium Park, Calabar","lat":"4.9757","lon":"8.3417","type":"park"},{"display_name":"broken","lat":"x","lon":"y"}]`))
	}))
	defer srv.Close()

	cache := &mapCache{data: map[string][]byte{}}
	n := NewNominatim(srv.URL, "CarnivalXperience/test", time.Second, cache, time.Hour)

	for i := 0; i < 2; i++ {
		places, err := n.Search(context.Background(), "millennium park", 5)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Millennium Park, Calabar", places[0].DisplayName)
		assert.InDelta(t, 4.9757, places[0].Latitude, 1e-9)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNominatim_ReverseNothingFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	place, err := NewNominatim(srv.URL, "ua", time.Second, nil, 0).Reverse(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Nil(t, place)
}

func TestNominatim_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewNominatim(srv.URL, "ua", time.Second, nil, 0).Search(context.Background(), "x", 5)
	assert.True(t, errors.Is(err, models.ErrUpstream))
}

func TestNominatim_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewNominatim(srv.URL, "ua", 50*time.Millisecond, nil, 0).Reverse(context.Background(), 4.9, 8.3)
	assert.True(t, errors.Is(err, models.ErrUpstream))
}
