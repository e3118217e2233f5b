package geocoding

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingServer serves body with status and records the number of hits
// and the last request.
func countingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int64, *atomic.Pointer[http.Request]) {
	t.Helper()
	var hits atomic.Int64
	var last atomic.Pointer[http.Request]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		last.Store(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, &last
}

const nominatimNapoli = `[
  {"display_name":"Napoli, Campania, Italia","lat":"40.8358846","lon":"14.2487679","address":{"country":"Italia"}},
  {"display_name":"Napoli, Frazione, Italia","lat":"not-a-number","lon":"14.0","address":{"country":"Italia"}},
  {"display_name":"Naples, Florida, United States","lat":"26.1420358","lon":"-81.7948103","address":{"country":"United States"}}
]`

func TestNominatimGeocode(t *testing.T) {
	srv, hits, last := countingServer(t, http.StatusOK, nominatimNapoli)
	g := NewNominatim(Config{BaseURL: srv.URL, Limit: 7})

	got, err := g.Geocode(context.Background(), "  Napoli  ", "it")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	// Invalid record skipped, ranking preserved.
	require.Len(t, got, 2)
	assert.Equal(t, "Napoli, Campania, Italia", got[0].DisplayName)
	assert.Equal(t, "Italia", got[0].CountryName)
	assert.InDelta(t, 40.8358846, got[0].Point.Lat, 1e-9)
	assert.InDelta(t, 14.2487679, got[0].Point.Lon, 1e-9)
	assert.Equal(t, "United States", got[1].CountryName)

	req := last.Load()
	require.NotNil(t, req)
	assert.Equal(t, "/search", req.URL.Path)
	q := req.URL.Query()
	assert.Equal(t, "Napoli", q.Get("q"))
	assert.Equal(t, "7", q.Get("limit"))
	assert.Equal(t, "it", q.Get("accept-language"))
	assert.Equal(t, "jsonv2", q.Get("format"))
	assert.Equal(t, nominatimUserAgent, req.Header.Get("User-Agent"))
}

func TestNominatimEmptyQuerySkipsNetwork(t *testing.T) {
	srv, hits, _ := countingServer(t, http.StatusOK, `[]`)
	g := NewNominatim(Config{BaseURL: srv.URL})

	for _, q := range []string{"", "   ", "\t\n"} {
		got, err := g.Geocode(context.Background(), q, "en")
		assert.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.EqualValues(t, 0, hits.Load())
}

func TestNominatimFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv, hits, _ := countingServer(t, http.StatusInternalServerError, `oops`)
		g := NewNominatim(Config{BaseURL: srv.URL})

		got, err := g.Geocode(context.Background(), "Paris", "en")
		assert.Empty(t, got)
		assert.ErrorIs(t, err, ErrProvider)
		assert.Equal(t, KindProvider, KindOf(err))
		// No automatic retry.
		assert.EqualValues(t, 1, hits.Load())

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, http.StatusInternalServerError, ge.Status)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv, _, _ := countingServer(t, http.StatusOK, `{"not":"a list"`)
		g := NewNominatim(Config{BaseURL: srv.URL})

		got, err := g.Geocode(context.Background(), "Paris", "en")
		assert.Empty(t, got)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		g := NewNominatim(Config{BaseURL: addr, Timeout: time.Second})
		got, err := g.Geocode(context.Background(), "Paris", "en")
		assert.Empty(t, got)
		assert.ErrorIs(t, err, ErrNetwork)
	})
}

func TestNominatimOptInRetry(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(nominatimNapoli))
	}))
	defer srv.Close()

	g := NewNominatim(Config{BaseURL: srv.URL, MaxAttempts: 3})
	g.transport.backoff = time.Millisecond

	got, err := g.Geocode(context.Background(), "Napoli", "it")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.EqualValues(t, 3, hits.Load())
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &httpStatusError{Code: http.StatusTooManyRequests}, true},
		{"bad gateway", &httpStatusError{Code: http.StatusBadGateway}, true},
		{"not found", &httpStatusError{Code: http.StatusNotFound}, false},
		{"not implemented", &httpStatusError{Code: http.StatusNotImplemented}, false},
		{"network", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryable(tt.err))
		})
	}
}
