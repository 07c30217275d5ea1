package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testClient(rt http.RoundTripper) *Client {
	c := NewClient(DefaultAttempts, time.Millisecond, time.Second)
	if rt != nil {
		c.HTTP.Transport = rt
	}
	return c
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ATOM"))
	}))
	defer srv.Close()

	body, err := testClient(nil).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ATOM", string(body))
}

func TestGetAcceptsAny2xx(t *testing.T) {
	for _, code := range []int{http.StatusCreated, http.StatusNonAuthoritativeInfo, http.StatusNoContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			if code != http.StatusNoContent {
				_, _ = w.Write([]byte("HEADER"))
			}
		}))

		body, err := testClient(nil).Get(context.Background(), srv.URL)
		srv.Close()

		require.NoError(t, err, "status %d", code)
		if code == http.StatusNoContent {
			assert.Empty(t, body)
		} else {
			assert.Equal(t, "HEADER", string(body))
		}
	}
}

func TestGetRedirectStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	_, err := testClient(nil).Get(context.Background(), srv.URL)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotModified, se.Code)
}

func TestGetStatusNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(nil).Get(context.Background(), srv.URL)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.False(t, IsTransient(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetTransportRetried(t *testing.T) {
	var calls int32
	refused := errors.New("connection refused")
	c := testClient(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, refused
	}))

	_, err := c.Get(context.Background(), "http://structures.invalid/1abc.pdb")
	require.Error(t, err)

	var te *TransientError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, DefaultAttempts, te.Attempts)
	assert.True(t, errors.Is(err, refused))
	assert.Equal(t, int32(DefaultAttempts), atomic.LoadInt32(&calls))
}

func TestGetRecoversAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("END"))
	}))
	defer srv.Close()

	var calls int32
	c := testClient(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			return nil, errors.New("reset by peer")
		}
		return http.DefaultTransport.RoundTrip(r)
	}))

	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "END", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetCancelledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := testClient(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		cancel()
		return nil, errors.New("timeout")
	}))
	c.Delay = time.Minute

	_, err := c.Get(ctx, "http://structures.invalid/1abc.pdb")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetMalformedURL(t *testing.T) {
	_, err := testClient(nil).Get(context.Background(), "://bad")
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}
