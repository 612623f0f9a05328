package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeCheck_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewProbe(srv.URL).Check(context.Background())
	assert.NoError(t, err)
}

func TestProbeCheck_ClientErrorStillReachable(t *testing.T) {
	// intermediaries answer 4xx to non-browser clients; that still means
	// the portal is up
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewProbe(srv.URL).Check(context.Background())
	assert.NoError(t, err)
}

func TestProbeCheck_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewProbe(srv.URL).Check(context.Background())
	assert.Error(t, err)
}

func TestProbeCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewProbe(url).Check(context.Background())
	assert.Error(t, err)
}
