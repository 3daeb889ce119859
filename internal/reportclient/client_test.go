package reportclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"managerapi/internal/model"
)

func TestClient_Report(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/report", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Alice":3,"Bob":0}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/", time.Second)
		report, err := c.Report(context.Background())

		require.NoError(t, err)
		assert.Equal(t, model.Report{"Alice": 3, "Bob": 0}, report)
	})

	t.Run("null body becomes empty report", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		}))
		defer srv.Close()

		report, err := New(srv.URL, time.Second).Report(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, report)
		assert.Empty(t, report)
	})

	t.Run("non-2xx is an upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "db down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).Report(context.Background())

		assert.ErrorIs(t, err, ErrUpstream)
		assert.Contains(t, err.Error(), "returned 500")
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("transport failure is an upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(url, time.Second).Report(context.Background())

		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).Report(context.Background())

		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestClient_Snapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reports", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"report-20261017T120000Z.json","key":"reports/report-20261017T120000Z.json","size":12,"content_type":"application/json"}`))
	}))
	defer srv.Close()

	file, err := New(srv.URL, time.Second).Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "report-20261017T120000Z.json", file.Name)
	assert.Equal(t, int64(12), file.Size)
}
