package loadtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// fakeAPI is an in-memory stand-in for the manager API.
type fakeAPI struct {
	mu       sync.Mutex
	managers map[string]map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{managers: make(map[string]map[string]any)}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.managers)
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/reports/report" && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]int{})
	case r.URL.Path == "/managers" && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}, "total": len(a.managers)})
	case r.URL.Path == "/managers" && r.Method == http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		id := uuid.NewString()
		body["id"] = id
		a.managers[id] = body
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	case strings.HasPrefix(r.URL.Path, "/managers/"):
		id := strings.TrimPrefix(r.URL.Path, "/managers/")
		m, ok := a.managers[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(m)
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&m)
			_ = json.NewEncoder(w).Encode(m)
		case http.MethodDelete:
			delete(a.managers, id)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Manager deleted"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
