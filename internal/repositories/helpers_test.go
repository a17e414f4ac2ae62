package repository_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/stretchr/testify/require"
)

var testTables = config.Tables{
	Users:              11,
	Products:           12,
	Addresses:          13,
	Vouchers:           14,
	Orders:             15,
	OrderItems:         16,
	OrderStatusHistory: 17,
}

type recordedRequest struct {
	Method string
	Path   string
	Filter *tablestore.Filter
	Body   map[string]any
}

// fakeStore answers with canned bodies keyed by "METHOD path" and records
// every request it receives.
type fakeStore struct {
	mu        sync.Mutex
	responses map[string]string
	status    int
	requests  []recordedRequest
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path}

	if raw := r.URL.Query().Get("filters"); raw != "" {
		var filter tablestore.Filter
		if err := json.Unmarshal([]byte(raw), &filter); err == nil {
			rec.Filter = &filter
		}
	}

	if body, _ := io.ReadAll(r.Body); len(body) > 0 {
		_ = json.Unmarshal(body, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"error":"ERROR_REQUEST_BODY_VALIDATION"}`)
		return
	}

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"ERROR_ROW_DOES_NOT_EXIST"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func (f *fakeStore) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func setupRepos(t *testing.T, responses map[string]string) (*repository.Repositories, *fakeStore) {
	t.Helper()

	store := &fakeStore{responses: responses}
	server := httptest.NewServer(store)
	t.Cleanup(server.Close)

	repos, err := repository.New(&config.TableStore{
		BaseURL:  server.URL,
		Token:    "test-token",
		PageSize: 100,
		Tables:   testTables,
	}, utils.NewValidator(), tablestore.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return repos, store
}
