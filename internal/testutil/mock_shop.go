// Package testutil provides a configurable mock shop backend for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockShopAPI is a configurable mock shop backend. Responses are wired
// per path; requests are counted per path so tests can assert how many
// backend calls an operation issued.
type MockShopAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requestCounts map[string]int
	lastAuth      string
}

// NewMockShopAPI creates a started mock shop backend.
func NewMockShopAPI() *MockShopAPI {
	mock := &MockShopAPI{
		handlers:      make(map[string]http.HandlerFunc),
		requestCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCounts[r.URL.Path]++
		mock.lastAuth = r.Header.Get("Authorization")
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":[{"message":"not found"}]}`)
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockShopAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockShopAPI) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a path.
func (m *MockShopAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetJSONResponse configures a fixed JSON response for a path.
func (m *MockShopAPI) SetJSONResponse(path string, status int, body string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
}

// SetData configures a path to respond with the value wrapped in the
// backend's {"data": ...} envelope.
func (m *MockShopAPI) SetData(path string, value any) {
	data, err := json.Marshal(map[string]any{"data": value})
	if err != nil {
		panic(err)
	}
	m.SetJSONResponse(path, http.StatusOK, string(data))
}

// SetPagedCollection configures a paginated collection endpoint: the
// handler slices items according to the page and itemsPerPage query
// parameters and wraps each page as {"data":{field: [...]}}.
func (m *MockShopAPI) SetPagedCollection(path, field string, items []any) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(r.URL.Query().Get("itemsPerPage"))
		if perPage < 1 {
			perPage = len(items)
		}

		start := (page - 1) * perPage
		if start > len(items) {
			start = len(items)
		}
		end := start + perPage
		if end > len(items) {
			end = len(items)
		}

		pageItems := items[start:end]
		if pageItems == nil {
			pageItems = []any{}
		}

		body, err := json.Marshal(map[string]any{
			"data": map[string]any{field: pageItems},
		})
		if err != nil {
			panic(err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

// RequestCount returns how many requests hit the given path.
func (m *MockShopAPI) RequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCounts[path]
}

// TotalRequests returns the total request count across all paths.
func (m *MockShopAPI) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.requestCounts {
		total += n
	}
	return total
}

// LastAuthorization returns the Authorization header of the most
// recent request.
func (m *MockShopAPI) LastAuthorization() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastAuth
}
