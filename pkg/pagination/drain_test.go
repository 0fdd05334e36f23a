package pagination

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-tools/shopmcp/internal/testutil"
	"github.com/storefront-tools/shopmcp/pkg/client"
)

type item struct {
	ID int `json:"id"`
}

func newTestClient(t *testing.T, mock *testutil.MockShopAPI) *client.Client {
	t.Helper()

	c, err := client.New(client.Config{
		BaseURL: mock.URL(),
		Email:   "test@example.com",
		APIKey:  "secret",
	})
	require.NoError(t, err)
	return c
}

func makeItems(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = item{ID: i + 1}
	}
	return items
}

func TestDrainAll_ConcatenatesAllPages(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()

	// Pages of 250, 250, 100: the short third page is the last one and
	// no fourth request may be issued.
	mock.SetPagedCollection("/api/products", "products", makeItems(600))

	items, err := DrainAll[item](context.Background(), newTestClient(t, mock), "products", "/api/products", "products", 250)
	require.NoError(t, err)

	assert.Len(t, items, 600)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 600, items[599].ID)
	assert.Equal(t, 3, mock.RequestCount("/api/products"))
}

func TestDrainAll_EmptyFirstPage(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()

	mock.SetPagedCollection("/api/products", "products", nil)

	items, err := DrainAll[item](context.Background(), newTestClient(t, mock), "products", "/api/products", "products", 250)
	require.NoError(t, err)

	assert.Empty(t, items)
	assert.Equal(t, 1, mock.RequestCount("/api/products"))
}

func TestDrainAll_ExactPageBoundary(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()

	// 500 items at page size 250: the third request returns an empty
	// page, which terminates the drain.
	mock.SetPagedCollection("/api/products", "products", makeItems(500))

	items, err := DrainAll[item](context.Background(), newTestClient(t, mock), "products", "/api/products", "products", 250)
	require.NoError(t, err)

	assert.Len(t, items, 500)
	assert.Equal(t, 3, mock.RequestCount("/api/products"))
}

func TestDrainAll_FailureDiscardsPartialResults(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()

	// First page succeeds, second page blows up mid-drain.
	mock.SetHandler("/api/features", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data":{"features":[{"id":1},{"id":2}]}}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	items, err := DrainAll[item](context.Background(), newTestClient(t, mock), "features", "/api/features", "features", 2)
	require.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "features")
}
