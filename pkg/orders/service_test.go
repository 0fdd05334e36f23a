package orders

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-tools/shopmcp/internal/testutil"
	"github.com/storefront-tools/shopmcp/pkg/client"
)

func newTestService(t *testing.T, mock *testutil.MockShopAPI) *Service {
	t.Helper()

	api, err := client.New(client.Config{
		BaseURL: mock.URL(),
		Email:   "test@example.com",
		APIKey:  "secret",
	})
	require.NoError(t, err)

	return NewService(api, Config{
		AdminBaseURL:   "https://admin.example.com",
		LinkTemplate:   "https://shop.example.com/product/{id}",
		ContactFieldID: "5",
	})
}

func testOrder() map[string]any {
	return map[string]any{
		"order_id":      1234,
		"total_price":   "719.00",
		"currency":      "CZK",
		"email":         "jane@example.com",
		"firstname":     "Jane",
		"lastname":      "Doe",
		"company":       "Acme",
		"customer_note": "Leave at the door",
		"payment":       map[string]any{"method": "Card", "phone": "+420111222333"},
		"custom_fields": []map[string]any{{"field_id": "5", "value": "@jane"}},
		"products": []map[string]any{
			{
				"product":      "Desk Lamp",
				"product_code": "px-1234",
				"quantity":     1,
				"base_price":   "599.00",
				"total_price":  "599.00",
				"currency":     "CZK",
			},
			{
				"product":      "Bulb",
				"product_code": "px-77",
				"quantity":     3,
				"base_price":   "40.00",
				"total_price":  "120.00",
				"currency":     "CZK",
			},
		},
	}
}

func TestFormat_RendersOrderMessage(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()
	mock.SetData("/api/orders/1234", testOrder())

	msg := newTestService(t, mock).Format(context.Background(), 1234)

	assert.Contains(t, msg, "Order #1234")
	assert.Contains(t, msg, "Customer: Jane Doe")
	assert.Contains(t, msg, "Company: Acme")
	assert.Contains(t, msg, "Email: jane@example.com")
	assert.Contains(t, msg, "Phone: +420111222333")
	assert.Contains(t, msg, "Contact channel: @jane")
	assert.Contains(t, msg, "Note: Leave at the door")
	assert.Contains(t, msg, "Payment: Card")
	assert.Contains(t, msg, "Total: 719.00 CZK")
	assert.Contains(t, msg, "Detail: https://admin.example.com/orders/1234")
}

func TestFormat_QuantityMultiplierOnlyAboveOne(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()
	mock.SetData("/api/orders/1234", testOrder())

	msg := newTestService(t, mock).Format(context.Background(), 1234)
	lines := strings.Split(msg, "\n")

	var lampLine, bulbLine string
	for _, l := range lines {
		if strings.Contains(l, "Desk Lamp") {
			lampLine = l
		}
		if strings.Contains(l, "Bulb") {
			bulbLine = l
		}
	}

	require.NotEmpty(t, lampLine)
	require.NotEmpty(t, bulbLine)

	assert.NotContains(t, lampLine, " x ")
	assert.Contains(t, lampLine, "599.00 CZK")

	assert.Contains(t, bulbLine, "120.00 CZK")
	assert.Contains(t, bulbLine, "(40.00 x 3)")
}

func TestFormat_ProductLinkSubstitution(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()
	mock.SetData("/api/orders/1234", testOrder())

	msg := newTestService(t, mock).Format(context.Background(), 1234)

	// "px-1234" strips to external id "1234" inside the link template.
	assert.Contains(t, msg, "[Desk Lamp](https://shop.example.com/product/1234)")
	assert.Contains(t, msg, "[Bulb](https://shop.example.com/product/77)")
}

func TestFormat_ItemsKeepOriginalOrder(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()
	mock.SetData("/api/orders/1234", testOrder())

	msg := newTestService(t, mock).Format(context.Background(), 1234)

	assert.Less(t, strings.Index(msg, "Desk Lamp"), strings.Index(msg, "Bulb"))
}

func TestFormat_FallbackOnFetchFailure(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()
	mock.SetJSONResponse("/api/orders/9", http.StatusNotFound, `{}`)

	msg := newTestService(t, mock).Format(context.Background(), 9)
	assert.Equal(t, FallbackMessage, msg)
}

func TestFormat_MissingOptionalFieldsRenderEmpty(t *testing.T) {
	mock := testutil.NewMockShopAPI()
	defer mock.Close()
	mock.SetData("/api/orders/8", map[string]any{
		"order_id":    8,
		"total_price": "10.00",
		"currency":    "EUR",
		"phone":       "123",
	})

	msg := newTestService(t, mock).Format(context.Background(), 8)

	assert.Contains(t, msg, "Order #8")
	assert.Contains(t, msg, "Company: \n")
	assert.Contains(t, msg, "Email: \n")
	// The order-level phone wins when the payment block is absent.
	assert.Contains(t, msg, "Phone: 123")
}
