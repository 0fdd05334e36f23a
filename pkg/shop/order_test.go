package shop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_ContactPhoneFallsBackToPayment(t *testing.T) {
	assert.Equal(t, "111", Order{Phone: "111", Payment: Payment{Phone: "222"}}.ContactPhone())
	assert.Equal(t, "222", Order{Payment: Payment{Phone: "222"}}.ContactPhone())
	assert.Equal(t, "", Order{}.ContactPhone())
}

func TestOrder_FullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", Order{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane", Order{FirstName: "Jane"}.FullName())
	assert.Equal(t, "Doe", Order{LastName: "Doe"}.FullName())
	assert.Equal(t, "", Order{}.FullName())
}

func TestOrder_CustomFieldValue(t *testing.T) {
	o := Order{CustomFields: []CustomField{
		{FieldID: "5", Value: "@jane"},
		{FieldID: "9", Value: "other"},
	}}

	assert.Equal(t, "@jane", o.CustomFieldValue("5"))
	assert.Equal(t, "", o.CustomFieldValue("7"))
	assert.Equal(t, "", o.CustomFieldValue(""))
}

func TestOrder_DecodesBackendShapes(t *testing.T) {
	raw := `{
		"order_id": 1234,
		"total_price": "599.00",
		"currency": "CZK",
		"email": "jane@example.com",
		"payment": {"method": "Card", "phone": "+420111222333"},
		"custom_fields": [{"field_id": 5, "value": "@jane"}],
		"products": [
			{"product": "Chair", "product_code": "px-1", "quantity": "3", "base_price": "40.00", "total_price": "120.00"}
		]
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))

	assert.Equal(t, ID("1234"), o.ID)
	assert.Equal(t, Decimal("599.00"), o.Total)
	assert.Equal(t, "+420111222333", o.ContactPhone())
	assert.Equal(t, "@jane", o.CustomFieldValue("5"))
	require.Len(t, o.Products, 1)
	assert.Equal(t, 3, o.Products[0].Quantity.Int())
}
