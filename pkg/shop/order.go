package shop

// Order is one backend order record. Orders are always fetched live and
// never cached; their state changes too often for staleness to be
// acceptable.
type Order struct {
	ID           ID            `json:"order_id"`
	Total        Decimal       `json:"total_price"`
	Currency     string        `json:"currency"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	FirstName    string        `json:"firstname"`
	LastName     string        `json:"lastname"`
	Company      string        `json:"company"`
	Notes        string        `json:"customer_note"`
	Payment      Payment       `json:"payment"`
	CustomFields []CustomField `json:"custom_fields"`
	Products     []OrderItem   `json:"products"`
}

// Payment is the nested payment block of an order.
type Payment struct {
	Method string `json:"method"`
	Phone  string `json:"phone"`
}

// CustomField is one configurable order field, looked up by identifier.
type CustomField struct {
	FieldID ID     `json:"field_id"`
	Value   string `json:"value"`
}

// CustomFieldValue returns the value of the custom field with the given
// identifier, or "" when the field is absent or the identifier is empty.
func (o Order) CustomFieldValue(fieldID string) string {
	if fieldID == "" {
		return ""
	}
	for _, f := range o.CustomFields {
		if string(f.FieldID) == fieldID {
			return f.Value
		}
	}
	return ""
}

// ContactPhone returns the order-level phone, falling back to the
// payment block's phone, else "".
func (o Order) ContactPhone() string {
	if o.Phone != "" {
		return o.Phone
	}
	return o.Payment.Phone
}

// FullName joins the separate first/last name fields.
func (o Order) FullName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.LastName
	}
}

// OrderItem is one ordered product line.
type OrderItem struct {
	Name       string  `json:"product"`
	Code       string  `json:"product_code"`
	Quantity   Decimal `json:"quantity"`
	UnitPrice  Decimal `json:"base_price"`
	TotalPrice Decimal `json:"total_price"`
	Currency   string  `json:"currency"`
}
