// Package orders fetches single orders and renders them as
// human-readable text. Orders are never cached: their state changes
// frequently and staleness would be user-visible.
package orders

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storefront-tools/shopmcp/pkg/config"
	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/shop"
)

// externalCodePrefix is the fixed prefix on product codes; stripping it
// recovers the product's external identifier for link building.
const externalCodePrefix = "px-"

// FallbackMessage is returned whenever an order cannot be fetched or
// derived. The order tool never surfaces a raw error to the caller.
const FallbackMessage = "Could not retrieve the order information."

// Getter is the backend client surface the package needs.
type Getter interface {
	GetJSON(ctx context.Context, resource, path string, query url.Values, out any) error
}

// Config holds the formatter's rendering settings.
type Config struct {
	// AdminBaseURL is the admin panel base for order detail links.
	AdminBaseURL string

	// LinkTemplate is the product link template containing {id}.
	LinkTemplate string

	// ContactFieldID selects the order custom field holding the
	// customer's contact channel; empty disables the lookup.
	ContactFieldID string
}

// Service fetches and formats orders.
type Service struct {
	api    Getter
	cfg    Config
	logger zerolog.Logger
}

// NewService creates the order service.
func NewService(api Getter, cfg Config) *Service {
	return &Service{
		api:    api,
		cfg:    cfg,
		logger: logging.NewLogger("orders"),
	}
}

// Format fetches the order live and renders the order message. Any
// failure degrades to the fixed fallback message; the caller always
// gets a usable text block.
func (s *Service) Format(ctx context.Context, orderID int) string {
	var order shop.Order
	path := "/api/orders/" + strconv.Itoa(orderID)
	if err := s.api.GetJSON(ctx, "order", path, nil, &order); err != nil {
		s.logger.Warn().Err(err).Int("order_id", orderID).Msg("Order fetch failed")
		return FallbackMessage
	}

	return s.render(order)
}

// render builds the fixed multi-line order message.
func (s *Service) render(o shop.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order #%s\n", o.ID)
	fmt.Fprintf(&b, "Customer: %s\n", o.FullName())
	fmt.Fprintf(&b, "Company: %s\n", o.Company)
	fmt.Fprintf(&b, "Email: %s\n", o.Email)
	fmt.Fprintf(&b, "Phone: %s\n", o.ContactPhone())
	fmt.Fprintf(&b, "Contact channel: %s\n", o.CustomFieldValue(s.cfg.ContactFieldID))
	fmt.Fprintf(&b, "Note: %s\n", o.Notes)
	fmt.Fprintf(&b, "Payment: %s\n", o.Payment.Method)
	fmt.Fprintf(&b, "Total: %s %s\n", o.Total, o.Currency)
	fmt.Fprintf(&b, "Detail: %s\n", s.detailURL(o.ID))
	b.WriteString("\nItems:\n")
	b.WriteString(s.renderItems(o))

	return b.String()
}

// renderItems renders one line per ordered product, in item order.
func (s *Service) renderItems(o shop.Order) string {
	lines := make([]string, 0, len(o.Products))
	for _, item := range o.Products {
		currency := item.Currency
		if currency == "" {
			currency = o.Currency
		}

		line := fmt.Sprintf("%s %s", item.TotalPrice, currency)
		if qty := item.Quantity.Int(); qty > 1 {
			line += fmt.Sprintf(" (%s x %d)", item.UnitPrice, qty)
		}
		line += fmt.Sprintf(" [%s](%s)", item.Name, s.productLink(item.Code))

		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// productLink strips the fixed code prefix to recover the external
// identifier and substitutes it into the configured link template.
func (s *Service) productLink(code string) string {
	externalID := strings.TrimPrefix(code, externalCodePrefix)
	return strings.ReplaceAll(s.cfg.LinkTemplate, config.LinkIDPlaceholder, externalID)
}

// detailURL builds the admin panel detail page link for an order.
func (s *Service) detailURL(id shop.ID) string {
	return strings.TrimRight(s.cfg.AdminBaseURL, "/") + "/orders/" + string(id)
}
