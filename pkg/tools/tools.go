// Package tools defines the MCP tool surface and its dispatch
// boundary. Every handler is wrapped so that any error (or panic)
// becomes an error-flagged text result; a tool call never turns into a
// transport-level failure.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/storefront-tools/shopmcp/pkg/logging"
	"github.com/storefront-tools/shopmcp/pkg/shop"
)

// ProductCatalog is the product service surface the tools dispatch to.
type ProductCatalog interface {
	All(ctx context.Context) ([]shop.Product, error)
	Search(ctx context.Context, name, code string) ([]shop.ProductSummary, error)
}

// FeatureCatalog is the feature service surface the tools dispatch to.
type FeatureCatalog interface {
	All(ctx context.Context) ([]shop.Feature, error)
}

// Enricher is the single-product enrichment surface.
type Enricher interface {
	Enrich(ctx context.Context, productID int) (shop.EnrichedProduct, error)
}

// OrderFormatter is the order formatting surface.
type OrderFormatter interface {
	Format(ctx context.Context, orderID int) string
}

// Deps bundles the services the tools dispatch to.
type Deps struct {
	Products ProductCatalog
	Features FeatureCatalog
	Enricher Enricher
	Orders   OrderFormatter
}

// Register adds every tool to the MCP server.
func Register(s *server.MCPServer, deps Deps) {
	logger := logging.NewLogger("tools")

	s.AddTool(mcp.NewTool("get-product",
		mcp.WithDescription("Get one product with its resolved feature values"),
		mcp.WithNumber("productId", mcp.Required(), mcp.Description("Product identifier (positive integer)")),
	), guard(logger, "get-product", getProductHandler(deps)))

	s.AddTool(mcp.NewTool("get-products",
		mcp.WithDescription("List all products as full records"),
	), guard(logger, "get-products", getProductsHandler(deps)))

	s.AddTool(mcp.NewTool("get-features",
		mcp.WithDescription("List all product features with their variants"),
	), guard(logger, "get-features", getFeaturesHandler(deps)))

	s.AddTool(mcp.NewTool("search-products",
		mcp.WithDescription("Search products by name and/or product code (case-insensitive substring)"),
		mcp.WithString("name", mcp.Description("Substring to match against the product name")),
		mcp.WithString("code", mcp.Description("Substring to match against the product code")),
	), guard(logger, "search-products", searchProductsHandler(deps)))

	s.AddTool(mcp.NewTool("get-order",
		mcp.WithDescription("Get one order as a formatted text summary"),
		mcp.WithNumber("orderId", mcp.Required(), mcp.Description("Order identifier (positive integer)")),
	), guard(logger, "get-order", getOrderHandler(deps)))
}

func getProductHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := positiveIntArg(req, "productId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		enriched, err := deps.Enricher.Enrich(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(enriched)
	}
}

func getProductsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		products, err := deps.Products.All(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(products)
	}
}

func getFeaturesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		catalog, err := deps.Features.All(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(catalog)
	}
}

func searchProductsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		matches, err := deps.Products.Search(ctx, stringArg(req, "name"), stringArg(req, "code"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(matches)
	}
}

func getOrderHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := positiveIntArg(req, "orderId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(deps.Orders.Format(ctx, id)), nil
	}
}

// guard wraps a handler so panics surface as error results and every
// call is logged.
func guard(logger zerolog.Logger, name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Str("tool", name).Interface("panic", r).Msg("Tool handler panicked")
				result = mcp.NewToolResultError(fmt.Sprintf("%s: internal error", name))
				err = nil
			}
		}()

		logger.Debug().Str("tool", name).Msg("Tool call")
		return h(ctx, req)
	}
}

// jsonResult serializes a payload as an indented JSON text result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// positiveIntArg extracts a required positive integer argument.
func positiveIntArg(req mcp.CallToolRequest, name string) (int, error) {
	v, ok := req.Params.Arguments[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}

	var id int
	switch n := v.(type) {
	case float64:
		id = int(n)
	case int:
		id = n
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be a positive integer", name)
		}
		id = int(parsed)
	default:
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}

	if id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// stringArg extracts an optional string argument.
func stringArg(req mcp.CallToolRequest, name string) string {
	if v, ok := req.Params.Arguments[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
