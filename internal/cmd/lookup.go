package cmd

import (
	"context"
	"strings"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/resolve"
)

// resolveStoreID accepts a store id ("3", "#3") or a name fragment.
func resolveStoreID(ctx context.Context, client *api.Client, query string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	return resolve.IDOrMatch("store", query, func() ([]resolve.Named, error) {
		items, err := client.Stores().List(ctx)
		if err != nil {
			return nil, err
		}
		return resolve.Stores(items), nil
	})
}

// resolveSupplierID accepts a supplier id or a name fragment.
func resolveSupplierID(ctx context.Context, client *api.Client, query string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	return resolve.IDOrMatch("supplier", query, func() ([]resolve.Named, error) {
		items, err := client.Suppliers().List(ctx)
		if err != nil {
			return nil, err
		}
		return resolve.Suppliers(items), nil
	})
}

// resolveProductID accepts a product id, a name fragment or a reference.
func resolveProductID(ctx context.Context, client *api.Client, query string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	return resolve.IDOrMatch("product", query, func() ([]resolve.Named, error) {
		items, err := client.Products().List(ctx)
		if err != nil {
			return nil, err
		}
		return resolve.Products(items), nil
	})
}

// resolveUserID accepts a user id, a name, a username or an email.
func resolveUserID(ctx context.Context, client *api.Client, query string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	return resolve.IDOrMatch("user", query, func() ([]resolve.Named, error) {
		items, err := client.Users().List(ctx)
		if err != nil {
			return nil, err
		}
		return resolve.Users(items), nil
	})
}
