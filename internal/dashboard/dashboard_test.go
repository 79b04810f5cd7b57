package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpro/stockpro-cli/internal/api"
)

type fakeLister[T any] struct {
	items []T
	err   error
}

func (f fakeLister[T]) List(context.Context) ([]T, error) { return f.items, f.err }

func fixtures() ([]api.Product, []api.Store, []api.Supplier, []api.Stock) {
	products := []api.Product{
		{ID: 1, Nom: "Riz", PrixUnitaire: decimal.RequireFromString("4500"), SeuilAlerte: 10},
		{ID: 2, Nom: "Huile", PrixUnitaire: decimal.RequireFromString("1250.50"), SeuilAlerte: 5},
		{ID: 3, Nom: "Sucre", PrixUnitaire: decimal.RequireFromString("800"), SeuilAlerte: 0},
	}
	stores := []api.Store{{ID: 1, Nom: "Plateau"}, {ID: 2, Nom: "Almadies"}}
	suppliers := []api.Supplier{{ID: 1, Nom: "Acme"}}
	stocks := []api.Stock{
		{ID: 10, Produit: api.Ref{ID: 1}, Magasin: api.Ref{ID: 1}, Quantite: 10},
		{ID: 11, Produit: api.Ref{ID: 2}, Magasin: api.Ref{ID: 1}, Quantite: 20},
		{ID: 12, Produit: api.Ref{ID: 2}, Magasin: api.Ref{ID: 2}, Quantite: 2},
		{ID: 13, Produit: api.Ref{ID: 3}, Magasin: api.Ref{ID: 2}, Quantite: 0},
		{ID: 14, Produit: api.Ref{ID: 99}, Magasin: api.Ref{ID: 2}, Quantite: 7},
	}
	return products, stores, suppliers, stocks
}

func TestCompute(t *testing.T) {
	products, stores, suppliers, stocks := fixtures()
	s := Compute(products, stores, suppliers, stocks, 0)

	assert.Equal(t, 3, s.Products)
	assert.Equal(t, 2, s.Stores)
	assert.Equal(t, 1, s.Suppliers)
	assert.Equal(t, 5, s.StockLines)
	assert.Equal(t, 39, s.TotalUnits)
	// 10*4500 + 20*1250.50 + 2*1250.50 + 0*800
	assert.Equal(t, "72511", s.InventoryValue.String())

	require.Len(t, s.LowStock, 3)
	assert.Equal(t, "Sucre", s.LowStock[0].Product)
	assert.Equal(t, "Huile", s.LowStock[1].Product)
	assert.Equal(t, "Almadies", s.LowStock[1].Store)
	assert.Equal(t, "Riz", s.LowStock[2].Product, "quantity equal to the threshold is low")
	assert.Equal(t, 10, s.LowStock[2].Seuil)

	require.Len(t, s.ByStore, 2)
	assert.Equal(t, "Almadies", s.ByStore[0].Store)
	assert.Equal(t, 9, s.ByStore[0].Units)
	assert.Equal(t, "2501", s.ByStore[0].Value.String())
	assert.Equal(t, "Plateau", s.ByStore[1].Store)
	assert.Equal(t, "70010", s.ByStore[1].Value.String())
}

func TestCompute_StoreFilter(t *testing.T) {
	products, stores, suppliers, stocks := fixtures()
	s := Compute(products, stores, suppliers, stocks, 1)

	assert.Equal(t, 1, s.StoreID)
	assert.Equal(t, 2, s.StockLines)
	assert.Equal(t, 30, s.TotalUnits)
	require.Len(t, s.LowStock, 1)
	assert.Equal(t, 10, s.LowStock[0].StockID)
	require.Len(t, s.ByStore, 1)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, nil, nil, nil, 0)
	assert.True(t, s.InventoryValue.IsZero())
	assert.NotNil(t, s.LowStock)
	assert.NotNil(t, s.ByStore)
}

func TestLoad_Fakes(t *testing.T) {
	products, stores, suppliers, stocks := fixtures()
	src := Sources{
		Products:  fakeLister[api.Product]{items: products},
		Stores:    fakeLister[api.Store]{items: stores},
		Suppliers: fakeLister[api.Supplier]{items: suppliers},
		Stocks:    fakeLister[api.Stock]{items: stocks},
	}

	s, err := Load(context.Background(), src, 0)
	require.NoError(t, err)
	assert.Equal(t, 39, s.TotalUnits)
}

func TestLoad_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	src := Sources{
		Products: fakeLister[api.Product]{},
		Stocks:   fakeLister[api.Stock]{err: boom},
	}

	_, err := Load(context.Background(), src, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load stocks")
}

func TestLoad_FromClient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/products/":
			_, _ = w.Write([]byte(`{"count":1,"results":[{"id":1,"nom":"Riz","prix_unitaire":"4500.00","seuil_alerte":"3"}]}`))
		case "/api/stores/":
			_, _ = w.Write([]byte(`[{"id":1,"nom":"Plateau","latitude":"14.69","longitude":-17.44}]`))
		case "/api/suppliers/":
			_, _ = w.Write([]byte(`[]`))
		case "/api/stocks/":
			_, _ = w.Write([]byte(`[{"id":5,"produit":{"id":1,"nom":"Riz"},"magasin":1,"quantite":2}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL+"/api/", api.StaticToken("token"))
	s, err := Load(context.Background(), FromClient(client), 0)
	require.NoError(t, err)

	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, "9000", s.InventoryValue.String())
	require.Len(t, s.LowStock, 1)
	assert.Equal(t, "Plateau", s.LowStock[0].Store)
}
