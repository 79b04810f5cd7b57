// Package dashboard computes the stock overview shown by `stockpro summary`.
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/stockpro/stockpro-cli/internal/api"
)

// Lister is satisfied by every api resource service.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Sources are the collections the summary is computed from.
type Sources struct {
	Products  Lister[api.Product]
	Stores    Lister[api.Store]
	Suppliers Lister[api.Supplier]
	Stocks    Lister[api.Stock]
}

// FromClient wires Sources to the backend services.
func FromClient(c *api.Client) Sources {
	return Sources{
		Products:  c.Products(),
		Stores:    c.Stores(),
		Suppliers: c.Suppliers(),
		Stocks:    c.Stocks(),
	}
}

// LowStock is a stock line at or below its product's alert threshold.
type LowStock struct {
	StockID   int    `json:"stock_id"`
	ProductID int    `json:"produit"`
	Product   string `json:"produit_nom"`
	StoreID   int    `json:"magasin"`
	Store     string `json:"magasin_nom"`
	Quantite  int    `json:"quantite"`
	Seuil     int    `json:"seuil_alerte"`
}

// StoreTotal aggregates the stock held by one store.
type StoreTotal struct {
	StoreID int             `json:"magasin"`
	Store   string          `json:"magasin_nom"`
	Units   int             `json:"unites"`
	Value   decimal.Decimal `json:"valeur"`
}

// Summary is the dashboard overview.
type Summary struct {
	StoreID        int             `json:"magasin,omitempty"`
	Products       int             `json:"produits"`
	Stores         int             `json:"magasins"`
	Suppliers      int             `json:"fournisseurs"`
	StockLines     int             `json:"lignes_stock"`
	TotalUnits     int             `json:"unites"`
	InventoryValue decimal.Decimal `json:"valeur_inventaire"`
	LowStock       []LowStock      `json:"alertes"`
	ByStore        []StoreTotal    `json:"par_magasin"`
}

// Load fetches every collection concurrently and computes the summary.
// storeID, when non-zero, restricts stock figures to one store.
func Load(ctx context.Context, src Sources, storeID int) (*Summary, error) {
	var (
		products  []api.Product
		stores    []api.Store
		suppliers []api.Supplier
		stocks    []api.Stock
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = list(ctx, "products", src.Products)
		return err
	})
	g.Go(func() (err error) {
		stores, err = list(ctx, "stores", src.Stores)
		return err
	})
	g.Go(func() (err error) {
		suppliers, err = list(ctx, "suppliers", src.Suppliers)
		return err
	})
	g.Go(func() (err error) {
		stocks, err = list(ctx, "stocks", src.Stocks)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compute(products, stores, suppliers, stocks, storeID), nil
}

func list[T any](ctx context.Context, what string, l Lister[T]) ([]T, error) {
	if l == nil {
		return nil, nil
	}
	items, err := l.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", what, err)
	}
	return items, nil
}

// Compute builds the summary from already fetched collections.
func Compute(products []api.Product, stores []api.Store, suppliers []api.Supplier, stocks []api.Stock, storeID int) *Summary {
	s := &Summary{
		StoreID:        storeID,
		Products:       len(products),
		Stores:         len(stores),
		Suppliers:      len(suppliers),
		InventoryValue: decimal.Zero,
		LowStock:       []LowStock{},
		ByStore:        []StoreTotal{},
	}

	byID := make(map[int]api.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	storeNames := make(map[int]string, len(stores))
	for _, st := range stores {
		storeNames[st.ID] = st.Nom
	}

	totals := map[int]*StoreTotal{}
	for _, line := range stocks {
		if storeID != 0 && line.Magasin.ID != storeID {
			continue
		}
		qty := int(line.Quantite)
		s.StockLines++
		s.TotalUnits += qty

		total, ok := totals[line.Magasin.ID]
		if !ok {
			total = &StoreTotal{
				StoreID: line.Magasin.ID,
				Store:   firstNonEmpty(storeNames[line.Magasin.ID], line.Magasin.Name),
				Value:   decimal.Zero,
			}
			totals[line.Magasin.ID] = total
		}
		total.Units += qty

		p, known := byID[line.Produit.ID]
		if !known {
			continue
		}
		value := p.PrixUnitaire.Mul(decimal.NewFromInt(int64(qty)))
		s.InventoryValue = s.InventoryValue.Add(value)
		total.Value = total.Value.Add(value)

		if qty <= int(p.SeuilAlerte) {
			s.LowStock = append(s.LowStock, LowStock{
				StockID:   line.ID,
				ProductID: p.ID,
				Product:   p.Nom,
				StoreID:   line.Magasin.ID,
				Store:     total.Store,
				Quantite:  qty,
				Seuil:     int(p.SeuilAlerte),
			})
		}
	}

	sort.SliceStable(s.LowStock, func(i, j int) bool {
		a, b := s.LowStock[i], s.LowStock[j]
		if a.Quantite != b.Quantite {
			return a.Quantite < b.Quantite
		}
		return a.Product < b.Product
	})

	for _, t := range totals {
		s.ByStore = append(s.ByStore, *t)
	}
	sort.Slice(s.ByStore, func(i, j int) bool {
		if s.ByStore[i].Store != s.ByStore[j].Store {
			return s.ByStore[i].Store < s.ByStore[j].Store
		}
		return s.ByStore[i].StoreID < s.ByStore[j].StoreID
	})
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
