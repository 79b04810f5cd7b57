package api

import (
	"context"
	"fmt"
)

// StockInput carries the writable stock fields. Zero ids and a nil quantity
// mean "not set".
type StockInput struct {
	Produit  int
	Magasin  int
	Quantite *int
}

// CreateBody returns the JSON creation payload with every field present.
func (in StockInput) CreateBody() map[string]any {
	quantite := 0
	if in.Quantite != nil {
		quantite = *in.Quantite
	}
	return map[string]any{
		"produit":  in.Produit,
		"magasin":  in.Magasin,
		"quantite": quantite,
	}
}

// UpdateBody returns a partial JSON payload holding only the fields set.
func (in StockInput) UpdateBody() map[string]any {
	body := map[string]any{}
	if in.Produit != 0 {
		body["produit"] = in.Produit
	}
	if in.Magasin != 0 {
		body["magasin"] = in.Magasin
	}
	if in.Quantite != nil {
		body["quantite"] = *in.Quantite
	}
	return body
}

// Create creates a stock line.
func (s StocksService) Create(ctx context.Context, in StockInput) (*Stock, error) {
	return s.create(ctx, jsonBody{in.CreateBody()})
}

// Update partially updates a stock line (PATCH).
func (s StocksService) Update(ctx context.Context, id int, in StockInput) (*Stock, error) {
	return s.update(ctx, id, jsonBody{in.UpdateBody()})
}

// Movements returns the stock movements sub-resource.
func (s StocksService) Movements() MovementsService {
	return MovementsService{newResource[Movement](s.r, "movement", s.path+"movements/")}
}

// MovementInput carries a new stock movement.
type MovementInput struct {
	Produit       int
	Magasin       int
	TypeMouvement MovementType
	Quantite      int
	Motif         string
}

// Body returns the JSON creation payload. The reason is only sent when set.
func (in MovementInput) Body() map[string]any {
	body := map[string]any{
		"produit":        in.Produit,
		"magasin":        in.Magasin,
		"type_mouvement": string(in.TypeMouvement),
		"quantite":       in.Quantite,
	}
	if in.Motif != "" {
		body["motif"] = in.Motif
	}
	return body
}

// List fetches every stock movement.
func (s MovementsService) List(ctx context.Context) ([]Movement, error) {
	return s.res.List(ctx)
}

// Create records a stock movement. Unknown directions are rejected before
// any request is sent.
func (s MovementsService) Create(ctx context.Context, in MovementInput) (*Movement, error) {
	if !in.TypeMouvement.Valid() {
		return nil, fmt.Errorf("invalid movement type %q (expected %s or %s)", in.TypeMouvement, MovementIn, MovementOut)
	}
	return s.res.create(ctx, jsonBody{in.Body()})
}
