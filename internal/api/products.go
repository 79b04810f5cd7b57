package api

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductInput carries the writable product fields. Nil pointers and empty
// strings mean "not set".
type ProductInput struct {
	Nom          string
	Reference    string
	Categorie    string
	PrixUnitaire *decimal.Decimal
	SeuilAlerte  *int
	Fournisseur  int
	Image        *File
}

func (in ProductInput) price() string {
	if in.PrixUnitaire == nil {
		return ""
	}
	return in.PrixUnitaire.String()
}

func (in ProductInput) threshold() string {
	if in.SeuilAlerte == nil {
		return ""
	}
	return strconv.Itoa(*in.SeuilAlerte)
}

// CreateForm builds the full form used by create and replace.
func (in ProductInput) CreateForm() *Form {
	form := NewForm()
	form.Set("nom", in.Nom)
	form.Set("reference", in.Reference)
	form.Set("categorie", in.Categorie)
	form.Set("prix_unitaire", in.price())
	form.Set("seuil_alerte", in.threshold())
	form.SetIfNotEmpty("fournisseur", formatID(in.Fournisseur))
	form.Attach("image", in.Image)
	return form
}

// UpdateForm builds a partial form holding only the fields that are set.
func (in ProductInput) UpdateForm() *Form {
	form := NewForm()
	form.SetIfNotEmpty("nom", in.Nom)
	form.SetIfNotEmpty("reference", in.Reference)
	form.SetIfNotEmpty("categorie", in.Categorie)
	form.SetIfNotEmpty("prix_unitaire", in.price())
	form.SetIfNotEmpty("seuil_alerte", in.threshold())
	form.SetIfNotEmpty("fournisseur", formatID(in.Fournisseur))
	form.Attach("image", in.Image)
	return form
}

// Create creates a product.
func (s ProductsService) Create(ctx context.Context, in ProductInput) (*Product, error) {
	return s.create(ctx, in.CreateForm())
}

// Update partially updates a product (PATCH).
func (s ProductsService) Update(ctx context.Context, id int, in ProductInput) (*Product, error) {
	return s.update(ctx, id, in.UpdateForm())
}

// Replace overwrites a product with the full form (PUT).
func (s ProductsService) Replace(ctx context.Context, id int, in ProductInput) (*Product, error) {
	return s.replace(ctx, id, in.CreateForm())
}
