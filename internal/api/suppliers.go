package api

import "context"

// SupplierInput carries the writable supplier fields.
type SupplierInput struct {
	Nom     string
	Adresse string
	Contact string
	Image   *File
}

// CreateForm builds the full form used by create and replace.
func (in SupplierInput) CreateForm() *Form {
	form := NewForm()
	form.Set("nom", in.Nom)
	form.Set("adresse", in.Adresse)
	form.Set("contact", in.Contact)
	form.Attach("image", in.Image)
	return form
}

// UpdateForm builds a partial form holding only the fields that are set.
func (in SupplierInput) UpdateForm() *Form {
	form := NewForm()
	form.SetIfNotEmpty("nom", in.Nom)
	form.SetIfNotEmpty("adresse", in.Adresse)
	form.SetIfNotEmpty("contact", in.Contact)
	form.Attach("image", in.Image)
	return form
}

// Create creates a supplier.
func (s SuppliersService) Create(ctx context.Context, in SupplierInput) (*Supplier, error) {
	return s.create(ctx, in.CreateForm())
}

// Update partially updates a supplier (PATCH).
func (s SuppliersService) Update(ctx context.Context, id int, in SupplierInput) (*Supplier, error) {
	return s.update(ctx, id, in.UpdateForm())
}

// Replace overwrites a supplier with the full form (PUT).
func (s SuppliersService) Replace(ctx context.Context, id int, in SupplierInput) (*Supplier, error) {
	return s.replace(ctx, id, in.CreateForm())
}
