package api

import "context"

// StoreInput carries the writable store fields.
type StoreInput struct {
	Nom       string
	Adresse   string
	Latitude  *float64
	Longitude *float64
	Image     *File
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// CreateForm builds the full form used by create and replace.
func (in StoreInput) CreateForm() *Form {
	form := NewForm()
	form.Set("nom", in.Nom)
	form.Set("adresse", in.Adresse)
	form.Set("latitude", optionalFloat(in.Latitude))
	form.Set("longitude", optionalFloat(in.Longitude))
	form.Attach("image", in.Image)
	return form
}

// UpdateForm builds a partial form holding only the fields that are set.
func (in StoreInput) UpdateForm() *Form {
	form := NewForm()
	form.SetIfNotEmpty("nom", in.Nom)
	form.SetIfNotEmpty("adresse", in.Adresse)
	form.SetIfNotEmpty("latitude", optionalFloat(in.Latitude))
	form.SetIfNotEmpty("longitude", optionalFloat(in.Longitude))
	form.Attach("image", in.Image)
	return form
}

// Create creates a store.
func (s StoresService) Create(ctx context.Context, in StoreInput) (*Store, error) {
	return s.create(ctx, in.CreateForm())
}

// Update partially updates a store (PATCH).
func (s StoresService) Update(ctx context.Context, id int, in StoreInput) (*Store, error) {
	return s.update(ctx, id, in.UpdateForm())
}

// Replace overwrites a store with the full form (PUT).
func (s StoresService) Replace(ctx context.Context, id int, in StoreInput) (*Store, error) {
	return s.replace(ctx, id, in.CreateForm())
}
