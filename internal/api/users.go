package api

import (
	"context"
	"strings"
)

// UserInput carries the writable user fields. Magasin is a store id; zero
// means unset.
type UserInput struct {
	Username string
	Email    string
	Nom      string
	Prenom   string
	Password string
	Role     Role
	Magasin  int
	Image    *File
}

// DeriveUsername returns the explicit username, or the local part of the
// email address when none is given.
func (in UserInput) DeriveUsername() string {
	if in.Username != "" {
		return in.Username
	}
	local, _, _ := strings.Cut(in.Email, "@")
	return local
}

// CreateForm builds the full creation form. Required fields are always
// present, even when empty; the backend reports what is missing.
func (in UserInput) CreateForm() *Form {
	form := NewForm()
	form.Set("username", in.DeriveUsername())
	form.Set("email", in.Email)
	form.Set("nom", in.Nom)
	form.Set("prenom", in.Prenom)
	form.Set("password", in.Password)
	form.Set("role", string(in.Role))
	form.SetIfNotEmpty("magasin", formatID(in.Magasin))
	form.Attach("image", in.Image)
	return form
}

// UpdateForm builds a partial form holding only the fields that are set.
// Username, email and password are not editable through an update.
func (in UserInput) UpdateForm() *Form {
	form := NewForm()
	form.SetIfNotEmpty("nom", in.Nom)
	form.SetIfNotEmpty("prenom", in.Prenom)
	form.SetIfNotEmpty("role", string(in.Role))
	form.SetIfNotEmpty("magasin", formatID(in.Magasin))
	form.Attach("image", in.Image)
	return form
}

// Create creates a user account.
func (s UsersService) Create(ctx context.Context, in UserInput) (*User, error) {
	return s.create(ctx, in.CreateForm())
}

// Update partially updates a user (PATCH).
func (s UsersService) Update(ctx context.Context, id int, in UserInput) (*User, error) {
	return s.update(ctx, id, in.UpdateForm())
}
