package resolve

import "github.com/stockpro/stockpro-cli/internal/api"

// Stores indexes stores by name.
func Stores(items []api.Store) []Named {
	out := make([]Named, len(items))
	for i, s := range items {
		out[i] = Named{ID: s.ID, Name: s.Nom}
	}
	return out
}

// Suppliers indexes suppliers by name.
func Suppliers(items []api.Supplier) []Named {
	out := make([]Named, len(items))
	for i, s := range items {
		out[i] = Named{ID: s.ID, Name: s.Nom}
	}
	return out
}

// Products indexes products by name, with the reference as an alias.
func Products(items []api.Product) []Named {
	out := make([]Named, len(items))
	for i, p := range items {
		out[i] = Named{ID: p.ID, Name: p.Nom, Aliases: []string{p.Reference}}
	}
	return out
}

// Users indexes users by full name, with username and email as aliases.
func Users(items []api.User) []Named {
	out := make([]Named, len(items))
	for i, u := range items {
		name := u.FullName()
		if name == "" {
			name = u.Username
		}
		out[i] = Named{ID: u.ID, Name: name, Aliases: []string{u.Username, u.Email}}
	}
	return out
}
