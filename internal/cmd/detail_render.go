package cmd

import (
	"fmt"
	"io"

	"github.com/stockpro/stockpro-cli/internal/api"
)

// printUserDetails outputs user details in text format.
func printUserDetails(out io.Writer, u *api.User) error {
	_, _ = fmt.Fprintf(out, "User #%d\n", u.ID)
	_, _ = fmt.Fprintf(out, "  Name:     %s\n", orDash(u.FullName()))
	_, _ = fmt.Fprintf(out, "  Username: %s\n", orDash(u.Username))
	_, _ = fmt.Fprintf(out, "  Email:    %s\n", orDash(u.Email))
	_, _ = fmt.Fprintf(out, "  Role:     %s\n", orDash(string(u.Role)))
	_, _ = fmt.Fprintf(out, "  Store:    %s\n", refLabel(u.Magasin))
	if u.Image != "" {
		_, _ = fmt.Fprintf(out, "  Image:    %s\n", u.Image)
	}
	return nil
}

// printProductDetails outputs product details in text format.
func printProductDetails(out io.Writer, p *api.Product) error {
	_, _ = fmt.Fprintf(out, "Product #%d\n", p.ID)
	_, _ = fmt.Fprintf(out, "  Name:      %s\n", p.Nom)
	_, _ = fmt.Fprintf(out, "  Reference: %s\n", orDash(p.Reference))
	_, _ = fmt.Fprintf(out, "  Category:  %s\n", orDash(p.Categorie))
	_, _ = fmt.Fprintf(out, "  Price:     %s\n", p.PrixUnitaire.StringFixed(2))
	_, _ = fmt.Fprintf(out, "  Threshold: %d\n", p.SeuilAlerte)
	_, _ = fmt.Fprintf(out, "  Supplier:  %s\n", refLabel(p.Fournisseur))
	if p.Image != "" {
		_, _ = fmt.Fprintf(out, "  Image:     %s\n", p.Image)
	}
	return nil
}

// printStoreDetails outputs store details in text format.
func printStoreDetails(out io.Writer, s *api.Store) error {
	_, _ = fmt.Fprintf(out, "Store #%d\n", s.ID)
	_, _ = fmt.Fprintf(out, "  Name:     %s\n", s.Nom)
	_, _ = fmt.Fprintf(out, "  Address:  %s\n", orDash(s.Adresse))
	_, _ = fmt.Fprintf(out, "  Position: %s\n", storePoint(s))
	if s.Image != "" {
		_, _ = fmt.Fprintf(out, "  Image:    %s\n", s.Image)
	}
	return nil
}

// printSupplierDetails outputs supplier details in text format.
func printSupplierDetails(out io.Writer, s *api.Supplier) error {
	_, _ = fmt.Fprintf(out, "Supplier #%d\n", s.ID)
	_, _ = fmt.Fprintf(out, "  Name:    %s\n", s.Nom)
	_, _ = fmt.Fprintf(out, "  Address: %s\n", orDash(s.Adresse))
	_, _ = fmt.Fprintf(out, "  Contact: %s\n", orDash(s.Contact))
	if s.Image != "" {
		_, _ = fmt.Fprintf(out, "  Image:   %s\n", s.Image)
	}
	return nil
}

func printStockDetails(out io.Writer, s *api.Stock) error {
	_, _ = fmt.Fprintf(out, "Stock #%d\n", s.ID)
	_, _ = fmt.Fprintf(out, "  Product:  %s\n", refLabel(s.Produit))
	_, _ = fmt.Fprintf(out, "  Store:    %s\n", refLabel(s.Magasin))
	_, _ = fmt.Fprintf(out, "  Quantity: %d\n", s.Quantite)
	if s.DateMiseAJour != "" {
		_, _ = fmt.Fprintf(out, "  Updated:  %s\n", s.DateMiseAJour)
	}
	return nil
}

func printAttendanceDetails(out io.Writer, a *api.Attendance) error {
	_, _ = fmt.Fprintf(out, "Attendance #%d\n", a.ID)
	_, _ = fmt.Fprintf(out, "  User:  %s\n", refLabel(a.Utilisateur))
	_, _ = fmt.Fprintf(out, "  Store: %s\n", refLabel(a.Magasin))
	_, _ = fmt.Fprintf(out, "  Type:  %s\n", a.TypePointage)
	_, _ = fmt.Fprintf(out, "  Time:  %s\n", orDash(a.Horodatage))
	if a.Latitude != nil && a.Longitude != nil {
		_, _ = fmt.Fprintf(out, "  Position: %.6f,%.6f\n", float64(*a.Latitude), float64(*a.Longitude))
	}
	return nil
}

func printMessageDetails(out io.Writer, m *api.Message) error {
	_, _ = fmt.Fprintf(out, "Message #%d\n", m.ID)
	_, _ = fmt.Fprintf(out, "  From: %s\n", refLabel(m.Expediteur))
	_, _ = fmt.Fprintf(out, "  To:   %s\n", refLabel(m.Destinataire))
	_, _ = fmt.Fprintf(out, "  Sent: %s\n", orDash(m.DateEnvoi))
	_, _ = fmt.Fprintf(out, "  Read: %t\n", m.Lu)
	_, _ = fmt.Fprintf(out, "\n%s\n", m.Contenu)
	return nil
}

func storePoint(s *api.Store) string {
	if s.Latitude == 0 && s.Longitude == 0 {
		return "-"
	}
	return fmt.Sprintf("%.6f,%.6f", float64(s.Latitude), float64(s.Longitude))
}
