package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Role is a user's access level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a role the backend accepts.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "entree"
	MovementOut MovementType = "sortie"
)

// Valid reports whether t is a known movement direction.
func (t MovementType) Valid() bool {
	return t == MovementIn || t == MovementOut
}

// AttendanceType is the kind of attendance punch.
type AttendanceType string

const (
	AttendanceArrival    AttendanceType = "arrivee"
	AttendanceDeparture  AttendanceType = "depart"
	AttendanceBreakStart AttendanceType = "pause_debut"
	AttendanceBreakEnd   AttendanceType = "pause_fin"
)

// Valid reports whether t is a known attendance punch.
func (t AttendanceType) Valid() bool {
	switch t {
	case AttendanceArrival, AttendanceDeparture, AttendanceBreakStart, AttendanceBreakEnd:
		return true
	}
	return false
}

// FlexInt handles JSON numbers that may come as strings or integers
type FlexInt int

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*fi = 0
			return nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*fi = FlexInt(i)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexInt", data)
}

// FlexFloat handles JSON numbers that may come as strings or numbers
type FlexFloat float64

func (ff *FlexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*ff = FlexFloat(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*ff = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		*ff = FlexFloat(f)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexFloat", data)
}

// Ref is a reference to another record. The backend sends references either
// as a bare id (number or numeric string) or as a nested object; both decode
// into Ref, keeping the nested object's display name when present.
type Ref struct {
	ID   int
	Name string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*r = Ref{}
		return nil
	}
	if trimmed[0] == '{' {
		var obj struct {
			ID       FlexInt `json:"id"`
			Nom      string  `json:"nom"`
			Name     string  `json:"name"`
			Username string  `json:"username"`
			Prenom   string  `json:"prenom"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fmt.Errorf("cannot unmarshal %s into Ref: %w", data, err)
		}
		name := obj.Nom
		if obj.Prenom != "" {
			name = strings.TrimSpace(obj.Prenom + " " + obj.Nom)
		}
		if name == "" {
			name = obj.Name
		}
		if name == "" {
			name = obj.Username
		}
		*r = Ref{ID: int(obj.ID), Name: name}
		return nil
	}
	var id FlexInt
	if err := id.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Ref: %w", data, err)
	}
	*r = Ref{ID: int(id)}
	return nil
}

// MarshalJSON writes the bare id, or null for an empty reference.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(r.ID)), nil
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.ID == 0 }

// String renders "name (#id)", "#id" or "" for an empty reference.
func (r Ref) String() string {
	switch {
	case r.ID == 0:
		return ""
	case r.Name != "":
		return fmt.Sprintf("%s (#%d)", r.Name, r.ID)
	default:
		return fmt.Sprintf("#%d", r.ID)
	}
}

// User is a backend account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Role     Role   `json:"role"`
	Magasin  Ref    `json:"magasin"`
	Image    string `json:"image,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.Prenom + " " + u.Nom)
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Product is a catalog item.
type Product struct {
	ID           int             `json:"id"`
	Nom          string          `json:"nom"`
	Reference    string          `json:"reference"`
	Categorie    string          `json:"categorie"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	SeuilAlerte  FlexInt         `json:"seuil_alerte"`
	Fournisseur  Ref             `json:"fournisseur"`
	Image        string          `json:"image,omitempty"`
}

// Store is a shop location.
type Store struct {
	ID        int       `json:"id"`
	Nom       string    `json:"nom"`
	Adresse   string    `json:"adresse"`
	Latitude  FlexFloat `json:"latitude"`
	Longitude FlexFloat `json:"longitude"`
	Image     string    `json:"image,omitempty"`
}

// Supplier provides products.
type Supplier struct {
	ID      int    `json:"id"`
	Nom     string `json:"nom"`
	Adresse string `json:"adresse"`
	Contact string `json:"contact"`
	Image   string `json:"image,omitempty"`
}

// Stock is the quantity of one product held by one store.
type Stock struct {
	ID            int     `json:"id"`
	Produit       Ref     `json:"produit"`
	Magasin       Ref     `json:"magasin"`
	Quantite      FlexInt `json:"quantite"`
	DateMiseAJour string  `json:"date_mise_a_jour,omitempty"`
}

// Movement is a stock entry or exit.
type Movement struct {
	ID            int          `json:"id"`
	Produit       Ref          `json:"produit"`
	Magasin       Ref          `json:"magasin"`
	TypeMouvement MovementType `json:"type_mouvement"`
	Quantite      FlexInt      `json:"quantite"`
	Motif         string       `json:"motif,omitempty"`
	Date          string       `json:"date,omitempty"`
}

// Attendance is one attendance punch.
type Attendance struct {
	ID           int            `json:"id"`
	Utilisateur  Ref            `json:"utilisateur"`
	Magasin      Ref            `json:"magasin"`
	TypePointage AttendanceType `json:"type_pointage"`
	Horodatage   string         `json:"horodatage,omitempty"`
	Latitude     *FlexFloat     `json:"latitude,omitempty"`
	Longitude    *FlexFloat     `json:"longitude,omitempty"`
}

// Message is an internal message between users.
type Message struct {
	ID           int    `json:"id"`
	Expediteur   Ref    `json:"expediteur"`
	Destinataire Ref    `json:"destinataire"`
	Contenu      string `json:"contenu"`
	Lu           bool   `json:"lu"`
	DateEnvoi    string `json:"date_envoi,omitempty"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
