package api

import (
	"context"
	"fmt"
)

// AttendanceInput carries an attendance punch. Zero ids, an empty type and
// nil coordinates mean "not set".
type AttendanceInput struct {
	Utilisateur  int
	Magasin      int
	TypePointage AttendanceType
	Horodatage   string
	Latitude     *float64
	Longitude    *float64
}

func (in AttendanceInput) body(full bool) map[string]any {
	body := map[string]any{}
	if full || in.Magasin != 0 {
		body["magasin"] = in.Magasin
	}
	if full || in.TypePointage != "" {
		body["type_pointage"] = string(in.TypePointage)
	}
	if in.Utilisateur != 0 {
		body["utilisateur"] = in.Utilisateur
	}
	if in.Horodatage != "" {
		body["horodatage"] = in.Horodatage
	}
	if in.Latitude != nil {
		body["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		body["longitude"] = *in.Longitude
	}
	return body
}

// CreateBody returns the JSON creation payload. Store and punch type are
// always present; the user defaults to the token's owner on the backend.
func (in AttendanceInput) CreateBody() map[string]any { return in.body(true) }

// UpdateBody returns a partial JSON payload holding only the fields set.
func (in AttendanceInput) UpdateBody() map[string]any { return in.body(false) }

// Create records an attendance punch.
func (s AttendanceService) Create(ctx context.Context, in AttendanceInput) (*Attendance, error) {
	if in.TypePointage != "" && !in.TypePointage.Valid() {
		return nil, fmt.Errorf("invalid attendance type %q", in.TypePointage)
	}
	return s.create(ctx, jsonBody{in.CreateBody()})
}

// Update partially updates an attendance punch (PATCH).
func (s AttendanceService) Update(ctx context.Context, id int, in AttendanceInput) (*Attendance, error) {
	if in.TypePointage != "" && !in.TypePointage.Valid() {
		return nil, fmt.Errorf("invalid attendance type %q", in.TypePointage)
	}
	return s.update(ctx, id, jsonBody{in.UpdateBody()})
}
