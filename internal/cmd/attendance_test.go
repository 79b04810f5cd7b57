package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plateauStore = `{"id": 1, "nom": "Plateau", "latitude": "14.670800", "longitude": "-17.438100"}`

func TestAttendanceCheckIn_WithinRadius(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/stores/1/", jsonResponse(200, plateauStore)).
		On("POST", "/api/attendance/", jsonResponse(201, `{"id": 30, "type_pointage": "arrivee", "magasin": 1}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "attendance", "check-in", "--store", "1", "--lat", "14.6711", "--lng", "-17.4381")
	require.NoError(t, err)
	assert.Equal(t, "Recorded attendance #30: arrivee\n", out)

	body := handler.last(t, "POST", "/api/attendance/").JSON
	assert.Equal(t, float64(1), body["magasin"])
	assert.Equal(t, "arrivee", body["type_pointage"])
	assert.InDelta(t, 14.6711, body["latitude"], 1e-9)
	assert.InDelta(t, -17.4381, body["longitude"], 1e-9)
}

func TestAttendanceCheckIn_TooFarIsRefused(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/stores/1/", jsonResponse(200, plateauStore)).
		On("POST", "/api/attendance/", jsonResponse(201, `{"id": 31}`))
	setupTestEnvWithHandler(t, handler)

	_, errOut, err := runCmd(t, "", "attendance", "check-in", "--store", "1", "--type", "depart", "--lat", "14.7000", "--lng", "-17.4381")
	require.Error(t, err)
	assert.Equal(t, exitForbidden, ExitCode(err))
	assert.Contains(t, errOut, "Check-in refused")
	assert.Equal(t, 0, handler.count("POST", "/api/attendance/"))
}

func TestAttendanceCheckIn_LargerRadius(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/stores/1/", jsonResponse(200, plateauStore)).
		On("POST", "/api/attendance/", jsonResponse(201, `{"id": 32, "type_pointage": "arrivee"}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "attendance", "check-in", "--store", "1", "--lat", "14.6740", "--lng", "-17.4381", "--radius", "500")
	require.NoError(t, err)
}

func TestAttendanceCheckIn_DefaultsToAssignedStore(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/auth/me/", jsonResponse(200, `{"id": 4, "prenom": "Awa", "role": "employee", "magasin": {"id": 1, "nom": "Plateau"}}`)).
		On("GET", "/api/stores/1/", jsonResponse(200, plateauStore)).
		On("POST", "/api/attendance/", jsonResponse(201, `{"id": 33, "type_pointage": "pause_debut"}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "attendance", "punch", "--type", "pause_debut", "--lat", "14.6708", "--lng", "-17.4381")
	require.NoError(t, err)
	assert.Equal(t, float64(1), handler.last(t, "POST", "/api/attendance/").JSON["magasin"])
}

func TestAttendanceCheckIn_SkipGeo(t *testing.T) {
	handler := newRouteHandler().
		On("POST", "/api/attendance/", jsonResponse(201, `{"id": 34, "type_pointage": "arrivee"}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "attendance", "check-in", "--store", "2", "--skip-geo")
	require.NoError(t, err)

	body := handler.last(t, "POST", "/api/attendance/").JSON
	assert.Equal(t, map[string]any{"magasin": float64(2), "type_pointage": "arrivee"}, body)
	assert.Equal(t, 0, handler.count("GET", "/api/stores/2/"))
}

func TestAttendanceCheckIn_StoreWithoutCoordinates(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/stores/3/", jsonResponse(200, `{"id": 3, "nom": "Entrepôt", "latitude": null, "longitude": null}`)).
		On("POST", "/api/attendance/", jsonResponse(201, `{"id": 35, "type_pointage": "arrivee"}`))
	setupTestEnvWithHandler(t, handler)

	_, errOut, err := runCmd(t, "", "attendance", "check-in", "--store", "3", "--lat", "14.0", "--lng", "-17.0")
	require.NoError(t, err)
	assert.Contains(t, errOut, `Warning: store "Entrepôt" has no coordinates`)
}

func TestAttendanceCheckIn_Validation(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_, _, err := runCmd(t, "", "attendance", "check-in", "--store", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lat and --lng are required")

	_, _, err = runCmd(t, "", "attendance", "check-in", "--store", "1", "--type", "sieste", "--skip-geo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --type "sieste"`)
}

func TestAttendanceList_Filters(t *testing.T) {
	handler := newRouteHandler().On("GET", "/api/attendance/", jsonResponse(200, `{"results": [
		{"id": 1, "utilisateur": {"id": 4, "prenom": "Awa", "nom": "Diop"}, "magasin": 1, "type_pointage": "arrivee", "horodatage": "2024-05-01T08:00:00Z"},
		{"id": 2, "utilisateur": 4, "magasin": 1, "type_pointage": "depart", "horodatage": "2024-05-02T17:00:00Z"},
		{"id": 3, "utilisateur": 5, "magasin": 2, "type_pointage": "arrivee", "horodatage": "2024-05-02T08:10:00Z"}
	]}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "attendance", "list", "--user-id", "4", "--since", "2024-05-02T00:00:00Z", "-o", "json")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0]["id"])
}

func TestAttendanceUpdate_Time(t *testing.T) {
	handler := newRouteHandler().
		On("PATCH", "/api/attendance/2/", jsonResponse(200, `{"id": 2, "type_pointage": "depart"}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "attendance", "update", "2", "--time", "2024-05-02T17:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"horodatage": "2024-05-02T17:30:00Z"}, handler.last(t, "PATCH", "/api/attendance/2/").JSON)

	_, _, err = runCmd(t, "", "attendance", "update", "2", "--time", "bientôt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --time")
}
