package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoresCreate_Form(t *testing.T) {
	handler := newRouteHandler().
		On("POST", "/api/stores/", jsonResponse(201, `{"id": 3, "nom": "Almadies"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "stores", "create", "--name", "Almadies", "--address", "Route des Almadies",
		"--lat", "14.7453", "--lng", "-17.5136")
	require.NoError(t, err)
	assert.Contains(t, out, "Created store #3: Almadies")

	assert.Equal(t, map[string]string{
		"nom":       "Almadies",
		"adresse":   "Route des Almadies",
		"latitude":  "14.7453",
		"longitude": "-17.5136",
	}, handler.last(t, "POST", "/api/stores/").Form)
}

func TestStoresCoordinatesValidation(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"lat without lng", []string{"stores", "create", "--name", "X", "--lat", "14.7"}, "--lat and --lng must be given together"},
		{"latitude out of range", []string{"stores", "create", "--name", "X", "--lat", "95", "--lng", "0"}, "latitude must be between -90 and 90"},
		{"update needs a field", []string{"stores", "update", "1"}, "at least one field flag is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	assert.Zero(t, handler.count("POST", "/api/stores/"))
}

func TestStoresUpdateAndReplace(t *testing.T) {
	handler := newRouteHandler().
		On("PATCH", "/api/stores/1/", jsonResponse(200, `{"id": 1, "nom": "Plateau"}`)).
		On("PUT", "/api/stores/1/", jsonResponse(200, `{"id": 1, "nom": "Plateau Centre"}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "stores", "update", "1", "--address", "Rue Carnot")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"adresse": "Rue Carnot"}, handler.last(t, "PATCH", "/api/stores/1/").Form)

	out, _, err := runCmd(t, "", "stores", "replace", "1", "--name", "Plateau Centre")
	require.NoError(t, err)
	assert.Contains(t, out, "Replaced store #1: Plateau Centre")
	assert.Equal(t, map[string]string{
		"nom":       "Plateau Centre",
		"adresse":   "",
		"latitude":  "",
		"longitude": "",
	}, handler.last(t, "PUT", "/api/stores/1/").Form)
}

func TestStoresGet(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/stores/1/", jsonResponse(200, `{"id": 1, "nom": "Plateau", "adresse": "Avenue Pompidou", "latitude": "14.670800", "longitude": "-17.438100"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "stores", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Plateau")
	assert.Contains(t, out, "Avenue Pompidou")
}

func TestSuppliersCreateAndUpdate(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/suppliers/", jsonResponse(200, suppliersBody)).
		On("POST", "/api/suppliers/", jsonResponse(201, `{"id": 5, "nom": "Thiès Agro"}`)).
		On("PATCH", "/api/suppliers/3/", jsonResponse(200, `{"id": 3, "nom": "Dakar Import"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "suppliers", "create", "--name", "Thiès Agro", "--contact", "+221 77 000 00 00")
	require.NoError(t, err)
	assert.Contains(t, out, "Created supplier #5: Thiès Agro")
	form := handler.last(t, "POST", "/api/suppliers/").Form
	assert.Equal(t, "Thiès Agro", form["nom"])
	assert.Equal(t, "+221 77 000 00 00", form["contact"])

	_, _, err = runCmd(t, "", "suppliers", "update", "3", "--address", "Rufisque")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"adresse": "Rufisque"}, handler.last(t, "PATCH", "/api/suppliers/3/").Form)

	_, _, err = runCmd(t, "", "suppliers", "update", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of --name")

	out, _, err = runCmd(t, "", "suppliers", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dakar Import")
}
