package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersBody = `{"results": [
	{"id": 1, "username": "admin", "email": "admin@stockpro.sn", "prenom": "Moussa", "nom": "Ndiaye", "role": "admin"},
	{"id": 4, "username": "awa", "email": "awa@stockpro.sn", "prenom": "Awa", "nom": "Diop", "role": "employee", "magasin": 1}
]}`

func TestMessagesSend_ResolvesRecipient(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/auth/users/", jsonResponse(200, usersBody)).
		On("POST", "/api/messages/", jsonResponse(201, `{"id": 70, "expediteur": 1, "destinataire": 4, "contenu": "Inventaire demain 8h", "lu": false}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "messages", "send", "--to", "awa@stockpro.sn", "Inventaire demain 8h")
	require.NoError(t, err)
	assert.Equal(t, "Sent message #70\n", out)
	assert.Equal(t, map[string]any{"destinataire": float64(4), "contenu": "Inventaire demain 8h"},
		handler.last(t, "POST", "/api/messages/").JSON)
}

func TestMessagesSend_FromStdin(t *testing.T) {
	handler := newRouteHandler().
		On("POST", "/api/messages/", jsonResponse(201, `{"id": 71}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "Livraison reçue\n", "messages", "send", "--to", "4", "-")
	require.NoError(t, err)
	assert.Equal(t, "Livraison reçue", handler.last(t, "POST", "/api/messages/").JSON["contenu"])
}

func TestMessagesSend_Validation(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "messages", "send", "bonjour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--to is required")

	_, _, err = runCmd(t, "", "messages", "send", "--to", "4", "   ")
	require.Error(t, err)

	_, _, err = runCmd(t, "", "messages", "send", "--to", "4", "--text", "a", "b-arg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts with --text")

	_, _, err = runCmd(t, "", "messages", "send", "--to", "4", "a", "b")
	require.Error(t, err)
	assert.Equal(t, exitUsage, ExitCode(err))

	assert.Equal(t, 0, handler.count("POST", "/api/messages/"))
}

func TestMessagesList_Unread(t *testing.T) {
	handler := newRouteHandler().On("GET", "/api/messages/", jsonResponse(200, `[
		{"id": 1, "expediteur": {"id": 1, "prenom": "Moussa"}, "destinataire": 4, "contenu": "Bonjour", "lu": true},
		{"id": 2, "expediteur": {"id": 1, "prenom": "Moussa"}, "destinataire": 4, "contenu": "Rupture de riz au Plateau", "lu": false},
		{"id": 3, "expediteur": 5, "destinataire": 4, "contenu": "Merci", "lu": false}
	]`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "messages", "list", "--unread", "--from-id", "1", "-o", "json")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Rupture de riz au Plateau", items[0]["contenu"])
}

func TestMessagesRead_Bulk(t *testing.T) {
	handler := newRouteHandler().
		On("PATCH", "/api/messages/2/", jsonResponse(200, `{"id": 2, "lu": true}`)).
		On("PATCH", "/api/messages/3/", jsonResponse(200, `{"id": 3, "lu": true}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCmd(t, "", "messages", "read", "2,3", "-o", "json")
	require.NoError(t, err)

	var summary bulkSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, map[string]any{"lu": true}, handler.last(t, "PATCH", "/api/messages/3/").JSON)
}
