package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpro/stockpro-cli/internal/chat"
	"github.com/stockpro/stockpro-cli/internal/config"
)

func TestChatAsk_AnswersByRole(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	out, _, err := runCmd(t, "", "chat", "ask", "--no-delay", "--role", "admin", "Comment", "gérer", "le", "stock", "?")
	require.NoError(t, err)
	assert.Contains(t, out, "Pour gérer votre stock efficacement")

	out, _, err = runCmd(t, "", "chat", "ask", "--no-delay", "--role", "employee", "mon stock")
	require.NoError(t, err)
	assert.Contains(t, out, "Pour gérer le stock de votre magasin")
}

func TestChatAsk_UsesStoredProfile(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())
	require.NoError(t, config.SaveSession(config.Session{
		AccessToken: "a",
		Profile:     config.Profile{Prenom: "Awa", Role: "employee"},
	}))

	out, _, err := runCmd(t, "", "chat", "ask", "--no-delay", "bonjour")
	require.NoError(t, err)
	assert.Contains(t, out, "Bonjour Awa !")

	out, _, err = runCmd(t, "", "chat", "ask", "--no-delay", "--name", "Moussa", "salut")
	require.NoError(t, err)
	assert.Contains(t, out, "Bonjour Moussa !")
}

func TestChatAsk_JSON(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	out, _, err := runCmd(t, "", "chat", "ask", "--no-delay", "-o", "json", "merci")
	require.NoError(t, err)

	var turn chat.Turn
	require.NoError(t, json.Unmarshal([]byte(out), &turn))
	assert.True(t, turn.IsBot)
	assert.NotEmpty(t, turn.ID)
	assert.True(t, strings.HasPrefix(turn.Content, "Je vous en prie"))
}

func TestChatAsk_InvalidRole(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_, _, err := runCmd(t, "", "chat", "ask", "--no-delay", "--role", "manager", "stock")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --role "manager"`)
}

func TestChatREPL(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	out, errOut, err := runCmd(t, "bonjour\n\nmerci\nquitter\npointage\n", "chat", "--no-delay", "--name", "Awa")
	require.NoError(t, err)

	assert.Contains(t, out, "StockPro: Bonjour Awa ! Je suis votre assistant IA")
	assert.Contains(t, out, "Ravi de vous revoir")
	assert.Contains(t, out, "Je vous en prie")
	assert.NotContains(t, out, "pointage", "input after the exit word is ignored")
	assert.NotContains(t, errOut, typingIndicator)
}

func TestChatREPL_JSONTranscript(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	out, _, err := runCmd(t, "problème d'affichage\n", "chat", "--no-delay", "--role", "admin", "-o", "json")
	require.NoError(t, err)

	var turns []chat.Turn
	require.NoError(t, json.Unmarshal([]byte(out), &turns))
	require.Len(t, turns, 3)
	assert.True(t, turns[0].IsBot)
	assert.False(t, turns[1].IsBot)
	assert.Equal(t, "problème d'affichage", turns[1].Content)
	assert.Contains(t, turns[2].Content, "Dépannage technique")
}

func TestIsChatExit(t *testing.T) {
	for _, line := range []string{"quit", "EXIT", " quitter ", "/quit", ":q"} {
		assert.True(t, isChatExit(line), line)
	}
	for _, line := range []string{"", "quitte", "au revoir"} {
		assert.False(t, isChatExit(line), line)
	}
}

func TestChatREPL_QuotesInputAsTyped(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	out, _, err := runCmd(t, "  quelle heure ?  \n", "chat", "--no-delay", "-o", "json")
	require.NoError(t, err)

	var turns []chat.Turn
	require.NoError(t, json.Unmarshal([]byte(out), &turns))
	require.Len(t, turns, 3)
	assert.Equal(t, "  quelle heure ?  ", turns[1].Content)
	assert.Contains(t, turns[2].Content, `"  quelle heure ?  "`)
}
