package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = User{Prenom: "Awa", Admin: true}
	employee = User{Prenom: "Moussa"}
)

func TestRespond_KeywordGroups(t *testing.T) {
	tests := []struct {
		input    string
		intent   Intent
		admin    string
		employee string
	}{
		{"Merci beaucoup", IntentThanks, thanksText, thanksText},
		{"bye", IntentFarewell, farewellText, farewellText},
		{"À bientôt !", IntentFarewell, farewellText, farewellText},
		{"Où en est l'inventaire ?", IntentStock, stockAdminText, stockEmployeeText},
		{"Comment POINTER mon arrivée", IntentAttendance, attendanceAdminText, attendanceEmployeeText},
		{"ajouter une référence", IntentProducts, productsAdminText, productsEmployeeText},
		{"ouvrir une boutique", IntentStores, storesAdminText, storesEmployeeText},
		{"créer un compte", IntentUsers, usersAdminText, usersEmployeeText},
		{"envoyer un message", IntentMessaging, messagingAdminText, messagingEmployeeText},
		{"le tableau de bord", IntentDashboard, dashboardAdminText, dashboardEmployeeText},
		{"un rapport mensuel", IntentDashboard, dashboardAdminText, dashboardEmployeeText},
		{"ça ne marche pas", IntentTroubleshooting, troubleshootingText, troubleshootingText},
		{"j'ai besoin d'aide", IntentHelp, helpAdminText, helpEmployeeText},
		{"exporter en CSV", IntentExport, exportAdminText, exportEmployeeText},
		{"changer mon mot de passe", IntentSecurity, securityText, securityText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.intent, Classify(tt.input))
			assert.Equal(t, tt.admin, Respond(tt.input, admin))
			assert.Equal(t, tt.employee, Respond(tt.input, employee))
		})
	}
}

func TestRespond_FirstMatchWins(t *testing.T) {
	// "stock" (stock group) comes before "produit" (products group).
	assert.Equal(t, IntentStock, Classify("stock du produit"))
	// Greeting beats everything.
	assert.Equal(t, IntentGreeting, Classify("Bonjour, problème de stock"))
	// "message" would match messaging but "magasin" is tested first.
	assert.Equal(t, IntentStores, Classify("message au magasin"))
}

func TestRespond_Greeting(t *testing.T) {
	got := Respond("bonjour", admin)
	assert.True(t, strings.HasPrefix(got, "Bonjour Awa !"), got)

	anonymous := Respond("Salut", User{Admin: true})
	assert.True(t, strings.HasPrefix(anonymous, "Bonjour utilisateur !"), anonymous)
}

func TestRespond_Fallback(t *testing.T) {
	input := "Quelle est la météo ?"
	options := Fallbacks(input)
	require.Len(t, options, 3)
	for _, opt := range options {
		assert.Contains(t, opt, `"`+input+`"`)
	}

	for i := range 3 {
		r := NewResponder(func(n int) int {
			assert.Equal(t, 3, n)
			return i
		})
		assert.Equal(t, options[i], r.Respond(input, employee))
	}

	// The default random source always lands on one of the three.
	for range 20 {
		assert.Contains(t, options, Respond(input, admin))
	}
}

func TestRespond_FallbackKeepsRawInput(t *testing.T) {
	input := "100% QUELQUE CHOSE"
	got := NewResponder(func(int) int { return 1 }).Respond(input, admin)
	assert.Contains(t, got, input)
	assert.Equal(t, IntentFallback, Classify(input))
}

func TestRespond_OutOfRangeRandomIsClamped(t *testing.T) {
	r := NewResponder(func(int) int { return 7 })
	assert.Equal(t, Fallbacks("xyz")[0], r.Respond("xyz", admin))
}

func TestWelcome(t *testing.T) {
	assert.True(t, strings.HasPrefix(Welcome(employee), "Bonjour Moussa ! Je suis votre assistant IA"))
	assert.True(t, strings.HasPrefix(Welcome(User{Prenom: "  "}), "Bonjour utilisateur !"))
}
