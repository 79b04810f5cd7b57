// Package chat implements the StockPro assistant: a rule-based responder
// that maps free text to canned French answers, and a Session that keeps the
// conversation log around a simulated typing delay.
package chat

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// DefaultName replaces a missing first name in greetings.
const DefaultName = "utilisateur"

// User is who the assistant is talking to.
type User struct {
	Prenom string
	Admin  bool
}

func (u User) displayName() string {
	if name := strings.TrimSpace(u.Prenom); name != "" {
		return name
	}
	return DefaultName
}

// Intent names a keyword group.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentThanks          Intent = "thanks"
	IntentFarewell        Intent = "farewell"
	IntentStock           Intent = "stock"
	IntentAttendance      Intent = "attendance"
	IntentProducts        Intent = "products"
	IntentStores          Intent = "stores"
	IntentUsers           Intent = "users"
	IntentMessaging       Intent = "messaging"
	IntentDashboard       Intent = "dashboard"
	IntentTroubleshooting Intent = "technical-problem"
	IntentHelp            Intent = "help"
	IntentExport          Intent = "export"
	IntentSecurity        Intent = "security"
	IntentFallback        Intent = "fallback"
)

type rule struct {
	intent   Intent
	keywords []string
	reply    func(u User) string
}

func same(text string) func(User) string {
	return func(User) string { return text }
}

func byRole(admin, employee string) func(User) string {
	return func(u User) string {
		if u.Admin {
			return admin
		}
		return employee
	}
}

// rules are tested in order; the first group with a keyword contained in the
// lower-cased input wins.
var rules = []rule{
	{IntentGreeting, []string{"bonjour", "salut", "hello", "bonsoir"}, func(u User) string {
		return fmt.Sprintf(greetingFormat, u.displayName())
	}},
	{IntentThanks, []string{"merci", "remercie"}, same(thanksText)},
	{IntentFarewell, []string{"au revoir", "bye", "à bientôt"}, same(farewellText)},
	{IntentStock, []string{"stock", "inventaire", "quantité"}, byRole(stockAdminText, stockEmployeeText)},
	{IntentAttendance, []string{"pointage", "présence", "pointer", "horaire"}, byRole(attendanceAdminText, attendanceEmployeeText)},
	{IntentProducts, []string{"produit", "article", "référence"}, byRole(productsAdminText, productsEmployeeText)},
	{IntentStores, []string{"magasin", "boutique", "point de vente"}, byRole(storesAdminText, storesEmployeeText)},
	{IntentUsers, []string{"utilisateur", "employé", "équipe", "compte"}, byRole(usersAdminText, usersEmployeeText)},
	{IntentMessaging, []string{"message", "communication", "chat"}, byRole(messagingAdminText, messagingEmployeeText)},
	{IntentDashboard, []string{"dashboard", "tableau de bord", "statistique", "rapport"}, byRole(dashboardAdminText, dashboardEmployeeText)},
	{IntentTroubleshooting, []string{"problème", "erreur", "bug", "marche pas", "fonctionne pas"}, same(troubleshootingText)},
	{IntentHelp, []string{"aide", "help", "comment", "tutorial"}, byRole(helpAdminText, helpEmployeeText)},
	{IntentExport, []string{"export", "rapport", "pdf", "csv"}, byRole(exportAdminText, exportEmployeeText)},
	{IntentSecurity, []string{"sécurité", "permission", "accès", "mot de passe"}, same(securityText)},
}

// Classify returns the first keyword group matching text, or IntentFallback.
func Classify(text string) Intent {
	if r, ok := match(text); ok {
		return r.intent
	}
	return IntentFallback
}

func match(text string) (rule, bool) {
	message := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(message, kw) {
				return r, true
			}
		}
	}
	return rule{}, false
}

// Responder answers messages. Its random source only picks the fallback
// template.
type Responder struct {
	intn func(n int) int
}

// NewResponder returns a Responder drawing fallback choices from intn, which
// must return a value in [0, n). A nil intn uses math/rand/v2.
func NewResponder(intn func(n int) int) *Responder {
	if intn == nil {
		intn = rand.IntN
	}
	return &Responder{intn: intn}
}

// Respond returns the canned answer for text. It never fails: input that
// matches no keyword group gets one of the fallback templates, quoting the
// input verbatim.
func (r *Responder) Respond(text string, u User) string {
	if rule, ok := match(text); ok {
		return rule.reply(u)
	}
	i := r.intn(len(fallbackFormats))
	if i < 0 || i >= len(fallbackFormats) {
		i = 0
	}
	return fmt.Sprintf(fallbackFormats[i], text)
}

var defaultResponder = NewResponder(nil)

// Respond answers text with the package default random source.
func Respond(text string, u User) string {
	return defaultResponder.Respond(text, u)
}

// Welcome is the assistant's opening line.
func Welcome(u User) string {
	return fmt.Sprintf(welcomeFormat, u.displayName())
}

// Fallbacks renders every fallback template for text, in order.
func Fallbacks(text string) []string {
	out := make([]string, len(fallbackFormats))
	for i, f := range fallbackFormats {
		out[i] = fmt.Sprintf(f, text)
	}
	return out
}
