package chat

// Canned replies, in French like the rest of the StockPro interface.
const (
	thanksText             = "Je vous en prie ! C'est un plaisir de vous aider. N'hésitez pas si vous avez d'autres questions sur StockPro."
	farewellText           = "Au revoir ! J'espère avoir pu vous aider. À bientôt sur StockPro !"
	stockAdminText         = "Pour gérer votre stock efficacement :\n\n📊 **Dashboard** : Consultez les statistiques globales et alertes\n📦 **Gestion des Stocks** : Ajoutez, modifiez et suivez les quantités\n📈 **Mouvements** : Historique complet des entrées/sorties\n⚠️ **Alertes** : Notifications automatiques pour les stocks bas\n\nVoulez-vous que je vous guide sur une fonctionnalité spécifique ?"
	stockEmployeeText      = "Pour gérer le stock de votre magasin :\n\n📦 **Section Stock** : Consultez les produits disponibles\n➕ **Mouvements** : Enregistrez les entrées/sorties\n📊 **Quantités** : Vérifiez les niveaux actuels\n⚠️ **Alertes** : Surveillez les produits en rupture\n\nBesoin d'aide pour une action spécifique ?"
	attendanceAdminText    = "Gestion des présences administrateur :\n\n👥 **Section Présences** : Consultez tous les pointages\n📊 **Statistiques** : Temps de travail et pauses\n📄 **Exports** : Générez des rapports CSV/PDF\n📍 **Géolocalisation** : Vérifiez la validité des pointages\n\nQuelle information recherchez-vous ?"
	attendanceEmployeeText = "Pour votre pointage quotidien :\n\n🕐 **Arrivée/Départ** : Pointez dans un rayon de 100m du magasin\n☕ **Pauses** : Gérez vos temps de pause\n📱 **Géolocalisation** : Activez le GPS pour pointer\n📊 **Historique** : Consultez vos pointages précédents\n\nProblème avec le pointage ?"
	productsAdminText      = "Gestion des produits :\n\n➕ **Ajouter** : Créez de nouveaux produits avec images\n✏️ **Modifier** : Mettez à jour prix, seuils, catégories\n🏷️ **Références** : Gérez les codes produits\n⚠️ **Seuils d'alerte** : Configurez les alertes de stock\n🏭 **Fournisseurs** : Associez aux fournisseurs\n\nQue souhaitez-vous faire ?"
	productsEmployeeText   = "Consultation des produits :\n\n📦 **Catalogue** : Consultez tous les produits de votre magasin\n💰 **Prix** : Vérifiez les tarifs actuels\n📊 **Stock** : Quantités disponibles\n🔍 **Recherche** : Trouvez rapidement un produit\n\nCherchez-vous un produit en particulier ?"
	storesAdminText        = "Gestion des magasins :\n\n🏪 **Créer/Modifier** : Configurez vos points de vente\n📍 **Géolocalisation** : Définissez les coordonnées GPS\n📸 **Images** : Ajoutez des photos des magasins\n👥 **Assignation** : Liez les employés aux magasins\n\nQuelle action voulez-vous effectuer ?"
	storesEmployeeText     = "Informations sur votre magasin :\n\n🏪 **Magasin assigné** : Détermine votre zone de pointage\n📍 **Localisation** : Rayon de 100m pour pointer\n📦 **Stock local** : Produits de votre magasin uniquement\n\nContactez votre administrateur pour changer d'assignation."
	usersAdminText         = "Gestion des utilisateurs :\n\n👤 **Créer** : Nouveaux comptes employés/admins\n✏️ **Modifier** : Rôles, magasins, informations\n🔐 **Permissions** : Admin vs Employé\n🏪 **Assignation** : Liez aux magasins\n📊 **Activité** : Consultez les présences\n\nQue voulez-vous gérer ?"
	usersEmployeeText      = "Gestion de votre compte :\n\n👤 **Profil** : Vos informations personnelles\n🔐 **Permissions** : Définies par votre administrateur\n🏪 **Magasin** : Votre point de vente assigné\n\nPour modifier vos permissions, contactez votre administrateur."
	messagingAdminText     = "Système de messagerie :\n\n💬 **Messages** : Communiquez avec tous les employés\n📨 **Notifications** : Recevez les alertes importantes\n👥 **Conversations** : Discussions individuelles\n🔔 **Temps réel** : Messages instantanés\n\nVoulez-vous envoyer un message ?"
	messagingEmployeeText  = "Communication avec l'équipe :\n\n💬 **Messages** : Contactez les administrateurs\n📨 **Notifications** : Recevez les informations importantes\n🤖 **Assistant IA** : Moi, pour l'aide technique !\n\nComment puis-je vous aider à communiquer ?"
	dashboardAdminText     = "Votre dashboard administrateur :\n\n📊 **Vue d'ensemble** : Statistiques globales en temps réel\n📈 **Graphiques** : Répartition des stocks par magasin\n⚠️ **Alertes** : Produits en rupture de stock\n💰 **Valeur** : Valeur totale de votre inventaire\n📋 **Résumé** : Produits, magasins, utilisateurs\n\nQuelle métrique vous intéresse ?"
	dashboardEmployeeText  = "Votre dashboard employé :\n\n🏪 **Votre magasin** : Informations spécifiques à votre point de vente\n📦 **Stock local** : Produits de votre magasin\n⚠️ **Alertes** : Produits à réapprovisionner\n⚡ **Actions rapides** : Pointage et consultation stock\n\nQue souhaitez-vous consulter ?"
	troubleshootingText    = "🔧 **Dépannage technique** :\n\n1️⃣ **Rafraîchir** : Actualisez la page (F5)\n2️⃣ **Connexion** : Vérifiez votre connexion internet\n3️⃣ **Cache** : Videz le cache du navigateur\n4️⃣ **Navigateur** : Utilisez Chrome, Firefox ou Safari récent\n\n🆘 Si le problème persiste, contactez votre administrateur avec une description détaillée."
	helpAdminText          = "🎯 **Aide administrateur** - Je peux vous assister avec :\n\n📦 **Stock** : Gestion, mouvements, alertes\n🏪 **Magasins** : Configuration, géolocalisation\n👥 **Utilisateurs** : Création, permissions, assignation\n📊 **Rapports** : Statistiques, exports\n⚙️ **Paramètres** : Configuration système\n\n💡 **Astuce** : Soyez spécifique dans vos questions pour une aide personnalisée !"
	helpEmployeeText       = "🎯 **Aide employé** - Je peux vous aider avec :\n\n🕐 **Pointage** : Arrivée, départ, pauses\n📦 **Stock** : Consultation, mouvements\n💬 **Messages** : Communication avec l'équipe\n📱 **Application** : Navigation, fonctionnalités\n\n💡 **Astuce** : Décrivez votre besoin précis pour une aide ciblée !"
	exportAdminText        = "📄 **Exports et rapports** :\n\n📊 **Présences** : Rapports PDF/CSV des pointages\n📈 **Statistiques** : Données de performance\n📋 **Inventaire** : États des stocks\n⏰ **Périodes** : Filtrez par dates\n\nQuel type de rapport souhaitez-vous générer ?"
	exportEmployeeText     = "Les exports sont réservés aux administrateurs. Contactez votre responsable pour obtenir des rapports spécifiques."
	securityText           = "🔐 **Sécurité StockPro** :\n\n✅ **Authentification** : Connexion sécurisée requise\n🎭 **Rôles** : Admin vs Employé avec permissions différentes\n📍 **Géolocalisation** : Pointage sécurisé par GPS\n🔄 **Sessions** : Déconnexion automatique pour la sécurité\n\n⚠️ Ne partagez jamais vos identifiants !"
)

const (
	welcomeFormat  = "Bonjour %s ! Je suis votre assistant IA intelligent pour StockPro. Je peux vous aider avec toutes les fonctionnalités de l'application. Comment puis-je vous assister aujourd'hui ?"
	greetingFormat = "Bonjour %s ! Ravi de vous revoir. Je suis là pour vous aider avec StockPro. Que puis-je faire pour vous aujourd'hui ?"
)

// fallbackFormats quote the raw input with %s.
var fallbackFormats = [...]string{
	"Je comprends votre question sur \"%s\". Pour vous donner la meilleure réponse possible, pourriez-vous être plus spécifique ? Par exemple, cherchez-vous de l'aide sur le stock, le pointage, ou une autre fonctionnalité ?",
	"Intéressant ! Votre question concerne \"%s\". Je peux vous aider avec toutes les fonctionnalités de StockPro. Précisez votre besoin et je vous guiderai étape par étape.",
	"Je vois que vous vous intéressez à \"%s\". Pour une assistance optimale, dites-moi exactement ce que vous souhaitez faire dans StockPro.",
}
