package schema

func init() {
	registerAll()
}

func registerAll() {
	registerUser()
	registerProduct()
	registerStore()
	registerSupplier()
	registerStock()
	registerMovement()
	registerAttendance()
	registerMessage()
}

func registerUser() {
	Register("user", Object(
		"A StockPro account, administrator or store employee",
		map[string]*Schema{
			"id":       Int("Unique user identifier"),
			"username": String("Login name"),
			"email":    String("Email address, also used to log in"),
			"nom":      String("Last name"),
			"prenom":   String("First name"),
			"role":     Enum("Access level", "admin", "employee"),
			"magasin":  Ref("Store the user is assigned to"),
			"image":    String("Profile picture URL"),
		},
		"id", "username", "email", "role",
	))
}

func registerProduct() {
	Register("product", Object(
		"A catalogue product sold in the stores",
		map[string]*Schema{
			"id":            Int("Unique product identifier"),
			"nom":           String("Product name"),
			"reference":     String("Internal reference code"),
			"categorie":     String("Category"),
			"prix_unitaire": Decimal("Unit price"),
			"seuil_alerte":  Int("Quantity at or below which a stock line is low"),
			"fournisseur":   Ref("Supplier"),
			"image":         String("Product picture URL"),
		},
		"id", "nom", "prix_unitaire",
	))
}

func registerStore() {
	Register("store", Object(
		"A physical store where stock is held and staff check in",
		map[string]*Schema{
			"id":        Int("Unique store identifier"),
			"nom":       String("Store name"),
			"adresse":   String("Postal address"),
			"latitude":  Number("Latitude in decimal degrees"),
			"longitude": Number("Longitude in decimal degrees"),
			"image":     String("Store picture URL"),
		},
		"id", "nom",
	))
}

func registerSupplier() {
	Register("supplier", Object(
		"A supplier of catalogue products",
		map[string]*Schema{
			"id":      Int("Unique supplier identifier"),
			"nom":     String("Supplier name"),
			"adresse": String("Postal address"),
			"contact": String("Phone number or email"),
			"image":   String("Supplier logo URL"),
		},
		"id", "nom",
	))
}

func registerStock() {
	Register("stock", Object(
		"The quantity of one product held in one store",
		map[string]*Schema{
			"id":               Int("Unique stock line identifier"),
			"produit":          Ref("Product"),
			"magasin":          Ref("Store"),
			"quantite":         Int("Units on hand"),
			"date_mise_a_jour": Timestamp("When the quantity last changed"),
		},
		"id", "produit", "magasin", "quantite",
	))
}

func registerMovement() {
	Register("movement", Object(
		"A stock entry or withdrawal",
		map[string]*Schema{
			"id":             Int("Unique movement identifier"),
			"produit":        Ref("Product moved"),
			"magasin":        Ref("Store concerned"),
			"type_mouvement": Enum("Direction of the movement", "entree", "sortie"),
			"quantite":       Int("Units moved"),
			"motif":          String("Reason given for the movement"),
			"date":           Timestamp("When the movement was recorded"),
		},
		"id", "produit", "magasin", "type_mouvement", "quantite",
	))
}

func registerAttendance() {
	Register("attendance", Object(
		"An attendance punch recorded at a store",
		map[string]*Schema{
			"id":            Int("Unique punch identifier"),
			"utilisateur":   Ref("User who punched"),
			"magasin":       Ref("Store where the punch was made"),
			"type_pointage": Enum("Punch type", "arrivee", "depart", "pause_debut", "pause_fin"),
			"horodatage":    Timestamp("When the punch was recorded"),
			"latitude":      Number("Latitude reported by the device"),
			"longitude":     Number("Longitude reported by the device"),
		},
		"id", "utilisateur", "magasin", "type_pointage",
	))
}

func registerMessage() {
	Register("message", Object(
		"An internal message between two users",
		map[string]*Schema{
			"id":           Int("Unique message identifier"),
			"expediteur":   Ref("Sender"),
			"destinataire": Ref("Recipient"),
			"contenu":      String("Message text"),
			"lu":           Bool("Whether the recipient has read the message"),
			"date_envoi":   Timestamp("When the message was sent"),
		},
		"id", "expediteur", "destinataire", "contenu",
	))
}
