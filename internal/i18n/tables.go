package i18n

var tables = map[string]map[string]string{
	"en": {
		"welcome.title":          "Welcome to Carnival Calabar",
		"welcome.subtitle":       "Africa's biggest street party",
		"nav.events":             "Events",
		"nav.hotels":             "Hotels",
		"nav.bands":              "Bands",
		"nav.safety":             "Safety",
		"nav.profile":            "Profile",
		"nav.concierge":          "Concierge",
		"common.loading":         "Loading...",
		"common.save":            "Save",
		"common.cancel":          "Cancel",
		"common.error":           "Something went wrong",
		"events.featured":        "Featured events",
		"events.live_now":        "Live now",
		"hotels.book_now":        "Book now",
		"hotels.per_night":       "per night",
		"booking.confirmed":      "Booking confirmed",
		"booking.pending":        "Awaiting payment",
		"booking.no_rooms":       "No rooms available for these dates",
		"bands.vote":             "Vote",
		"bands.already_voted":    "You have already voted this year",
		"bands.vote_success":     "Thank you for voting",
		"safety.emergency":       "Emergency",
		"safety.report_incident": "Report an incident",
		"safety.family":          "Family group",
		"safety.mark_missing":    "Mark as missing",
		"safety.mark_found":      "Mark as found",
		"safety.share_location":  "Share my location",
		"chat.placeholder":       "Ask the concierge anything",
		"errors.unauthorized":    "Please sign in to continue",
		"errors.not_found":       "We could not find that",
	},
	"fr": {
		"welcome.title":          "Bienvenue au Carnaval de Calabar",
		"welcome.subtitle":       "La plus grande fête de rue d'Afrique",
		"nav.events":             "Événements",
		"nav.hotels":             "Hôtels",
		"nav.bands":              "Groupes",
		"nav.safety":             "Sécurité",
		"nav.profile":            "Profil",
		"common.loading":         "Chargement...",
		"common.save":            "Enregistrer",
		"common.cancel":          "Annuler",
		"common.error":           "Une erreur s'est produite",
		"hotels.book_now":        "Réserver",
		"hotels.per_night":       "par nuit",
		"booking.confirmed":      "Réservation confirmée",
		"bands.vote":             "Voter",
		"bands.already_voted":    "Vous avez déjà voté cette année",
		"safety.emergency":       "Urgence",
		"safety.report_incident": "Signaler un incident",
		"safety.share_location":  "Partager ma position",
		"booking.no_rooms":       "Aucune chambre disponible pour ces dates",
		"errors.unauthorized":    "Veuillez vous connecter pour continuer",
		"errors.not_found":       "Introuvable",
	},
	"pcm": {
		"welcome.title":       "Welcome to Carnival Calabar o",
		"welcome.subtitle":    "Di biggest street party for Africa",
		"nav.events":          "Wetin dey happen",
		"common.loading":      "E dey load...",
		"common.error":        "Wahala don happen",
		"hotels.book_now":     "Book am now",
		"bands.vote":          "Vote",
		"bands.already_voted": "You don vote already dis year",
		"safety.emergency":    "Emergency",
		"safety.mark_missing": "Person don loss",
		"safety.mark_found":   "We don see am",
	},
	"efi": {
		"welcome.title":    "Amedi ke Carnival Calabar",
		"safety.emergency": "Ndik",
	},
	"ig": {
		"welcome.title":  "Nnọọ na Carnival Calabar",
		"common.save":    "Chekwaa",
		"nav.events":     "Mmemme",
		"common.loading": "Na-ebu...",
	},
	"yo": {
		"welcome.title":  "Ẹ kú àbọ̀ sí Carnival Calabar",
		"common.save":    "Fipamọ́",
		"common.cancel":  "Fagilé",
		"common.loading": "Ó ń gbé...",
	},
	"ha": {
		"welcome.title":  "Barka da zuwa Carnival Calabar",
		"common.save":    "Ajiye",
		"common.cancel":  "Soke",
		"common.loading": "Ana lodawa...",
	},
}
