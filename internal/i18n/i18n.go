// Package i18n supplies the display strings for the four supported
// languages. Labels feed presentation only; they play no part in data
// correctness.
package i18n

// Labels is the full set of user-facing strings.
type Labels struct {
	ListTitle string
	InBasket  string
	Empty     string
	Total     string

	Added   string
	Toggled string
	Edited  string
	Removed string
	Moved   string
	Cleared string

	ShareText  string
	LinkCopied string
	NothingTo  string
	ConfirmAll string
}

var translations = map[string]Labels{
	"en": {
		ListTitle: "Shopping list", InBasket: "In basket", Empty: "no items", Total: "Total",
		Added: "added", Toggled: "updated", Edited: "edited", Removed: "removed",
		Moved: "moved", Cleared: "cleared",
		ShareText: "My shopping list: ", LinkCopied: "link copied",
		NothingTo: "nothing to share", ConfirmAll: "clear the whole list? [y/N] ",
	},
	"es": {
		ListTitle: "Lista de compras", InBasket: "En la cesta", Empty: "sin artículos", Total: "Total",
		Added: "añadido", Toggled: "actualizado", Edited: "editado", Removed: "eliminado",
		Moved: "movido", Cleared: "vaciada",
		ShareText: "Mi lista de compras: ", LinkCopied: "enlace copiado",
		NothingTo: "nada que compartir", ConfirmAll: "¿vaciar toda la lista? [y/N] ",
	},
	"cs": {
		ListTitle: "Nákupní seznam", InBasket: "V košíku", Empty: "žádné položky", Total: "Celkem",
		Added: "přidáno", Toggled: "upraveno", Edited: "upraveno", Removed: "odstraněno",
		Moved: "přesunuto", Cleared: "vymazáno",
		ShareText: "Můj nákupní seznam: ", LinkCopied: "odkaz zkopírován",
		NothingTo: "není co sdílet", ConfirmAll: "vymazat celý seznam? [y/N] ",
	},
	"de": {
		ListTitle: "Einkaufsliste", InBasket: "Im Korb", Empty: "keine Einträge", Total: "Gesamt",
		Added: "hinzugefügt", Toggled: "aktualisiert", Edited: "bearbeitet", Removed: "entfernt",
		Moved: "verschoben", Cleared: "geleert",
		ShareText: "Meine Einkaufsliste: ", LinkCopied: "Link kopiert",
		NothingTo: "nichts zu teilen", ConfirmAll: "gesamte Liste leeren? [y/N] ",
	},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Pick returns the labels for lang, falling back to English.
func Pick(lang string) Labels {
	if l, ok := translations[lang]; ok {
		return l
	}
	return translations["en"]
}
