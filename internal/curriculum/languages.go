package curriculum

import "slices"

// Language is a language a curriculum can be built for.
type Language struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameFr string `json:"nameFr"`
}

var supportedLanguages = []Language{
	{ID: "swahili", Name: "Swahili", NameFr: "Swahili"},
	{ID: "hausa", Name: "Hausa", NameFr: "Haoussa"},
	{ID: "yoruba", Name: "Yoruba", NameFr: "Yoruba"},
	{ID: "zulu", Name: "Zulu", NameFr: "Zoulou"},
	{ID: "amharic", Name: "Amharic", NameFr: "Amharique"},
	{ID: "igbo", Name: "Igbo", NameFr: "Igbo"},
	{ID: "arabic", Name: "Arabic", NameFr: "Arabe"},
	{ID: "shona", Name: "Shona", NameFr: "Shona"},
	{ID: "somali", Name: "Somali", NameFr: "Somali"},
	{ID: "berber", Name: "Berber", NameFr: "Berbère"},
	{ID: "moore", Name: "Mooré", NameFr: "Mooré"},
	{ID: "lingala", Name: "Lingala", NameFr: "Lingala"},
	{ID: "twi", Name: "Twi", NameFr: "Twi"},
	{ID: "chichewa", Name: "Chichewa", NameFr: "Chichewa"},
	{ID: "wolof", Name: "Wolof", NameFr: "Wolof"},
}

// SupportedLanguages returns the languages in catalog order.
func SupportedLanguages() []Language {
	return slices.Clone(supportedLanguages)
}

// LookupLanguage returns the language with the given id.
func LookupLanguage(id string) (Language, bool) {
	for _, l := range supportedLanguages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}
