// Package i18n resolves display text for the supported locales.
package i18n

import "github.com/bountx/animal-ranking/internal/score"

// BaseLocale is the language animals are authored in. Its name and article
// fields are always present, so every lookup has a fallback.
const BaseLocale = "en"

// Supported lists the locales the routing layer may supply.
var Supported = []string{"en", "pl"}

// Translation carries the localized fields for one animal in one language.
// At most one translation exists per (original name, language) pair.
type Translation struct {
	ID                int64  `json:"id"`
	OriginalName      string `json:"original_name"`
	Language          string `json:"language"`
	TranslatedName    string `json:"translated_name"`
	TranslatedArticle string `json:"translated_article"`
}

// Display is the resolved name and article for one animal in one locale.
type Display struct {
	Name    string `json:"name"`
	Article string `json:"article"`
}

// Index keys translations by original name for constant-time resolution.
// Later duplicates win, though the store's uniqueness constraint prevents them.
func Index(translations []Translation) map[string]Translation {
	idx := make(map[string]Translation, len(translations))
	for _, tr := range translations {
		idx[tr.OriginalName] = tr
	}
	return idx
}

// Resolve picks the display fields for an animal. The base locale uses the
// native fields directly; any other locale uses the matching translation when
// one exists and falls back to the native fields otherwise. A missing
// translation is expected, never an error.
func Resolve(name, article, locale string, translations map[string]Translation) Display {
	if locale == BaseLocale {
		return Display{Name: name, Article: article}
	}
	if tr, ok := translations[name]; ok && tr.Language == locale {
		return Display{Name: tr.TranslatedName, Article: tr.TranslatedArticle}
	}
	return Display{Name: name, Article: article}
}

// NormalizeLocale maps unknown locale codes to the base locale.
func NormalizeLocale(locale string) string {
	for _, l := range Supported {
		if locale == l {
			return l
		}
	}
	return BaseLocale
}

var categoryLabels = map[string]map[score.Category]string{
	"en": {
		score.Color:             "Color",
		score.RelativeStrength:  "Relative Strength",
		score.Curiosity:         "Curiosity",
		score.History:           "History",
		score.SurvivalMechanism: "Survival Mechanism",
		score.Shape:             "Shape",
		score.Intelligence:      "Intelligence",
		score.RelativeSpeed:     "Relative Speed",
		score.WorldAttitude:     "World Attitude",
		score.OverallCoolness:   "Overall Coolness",
	},
	"pl": {
		score.Color:             "Kolor",
		score.RelativeStrength:  "Siła relatywnie do wielkości",
		score.Curiosity:         "Ciekawość",
		score.History:           "Historia",
		score.SurvivalMechanism: "Mechanizm przetrwania",
		score.Shape:             "Kształt",
		score.Intelligence:      "Inteligencja",
		score.RelativeSpeed:     "Prędkość relatywna",
		score.WorldAttitude:     "Nastawienie do świata",
		score.OverallCoolness:   "Ogólna fajność",
	},
}

// CategoryLabel returns the display label for a category in the given locale,
// falling back to the base locale for unknown codes.
func CategoryLabel(c score.Category, locale string) string {
	labels, ok := categoryLabels[locale]
	if !ok {
		labels = categoryLabels[BaseLocale]
	}
	return labels[c]
}
