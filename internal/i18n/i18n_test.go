package i18n

import (
	"testing"

	"github.com/bountx/animal-ranking/internal/score"
)

func TestResolve(t *testing.T) {
	translations := Index([]Translation{
		{OriginalName: "Lion", Language: "pl", TranslatedName: "Lew", TranslatedArticle: "Król zwierząt."},
	})

	tests := []struct {
		name        string
		locale      string
		animal      string
		wantName    string
		wantArticle string
	}{
		{
			name:        "base locale uses native fields",
			locale:      "en",
			animal:      "Lion",
			wantName:    "Lion",
			wantArticle: "King of beasts.",
		},
		{
			name:        "matching translation wins",
			locale:      "pl",
			animal:      "Lion",
			wantName:    "Lew",
			wantArticle: "Król zwierząt.",
		},
		{
			name:        "missing translation falls back to native",
			locale:      "pl",
			animal:      "Octopus",
			wantName:    "Octopus",
			wantArticle: "King of beasts.",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.animal, "King of beasts.", tc.locale, translations)
			if got.Name != tc.wantName {
				t.Fatalf("name = %q, want %q", got.Name, tc.wantName)
			}
			if got.Article != tc.wantArticle {
				t.Fatalf("article = %q, want %q", got.Article, tc.wantArticle)
			}
		})
	}
}

func TestResolveWrongLanguageEntry(t *testing.T) {
	// An index built from another locale's translations must not leak into
	// the requested locale.
	translations := Index([]Translation{
		{OriginalName: "Lion", Language: "de", TranslatedName: "Löwe"},
	})

	got := Resolve("Lion", "article", "pl", translations)
	if got.Name != "Lion" {
		t.Fatalf("expected native fallback, got %q", got.Name)
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"pl", "pl"},
		{"", "en"},
		{"de", "en"},
		{"EN", "en"},
	}
	for _, tc := range tests {
		if got := NormalizeLocale(tc.in); got != tc.want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel(score.OverallCoolness, "pl"); got != "Ogólna fajność" {
		t.Fatalf("pl label = %q", got)
	}
	if got := CategoryLabel(score.Shape, "en"); got != "Shape" {
		t.Fatalf("en label = %q", got)
	}
	if got := CategoryLabel(score.Shape, "de"); got != "Shape" {
		t.Fatalf("unknown locale label = %q", got)
	}
}
