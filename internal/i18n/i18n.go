package i18n

import (
	"sort"
	"strings"
)

const DefaultLanguage = "en"

type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

var languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "pcm", Name: "Nigerian Pidgin", NativeName: "Naijá"},
	{Code: "efi", Name: "Efik", NativeName: "Efik"},
	{Code: "ig", Name: "Igbo", NativeName: "Asụsụ Igbo"},
	{Code: "yo", Name: "Yoruba", NativeName: "Èdè Yorùbá"},
	{Code: "ha", Name: "Hausa", NativeName: "Harshen Hausa"},
}

func Supported() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Normalize lowercases a code and drops any region suffix ("fr-FR" -> "fr").
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}

func IsSupported(code string) bool {
	_, ok := tables[Normalize(code)]
	return ok
}

// Translate looks key up in lang, then English, then returns key itself.
func Translate(lang, key string) string {
	if t, ok := tables[Normalize(lang)]; ok {
		if v, ok := t[key]; ok {
			return v
		}
	}
	if v, ok := tables[DefaultLanguage][key]; ok {
		return v
	}
	return key
}

// Table is the English table overlaid with lang's entries.
func Table(lang string) map[string]string {
	out := make(map[string]string, len(tables[DefaultLanguage]))
	for k, v := range tables[DefaultLanguage] {
		out[k] = v
	}
	if t, ok := tables[Normalize(lang)]; ok {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

func Keys() []string {
	keys := make([]string, 0, len(tables[DefaultLanguage]))
	for k := range tables[DefaultLanguage] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
