package i18n

import (
	"sort"
	"strings"
	"sync/atomic"
)

// Message codes used by generated validators.
const (
	CodeValidationFailed   = "validation_failed"
	CodeAlternativesFailed = "alternatives_failed"
)

// Translator retrieves localized messages for validator codes.
// data fills {placeholders} in the message (for example "path" or "kind").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		CodeValidationFailed:   "Validation for {path} failed, should be a {kind}",
		CodeAlternativesFailed: "Validation for {path} failed, should match one of the {mode} alternatives",
	},
	"fr": {
		CodeValidationFailed:   "La validation de {path} a échoué, {kind} attendu",
		CodeAlternativesFailed: "La validation de {path} a échoué, aucune alternative {mode} ne correspond",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return fill(msg, data)
}

func fill(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Languages lists the built-in dictionary languages.
func Languages() []string {
	out := make([]string, 0, len(dictionaries))
	for l := range dictionaries {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Dict returns the built-in Translator for lang, falling back to "en".
func Dict(lang string) Translator {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: Dict("en")}) }

// SetLanguage switches the default Translator to a built-in language ("en"/"fr").
func SetLanguage(lang string) {
	current.Store(&holder{tr: Dict(lang)})
}

// SetTranslator replaces the default Translator implementation (not limited
// to the dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = Dict("en")
	}
	current.Store(&holder{tr: tr})
}

// Default returns the current default Translator.
func Default() Translator { return current.Load().tr }

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return Default().Message(code, data) }
