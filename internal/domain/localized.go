package domain

import "sort"

// LocalizedValue is a single translation. Translated marks machine-translated
// values so editors can tell them apart from manually entered ones.
type LocalizedValue struct {
	Value      string
	Translated bool
}

// LocalizedText maps a language code to its value. Treat it as read-only:
// With returns a modified copy.
type LocalizedText map[string]LocalizedValue

// Get returns the value for lang, or "" when absent.
func (t LocalizedText) Get(lang string) string {
	return t[lang].Value
}

// GetOr returns the value for lang, falling back to fallback's value.
func (t LocalizedText) GetOr(lang, fallback string) string {
	if v := t[lang].Value; v != "" {
		return v
	}
	return t[fallback].Value
}

// With returns a copy of t with lang set to value.
func (t LocalizedText) With(lang, value string, translated bool) LocalizedText {
	out := t.Clone()
	if out == nil {
		out = make(LocalizedText, 1)
	}
	out[lang] = LocalizedValue{Value: value, Translated: translated}
	return out
}

// Clone returns a shallow copy. A nil map stays nil.
func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	out := make(LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Languages returns the language codes with a non-empty value, sorted.
func (t LocalizedText) Languages() []string {
	langs := make([]string, 0, len(t))
	for lang, v := range t {
		if v.Value != "" {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

// Equal reports whether both maps hold the same values.
func (t LocalizedText) Equal(other LocalizedText) bool {
	if len(t) != len(other) {
		return false
	}
	for k, v := range t {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
