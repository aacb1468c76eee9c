package i18n

import "strings"

type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
)

func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case Arabic, English:
		return Language(s), true
	}
	return "", false
}

// BuildDictionary converts a flat translation list into the nested map the
// client i18n layer consumes: "events.days" becomes {"events":{"days":...}}.
// The result is a plain value handed to the caller; nothing here is cached or
// mutated afterwards, so refreshing means calling the builder again.
func BuildDictionary(translations []Translation, lang Language) map[string]any {
	dict := make(map[string]any)
	for _, tr := range translations {
		text := tr.EnglishText
		if lang == Arabic {
			text = tr.ArabicText
		}

		parts := strings.Split(tr.Key, ".")
		node := dict
		for i, part := range parts {
			if i == len(parts)-1 {
				node[part] = text
				break
			}
			child, ok := node[part].(map[string]any)
			if !ok {
				// A leaf already sits at this path; the deeper key wins and
				// the old leaf is replaced by a branch.
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
	}
	return dict
}
