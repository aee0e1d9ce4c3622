package tokens

import "github.com/sahilm/fuzzy"

const maxSuggestions = 3

// suggest returns up to three candidates that fuzzy-match name.
func suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}
	matches := fuzzy.Find(name, candidates)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Suggest exposes fuzzy suggestions for callers that report unknown keys of
// their own tables (spacing, font sizes, shadows, breakpoints).
func Suggest(name string, candidates []string) []string {
	return suggest(name, candidates)
}
