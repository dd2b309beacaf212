package reduxevents

import "strings"

// FormatName turns a camelCase event name into its action type.
//
//	FormatName("myCoolEvent") == "MY_COOL_EVENT"
//
// Every ASCII uppercase letter starts a new word; a dot directly before an
// uppercase letter is dropped, and a single leading underscore is trimmed.
func FormatName(name string) string {
	out := make([]rune, 0, len(name)+4)
	for _, r := range name {
		if r < 'A' || r > 'Z' {
			out = append(out, r)
			continue
		}
		if n := len(out); n > 0 && out[n-1] == '.' {
			out = out[:n-1]
		}
		out = append(out, '_', r+('a'-'A'))
	}

	formatted := strings.TrimPrefix(string(out), "_")
	return strings.ToUpper(formatted)
}

// phaseTypes derives the three action types of a three-phase event.
func phaseTypes(name string) ActionTypes {
	base := FormatName(name)
	return ActionTypes{
		Request: base + "_REQUEST",
		Success: base + "_SUCCESS",
		Failure: base + "_FAILURE",
	}
}
