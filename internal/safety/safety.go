// Package safety holds the keyword gate for messages that hint at
// self-harm. It deliberately trades precision for recall: a false
// positive shows a supportive message, a false negative misses a real
// risk signal.
package safety

import "strings"

var crisisKeywords = []string{
	"bunuh diri", "suicide", "pengen mati", "aku mau mati", "nggak pengen hidup",
	"self harm", "self-harm", "nyilet", "melukai diri", "mengakhiri hidup",
	"overdosis", "loncat", "gantung diri",
}

// IsCrisis reports whether the text contains any crisis keyword,
// case-insensitively, anywhere in the message.
func IsCrisis(text string) bool {
	t := strings.ToLower(text)
	for _, k := range crisisKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
