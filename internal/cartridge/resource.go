package cartridge

import "strings"

// Exact resource types Schoology stamps on QTI quizzes.
const (
	typeQTI1 = "imsqti_xmlv1p2"
	typeQTI2 = "imsqti_xmlv2p1"
)

// Substrings that mark a resource type as quiz-like. Case-sensitive.
var quizTypeHints = []string{"assessment", "qti", "quiz"}

// IsQuizType reports whether a manifest resource type string declares quiz
// content: either an exact QTI type or any quiz-like hint substring.
func IsQuizType(t string) bool {
	if t == typeQTI1 || t == typeQTI2 {
		return true
	}
	for _, hint := range quizTypeHints {
		if strings.Contains(t, hint) {
			return true
		}
	}
	return false
}

// SelectQuizResources filters the manifest down to quiz-like resources,
// preserving document order. Resources without a type or without the
// required identifier are skipped silently.
func SelectQuizResources(m Manifest) []Resource {
	var out []Resource
	for _, r := range m.Resources {
		if r.Type == "" || !IsQuizType(r.Type) {
			continue
		}
		if r.Identifier == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
