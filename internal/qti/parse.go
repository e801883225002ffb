package qti

import "fmt"

// DocKind is decided once per body document from the root element's local
// name; every consumer switches over it exhaustively.
type DocKind int

const (
	DocLegacy      DocKind = iota // questestinterop root, QTI 1.2
	DocModern                     // assessment root
	DocUnsupported                // anything else
)

func (k DocKind) String() string {
	switch k {
	case DocLegacy:
		return "legacy"
	case DocModern:
		return "modern"
	default:
		return "unsupported"
	}
}

// ItemOutcome is the result of normalizing one item: a Question, or a
// structured skip reason. Recoverable per-item problems never error.
type ItemOutcome struct {
	Question Question
	OK       bool
	Reason   string // set when !OK
}

// Result is one parsed body document.
type Result struct {
	Kind     DocKind
	Quiz     Quiz
	Outcomes []ItemOutcome // one per encountered item, document order
}

// Parse reads a resolved quiz body. resID and resTitle come from the
// manifest resource and seed the quiz identity; a title inside the document
// overrides resTitle. Unsupported roots and structural gaps degrade to a
// placeholder quiz, not an error; only malformed XML fails.
func Parse(body []byte, resID, resTitle string) (Result, error) {
	root, err := decodeDocument(body)
	if err != nil {
		return Result{}, fmt.Errorf("parse quiz body: %w", err)
	}

	switch root.name {
	case "questestinterop":
		return parseLegacy(root, resID, resTitle), nil
	case "assessment":
		return parseModern(root, resID, resTitle), nil
	default:
		return Result{Kind: DocUnsupported, Quiz: Placeholder(resID, resTitle)}, nil
	}
}

// Placeholder is the degraded quiz used when a resource's body is missing,
// unparsable, or in an unsupported format: title preserved, no questions.
func Placeholder(id, title string) Quiz {
	return Quiz{ID: id, Title: title}
}
