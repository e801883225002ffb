package cartridge

import (
	"strings"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/archive"
)

// Markers whose presence in a document's text makes it smell like a quiz
// body during the whole-tree scan.
var quizBodyMarkers = []string{"questestinterop", "assessment", "qti"}

// ResolveContent finds the physical file holding a resource's quiz body,
// trying three tiers strictly in order:
//  1. the resource href as a tree path,
//  2. the first declared .xml file href that resolves,
//  3. the first .xml file anywhere in the tree whose text looks like a quiz
//     body or mentions the resource identifier.
//
// Returns the body bytes, the resolved path, and ok=false when every tier
// fails; that is a per-resource condition, never an error.
func ResolveContent(res Resource, tree *archive.FileNode) ([]byte, string, bool) {
	if res.Href != "" {
		if node, ok := tree.Lookup(res.Href); ok && node.IsFile() {
			return node.Data(), res.Href, true
		}
	}

	for _, href := range res.Files {
		if !isXMLPath(href) {
			continue
		}
		if node, ok := tree.Lookup(href); ok && node.IsFile() {
			return node.Data(), href, true
		}
	}

	var (
		body  []byte
		where string
	)
	tree.WalkFiles(func(path string, node *archive.FileNode) bool {
		if !isXMLPath(path) {
			return true
		}
		if !looksLikeQuizBody(string(node.Data()), res.Identifier) {
			return true
		}
		body, where = node.Data(), path
		return false
	})
	if where != "" {
		return body, where, true
	}
	return nil, "", false
}

func isXMLPath(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".xml")
}

// looksLikeQuizBody is the tier-3 content sniff: a literal substring match
// against the known body markers or the resource's own identifier.
func looksLikeQuizBody(text, identifier string) bool {
	for _, m := range quizBodyMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return identifier != "" && strings.Contains(text, identifier)
}
