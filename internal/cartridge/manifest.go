// Package cartridge reads the IMS content-package side of a Schoology export:
// the imsmanifest.xml descriptor, the quiz-resource selection rules, and the
// lookup of each resource's quiz body inside the extracted package tree.
package cartridge

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/archive"
)

const manifestFileName = "imsmanifest.xml"

// ErrManifestNotFound is returned when no imsmanifest.xml exists anywhere in
// the package tree.
var ErrManifestNotFound = errors.New("imsmanifest.xml not found")

// Resource is one manifest-declared content unit. Immutable once parsed.
type Resource struct {
	Identifier string
	Type       string
	Href       string
	Files      []string // declared file hrefs, document order
	Title      string   // child <title> text, else the identifier
}

// Manifest is the parsed top-level descriptor: every declared resource in
// document order, quiz-like or not.
type Manifest struct {
	Resources []Resource
}

type imsManifest struct {
	XMLName   xml.Name      `xml:"manifest"`
	Resources *imsResources `xml:"http://www.imsglobal.org/xsd/imscp_v1p1 resources"`
}

type imsResources struct {
	Resources []imsResource `xml:"resource"`
}

type imsResource struct {
	Identifier string    `xml:"identifier,attr"`
	Type       string    `xml:"type,attr"`
	Href       string    `xml:"href,attr"`
	Title      string    `xml:"title"`
	Files      []imsFile `xml:"file"`
}

type imsFile struct {
	Href string `xml:"href,attr"`
}

// LocateManifest finds the manifest file anywhere in the tree, not only at
// the root. When several subfolders each carry an imsmanifest.xml, the first
// one in the tree's depth-first walk wins; that walk follows archive entry
// order, so the choice is deterministic for a given package.
func LocateManifest(tree *archive.FileNode) (*archive.FileNode, error) {
	var found *archive.FileNode
	tree.WalkFiles(func(path string, node *archive.FileNode) bool {
		if node.Name == manifestFileName {
			found = node
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrManifestNotFound
	}
	return found, nil
}

// ParseManifest parses manifest XML into the declared resource list. A
// manifest without an imscp_v1p1 resources element yields an empty list, not
// an error; a resource without a <title> child falls back to its identifier.
func ParseManifest(data []byte) (Manifest, error) {
	var mf imsManifest
	if err := xml.Unmarshal(data, &mf); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	out := Manifest{}
	if mf.Resources == nil {
		return out, nil
	}
	for _, r := range mf.Resources.Resources {
		res := Resource{
			Identifier: r.Identifier,
			Type:       r.Type,
			Href:       r.Href,
			Title:      r.Title,
		}
		if res.Title == "" {
			res.Title = r.Identifier
		}
		for _, f := range r.Files {
			res.Files = append(res.Files, f.Href)
		}
		out.Resources = append(out.Resources, res)
	}
	return out, nil
}
