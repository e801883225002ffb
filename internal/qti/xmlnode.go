package qti

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// element is a minimal in-memory XML tree. Both quiz vocabularies need
// document-order traversal, "direct child" vs "any descendant" distinctions,
// and attribute access by local name; struct-tag unmarshalling cannot express
// all of that, so the parsers walk this instead.
type element struct {
	name     string // local name only; both vocabularies are matched ns-free
	attrs    map[string]string
	chardata strings.Builder
	children []*element
}

// decodeDocument parses a body document and returns its root element.
func decodeDocument(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeElement(dec, start)
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (*element, error) {
	el := &element{name: start.Name.Local}
	for _, a := range start.Attr {
		if el.attrs == nil {
			el.attrs = map[string]string{}
		}
		// first writer wins when prefixed and plain attrs share a local name
		if _, dup := el.attrs[a.Name.Local]; !dup {
			el.attrs[a.Name.Local] = a.Value
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			el.children = append(el.children, child)
		case xml.CharData:
			el.chardata.Write(t)
		case xml.EndElement:
			return el, nil
		}
	}
}

func (e *element) attr(name string) string {
	if e == nil {
		return ""
	}
	return e.attrs[name]
}

// text is the element's own character data, trimmed.
func (e *element) text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.chardata.String())
}

// deepText concatenates character data of the element and all descendants,
// in document order, then trims.
func (e *element) deepText() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	e.collectText(&b)
	return strings.TrimSpace(b.String())
}

func (e *element) collectText(b *strings.Builder) {
	b.WriteString(e.chardata.String())
	for _, c := range e.children {
		c.collectText(b)
	}
}

// child returns the first direct child with the given local name.
func (e *element) child(name string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// childrenNamed returns direct children with the given local name, in
// document order.
func (e *element) childrenNamed(name string) []*element {
	if e == nil {
		return nil
	}
	var out []*element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant with the given local name, document order.
func (e *element) find(name string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
		if hit := c.find(name); hit != nil {
			return hit
		}
	}
	return nil
}

// findAll returns every descendant with the given local name, document order.
func (e *element) findAll(name string) []*element {
	if e == nil {
		return nil
	}
	var out []*element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
		out = append(out, c.findAll(name)...)
	}
	return out
}
