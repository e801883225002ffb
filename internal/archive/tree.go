package archive

import "strings"

// Entry is one raw archive entry: a slash-delimited path and its payload.
// Entries whose path ends in "/" are directory markers and carry no payload.
type Entry struct {
	Path string
	Data []byte
}

// FileNode is one node of the extracted package tree. Directory nodes hold
// children in insertion order; file nodes hold the entry payload.
type FileNode struct {
	Name string

	children map[string]*FileNode
	order    []string

	data   []byte
	isFile bool
}

// NewTree builds the package tree from a flat entry list in one pass, keyed
// by an explicit path→node map so directory creation is idempotent.
// Directory-marker entries produce no node. Empty and "." segments are
// dropped everywhere, so a path like "a//b.xml" builds the same nodes that
// Lookup resolves.
func NewTree(entries []Entry) *FileNode {
	root := &FileNode{}
	nodes := map[string]*FileNode{"": root}

	for _, e := range entries {
		if strings.HasSuffix(e.Path, "/") {
			continue
		}
		var segs []string
		for _, seg := range strings.Split(e.Path, "/") {
			if seg == "" || seg == "." {
				continue
			}
			segs = append(segs, seg)
		}
		if len(segs) == 0 {
			continue
		}
		last := segs[len(segs)-1]

		prefix := ""
		parent := root
		for _, seg := range segs[:len(segs)-1] {
			if prefix == "" {
				prefix = seg
			} else {
				prefix = prefix + "/" + seg
			}
			dir, ok := nodes[prefix]
			if !ok {
				dir = parent.getOrCreate(seg)
				nodes[prefix] = dir
			}
			parent = dir
		}

		leaf := parent.getOrCreate(last)
		leaf.data = e.Data
		leaf.isFile = true
	}
	return root
}

func (n *FileNode) getOrCreate(name string) *FileNode {
	if c, ok := n.children[name]; ok {
		return c
	}
	if n.children == nil {
		n.children = map[string]*FileNode{}
	}
	c := &FileNode{Name: name}
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// IsFile reports whether the node is a leaf file.
func (n *FileNode) IsFile() bool { return n.isFile }

// Data returns the file payload; nil for directory nodes.
func (n *FileNode) Data() []byte { return n.data }

// Child returns the direct child with the given name.
func (n *FileNode) Child(name string) (*FileNode, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Children returns direct children in insertion order.
func (n *FileNode) Children() []*FileNode {
	out := make([]*FileNode, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

// Lookup resolves a slash-delimited path relative to n. Empty segments are
// ignored, so "a//b" and "./"-free variants resolve alike.
func (n *FileNode) Lookup(path string) (*FileNode, bool) {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." {
			continue
		}
		c, ok := cur.children[seg]
		if !ok {
			return nil, false
		}
		cur = c
	}
	if cur == n {
		return nil, false
	}
	return cur, true
}

// WalkFiles visits every file leaf depth-first, following child insertion
// order (the archive's entry order). Returning false from fn stops the walk.
// The traversal order is deterministic; manifest lookup relies on it.
func (n *FileNode) WalkFiles(fn func(path string, node *FileNode) bool) {
	n.walk("", fn)
}

func (n *FileNode) walk(prefix string, fn func(string, *FileNode) bool) bool {
	for _, name := range n.order {
		c := n.children[name]
		p := name
		if prefix != "" {
			p = prefix + "/" + name
		}
		if c.isFile {
			if !fn(p, c) {
				return false
			}
		}
		if !c.walk(p, fn) {
			return false
		}
	}
	return true
}
