// Package kml wraps parsed KML documents behind read-only node handles and
// typed field accessors. Geometry adapters consume document regions through
// this surface without ever touching the XML machinery directly.
package kml

import (
	"errors"
)

// Source identifies where a KML document originated so loaders can operate on
// files, fs.FS entries, URLs, or in-memory payloads without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindBytes SourceKind = "bytes"
)

// Document wraps a parsed KML node tree and its origin. The tree is never
// mutated after parsing; adapters hold node handles into it for the lifetime
// of the document.
type Document struct {
	source Source
	root   *Node
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, root *Node) (Document, error) {
	if src == nil {
		return Document{}, errors.New("kml: source is required")
	}
	if root == nil {
		return Document{}, errors.New("kml: root node is required")
	}
	return Document{source: src, root: root}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, root *Node) Document {
	doc, err := NewDocument(src, root)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Root returns the document's root node. The root is the element below the
// optional <kml> envelope when one is present.
func (d Document) Root() *Node {
	if d.root != nil && d.root.name == "kml" {
		if inner, ok := Child(d.root, "Document"); ok {
			return inner
		}
		if len(d.root.children) == 1 {
			return d.root.children[0]
		}
	}
	return d.root
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Features returns the document's Placemark nodes in document order,
// descending through Document and Folder containers.
func (d Document) Features() []*Node {
	var features []*Node
	Walk(d.root, func(n *Node) bool {
		switch n.name {
		case "Placemark":
			features = append(features, n)
			return false
		case "kml", "Document", "Folder":
			return true
		default:
			return false
		}
	})
	return features
}

// Walk performs a depth-first traversal starting at n. The visitor returns
// true to descend into the visited node's children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || visit == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.children {
		Walk(child, visit)
	}
}
