package kml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse decodes a KML payload into its node tree and returns the root node.
// Namespace prefixes are stripped so accessors match on local element names.
func Parse(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("kml: document is empty")
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("kml: parse document: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{name: t.Name.Local}
			if len(t.Attr) > 0 {
				node.attrs = make(map[string]string, len(t.Attr))
				for _, attr := range t.Attr {
					node.attrs[attr.Name.Local] = attr.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("kml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("kml: unbalanced end element")
			}
			top := stack[len(stack)-1]
			top.text = strings.TrimSpace(top.text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("kml: no root element")
	}
	if len(stack) != 0 {
		return nil, errors.New("kml: unterminated element")
	}
	return root, nil
}

// ParseDocument parses a payload and wraps the result with its source.
func ParseDocument(src Source, data []byte) (Document, error) {
	root, err := Parse(data)
	if err != nil {
		return Document{}, err
	}
	return NewDocument(src, root)
}
