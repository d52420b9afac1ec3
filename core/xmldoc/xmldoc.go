// Package xmldoc provides a thin pure Go XML document wrapper over xmlquery.
// The catalog loader uses it to find entity records anywhere in the source
// document (descendant search, not strict structural nesting) and to read
// their child element text.
//
// Security note: xmlquery builds on Go's encoding/xml, which does not fetch
// external entities, so XXE attacks are not a concern here.
package xmldoc

import (
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element node.
type Node struct {
	node *xmlquery.Node
}

// Parse reads and parses an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Descendants returns every element named name anywhere in the document, in
// document order.
func (d *Document) Descendants(name string) ([]*Node, error) {
	expr := "//" + name
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// ChildText returns the text of the first child element named name, or ""
// when no such child exists.
func (n *Node) ChildText(name string) string {
	if n.node == nil {
		return ""
	}
	child := n.node.SelectElement(name)
	if child == nil {
		return ""
	}
	return child.InnerText()
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}
