// Package markup holds the element/text tree the article renderer walks and
// builds it from raw HTML.
package markup

import "strings"

type Kind int

const (
	ElementNode Kind = iota
	TextNode
)

// Node is either an element with a tag name and ordered children, or a run
// of text. Trees are treated as read-only once built.
type Node struct {
	Kind     Kind
	Tag      string
	Children []*Node
	Text     string
}

func Element(tag string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Tag: strings.ToLower(tag), Children: children}
}

func Text(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

// TextContent concatenates every text descendant in document order.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(child.TextContent())
	}
	return b.String()
}

// Depth reports the number of element levels on the deepest path.
func (n *Node) Depth() int {
	if n == nil || n.Kind == TextNode {
		return 0
	}
	deepest := 0
	for _, child := range n.Children {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
