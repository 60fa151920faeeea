package markup

import (
	"fmt"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements carry no readable text.
var skipped = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"head":     {},
}

// Parse reads an HTML fragment (a feed entry body) and returns a "body"
// element holding its content. Malformed markup is repaired by the HTML5
// parsing algorithm rather than rejected.
func Parse(r io.Reader) (*Node, error) {
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := nethtml.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	root := Element("body")
	for _, n := range nodes {
		if child := convert(n); child != nil {
			root.Children = append(root.Children, child)
		}
	}
	return root, nil
}

func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func convert(n *nethtml.Node) *Node {
	switch n.Type {
	case nethtml.TextNode:
		if n.Data == "" {
			return nil
		}
		return Text(n.Data)
	case nethtml.ElementNode:
		tag := strings.ToLower(n.Data)
		if _, ok := skipped[tag]; ok {
			return nil
		}
		el := Element(tag)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	case nethtml.DocumentNode:
		el := Element("body")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	default:
		return nil
	}
}
