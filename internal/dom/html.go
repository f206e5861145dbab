package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the content of a <body> element and returns a
// new tree whose root is a fragment holding the parsed nodes. Comments and
// doctypes are dropped.
func ParseFragment(r io.Reader) (*Tree, NodeID, error) {
	return ParseFragmentIn(r, "body")
}

// ParseFragmentIn parses markup as the content of a contextTag element, which
// decides how the parser treats context sensitive tags such as <td> or <li>.
func ParseFragmentIn(r io.Reader, contextTag string) (*Tree, NodeID, error) {
	contextTag = strings.ToLower(contextTag)
	context := &html.Node{Type: html.ElementNode, Data: contextTag, DataAtom: atom.Lookup([]byte(contextTag))}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, Nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	t := NewTree()
	root := t.CreateFragment()
	for _, n := range nodes {
		t.importHTML(root, n)
	}
	return t, root, nil
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(markup string) (*Tree, NodeID, error) {
	return ParseFragment(strings.NewReader(markup))
}

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*Tree, NodeID, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, Nil, fmt.Errorf("dom: parse document: %w", err)
	}
	t := NewTree()
	root := t.CreateDocument()
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		t.importHTML(root, c)
	}
	return t, root, nil
}

func (t *Tree) importHTML(parent NodeID, n *html.Node) {
	var id NodeID
	switch n.Type {
	case html.TextNode:
		id = t.CreateText(n.Data)
	case html.ElementNode:
		id = t.CreateElement(n.Data, n.Attr...)
	default:
		return
	}
	t.nodes[id].parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.importHTML(id, c)
	}
}

// Render writes the markup of id including its own tag. Fragments and
// documents render their children.
func (t *Tree) Render(w io.Writer, id NodeID) error {
	if !t.Valid(id) {
		return ErrInvalidNode
	}
	if kind := t.nodes[id].kind; kind == KindFragment || kind == KindDocument {
		return t.RenderInner(w, id)
	}
	return renderHTML(w, t.exportHTML(id, nil))
}

// RenderInner writes the markup of the children of id, the way innerHTML
// serializes a container element.
func (t *Tree) RenderInner(w io.Writer, id NodeID) error {
	if !t.Valid(id) {
		return ErrInvalidNode
	}
	if t.nodes[id].kind == KindText {
		return renderHTML(w, t.exportHTML(id, nil))
	}
	container := t.exportHTML(id, nil)
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := renderHTML(w, c); err != nil {
			return err
		}
	}
	return nil
}

// OuterHTML renders id to a string.
func (t *Tree) OuterHTML(id NodeID) (string, error) {
	var buf bytes.Buffer
	if err := t.Render(&buf, id); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InnerHTML renders the children of id to a string.
func (t *Tree) InnerHTML(id NodeID) (string, error) {
	var buf bytes.Buffer
	if err := t.RenderInner(&buf, id); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(w io.Writer, n *html.Node) error {
	if err := html.Render(w, n); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

func (t *Tree) exportHTML(id NodeID, parent *html.Node) *html.Node {
	src := &t.nodes[id]
	var out *html.Node
	switch src.kind {
	case KindText:
		out = &html.Node{Type: html.TextNode, Data: string(src.text)}
	case KindElement:
		out = &html.Node{
			Type:     html.ElementNode,
			Data:     src.tag,
			DataAtom: atom.Lookup([]byte(src.tag)),
			Attr:     append([]html.Attribute(nil), src.attrs...),
		}
	default:
		out = &html.Node{Type: html.DocumentNode}
	}
	if parent != nil {
		parent.AppendChild(out)
	}
	for _, child := range src.children {
		t.exportHTML(child, out)
	}
	return out
}
