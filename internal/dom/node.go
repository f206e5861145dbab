package dom

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// NodeID addresses a node inside a Tree. The zero value never refers to a node.
type NodeID uint32

// Nil is the handle returned when no node exists (no parent, no sibling...).
const Nil NodeID = 0

// Kind is the closed set of node variants the tree supports.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindText
	KindElement
	KindFragment
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindFragment:
		return "fragment"
	case KindDocument:
		return "document"
	default:
		return "invalid"
	}
}

type node struct {
	kind     Kind
	tag      string
	attrs    []html.Attribute
	text     []rune
	parent   NodeID
	children []NodeID
}

// Tree is an arena of nodes. It is not safe for concurrent use; callers own
// exclusivity for the duration of any mutation.
type Tree struct {
	id    uuid.UUID
	nodes []node
}

// NewTree returns an empty tree. The tree identifier is only used to
// correlate log entries.
func NewTree() *Tree {
	return &Tree{
		id:    uuid.New(),
		nodes: make([]node, 1),
	}
}

// ID returns the tree correlation identifier.
func (t *Tree) ID() uuid.UUID {
	if t == nil {
		return uuid.Nil
	}
	return t.id
}

// Size reports how many nodes were ever allocated in the arena.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return len(t.nodes) - 1
}

// Valid reports whether id refers to a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return t != nil && id != Nil && int(id) < len(t.nodes)
}

func (t *Tree) alloc(n node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// CreateText allocates a detached text node.
func (t *Tree) CreateText(text string) NodeID {
	return t.alloc(node{kind: KindText, text: []rune(text)})
}

// CreateElement allocates a detached element node.
func (t *Tree) CreateElement(tag string, attrs ...html.Attribute) NodeID {
	return t.alloc(node{
		kind:  KindElement,
		tag:   strings.ToLower(strings.TrimSpace(tag)),
		attrs: append([]html.Attribute(nil), attrs...),
	})
}

// CreateFragment allocates a detached document fragment.
func (t *Tree) CreateFragment() NodeID {
	return t.alloc(node{kind: KindFragment})
}

// CreateDocument allocates a document node.
func (t *Tree) CreateDocument() NodeID {
	return t.alloc(node{kind: KindDocument})
}

// Kind returns the variant of id, KindInvalid for unknown handles.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindInvalid
	}
	return t.nodes[id].kind
}

// IsText reports whether id is a text node.
func (t *Tree) IsText(id NodeID) bool {
	return t.Kind(id) == KindText
}

// Tag returns the element tag name, empty for non-elements.
func (t *Tree) Tag(id NodeID) string {
	if t.Kind(id) != KindElement {
		return ""
	}
	return t.nodes[id].tag
}

// Attrs returns a copy of the element attributes.
func (t *Tree) Attrs(id NodeID) []html.Attribute {
	if t.Kind(id) != KindElement {
		return nil
	}
	return append([]html.Attribute(nil), t.nodes[id].attrs...)
}

// Text returns the character data of a text node.
func (t *Tree) Text(id NodeID) string {
	if !t.IsText(id) {
		return ""
	}
	return string(t.nodes[id].text)
}

// TextContent concatenates every text node below id in document order.
func (t *Tree) TextContent(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	var sb strings.Builder
	t.appendText(&sb, id)
	return sb.String()
}

func (t *Tree) appendText(sb *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	if n.kind == KindText {
		sb.WriteString(string(n.text))
		return
	}
	for _, child := range n.children {
		t.appendText(sb, child)
	}
}

// Length is the number of runes of a text node or the number of children of
// any other node. It is the largest valid boundary offset for id.
func (t *Tree) Length(id NodeID) int {
	if !t.Valid(id) {
		return 0
	}
	n := &t.nodes[id]
	if n.kind == KindText {
		return len(n.text)
	}
	return len(n.children)
}

// Parent returns the parent handle or Nil.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return Nil
	}
	return t.nodes[id].parent
}

// Children returns a copy of the child handles of id.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return append([]NodeID(nil), t.nodes[id].children...)
}

// ChildCount returns the number of children of id.
func (t *Tree) ChildCount(id NodeID) int {
	if !t.Valid(id) {
		return 0
	}
	return len(t.nodes[id].children)
}

// ChildAt returns the child at index i or Nil when out of range.
func (t *Tree) ChildAt(id NodeID, i int) NodeID {
	if !t.Valid(id) {
		return Nil
	}
	children := t.nodes[id].children
	if i < 0 || i >= len(children) {
		return Nil
	}
	return children[i]
}

// FirstChild returns the first child of id or Nil.
func (t *Tree) FirstChild(id NodeID) NodeID {
	return t.ChildAt(id, 0)
}

// Index returns the position of id among its siblings, -1 when detached.
func (t *Tree) Index(id NodeID) int {
	parent := t.Parent(id)
	if parent == Nil {
		return -1
	}
	for i, child := range t.nodes[parent].children {
		if child == id {
			return i
		}
	}
	return -1
}

// PreviousSibling returns the sibling right before id or Nil.
func (t *Tree) PreviousSibling(id NodeID) NodeID {
	idx := t.Index(id)
	if idx <= 0 {
		return Nil
	}
	return t.nodes[t.nodes[id].parent].children[idx-1]
}

// NextSibling returns the sibling right after id or Nil.
func (t *Tree) NextSibling(id NodeID) NodeID {
	idx := t.Index(id)
	if idx < 0 {
		return Nil
	}
	return t.ChildAt(t.nodes[id].parent, idx+1)
}

// Contains reports whether id is ancestor or self of descendant.
func (t *Tree) Contains(id, descendant NodeID) bool {
	if !t.Valid(id) || !t.Valid(descendant) {
		return false
	}
	for cur := descendant; cur != Nil; cur = t.nodes[cur].parent {
		if cur == id {
			return true
		}
	}
	return false
}

// Ancestors returns the chain from the topmost ancestor down to id, id included.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	var chain []NodeID
	for cur := id; cur != Nil; cur = t.nodes[cur].parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
