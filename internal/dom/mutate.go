package dom

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNode indicates a handle that does not belong to the tree.
	ErrInvalidNode = errors.New("dom: invalid node")
	// ErrHierarchy indicates an insertion that would break the tree shape.
	ErrHierarchy = errors.New("dom: hierarchy request error")
	// ErrNotText indicates a character-data operation on a non-text node.
	ErrNotText = errors.New("dom: not a text node")
	// ErrOffsetOutOfRange indicates an offset outside 0..Length.
	ErrOffsetOutOfRange = errors.New("dom: offset out of range")
	// ErrDetached indicates an operation that needs a parent on a detached node.
	ErrDetached = errors.New("dom: node has no parent")
)

// AppendChild moves child to the end of parent's children.
func (t *Tree) AppendChild(parent, child NodeID) error {
	return t.InsertBefore(parent, child, Nil)
}

// InsertBefore moves child into parent right before ref. A Nil ref appends.
// A child that is already attached somewhere is detached first.
func (t *Tree) InsertBefore(parent, child, ref NodeID) error {
	if !t.Valid(parent) || !t.Valid(child) {
		return ErrInvalidNode
	}
	if t.nodes[parent].kind == KindText {
		return fmt.Errorf("%w: text nodes cannot have children", ErrHierarchy)
	}
	if t.nodes[child].kind == KindDocument {
		return fmt.Errorf("%w: documents cannot be inserted", ErrHierarchy)
	}
	if t.Contains(child, parent) {
		return fmt.Errorf("%w: node would contain itself", ErrHierarchy)
	}
	if ref != Nil && t.Parent(ref) != parent {
		return fmt.Errorf("%w: reference node is not a child of parent", ErrHierarchy)
	}
	if ref == child {
		return nil
	}

	t.detach(child)

	children := t.nodes[parent].children
	at := len(children)
	if ref != Nil {
		at = slices.Index(children, ref)
	}
	t.nodes[parent].children = slices.Insert(children, at, child)
	t.nodes[child].parent = parent
	return nil
}

// Remove detaches id from its parent. Removing a detached node is a no-op.
func (t *Tree) Remove(id NodeID) error {
	if !t.Valid(id) {
		return ErrInvalidNode
	}
	t.detach(id)
	return nil
}

func (t *Tree) detach(id NodeID) {
	parent := t.nodes[id].parent
	if parent == Nil {
		return
	}
	children := t.nodes[parent].children
	if idx := slices.Index(children, id); idx >= 0 {
		t.nodes[parent].children = slices.Delete(children, idx, idx+1)
	}
	t.nodes[id].parent = Nil
}

// SetText replaces the character data of a text node.
func (t *Tree) SetText(id NodeID, text string) error {
	if !t.IsText(id) {
		return ErrNotText
	}
	t.nodes[id].text = []rune(text)
	return nil
}

// InsertData inserts data into a text node at the rune offset.
func (t *Tree) InsertData(id NodeID, offset int, data string) error {
	if !t.IsText(id) {
		return ErrNotText
	}
	text := t.nodes[id].text
	if offset < 0 || offset > len(text) {
		return fmt.Errorf("%w: %d not in 0..%d", ErrOffsetOutOfRange, offset, len(text))
	}
	t.nodes[id].text = slices.Insert(text, offset, []rune(data)...)
	return nil
}

// AppendData appends data to the end of a text node.
func (t *Tree) AppendData(id NodeID, data string) error {
	return t.InsertData(id, t.Length(id), data)
}

// SplitText breaks a text node at offset. The original node keeps the head and
// a new node holding the tail is inserted right after it.
func (t *Tree) SplitText(id NodeID, offset int) (NodeID, error) {
	if !t.IsText(id) {
		return Nil, ErrNotText
	}
	text := t.nodes[id].text
	if offset < 0 || offset > len(text) {
		return Nil, fmt.Errorf("%w: %d not in 0..%d", ErrOffsetOutOfRange, offset, len(text))
	}
	parent := t.nodes[id].parent
	if parent == Nil {
		return Nil, ErrDetached
	}

	tail := t.CreateText(string(text[offset:]))
	t.nodes[id].text = append([]rune(nil), text[:offset]...)
	if err := t.InsertBefore(parent, tail, t.NextSibling(id)); err != nil {
		return Nil, err
	}
	return tail, nil
}
