package dom

// WalkRec visits every node below root and then root itself, children before
// their parent and siblings left to right. The next sibling is captured before
// a node is visited, so fn may insert nodes before the visited node or remove
// it without disturbing the traversal.
func (t *Tree) WalkRec(root NodeID, fn func(NodeID)) {
	if !t.Valid(root) || fn == nil {
		return
	}
	child := t.FirstChild(root)
	for child != Nil {
		next := t.NextSibling(child)
		t.WalkRec(child, fn)
		child = next
	}
	fn(root)
}

// TextNodes returns the text nodes below root in document order.
func (t *Tree) TextNodes(root NodeID) []NodeID {
	var out []NodeID
	t.WalkRec(root, func(id NodeID) {
		if t.IsText(id) {
			out = append(out, id)
		}
	})
	return out
}
