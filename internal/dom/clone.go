package dom

import "golang.org/x/net/html"

// Clone copies id inside the same tree. The copy is detached. When deep is
// false only the node itself is copied.
func (t *Tree) Clone(id NodeID, deep bool) NodeID {
	if !t.Valid(id) {
		return Nil
	}
	return t.copyNode(t, id, deep)
}

// CloneInto deep-copies the subtree rooted at id into dst and returns the
// detached copy. The source tree is left untouched.
func (t *Tree) CloneInto(dst *Tree, id NodeID) NodeID {
	if !t.Valid(id) || dst == nil {
		return Nil
	}
	return t.copyNode(dst, id, true)
}

func (t *Tree) copyNode(dst *Tree, id NodeID, deep bool) NodeID {
	src := t.nodes[id]
	copied := dst.alloc(node{
		kind:  src.kind,
		tag:   src.tag,
		attrs: append([]html.Attribute(nil), src.attrs...),
		text:  append([]rune(nil), src.text...),
	})
	if !deep {
		return copied
	}
	// src.children is re-read per iteration because copying into the same
	// tree may grow the arena.
	for i := 0; i < len(t.nodes[id].children); i++ {
		child := t.copyNode(dst, t.nodes[id].children[i], true)
		dst.nodes[child].parent = copied
		dst.nodes[copied].children = append(dst.nodes[copied].children, child)
	}
	return copied
}
