// Package dom implements the in-memory node tree the boundary marker codec
// operates on. Nodes live in an arena owned by a Tree and are addressed by
// NodeID handles; each node keeps a non-owning parent handle and an ordered
// slice of child handles. Text offsets are rune indexes.
package dom
