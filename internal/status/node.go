package status

import (
	"slices"
	"strings"
)

// Node is an element reference with a stable id and an ordered class list.
// Node is not safe for concurrent use; Indicator serialises access to its nodes.
type Node struct {
	ID      string
	classes []string
}

// NewNode returns a node carrying the given classes, duplicates dropped.
func NewNode(id string, classes ...string) *Node {
	n := &Node{ID: id}
	n.AddClass(classes...)
	return n
}

// AddClass appends classes not already present.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c == "" || slices.Contains(n.classes, c) {
			continue
		}
		n.classes = append(n.classes, c)
	}
}

// RemoveClass drops every listed class. Absent classes are ignored.
func (n *Node) RemoveClass(classes ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
}

// HasClass reports whether c is present.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// ClassAttr renders the class list as an HTML class attribute value.
func (n *Node) ClassAttr() string {
	return strings.Join(n.classes, " ")
}
