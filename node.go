// Copyright 2024 The strtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

// noNode is the nil value for node handles.
const noNode int32 = -1

// A node is one level of the tree hierarchy, stored in the owning
// tree's arena and referenced by its index there. Child references are
// index handles rather than pointers, so arena reallocation during
// build never invalidates them. A leaf node has level 0, no children
// and an item; a non-leaf node's bounds are the union of its
// children's bounds.
type node struct {
	bounds   Box
	level    int32
	children []int32
	item     interface{}
}

// isLeaf reports whether the node holds an item directly. Leaves are
// exactly the level-0 nodes; they never have children.
func (n *node) isLeaf() bool {
	return n.level == 0
}

// newNode appends a node to the arena and returns its handle.
func (t *Tree) newNode(level int32) int32 {
	t.nodes = append(t.nodes, node{bounds: EmptyBox(t.dims), level: level})
	return int32(len(t.nodes) - 1)
}

// addChild unions the child's bounds into the parent and appends the
// child handle. Only the bulk load calls it; after build the child
// lists change only by removal.
func (t *Tree) addChild(parent, child int32) {
	p := &t.nodes[parent]
	p.bounds.Expand(&t.nodes[child].bounds)
	p.children = append(p.children, child)
}

// numNodes returns the total node count of the subtree rooted at h,
// including h itself.
func (t *Tree) numNodes(h int32) int {
	n := &t.nodes[h]
	count := 1
	for _, c := range n.children {
		count += t.numNodes(c)
	}
	return count
}

// numLeafNodes returns the leaf count of the subtree rooted at h.
func (t *Tree) numLeafNodes(h int32) int {
	n := &t.nodes[h]
	if n.isLeaf() {
		return 1
	}
	count := 0
	for _, c := range n.children {
		count += t.numLeafNodes(c)
	}
	return count
}

// detachItem searches h's direct children for the leaf holding item,
// by identity, and removes it from the child list if found.
func (t *Tree) detachItem(h int32, item interface{}) bool {
	n := &t.nodes[h]
	for i, c := range n.children {
		child := &t.nodes[c]
		if child.isLeaf() && child.item == item {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// detachChild removes the child handle from h's child list, if
// present.
func (t *Tree) detachChild(h, child int32) bool {
	n := &t.nodes[h]
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}
