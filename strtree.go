// Copyright 2024 The strtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultCapacity is the node capacity used when New is given a zero
// capacity.
const DefaultCapacity = 10

// A Visitor is called once per reported item during Query and Iterate.
type Visitor func(item interface{})

// A Tree is a query-only R-tree bulk-loaded with the
// Sort-Tile-Recursive algorithm. Items are inserted up front, the
// first query-class call builds the tree, and afterward it supports
// intersection queries, iteration, removal and the nearest-neighbour
// searches.
//
// A Tree is not safe for concurrent use while it is being inserted
// into or built. Once built, any number of goroutines may Query,
// Iterate and search it concurrently, provided none of them calls
// Remove at the same time.
type Tree struct {
	dims     int
	capacity int
	built    bool
	// nodes is the arena owning every node in the tree. It only grows,
	// and only before or during build. All child references are
	// indices into it.
	nodes []node
	// leaves records the handle of every inserted leaf, in insertion
	// order. Build packs them; afterward the tree structure is
	// authoritative and leaves is no longer consulted.
	leaves []int32
	root   int32
}

// New creates an empty tree over the given number of axes (2 or 3).
// capacity is the maximum child count of an internal node; it must be
// at least 2, or zero to select DefaultCapacity. Panics on an invalid
// dims or capacity.
func New(dims, capacity int) *Tree {
	validateDims(dims)
	if capacity == 0 {
		capacity = DefaultCapacity
	} else if capacity < 2 {
		textPanic("node capacity must be at least 2")
	}
	return &Tree{
		dims:     dims,
		capacity: capacity,
		root:     noNode,
	}
}

// Dims returns the tree's axis count, 2 or 3.
func (t *Tree) Dims() int {
	return t.dims
}

// Capacity returns the maximum child count of an internal node.
func (t *Tree) Capacity() int {
	return t.capacity
}

// Built reports whether the tree has been built. Once true, Insert is
// no longer legal.
func (t *Tree) Built() bool {
	return t.built
}

// Insert adds an item with the given bounding box to the tree. The box
// may be degenerate (zero extent on an axis) but not null, and must
// have the tree's axis count. Insert returns an error once the tree
// has been built: the packed structure cannot accept new leaves.
//
// The item is held by reference and never copied. Remove finds it
// again by interface identity, so it should be a comparable value,
// typically a pointer.
func (t *Tree) Insert(b Box, item interface{}) error {
	if t.built {
		return textErr("cannot insert into a built tree")
	}
	if b.IsNull() {
		return textErr("cannot insert a null box")
	}
	if b.dims != t.dims {
		return fmtErr("cannot insert a %dD box into a %dD tree", b.dims, t.dims)
	}
	t.nodes = append(t.nodes, node{bounds: b, item: item})
	t.leaves = append(t.leaves, int32(len(t.nodes)-1))
	return nil
}

// Build packs the inserted leaves into a balanced hierarchy using the
// Sort-Tile-Recursive algorithm. It is idempotent, and every
// query-class method calls it, so calling it explicitly is optional.
func (t *Tree) Build() {
	if t.built {
		return
	}
	t.built = true
	switch len(t.leaves) {
	case 0:
		return
	case 1:
		// A single leaf is the root directly, with no synthetic
		// parent above it.
		t.root = t.leaves[0]
		return
	}
	level := make([]int32, len(t.leaves))
	copy(level, t.leaves)
	var lv int32
	for len(level) > 1 {
		lv++
		level = t.createParentNodes(level, lv)
	}
	t.root = level[0]
}

// createParentNodes packs one tree level into parent nodes at the
// given level number, returning the parents.
func (t *Tree) createParentNodes(children []int32, level int32) []int32 {
	parents := make([]int32, 0, (len(children)+t.capacity-1)/t.capacity)
	t.pack(children, 0, level, &parents)
	return parents
}

// pack sorts the handles by bounds centroid along the given axis and
// tiles them. At every axis but the last the handles are cut into
// ceil(sqrt(ceil(n/capacity))) contiguous slices, each packed
// recursively along the next axis; at the last axis contiguous runs of
// up to capacity handles become parent nodes. For two axes this is
// exactly the classic STR vertical-slice scheme, and the extra
// recursion step generalizes it to three.
func (t *Tree) pack(handles []int32, axis int, level int32, parents *[]int32) {
	t.sortByCentroid(handles, axis)
	if axis == t.dims-1 {
		for start := 0; start < len(handles); start += t.capacity {
			end := start + t.capacity
			if end > len(handles) {
				end = len(handles)
			}
			p := t.newNode(level)
			for _, h := range handles[start:end] {
				t.addChild(p, h)
			}
			*parents = append(*parents, p)
		}
		return
	}
	sliceCount := int(math.Ceil(math.Sqrt(math.Ceil(float64(len(handles)) / float64(t.capacity)))))
	sliceSize := (len(handles) + sliceCount - 1) / sliceCount
	for start := 0; start < len(handles); start += sliceSize {
		end := start + sliceSize
		if end > len(handles) {
			end = len(handles)
		}
		t.pack(handles[start:end], axis+1, level, parents)
	}
}

// sortByCentroid stable-sorts node handles by the centroid of their
// bounds along the given axis. Stability keeps tree shape
// deterministic for a given insertion order.
func (t *Tree) sortByCentroid(handles []int32, axis int) {
	sort.SliceStable(handles, func(i, j int) bool {
		return t.nodes[handles[i]].centroid(axis) < t.nodes[handles[j]].centroid(axis)
	})
}

func (n *node) centroid(axis int) float64 {
	return n.bounds.centroid(axis)
}

// Bounds returns the bounding box around every item in the tree, or a
// null box if the tree is empty. Calling Bounds builds the tree.
func (t *Tree) Bounds() Box {
	t.Build()
	if t.root == noNode {
		return EmptyBox(t.dims)
	}
	return t.nodes[t.root].bounds
}

// NumNodes returns the total node count of the built tree, leaves
// included. Calling NumNodes builds the tree.
func (t *Tree) NumNodes() int {
	t.Build()
	if t.root == noNode {
		return 0
	}
	return t.numNodes(t.root)
}

// NumLeafNodes returns the number of items remaining in the built
// tree. Calling NumLeafNodes builds the tree.
func (t *Tree) NumLeafNodes() int {
	t.Build()
	if t.root == noNode {
		return 0
	}
	return t.numLeafNodes(t.root)
}

// Query reports every item whose bounding box intersects b, in no
// particular order. Subtrees whose bounds do not intersect b are
// pruned without being visited. Calling Query builds the tree.
func (t *Tree) Query(b Box, visit Visitor) {
	t.Build()
	if t.root == noNode {
		return
	}
	t.query(&b, t.root, visit)
}

func (t *Tree) query(b *Box, h int32, visit Visitor) {
	n := &t.nodes[h]
	if !n.bounds.Intersects(b) {
		return
	}
	if n.isLeaf() {
		visit(n.item)
		return
	}
	for _, c := range n.children {
		t.query(b, c, visit)
	}
}

// QueryItems collects the results of Query(b) into a slice. The slice
// is nil when nothing matches.
func (t *Tree) QueryItems(b Box) []interface{} {
	var items []interface{}
	t.Query(b, func(item interface{}) {
		items = append(items, item)
	})
	return items
}

// Iterate reports every item in the tree, with no bounding-box
// pruning. Calling Iterate builds the tree.
func (t *Tree) Iterate(visit Visitor) {
	t.Build()
	if t.root == noNode {
		return
	}
	t.iterate(t.root, visit)
}

func (t *Tree) iterate(h int32, visit Visitor) {
	n := &t.nodes[h]
	if n.isLeaf() {
		visit(n.item)
		return
	}
	for _, c := range n.children {
		t.iterate(c, visit)
	}
}

// Remove detaches the leaf holding item, searching only subtrees whose
// bounds intersect b. The box is a hint narrowing the search; the true
// match test is interface identity with item. Internal nodes left
// childless by the removal are pruned from their parents. Remove
// reports whether a leaf was detached, and calling it builds the tree.
func (t *Tree) Remove(b Box, item interface{}) bool {
	t.Build()
	if t.root == noNode {
		return false
	}
	root := &t.nodes[t.root]
	if !root.bounds.Intersects(&b) {
		return false
	}
	if root.isLeaf() {
		if root.item == item {
			t.root = noNode
			return true
		}
		return false
	}
	if t.remove(&b, t.root, item) {
		if len(root.children) == 0 {
			t.root = noNode
		}
		return true
	}
	return false
}

func (t *Tree) remove(b *Box, h int32, item interface{}) bool {
	// Direct leaf children first, then recurse into intersecting
	// subtrees.
	if t.detachItem(h, item) {
		return true
	}
	n := &t.nodes[h]
	for _, c := range n.children {
		child := &t.nodes[c]
		if child.isLeaf() || !child.bounds.Intersects(b) {
			continue
		}
		if t.remove(b, c, item) {
			if len(child.children) == 0 {
				t.detachChild(h, c)
			}
			return true
		}
	}
	return false
}

// String renders a diagnostic dump of the built tree: one line per
// node showing its bounds and level, children indented two spaces per
// tree level. Calling String builds the tree.
func (t *Tree) String() string {
	t.Build()
	if t.root == noNode {
		return ""
	}
	var sb strings.Builder
	t.dump(&sb, t.root, 0)
	return sb.String()
}

func (t *Tree) dump(sb *strings.Builder, h int32, indent int) {
	n := &t.nodes[h]
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	fmt.Fprintf(sb, "%s [%d]\n", n.bounds.String(), n.level)
	for _, c := range n.children {
		t.dump(sb, c, indent+1)
	}
}
