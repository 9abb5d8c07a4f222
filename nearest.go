// Copyright 2024 The strtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"math"

	"github.com/tidwall/tinyqueue"
)

// An ItemDistance returns the true domain distance between two stored
// items. The nearest-neighbour searches call it only when both sides
// of a candidate pair are leaves; everywhere else they prune with the
// box-to-box lower bound, so the result must never be less than that
// bound implies, i.e. items must lie within their inserted boxes.
type ItemDistance func(a, b interface{}) float64

// A bound is one side of a candidate pair: either a node of a tree, or
// an external probe item that has no tree behind it.
type bound struct {
	tree *Tree // nil for an external probe
	node int32
	box  *Box
	item interface{}
}

func nodeBound(t *Tree, h int32) bound {
	n := &t.nodes[h]
	return bound{tree: t, node: h, box: &n.bounds, item: n.item}
}

func probeBound(b *Box, item interface{}) bound {
	return bound{node: noNode, box: b, item: item}
}

func (b *bound) leaf() bool {
	return b.tree == nil || b.tree.nodes[b.node].isLeaf()
}

// A pair is a candidate node pair in the branch-and-bound traversal.
// dist is the box-to-box lower bound on the distance between any item
// under one side and any item under the other.
type pair struct {
	a, b bound
	dist float64
}

func newPair(a, b bound) *pair {
	return &pair{a: a, b: b, dist: boxDistance(a.box, b.box)}
}

// Less orders pairs by ascending lower bound, making tinyqueue a
// best-first queue.
func (p *pair) Less(q tinyqueue.Item) bool {
	return p.dist < q.(*pair).dist
}

// expand replaces the pair with the child combinations of one side,
// keeping a/b orientation. The non-leaf side with the larger bounds
// area is the one expanded; a leaf side never is.
func (p *pair) expand(push func(*pair)) {
	expandA := !p.a.leaf() && (p.b.leaf() || p.a.box.area() >= p.b.box.area())
	if expandA {
		for _, c := range p.a.tree.nodes[p.a.node].children {
			push(newPair(nodeBound(p.a.tree, c), p.b))
		}
	} else {
		for _, c := range p.b.tree.nodes[p.b.node].children {
			push(newPair(p.a, nodeBound(p.b.tree, c)))
		}
	}
}

// nearestPair runs the best-first branch-and-bound search from an
// initial pair of bounds. Pairs come off the queue in ascending order
// of lower bound, so the search ends the moment the smallest remaining
// bound cannot beat the best true distance found. When selfJoin is
// set, the trivial pairing of a leaf with itself is skipped.
func nearestPair(a, b bound, d ItemDistance, selfJoin bool) (x, y interface{}, ok bool) {
	q := tinyqueue.New(nil)
	q.Push(newPair(a, b))
	best := math.Inf(1)
	for q.Len() > 0 {
		p := q.Pop().(*pair)
		if p.dist >= best {
			break
		}
		if p.a.leaf() && p.b.leaf() {
			if selfJoin && p.a.node == p.b.node {
				continue
			}
			if dist := d(p.a.item, p.b.item); dist < best {
				best = dist
				x, y, ok = p.a.item, p.b.item, true
			}
			continue
		}
		p.expand(func(np *pair) {
			if np.dist < best {
				q.Push(np)
			}
		})
	}
	return
}

// NearestNeighbour returns the closest pair of distinct items in the
// tree, measured by d. ok is false when the tree holds fewer than two
// items, since no valid pair exists. Calling NearestNeighbour builds
// the tree.
func (t *Tree) NearestNeighbour(d ItemDistance) (a, b interface{}, ok bool) {
	t.Build()
	if t.root == noNode {
		return nil, nil, false
	}
	r := nodeBound(t, t.root)
	return nearestPair(r, r, d, true)
}

// NearestTo returns the stored item closest to an external probe item
// with the given bounding box. d is called with a stored item first
// and the probe item second. ok is false when the tree is empty or the
// probe box is null. Calling NearestTo builds the tree.
func (t *Tree) NearestTo(b Box, item interface{}, d ItemDistance) (interface{}, bool) {
	t.Build()
	if t.root == noNode {
		return nil, false
	}
	x, _, ok := nearestPair(nodeBound(t, t.root), probeBound(&b, item), d, false)
	return x, ok
}

// NearestBetween returns the closest pair across two trees, measured
// by d: a is the item from t and b the item from other. ok is false
// when either tree is empty. Calling NearestBetween builds both trees.
func (t *Tree) NearestBetween(other *Tree, d ItemDistance) (a, b interface{}, ok bool) {
	t.Build()
	other.Build()
	if t.root == noNode || other.root == noNode {
		return nil, nil, false
	}
	return nearestPair(nodeBound(t, t.root), nodeBound(other, other.root), d, false)
}

// IsWithinDistance reports whether any item of t lies within
// maxDistance of any item of other, measured by d. It returns true the
// moment one qualifying pair is found, without searching on for the
// global minimum, and false only after every non-pruned pair is
// exhausted. Either tree being empty yields false. Calling
// IsWithinDistance builds both trees.
func (t *Tree) IsWithinDistance(other *Tree, d ItemDistance, maxDistance float64) bool {
	t.Build()
	other.Build()
	if t.root == noNode || other.root == noNode {
		return false
	}
	q := tinyqueue.New(nil)
	q.Push(newPair(nodeBound(t, t.root), nodeBound(other, other.root)))
	for q.Len() > 0 {
		p := q.Pop().(*pair)
		if p.dist > maxDistance {
			// Best-first order: every remaining pair is at least as
			// far apart.
			return false
		}
		if p.a.leaf() && p.b.leaf() {
			if d(p.a.item, p.b.item) <= maxDistance {
				return true
			}
			continue
		}
		p.expand(func(np *pair) {
			if np.dist <= maxDistance {
				q.Push(np)
			}
		})
	}
	return false
}
