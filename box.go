// Copyright 2024 The strtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"math"
	"strconv"
	"strings"
)

// maxDims is the highest axis count a Box can carry. Two-dimensional
// boxes simply leave the last axis unused.
const maxDims = 3

// A Point is a single 2D or 3D coordinate. For 2D use, Z is ignored.
type Point struct {
	X, Y, Z float64
}

// axis returns the point's ordinate along the given axis.
func (p *Point) axis(a int) float64 {
	switch a {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// A Box is an axis-aligned bounding volume over two or three axes. The
// zero Box is not usable: create boxes with NewBox2, NewBox3, EmptyBox
// or ParseBox.
//
// A Box has a distinguished null state which encloses nothing and is
// distinct from a zero-size box. A null Box stores +Inf minimums and
// -Inf maximums, so expanding it to include another box yields that box
// with no special casing. A non-null Box always has min ≤ max on every
// axis.
type Box struct {
	dims     int
	min, max [maxDims]float64
}

func validateDims(dims int) {
	if dims != 2 && dims != 3 {
		fmtPanic("dimension count must be 2 or 3, not %d", dims)
	}
}

func (b *Box) checkDims(o *Box) {
	if b.dims != o.dims {
		fmtPanic("dimension mismatch: %dD box and %dD box", b.dims, o.dims)
	}
}

// EmptyBox returns a null box over the given number of axes (2 or 3).
// Panics if dims is not 2 or 3.
func EmptyBox(dims int) Box {
	validateDims(dims)
	b := Box{dims: dims}
	b.setNull()
	return b
}

// NewBox2 returns a two-dimensional box covering the given extents.
// The extents need not be ordered: each pair is normalized so that
// min ≤ max.
func NewBox2(xMin, yMin, xMax, yMax float64) Box {
	b := Box{dims: 2}
	b.initAxis(0, xMin, xMax)
	b.initAxis(1, yMin, yMax)
	return b
}

// NewBox3 returns a three-dimensional box covering the given extents.
// The extents need not be ordered: each pair is normalized so that
// min ≤ max.
func NewBox3(xMin, yMin, zMin, xMax, yMax, zMax float64) Box {
	b := Box{dims: 3}
	b.initAxis(0, xMin, xMax)
	b.initAxis(1, yMin, yMax)
	b.initAxis(2, zMin, zMax)
	return b
}

func (b *Box) initAxis(a int, lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	b.min[a], b.max[a] = lo, hi
}

func (b *Box) setNull() {
	for a := 0; a < b.dims; a++ {
		b.min[a] = math.Inf(1)
		b.max[a] = math.Inf(-1)
	}
}

// Dims returns the box's axis count, 2 or 3.
func (b *Box) Dims() int {
	return b.dims
}

// Min returns the box's minimum extent along the given zero-based
// axis. Panics if the axis is out of range.
func (b *Box) Min(axis int) float64 {
	if axis < 0 || axis >= b.dims {
		fmtPanic("axis %d out of range for %dD box", axis, b.dims)
	}
	return b.min[axis]
}

// Max returns the box's maximum extent along the given zero-based
// axis. Panics if the axis is out of range.
func (b *Box) Max(axis int) float64 {
	if axis < 0 || axis >= b.dims {
		fmtPanic("axis %d out of range for %dD box", axis, b.dims)
	}
	return b.max[axis]
}

// IsNull reports whether the box is in the null state, enclosing
// nothing. The zero Box is null.
func (b *Box) IsNull() bool {
	return b.dims == 0 || b.min[0] > b.max[0]
}

// Width returns the box's extent along the X-axis.
func (b *Box) Width() float64 {
	return b.max[0] - b.min[0]
}

// Height returns the box's extent along the Y-axis.
func (b *Box) Height() float64 {
	return b.max[1] - b.min[1]
}

// Depth returns the box's extent along the Z-axis. Panics on a
// two-dimensional box.
func (b *Box) Depth() float64 {
	if b.dims < 3 {
		textPanic("no depth on a 2D box")
	}
	return b.max[2] - b.min[2]
}

// Expand grows the box to the union of itself and o. Expanding a null
// box yields a copy of o; expanding by a null box is a no-op. Panics
// if the two boxes have different axis counts.
func (b *Box) Expand(o *Box) {
	b.checkDims(o)
	for a := 0; a < b.dims; a++ {
		if o.min[a] < b.min[a] {
			b.min[a] = o.min[a]
		}
		if o.max[a] > b.max[a] {
			b.max[a] = o.max[a]
		}
	}
}

// Intersects reports whether the two boxes overlap or touch on every
// axis. It is false if either box is null. Panics if the two boxes
// have different axis counts.
func (b *Box) Intersects(o *Box) bool {
	b.checkDims(o)
	for a := 0; a < b.dims; a++ {
		if b.min[a] > o.max[a] || o.min[a] > b.max[a] {
			return false
		}
	}
	return true
}

// Covers reports whether o lies entirely within b. It is false if
// either box is null. Panics if the two boxes have different axis
// counts.
func (b *Box) Covers(o *Box) bool {
	b.checkDims(o)
	if b.IsNull() || o.IsNull() {
		return false
	}
	for a := 0; a < b.dims; a++ {
		if o.min[a] < b.min[a] || o.max[a] > b.max[a] {
			return false
		}
	}
	return true
}

// Centre returns the box's per-axis midpoint. The second return value
// is false if the box is null.
func (b *Box) Centre() (Point, bool) {
	if b.IsNull() {
		return Point{}, false
	}
	var p Point
	p.X = b.centroid(0)
	p.Y = b.centroid(1)
	if b.dims == 3 {
		p.Z = b.centroid(2)
	}
	return p, true
}

func (b *Box) centroid(axis int) float64 {
	return (b.min[axis] + b.max[axis]) / 2
}

// Intersection returns the per-axis overlap of the two boxes. The
// second return value is false if either box is null or they do not
// intersect. Panics if the two boxes have different axis counts.
func (b *Box) Intersection(o *Box) (Box, bool) {
	if b.IsNull() || o.IsNull() || !b.Intersects(o) {
		return Box{}, false
	}
	r := Box{dims: b.dims}
	for a := 0; a < b.dims; a++ {
		r.min[a] = math.Max(b.min[a], o.min[a])
		r.max[a] = math.Min(b.max[a], o.max[a])
	}
	return r, true
}

// Translate shifts the box's minimum and maximum extents by the
// per-axis components of d. Translating a null box is a no-op.
func (b *Box) Translate(d Point) {
	if b.IsNull() {
		return
	}
	for a := 0; a < b.dims; a++ {
		b.min[a] += d.axis(a)
		b.max[a] += d.axis(a)
	}
}

// ExpandBy widens the box by the per-axis components of d: each delta
// is subtracted from the axis minimum and added to the axis maximum.
// Negative deltas shrink the box, and if shrinking inverts min past
// max on any axis the box collapses to the null state.
func (b *Box) ExpandBy(d Point) {
	if b.IsNull() {
		return
	}
	for a := 0; a < b.dims; a++ {
		b.min[a] -= d.axis(a)
		b.max[a] += d.axis(a)
	}
	for a := 0; a < b.dims; a++ {
		if b.min[a] > b.max[a] {
			b.setNull()
			return
		}
	}
}

// Distance returns a lower bound on the distance from p to any content
// of the box: zero if p lies inside, otherwise the Euclidean distance
// from p to the nearest face, edge or corner. A null box is infinitely
// far from every point.
func (b *Box) Distance(p Point) float64 {
	if b.IsNull() {
		return math.Inf(1)
	}
	var sum float64
	for a := 0; a < b.dims; a++ {
		v := p.axis(a)
		if v < b.min[a] {
			gap := b.min[a] - v
			sum += gap * gap
		} else if v > b.max[a] {
			gap := v - b.max[a]
			sum += gap * gap
		}
	}
	return math.Sqrt(sum)
}

// boxDistance returns a lower bound on the distance between any
// content of a and any content of b: zero if the boxes intersect,
// otherwise the Euclidean length of the per-axis separation. This is
// the pruning bound for the nearest-neighbour searches, which rely on
// it never overestimating the true minimum item distance.
func boxDistance(a, b *Box) float64 {
	if a.IsNull() || b.IsNull() {
		return math.Inf(1)
	}
	a.checkDims(b)
	var sum float64
	for x := 0; x < a.dims; x++ {
		var gap float64
		if a.max[x] < b.min[x] {
			gap = b.min[x] - a.max[x]
		} else if b.max[x] < a.min[x] {
			gap = a.min[x] - b.max[x]
		}
		sum += gap * gap
	}
	return math.Sqrt(sum)
}

// area returns the product of the box's axis extents. A null box has
// zero area.
func (b *Box) area() float64 {
	if b.IsNull() {
		return 0
	}
	v := 1.0
	for a := 0; a < b.dims; a++ {
		v *= b.max[a] - b.min[a]
	}
	return v
}

// Equal reports whether the two boxes have exactly equal extents on
// every axis. Two null boxes of the same axis count are equal; a null
// and a non-null box are not.
func (b *Box) Equal(o *Box) bool {
	if b.dims != o.dims {
		return false
	}
	if b.IsNull() {
		return o.IsNull()
	}
	if o.IsNull() {
		return false
	}
	for a := 0; a < b.dims; a++ {
		if b.min[a] != o.min[a] || b.max[a] != o.max[a] {
			return false
		}
	}
	return true
}

// Less compares two boxes using lexicographic ordering over the
// minimum extents followed by the maximum extents. Null boxes sort
// before all non-null boxes. The ordering exists for deterministic
// sorting in diagnostics and tests; none of the index algorithms
// depend on it. Panics if the two boxes have different axis counts.
func (b *Box) Less(o *Box) bool {
	b.checkDims(o)
	if b.IsNull() {
		return !o.IsNull()
	}
	if o.IsNull() {
		return false
	}
	for a := 0; a < b.dims; a++ {
		if b.min[a] != o.min[a] {
			return b.min[a] < o.min[a]
		}
	}
	for a := 0; a < b.dims; a++ {
		if b.max[a] != o.max[a] {
			return b.max[a] < o.max[a]
		}
	}
	return false
}

// String returns the box's text form, Env[minX:maxX,minY:maxY] with a
// third pair for a 3D box. ParseBox is the inverse.
func (b *Box) String() string {
	var sb strings.Builder
	sb.WriteString("Env[")
	for a := 0; a < b.dims; a++ {
		if a > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(b.min[a], 'g', -1, 64))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(b.max[a], 'g', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}

// ParseBox parses the text form produced by String. The substring
// between the first '[' and the last ']' is split into min:max pairs,
// one per axis; two pairs give a 2D box and three give a 3D box. Any
// other token count, or a token which is not a valid float, is an
// explicit error.
func ParseBox(s string) (Box, error) {
	i := strings.IndexByte(s, '[')
	j := strings.LastIndexByte(s, ']')
	if i < 0 || j < i {
		return Box{}, fmtErr("invalid box text %q: missing brackets", s)
	}
	pairs := strings.Split(s[i+1:j], ",")
	if len(pairs) != 2 && len(pairs) != 3 {
		return Box{}, fmtErr("invalid box text %q: need 2 or 3 axis pairs, have %d", s, len(pairs))
	}
	b := Box{dims: len(pairs)}
	for a, pair := range pairs {
		lohi := strings.Split(pair, ":")
		if len(lohi) != 2 {
			return Box{}, fmtErr("invalid box text %q: axis %d needs one min and one max", s, a)
		}
		lo, err := strconv.ParseFloat(lohi[0], 64)
		if err != nil {
			return Box{}, wrapErr("invalid box text", err)
		}
		hi, err := strconv.ParseFloat(lohi[1], 64)
		if err != nil {
			return Box{}, wrapErr("invalid box text", err)
		}
		b.min[a], b.max[a] = lo, hi
	}
	return b, nil
}
