// Copyright 2024 The strtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package strtree provides a query-only R-tree built with the
// Sort-Tile-Recursive (STR) bulk-load algorithm, for two- and
// three-dimensional spatial data.
//
// The STR packed R-tree is simple and maximizes space utilization: as
// many nodes as possible are filled to capacity. Overlap between nodes
// is far less than in a basic R-tree. However, once the tree has been
// built (explicitly or lazily, by the first query), items may no
// longer be added.
//
// Described in: P. Rigaux, Michel Scholl and Agnes Voisard. Spatial
// Databases With Application To GIS. Morgan Kaufmann, San Francisco,
// 2002.
package strtree
