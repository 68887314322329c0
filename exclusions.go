/*
 * exclusions.go, part of nbtop.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package nbtop

import (
	"slices"
)

// ExclusionBlock lists the particles excluded from non-bonded interactions with
// one particle. It is the per-block form used by older kernel front-ends.
type ExclusionBlock struct {
	AtomNumber []int
}

// localAdjacency returns, for each of n particles, the sorted, unique
// list of indexes it is excluded from, itself included. Each pair must
// have the smaller index first.
func localAdjacency(n int, pairs map[[2]int]struct{}) [][]int {
	adj := make([][]int, n)
	for i := range adj {
		adj[i] = append(adj[i], i)
	}
	for k := range pairs {
		i, j := k[0], k[1]
		adj[i] = append(adj[i], j)
		if i != j {
			adj[j] = append(adj[j], i)
		}
	}
	for i, v := range adj {
		slices.Sort(v)
		adj[i] = slices.Compact(v)
	}
	return adj
}

// appendInstances appends to L count copies of the local adjacency adj, each
// shifted by the global index of the first particle of the instance. base is
// the global index of the first particle of the first instance.
func appendInstances(L *ListOfLists, adj [][]int, base, count int) {
	size := len(adj)
	buf := make([]int, 0, size)
	for k := 0; k < count; k++ {
		shift := base + k*size
		for _, v := range adj {
			buf = buf[:0]
			for _, j := range v {
				buf = append(buf, j+shift)
			}
			L.pushBack(buf)
		}
	}
}

// lowerExclusions lowers the exclusions of all the registered molecules into
// a global adjacency, in registration order.
func lowerExclusions(regs []Registration) *ListOfLists {
	L := newListOfLists()
	base := 0
	for _, r := range regs {
		adj := localAdjacency(r.Molecule.Len(), r.Molecule.exclusions)
		appendInstances(L, adj, base, r.Count)
		base += r.Count * r.Molecule.Len()
	}
	return L
}

// ExclusionBlocksFromPairs converts a list of index pairs into one ExclusionBlock per
// index, from 0 to the largest index found. The pairs are symmetrized, and each index
// is excluded from itself. Each block is sorted in ascending order and has no repeated elements.
// Negative indexes are an InputError.
func ExclusionBlocksFromPairs(pairs [][2]int) ([]ExclusionBlock, error) {
	n := 0
	for _, p := range pairs {
		if p[0] < 0 || p[1] < 0 {
			return nil, inputErrorf("%s: negative index in exclusion pair (%d, %d)", OutOfRange, p[0], p[1])
		}
		n = max(n, p[0]+1, p[1]+1)
	}
	set := make(map[[2]int]struct{}, len(pairs))
	for _, p := range pairs {
		set[[2]int{min(p[0], p[1]), max(p[0], p[1])}] = struct{}{}
	}
	adj := localAdjacency(n, set)
	ret := make([]ExclusionBlock, len(adj))
	for i, v := range adj {
		ret[i].AtomNumber = v
	}
	return ret, nil
}

// exclusionBlocks converts the adjacency L to the per-block form.
func exclusionBlocks(L *ListOfLists) []ExclusionBlock {
	ret := make([]ExclusionBlock, L.Len())
	for i := range ret {
		ret[i].AtomNumber = append([]int(nil), L.At(i)...)
	}
	return ret
}
