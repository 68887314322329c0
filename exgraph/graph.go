/*
 * graph.go, part of nbtop.
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

// Package exgraph represents the exclusions of an nbtop Topology as a gonum graph,
// with one node per particle and an edge between every pair of distinct particles
// excluded from each other.
package exgraph

import (
	"slices"

	"github.com/rmera/nbtop"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Particle is a node of the exclusion graph. Its ID is the
// global index of the particle.
type Particle struct {
	nbtop.ParticleIdentifier
	Index int
}

func (P *Particle) ID() int64 {
	return int64(P.Index)
}

// Graph returns the exclusion graph of t.
func Graph(t *nbtop.Topology) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < t.NumParticles(); i++ {
		id, err := t.Identify(i)
		if err != nil {
			//Identify only fails for indexes out of range.
			panic(err.Error())
		}
		g.AddNode(&Particle{ParticleIdentifier: id, Index: i})
	}
	ex := t.Exclusions()
	for i := 0; i < ex.Len(); i++ {
		for _, j := range ex.At(i) {
			if j > i {
				g.SetEdge(g.NewEdge(g.Node(int64(i)), g.Node(int64(j))))
			}
		}
	}
	return g
}

// Groups returns the sets of particles connected by exclusions. Each group is sorted,
// and the groups are sorted by their first element. Particles not excluded from any other
// form a group of their own.
func Groups(t *nbtop.Topology) [][]int {
	return groups(topo.ConnectedComponents(Graph(t)))
}

func groups(cc [][]graph.Node) [][]int {
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		g := make([]int, 0, len(c))
		for _, v := range c {
			g = append(g, int(v.ID()))
		}
		slices.Sort(g)
		ret = append(ret, g)
	}
	slices.SortFunc(ret, func(a, b []int) int { return a[0] - b[0] })
	return ret
}

// Degrees returns, for each particle, the number of other particles it is excluded from.
func Degrees(t *nbtop.Topology) []int {
	g := Graph(t)
	ret := make([]int, t.NumParticles())
	for i := range ret {
		ret[i] = g.From(int64(i)).Len()
	}
	return ret
}
