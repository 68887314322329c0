/*
 * json.go, part of nbtop.
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
	"encoding/json"
	"slices"

	"gonum.org/v1/gonum/mat"
)

type jsonType struct {
	Name string  `json:"name"`
	Mass float64 `json:"mass"`
}

type jsonExclusions struct {
	Offsets []int `json:"offsets"`
	Values  []int `json:"values"`
}

type jsonParticle struct {
	Molecule string `json:"molecule"`
	Instance int    `json:"instance"`
	Residue  string `json:"residue"`
	Particle string `json:"particle"`
}

type jsonNonbonded struct {
	C6  []float64 `json:"c6"` //row-major, full matrices
	C12 []float64 `json:"c12"`
}

type jsonTopology struct {
	Types      []jsonType     `json:"particle_types"`
	TypeIDs    []int          `json:"type_ids"`
	Charges    []float64      `json:"charges"`
	Exclusions jsonExclusions `json:"exclusions"`
	Particles  []jsonParticle `json:"particles"`
	Nonbonded  *jsonNonbonded `json:"nonbonded,omitempty"`
}

// MarshalJSON implements json.Marshaler. Masses are not stored, as
// they follow from the particle types.
func (T *Topology) MarshalJSON() ([]byte, error) {
	j := jsonTopology{
		Types:     make([]jsonType, len(T.types)),
		TypeIDs:   T.typeIDs,
		Charges:   T.charges,
		Particles: make([]jsonParticle, T.seq.len()),
	}
	for i, v := range T.types {
		j.Types[i] = jsonType{Name: v.name, Mass: v.mass}
	}
	j.Exclusions.Offsets, j.Exclusions.Values = T.exclusions.offsets, T.exclusions.values
	for i, v := range T.seq.names {
		j.Particles[i] = jsonParticle(v)
	}
	if n := T.nonbonded.Len(); n > 0 {
		j.Nonbonded = &jsonNonbonded{C6: make([]float64, 0, n*n), C12: make([]float64, 0, n*n)}
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				j.Nonbonded.C6 = append(j.Nonbonded.C6, T.nonbonded.C6(r, c))
				j.Nonbonded.C12 = append(j.Nonbonded.C12, T.nonbonded.C12(r, c))
			}
		}
	} else if T.nonbonded != nil {
		j.Nonbonded = &jsonNonbonded{C6: []float64{}, C12: []float64{}}
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded data is checked for all the
// properties a built Topology has, and an InputError is returned if any of them fails.
func (T *Topology) UnmarshalJSON(b []byte) error {
	var j jsonTopology
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	N := len(j.Charges)
	if len(j.TypeIDs) != N || len(j.Particles) != N {
		return inputErrorf("%s: %d charges, %d type ids and %d particle identifiers", InvalidTopology, N, len(j.TypeIDs), len(j.Particles))
	}
	R := newTypeRegistry()
	for _, v := range j.Types {
		t := NewParticleType(v.Name, v.Mass)
		if err := t.check(); err != nil {
			return errDecorate(err, "UnmarshalJSON")
		}
		if _, ok := R.id(t.name); ok {
			return inputErrorf("%s: particle type %q appears twice", InvalidTopology, t.name)
		}
		R.add(t)
	}
	masses := make([]float64, N)
	for i, id := range j.TypeIDs {
		if id < 0 || id >= R.len() {
			return inputErrorf("%s: particle %d has type id %d, there are %d types", InvalidTopology, i, id, R.len())
		}
		masses[i] = R.types[id].mass
	}
	ex, err := checkAdjacency(j.Exclusions.Offsets, j.Exclusions.Values, N)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	seq := newSequencer(N)
	for i, v := range j.Particles {
		p := ParticleIdentifier(v)
		if err := seq.add(p, i); err != nil {
			return errDecorate(err, "UnmarshalJSON")
		}
		if p.Instance >= seq.instances[p.Molecule] {
			seq.instances[p.Molecule] = p.Instance + 1
		}
	}
	var table *NonbondedTable
	if j.Nonbonded != nil {
		table, err = tableFromJSON(j.Nonbonded, R.len())
		if err != nil {
			return errDecorate(err, "UnmarshalJSON")
		}
	}
	T.types = R.types
	T.typeIDs = j.TypeIDs
	T.charges = j.Charges
	T.masses = masses
	T.exclusions = ex
	T.seq = seq
	T.nonbonded = table
	return nil
}

// checkAdjacency verifies that offsets and values form an exclusion adjacency
// for n particles: sorted, without repetitions, symmetric and self-inclusive.
func checkAdjacency(offsets, values []int, n int) (*ListOfLists, error) {
	if len(offsets) != n+1 || offsets[0] != 0 || offsets[n] != len(values) {
		return nil, inputErrorf("%s: malformed exclusion offsets for %d particles", InvalidTopology, n)
	}
	L := &ListOfLists{offsets: offsets, values: values}
	for i := 0; i < n; i++ {
		if offsets[i] > offsets[i+1] {
			return nil, inputErrorf("%s: decreasing exclusion offsets at particle %d", InvalidTopology, i)
		}
	}
	for i := 0; i < n; i++ {
		l := L.At(i)
		for k, v := range l {
			if v < 0 || v >= n {
				return nil, inputErrorf("%s: particle %d excluded from particle %d, which doesn't exist", InvalidTopology, i, v)
			}
			if k > 0 && l[k-1] >= v {
				return nil, inputErrorf("%s: exclusions of particle %d not strictly ascending", InvalidTopology, i)
			}
			if _, ok := slices.BinarySearch(L.At(v), i); !ok {
				return nil, inputErrorf("%s: particle %d excluded from %d but not the reverse", InvalidTopology, i, v)
			}
		}
		if _, ok := slices.BinarySearch(l, i); !ok {
			return nil, inputErrorf("%s: particle %d is not excluded from itself", InvalidTopology, i)
		}
	}
	return L, nil
}

func tableFromJSON(j *jsonNonbonded, n int) (*NonbondedTable, error) {
	if len(j.C6) != n*n || len(j.C12) != n*n {
		return nil, inputErrorf("%s: non-bonded table doesn't match the %d particle types", InvalidTopology, n)
	}
	if n == 0 {
		return &NonbondedTable{}, nil
	}
	T := &NonbondedTable{c6: mat.NewSymDense(n, nil), c12: mat.NewSymDense(n, nil)}
	for r := 0; r < n; r++ {
		for c := r; c < n; c++ {
			if j.C6[r*n+c] != j.C6[c*n+r] || j.C12[r*n+c] != j.C12[c*n+r] {
				return nil, inputErrorf("%s: non-bonded table not symmetric at %d,%d", InvalidTopology, r, c)
			}
			T.c6.SetSym(r, c, j.C6[r*n+c])
			T.c12.SetSym(r, c, j.C12[r*n+c])
		}
	}
	return T, nil
}
