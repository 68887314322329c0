/*
 * topology.go, part of nbtop.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Topology is the flat, particle-level description of a system, as needed
// for a non-bonded force calculation. A Topology is only produced by a
// TopologyBuilder, and is immutable. All its methods can be called concurrently.
//
// Particles are ordered following the registration order of molecules. Within
// a registration, all the particles of the first copy come first, in the molecule's order,
// then those of the second copy, and so on.
type Topology struct {
	charges    []float64
	masses     []float64
	typeIDs    []int
	types      []ParticleType
	exclusions *ListOfLists
	seq        *sequencer
	nonbonded  *NonbondedTable
}

// NumParticles returns the number of particles in the topology
func (T *Topology) NumParticles() int {
	return len(T.charges)
}

// Len returns the number of particles in the topology.
func (T *Topology) Len() int {
	return len(T.charges)
}

// Charges returns a copy of the charges of all particles.
func (T *Topology) Charges() []float64 {
	return append([]float64(nil), T.charges...)
}

// Masses returns a copy of the masses of all particles.
func (T *Topology) Masses() []float64 {
	return append([]float64(nil), T.masses...)
}

// MassVec returns the masses of all particles as a column vector.
func (T *Topology) MassVec() *mat.VecDense {
	if len(T.masses) == 0 {
		return nil
	}
	return mat.NewVecDense(len(T.masses), T.Masses())
}

// TotalCharge returns the sum of the charges of all particles
func (T *Topology) TotalCharge() float64 {
	return floats.Sum(T.charges)
}

// TotalMass returns the sum of the masses of all particles
func (T *Topology) TotalMass() float64 {
	return floats.Sum(T.masses)
}

// ParticleTypes returns a copy of the table of distinct particle types, indexed by type id.
// Types are in order of first appearance, not alphabetical.
func (T *Topology) ParticleTypes() []ParticleType {
	return append([]ParticleType(nil), T.types...)
}

// NumParticleTypes returns the number of distinct particle types.
func (T *Topology) NumParticleTypes() int {
	return len(T.types)
}

// ParticleTypeIDs returns a copy of the type id of every particle. Each id is an index
// in the slice returned by ParticleTypes.
func (T *Topology) ParticleTypeIDs() []int {
	return append([]int(nil), T.typeIDs...)
}

// Exclusions returns the exclusion adjacency: list i contains the sorted indexes of all the
// particles excluded from non-bonded interactions with particle i, including i itself.
// The list is shared with the topology, so kernels can read it without copying, but it
// has no methods that modify it.
func (T *Topology) Exclusions() *ListOfLists {
	return T.exclusions
}

// ExclusionBlocks returns a copy of the exclusion adjacency as one ExclusionBlock per particle.
func (T *Topology) ExclusionBlocks() []ExclusionBlock {
	return exclusionBlocks(T.exclusions)
}

// SequenceID returns the global index of the particle with name particle, in residue residue,
// in the instance-th (0-based) copy of the molecule with name molecule. It returns an InputError
// if there is no such particle.
func (T *Topology) SequenceID(molecule string, instance int, residue, particle string) (int, error) {
	p := ParticleIdentifier{Molecule: molecule, Instance: instance, Residue: residue, Particle: particle}
	i, ok := T.seq.id(p)
	if !ok {
		return -1, inputErrorf("%s: no particle %s in the topology", UnknownName, p)
	}
	return i, nil
}

// Identify returns the symbolic identifier for the particle with global index i.
// It's the inverse of SequenceID.
func (T *Topology) Identify(i int) (ParticleIdentifier, error) {
	if i < 0 || i >= T.seq.len() {
		return ParticleIdentifier{}, inputErrorf("%s: particle %d requested, topology has %d particles", OutOfRange, i, T.seq.len())
	}
	return T.seq.names[i], nil
}

// NonbondedParameters returns the table of Lennard-Jones parameters of the topology, indexed by
// type id, and true, or nil and false if the topology was built without interactions.
func (T *Topology) NonbondedParameters() (*NonbondedTable, bool) {
	return T.nonbonded, T.nonbonded != nil
}

// ExpandQuantity returns, for each particle of t, the value obtained by applying f to its type.
func ExpandQuantity[V any](t *Topology, f func(ParticleType) V) []V {
	ret := make([]V, len(t.typeIDs))
	cache := make([]V, len(t.types))
	for i, v := range t.types {
		cache[i] = f(v)
	}
	for i, id := range t.typeIDs {
		ret[i] = cache[id]
	}
	return ret
}
