/*
 * molecule.go, part of nbtop.
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
	"fmt"
	"slices"
)

var sf func(string, ...any) string = fmt.Sprintf

// particle is one entry of a Molecule template.
type particle struct {
	name    string
	residue string
	ptype   ParticleType
	charge  float64
}

// Molecule is an ordered template of particles plus their intra-molecular exclusions.
// A Molecule is mutable until it is registered with a TopologyBuilder, which keeps
// its own copy. Changes made to the Molecule after registration don't affect the builder.
type Molecule struct {
	name       string
	particles  []particle
	index      map[string]int
	exclusions map[[2]int]struct{} //always stored with the smaller index first
}

// NewMolecule returns an empty molecule template with the given name.
func NewMolecule(name string) *Molecule {
	M := new(Molecule)
	M.name = name
	M.index = make(map[string]int)
	M.exclusions = make(map[[2]int]struct{})
	return M
}

// Name returns the name of the molecule
func (M *Molecule) Name() string {
	return M.name
}

// Len returns the number of particles in the molecule
func (M *Molecule) Len() int {
	return len(M.particles)
}

// AddParticle appends a particle with the given name and type to the molecule.
// The particle's residue is named after the molecule. It returns an InputError if
// the name is already used in the molecule, or if the type is not valid.
func (M *Molecule) AddParticle(name string, ptype ParticleType) error {
	return M.addParticle(name, M.name, ptype)
}

// AddParticleInResidue is like AddParticle but puts the particle in the given residue.
func (M *Molecule) AddParticleInResidue(name, residue string, ptype ParticleType) error {
	return M.addParticle(name, residue, ptype)
}

func (M *Molecule) addParticle(name, residue string, ptype ParticleType) error {
	if name == "" {
		return inputErrorf("%s: empty particle name in molecule %q", UnknownName, M.name)
	}
	if _, ok := M.index[name]; ok {
		return inputErrorf("%s: %q is already present in molecule %q", DuplicateParticle, name, M.name)
	}
	if err := ptype.check(); err != nil {
		return errDecorate(err, "AddParticle")
	}
	M.particles = append(M.particles, particle{name: name, residue: residue, ptype: ptype})
	M.index[name] = len(M.particles) - 1
	return nil
}

// Index returns the position of the particle with the given name in the molecule,
// and whether it was found.
func (M *Molecule) Index(name string) (int, bool) {
	i, ok := M.index[name]
	return i, ok
}

func (M *Molecule) mustIndex(name string) (int, error) {
	i, ok := M.index[name]
	if !ok {
		return -1, inputErrorf("%s: particle %q not found in molecule %q", UnknownName, name, M.name)
	}
	return i, nil
}

// AddExclusion excludes the non-bonded interactions between the particles with names a and b.
// Adding an exclusion twice has no effect.
func (M *Molecule) AddExclusion(a, b string) error {
	i, err := M.mustIndex(a)
	if err != nil {
		return errDecorate(err, "AddExclusion")
	}
	j, err := M.mustIndex(b)
	if err != nil {
		return errDecorate(err, "AddExclusion")
	}
	M.addExclusion(i, j)
	return nil
}

// AddExclusionIndex excludes the non-bonded interactions between the particles with the 0-based indexes i and j.
func (M *Molecule) AddExclusionIndex(i, j int) error {
	for _, v := range [2]int{i, j} {
		if v < 0 || v >= len(M.particles) {
			return inputErrorf("%s: exclusion index %d in molecule %q with %d particles", OutOfRange, v, M.name, len(M.particles))
		}
	}
	M.addExclusion(i, j)
	return nil
}

func (M *Molecule) addExclusion(i, j int) {
	if i > j {
		i, j = j, i
	}
	M.exclusions[[2]int{i, j}] = struct{}{}
}

// SetCharge sets the charge of the particle with the given name.
// Particles have zero charge unless set with this method.
func (M *Molecule) SetCharge(name string, charge float64) error {
	i, err := M.mustIndex(name)
	if err != nil {
		return errDecorate(err, "SetCharge")
	}
	M.particles[i].charge = charge
	return nil
}

// ParticleName returns the name of the ith particle. Panics if out of range.
func (M *Molecule) ParticleName(i int) string {
	return M.particles[i].name
}

// ResidueName returns the residue name of the ith particle. Panics if out of range.
func (M *Molecule) ResidueName(i int) string {
	return M.particles[i].residue
}

// ParticleType returns the type of the ith particle. Panics if out of range.
func (M *Molecule) ParticleType(i int) ParticleType {
	return M.particles[i].ptype
}

// Charge returns the charge of the ith particle. Panics if out of range.
func (M *Molecule) Charge(i int) float64 {
	return M.particles[i].charge
}

// Exclusions returns the explicit exclusion pairs of the molecule, smaller index first,
// sorted. Implicit self-exclusions are only included if they were explicitly added.
func (M *Molecule) Exclusions() [][2]int {
	ret := make([][2]int, 0, len(M.exclusions))
	for k := range M.exclusions {
		ret = append(ret, k)
	}
	slices.SortFunc(ret, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return ret
}

// Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	N := NewMolecule(M.name)
	N.particles = slices.Clone(M.particles)
	for k, v := range M.index {
		N.index[k] = v
	}
	for k := range M.exclusions {
		N.exclusions[k] = struct{}{}
	}
	return N
}
