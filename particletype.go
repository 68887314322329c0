/*
 * particletype.go, part of nbtop.
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
	"math"
)

// ParticleType is a reusable (name, mass) pair shared by many particles.
// It is a value object, so it can be freely copied.
type ParticleType struct {
	name string
	mass float64
}

// NewParticleType returns a ParticleType with the given name and mass.
// The values are checked when the type is first used in a Molecule.
func NewParticleType(name string, mass float64) ParticleType {
	return ParticleType{name: name, mass: mass}
}

// Name returns the name of the type
func (P ParticleType) Name() string {
	return P.name
}

// Mass returns the mass of the type
func (P ParticleType) Mass() float64 {
	return P.mass
}

// Equal returns true if both types have the same name and exactly (bitwise) the same mass.
// No tolerance is used, as two slightly different masses are two different definitions.
func (P ParticleType) Equal(o ParticleType) bool {
	return P.name == o.name && math.Float64bits(P.mass) == math.Float64bits(o.mass)
}

func (P ParticleType) String() string {
	return sf("%s (mass %g)", P.name, P.mass)
}

func (P ParticleType) check() error {
	if P.name == "" {
		return inputErrorf("%s: empty name", InvalidType)
	}
	if math.IsNaN(P.mass) || math.IsInf(P.mass, 0) || P.mass <= 0 {
		return inputErrorf("%s: %s must have a positive, finite mass, got %g", InvalidType, P.name, P.mass)
	}
	return nil
}

// typeRegistry is the canonical table of particle types of a builder,
// keyed by name. The order of insertion is kept, as it determines the
// type ids.
type typeRegistry struct {
	byName map[string]int
	types  []ParticleType
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{byName: make(map[string]int)}
}

// conflict returns an error if t shares its name with a registered
// type that has a different mass. It doesn't modify the registry.
func (R *typeRegistry) conflict(t ParticleType) error {
	i, ok := R.byName[t.name]
	if !ok || R.types[i].Equal(t) {
		return nil
	}
	return inputErrorf("%s: %q is registered with mass %g, attempted to register it again with mass %g", TypeCollision, t.name, R.types[i].mass, t.mass)
}

// add inserts t, if not present, and returns its id.
func (R *typeRegistry) add(t ParticleType) (int, error) {
	if err := R.conflict(t); err != nil {
		return -1, err
	}
	if i, ok := R.byName[t.name]; ok {
		return i, nil
	}
	R.types = append(R.types, t)
	R.byName[t.name] = len(R.types) - 1
	return len(R.types) - 1, nil
}

func (R *typeRegistry) id(name string) (int, bool) {
	i, ok := R.byName[name]
	return i, ok
}

func (R *typeRegistry) len() int {
	return len(R.types)
}
