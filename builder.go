/*
 * builder.go, part of nbtop.
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
	"go.uber.org/zap"
)

// Registration is a molecule template together with the number of
// copies of it present in the system.
type Registration struct {
	Molecule *Molecule
	Count    int
}

// BuilderOption configures a TopologyBuilder.
type BuilderOption func(*TopologyBuilder)

// WithLogger sets the logger used by the builder. By default the builder doesn't log.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(B *TopologyBuilder) {
		if l != nil {
			B.log = l
		}
	}
}

// TopologyBuilder collects molecule registrations and produces a Topology.
// It is not safe for concurrent use. A builder can only build one Topology, after which
// it is consumed, and every further call returns an InputError.
// If any call fails, the builder should be discarded.
type TopologyBuilder struct {
	regs         []Registration
	registry     *typeRegistry
	interactions *ParticleTypesInteractions
	consumed     bool
	log          *zap.Logger
}

// NewTopologyBuilder returns a builder with an empty particle type registry.
func NewTopologyBuilder(opts ...BuilderOption) *TopologyBuilder {
	B := new(TopologyBuilder)
	B.registry = newTypeRegistry()
	B.log = zap.NewNop()
	for _, o := range opts {
		o(B)
	}
	return B
}

// AddMolecule registers count copies of a snapshot of m. It returns an InputError if count
// is smaller than 1, if m uses a particle type which shares a name, but not the mass,
// with a type already registered, or if the builder has been consumed.
// Nothing is registered if an error is returned.
func (B *TopologyBuilder) AddMolecule(m *Molecule, count int) error {
	if B.consumed {
		return inputErrorf("%s: AddMolecule called after Build", ConsumedBuilder)
	}
	if m == nil {
		return inputErrorf("%s: nil molecule", UnknownName)
	}
	if count < 1 {
		return inputErrorf("%s: molecule %q registered with count %d, must be at least 1", InvalidCount, m.name, count)
	}
	//first check everything, then insert, so a failure doesn't leave half a molecule in the registry.
	local := newTypeRegistry()
	for _, p := range m.particles {
		if _, err := local.add(p.ptype); err != nil {
			return errDecorate(err, sf("AddMolecule %s", m.name))
		}
		if err := B.registry.conflict(p.ptype); err != nil {
			return errDecorate(err, sf("AddMolecule %s", m.name))
		}
	}
	for _, t := range local.types {
		B.registry.add(t) //can't fail, checked above
	}
	B.regs = append(B.regs, Registration{Molecule: m.Copy(), Count: count})
	B.log.Debug("registered molecule",
		zap.String("molecule", m.name),
		zap.Int("count", count),
		zap.Int("particles", m.Len()),
		zap.Int("exclusions", len(m.exclusions)),
		zap.Int("types", B.registry.len()))
	return nil
}

// AddParticleTypesInteractions merges p into the non-bonded parameters of the builder.
// If any interactions are added, Build will produce a NonbondedTable and require
// parameters for every particle type used.
func (B *TopologyBuilder) AddParticleTypesInteractions(p *ParticleTypesInteractions) error {
	if B.consumed {
		return inputErrorf("%s: AddParticleTypesInteractions called after Build", ConsumedBuilder)
	}
	if p == nil {
		return nil
	}
	if B.interactions == nil {
		B.interactions = NewParticleTypesInteractions(p.rule)
	}
	return errDecorate(B.interactions.Merge(p), "AddParticleTypesInteractions")
}

// Build validates the registered molecules and returns the resulting Topology.
// The builder is consumed by the call, even if it fails.
func (B *TopologyBuilder) Build() (*Topology, error) {
	if B.consumed {
		return nil, inputErrorf("%s: Build called twice", ConsumedBuilder)
	}
	B.consumed = true
	N := 0
	for _, r := range B.regs {
		N += r.Molecule.Len() * r.Count
	}
	T := new(Topology)
	T.charges = make([]float64, N)
	T.masses = make([]float64, N)
	T.typeIDs = make([]int, N)
	T.types = append([]ParticleType(nil), B.registry.types...)
	T.seq = newSequencer(N)
	global := 0
	for _, r := range B.regs {
		m := r.Molecule
		ids := make([]int, m.Len())
		for i, p := range m.particles {
			id, ok := B.registry.id(p.ptype.name)
			if !ok {
				//AddMolecule registers every type, so this means the builder is broken.
				panic(sf("Build: particle type %q not in the registry", p.ptype.name))
			}
			ids[i] = id
		}
		first := T.seq.nextInstance(m.name, r.Count)
		for k := 0; k < r.Count; k++ {
			for i, p := range m.particles {
				T.charges[global] = p.charge
				T.masses[global] = p.ptype.mass
				T.typeIDs[global] = ids[i]
				if err := T.seq.add(ParticleIdentifier{Molecule: m.name, Instance: first + k, Residue: p.residue, Particle: p.name}, global); err != nil {
					return nil, errDecorate(err, "Build")
				}
				global++
			}
		}
	}
	T.exclusions = lowerExclusions(B.regs)
	if B.interactions != nil {
		table, err := B.interactions.Table(T.types)
		if err != nil {
			return nil, errDecorate(err, "Build")
		}
		T.nonbonded = table
	}
	B.log.Debug("built topology",
		zap.Int("particles", N),
		zap.Int("types", len(T.types)),
		zap.Int("exclusion_elements", T.exclusions.NumElements()),
		zap.Bool("nonbonded_table", T.nonbonded != nil))
	B.regs = nil
	return T, nil
}

// System is an ordered set of molecule registrations, and, optionally, the non-bonded
// parameters for their particle types. It is what the file readers produce.
type System struct {
	Registrations []Registration
	Interactions  *ParticleTypesInteractions
}

// Builder returns a new TopologyBuilder with all the registrations and interactions in S.
func (S *System) Builder(opts ...BuilderOption) (*TopologyBuilder, error) {
	B := NewTopologyBuilder(opts...)
	for _, r := range S.Registrations {
		if err := B.AddMolecule(r.Molecule, r.Count); err != nil {
			return nil, errDecorate(err, "System.Builder")
		}
	}
	if err := B.AddParticleTypesInteractions(S.Interactions); err != nil {
		return nil, errDecorate(err, "System.Builder")
	}
	return B, nil
}

// Build is a shortcut for building the Topology from a builder obtained with S.Builder.
func (S *System) Build(opts ...BuilderOption) (*Topology, error) {
	B, err := S.Builder(opts...)
	if err != nil {
		return nil, err
	}
	return B.Build()
}

// NumParticles returns the number of particles the system will have.
func (S *System) NumParticles() int {
	n := 0
	for _, r := range S.Registrations {
		n += r.Molecule.Len() * r.Count
	}
	return n
}
