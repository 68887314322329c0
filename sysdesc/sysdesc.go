/*
 * sysdesc.go, part of nbtop.
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

// Package sysdesc reads YAML descriptions of simulation systems: particle types,
// molecule templates, the composition of the system and, optionally, the
// Lennard-Jones parameters of the types.
//
// A description looks like this:
//
//	combination_rule: geometric
//	particle_types:
//	  - {name: Ow, mass: 15.9994, c6: 0.0026173456, c12: 2.634129e-06}
//	  - {name: Hw, mass: 1.008, c6: 0, c12: 0}
//	molecules:
//	  - name: SOL
//	    particles:
//	      - {name: Oxygen, type: Ow, charge: -0.82}
//	      - {name: H1, type: Hw, charge: 0.41}
//	      - {name: H2, type: Hw, charge: 0.41}
//	    exclusions:
//	      - [Oxygen, H1, H2]
//	system:
//	  - {molecule: SOL, count: 2}
//
// Each exclusions entry excludes its first particle from all the others.
package sysdesc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rmera/nbtop"
)

// File is the root structure of a system description.
type File struct {
	CombinationRule string         `yaml:"combination_rule"`
	ParticleTypes   []TypeDef      `yaml:"particle_types"`
	Pairs           []PairDef      `yaml:"pairs"`
	Molecules       []MoleculeDef  `yaml:"molecules"`
	System          []CompositeDef `yaml:"system"`
}

// TypeDef defines a particle type. If the mass is not given, the mass of the
// element guessed from the name is used. Lennard-Jones parameters can be given
// as c6/c12 or as sigma/epsilon.
type TypeDef struct {
	Name    string   `yaml:"name"`
	Mass    *float64 `yaml:"mass"`
	C6      *float64 `yaml:"c6"`
	C12     *float64 `yaml:"c12"`
	Sigma   *float64 `yaml:"sigma"`
	Epsilon *float64 `yaml:"epsilon"`
}

// PairDef gives explicit Lennard-Jones parameters for a pair of types.
type PairDef struct {
	Types   [2]string `yaml:"types"`
	C6      *float64  `yaml:"c6"`
	C12     *float64  `yaml:"c12"`
	Sigma   *float64  `yaml:"sigma"`
	Epsilon *float64  `yaml:"epsilon"`
}

// MoleculeDef defines a molecule template.
type MoleculeDef struct {
	Name       string        `yaml:"name"`
	Particles  []ParticleDef `yaml:"particles"`
	Exclusions [][]string    `yaml:"exclusions"`
}

// ParticleDef is a particle in a molecule. The residue defaults to the molecule name.
type ParticleDef struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	Residue string  `yaml:"residue"`
	Charge  float64 `yaml:"charge"`
}

// CompositeDef is a number of copies of a molecule in the system.
type CompositeDef struct {
	Molecule string `yaml:"molecule"`
	Count    int    `yaml:"count"`
}

// Parse reads a system description from b. Unknown fields are an error.
func Parse(b []byte) (*nbtop.System, error) {
	return Load(bytes.NewReader(b))
}

// Load reads a system description from r.
func Load(r io.Reader) (*nbtop.System, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse system description: %w", err)
	}
	return f.toSystem()
}

// LoadFile reads the system description in the file fname.
func LoadFile(fname string) (*nbtop.System, error) {
	fin, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fname, err)
	}
	defer fin.Close()
	S, err := Load(fin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return S, nil
}

func lj(where string, c6, c12, sigma, epsilon *float64) (v [2]float64, ok bool, err error) {
	switch {
	case c6 != nil && c12 != nil && sigma == nil && epsilon == nil:
		return [2]float64{*c6, *c12}, true, nil
	case sigma != nil && epsilon != nil && c6 == nil && c12 == nil:
		v[0], v[1] = nbtop.SigmaEpsilonToC6C12(*sigma, *epsilon)
		return v, true, nil
	case c6 == nil && c12 == nil && sigma == nil && epsilon == nil:
		return v, false, nil
	}
	return v, false, fmt.Errorf("%s: give either c6 and c12, or sigma and epsilon", where)
}

func rule(s string) (nbtop.CombinationRule, error) {
	switch s {
	case "", nbtop.Geometric.String():
		return nbtop.Geometric, nil
	case nbtop.LorentzBerthelot.String():
		return nbtop.LorentzBerthelot, nil
	}
	return nbtop.Geometric, fmt.Errorf("unknown combination rule %q", s)
}

// toSystem converts the description into a System.
func (F *File) toSystem() (*nbtop.System, error) {
	types := make(map[string]nbtop.ParticleType, len(F.ParticleTypes))
	R, err := rule(F.CombinationRule)
	if err != nil {
		return nil, err
	}
	P := nbtop.NewParticleTypesInteractions(R)
	params := false
	for _, v := range F.ParticleTypes {
		if _, ok := types[v.Name]; ok {
			return nil, fmt.Errorf("particle type %q defined twice", v.Name)
		}
		var mass float64
		if v.Mass != nil {
			mass = *v.Mass
		} else if m, ok := nbtop.SymbolMass(nbtop.GuessSymbol(v.Name)); ok {
			mass = m
		} else {
			return nil, fmt.Errorf("particle type %q: no mass given, and it can't be guessed", v.Name)
		}
		types[v.Name] = nbtop.NewParticleType(v.Name, mass)
		p, ok, err := lj("particle type "+v.Name, v.C6, v.C12, v.Sigma, v.Epsilon)
		if err != nil {
			return nil, err
		}
		if ok {
			params = true
			if err := P.Add(v.Name, p[0], p[1]); err != nil {
				return nil, fmt.Errorf("particle type %q: %w", v.Name, err)
			}
		}
	}
	for _, v := range F.Pairs {
		where := sf("pair %s-%s", v.Types[0], v.Types[1])
		p, ok, err := lj(where, v.C6, v.C12, v.Sigma, v.Epsilon)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: no parameters", where)
		}
		params = true
		if err := P.AddPair(v.Types[0], v.Types[1], p[0], p[1]); err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
	}
	mols := make(map[string]*nbtop.Molecule, len(F.Molecules))
	for _, v := range F.Molecules {
		if _, ok := mols[v.Name]; ok {
			return nil, fmt.Errorf("molecule %q defined twice", v.Name)
		}
		m, err := v.molecule(types)
		if err != nil {
			return nil, err
		}
		mols[v.Name] = m
	}
	S := new(nbtop.System)
	for _, v := range F.System {
		m, ok := mols[v.Molecule]
		if !ok {
			return nil, fmt.Errorf("system: unknown molecule %q", v.Molecule)
		}
		S.Registrations = append(S.Registrations, nbtop.Registration{Molecule: m, Count: v.Count})
	}
	if params {
		S.Interactions = P
	}
	return S, nil
}

func (M *MoleculeDef) molecule(types map[string]nbtop.ParticleType) (*nbtop.Molecule, error) {
	m := nbtop.NewMolecule(M.Name)
	for _, p := range M.Particles {
		t, ok := types[p.Type]
		if !ok {
			return nil, fmt.Errorf("molecule %s: particle %s has unknown type %q", M.Name, p.Name, p.Type)
		}
		res := p.Residue
		if res == "" {
			res = M.Name
		}
		if err := m.AddParticleInResidue(p.Name, res, t); err != nil {
			return nil, fmt.Errorf("molecule %s: %w", M.Name, err)
		}
		if err := m.SetCharge(p.Name, p.Charge); err != nil {
			return nil, fmt.Errorf("molecule %s: %w", M.Name, err)
		}
	}
	for _, ex := range M.Exclusions {
		if len(ex) < 2 {
			return nil, fmt.Errorf("molecule %s: exclusion entry %v needs at least two particles", M.Name, ex)
		}
		for _, v := range ex[1:] {
			if err := m.AddExclusion(ex[0], v); err != nil {
				return nil, fmt.Errorf("molecule %s: %w", M.Name, err)
			}
		}
	}
	return m, nil
}

var sf = fmt.Sprintf
