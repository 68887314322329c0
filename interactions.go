/*
 * interactions.go, part of nbtop.
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

	"gonum.org/v1/gonum/mat"
)

// CombinationRule determines how the Lennard-Jones parameters for a pair of
// different particle types are obtained from the parameters of each type.
type CombinationRule int

const (
	// Geometric uses the geometric mean of C6 and of C12.
	Geometric CombinationRule = iota
	// LorentzBerthelot uses the arithmetic mean of sigma and the geometric mean of epsilon.
	LorentzBerthelot
)

func (C CombinationRule) String() string {
	switch C {
	case Geometric:
		return "geometric"
	case LorentzBerthelot:
		return "lorentz-berthelot"
	}
	return sf("CombinationRule(%d)", int(C))
}

// SigmaEpsilonToC6C12 converts Lennard-Jones sigma and epsilon to C6 and C12.
func SigmaEpsilonToC6C12(sigma, epsilon float64) (c6, c12 float64) {
	s6 := math.Pow(sigma, 6)
	return 4 * epsilon * s6, 4 * epsilon * s6 * s6
}

// C6C12ToSigmaEpsilon converts Lennard-Jones C6 and C12 to sigma and epsilon.
// If either C6 or C12 is zero, both results are zero.
func C6C12ToSigmaEpsilon(c6, c12 float64) (sigma, epsilon float64) {
	if c6 == 0 || c12 == 0 {
		return 0, 0
	}
	return math.Pow(c12/c6, 1.0/6.0), c6 * c6 / (4 * c12)
}

type ljParams struct {
	c6, c12 float64
}

type typePair [2]string

func newTypePair(a, b string) typePair {
	if a > b {
		a, b = b, a
	}
	return typePair{a, b}
}

// ParticleTypesInteractions stores the Lennard-Jones parameters of particle types,
// referred to by name, and explicit parameters for specific pairs of types, which
// take precedence over the combination rule.
type ParticleTypesInteractions struct {
	rule   CombinationRule
	single map[string]ljParams
	pairs  map[typePair]ljParams
}

// NewParticleTypesInteractions returns an empty set of interactions that will use
// the given combination rule.
func NewParticleTypesInteractions(rule CombinationRule) *ParticleTypesInteractions {
	P := new(ParticleTypesInteractions)
	P.rule = rule
	P.single = make(map[string]ljParams)
	P.pairs = make(map[typePair]ljParams)
	return P
}

// Rule returns the combination rule
func (P *ParticleTypesInteractions) Rule() CombinationRule {
	return P.rule
}

func checkLJ(c6, c12 float64) error {
	for _, v := range []float64{c6, c12} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return inputErrorf("%s: C6 and C12 must be finite and non-negative, got %g %g", InvalidParameter, c6, c12)
		}
	}
	return nil
}

// Add sets the C6 and C12 parameters of the type with the given name.
// Adding the same values twice is allowed, adding different ones is an InputError.
func (P *ParticleTypesInteractions) Add(typeName string, c6, c12 float64) error {
	if err := checkLJ(c6, c12); err != nil {
		return errDecorate(err, "ParticleTypesInteractions.Add")
	}
	n := ljParams{c6, c12}
	if o, ok := P.single[typeName]; ok && o != n {
		return inputErrorf("%s: type %q already has C6=%g C12=%g, got C6=%g C12=%g", InvalidParameter, typeName, o.c6, o.c12, c6, c12)
	}
	P.single[typeName] = n
	return nil
}

// AddPair sets C6 and C12 for the pair of types a and b (in any order), overriding
// the combination rule for that pair.
func (P *ParticleTypesInteractions) AddPair(a, b string, c6, c12 float64) error {
	if err := checkLJ(c6, c12); err != nil {
		return errDecorate(err, "ParticleTypesInteractions.AddPair")
	}
	k := newTypePair(a, b)
	n := ljParams{c6, c12}
	if o, ok := P.pairs[k]; ok && o != n {
		return inputErrorf("%s: pair %q-%q already has C6=%g C12=%g, got C6=%g C12=%g", InvalidParameter, a, b, o.c6, o.c12, c6, c12)
	}
	P.pairs[k] = n
	return nil
}

// Merge adds all the parameters in o to the receiver. The combination rules of both
// must match, and so must the parameters for any type or pair present in both.
func (P *ParticleTypesInteractions) Merge(o *ParticleTypesInteractions) error {
	if o == nil {
		return nil
	}
	if o.rule != P.rule {
		return inputErrorf("%s: can't merge interactions with combination rules %s and %s", InvalidParameter, P.rule, o.rule)
	}
	for k, v := range o.single {
		if err := P.Add(k, v.c6, v.c12); err != nil {
			return errDecorate(err, "Merge")
		}
	}
	for k, v := range o.pairs {
		if err := P.AddPair(k[0], k[1], v.c6, v.c12); err != nil {
			return errDecorate(err, "Merge")
		}
	}
	return nil
}

func (P *ParticleTypesInteractions) combine(a, b ljParams) ljParams {
	geo := ljParams{math.Sqrt(a.c6 * b.c6), math.Sqrt(a.c12 * b.c12)}
	if P.rule != LorentzBerthelot || a.c6 == 0 || a.c12 == 0 || b.c6 == 0 || b.c12 == 0 {
		return geo
	}
	sa, ea := C6C12ToSigmaEpsilon(a.c6, a.c12)
	sb, eb := C6C12ToSigmaEpsilon(b.c6, b.c12)
	c6, c12 := SigmaEpsilonToC6C12((sa+sb)/2, math.Sqrt(ea*eb))
	return ljParams{c6, c12}
}

// Table builds the matrix of non-bonded parameters for the given types, in the given order.
// It returns an InputError if any of the types has no parameters.
func (P *ParticleTypesInteractions) Table(types []ParticleType) (*NonbondedTable, error) {
	n := len(types)
	if n == 0 {
		return &NonbondedTable{}, nil
	}
	params := make([]ljParams, n)
	for i, t := range types {
		p, ok := P.single[t.name]
		if !ok {
			return nil, inputErrorf("%s: no non-bonded parameters for particle type %q", UnknownName, t.name)
		}
		params[i] = p
	}
	T := &NonbondedTable{c6: mat.NewSymDense(n, nil), c12: mat.NewSymDense(n, nil)}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			p, ok := P.pairs[newTypePair(types[i].name, types[j].name)]
			if !ok {
				p = P.combine(params[i], params[j])
			}
			T.c6.SetSym(i, j, p.c6)
			T.c12.SetSym(i, j, p.c12)
		}
	}
	return T, nil
}

// NonbondedTable holds the C6 and C12 parameters for every pair of particle types
// of a topology, indexed by type id.
type NonbondedTable struct {
	c6, c12 *mat.SymDense
}

// Len returns the number of types in the table
func (N *NonbondedTable) Len() int {
	if N == nil || N.c6 == nil {
		return 0
	}
	return N.c6.SymmetricDim()
}

// C6 returns the C6 parameter for the types with ids i and j. Panics if out of range.
func (N *NonbondedTable) C6(i, j int) float64 {
	return N.c6.At(i, j)
}

// C12 returns the C12 parameter for the types with ids i and j. Panics if out of range.
func (N *NonbondedTable) C12(i, j int) float64 {
	return N.c12.At(i, j)
}

// Matrices returns copies of the C6 and C12 matrices.
func (N *NonbondedTable) Matrices() (c6, c12 *mat.SymDense) {
	if N.Len() == 0 {
		return nil, nil
	}
	c6 = mat.NewSymDense(N.Len(), nil)
	c6.CopySym(N.c6)
	c12 = mat.NewSymDense(N.Len(), nil)
	c12.CopySym(N.c12)
	return c6, c12
}
