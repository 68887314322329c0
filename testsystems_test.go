/*
 * testsystems_test.go, part of nbtop.
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
	"testing"

	"github.com/stretchr/testify/require"
)

var testCharges = map[string]float64{
	"Ow":   -0.82,
	"Hw":   0.41,
	"OMet": -0.574,
	"CMet": 0.140,
	"HMet": 0.434,
}

var (
	owType = NewParticleType("Ow", 15.99940)
	hwType = NewParticleType("Hw", 1.008)
	omType = NewParticleType("OMet", 15.99940)
	cmType = NewParticleType("CMet", 15.035)
	hmType = NewParticleType("HMet", 1.008)
)

// water returns the SPC water template: Oxygen, H1, H2, all excluded from each other.
func water(t testing.TB) *Molecule {
	t.Helper()
	m := NewMolecule("SOL")
	require.NoError(t, m.AddParticle("Oxygen", owType))
	require.NoError(t, m.AddParticle("H1", hwType))
	require.NoError(t, m.AddParticle("H2", hwType))
	require.NoError(t, m.SetCharge("Oxygen", testCharges["Ow"]))
	require.NoError(t, m.SetCharge("H1", testCharges["Hw"]))
	require.NoError(t, m.SetCharge("H2", testCharges["Hw"]))
	require.NoError(t, m.AddExclusion("Oxygen", "H1"))
	require.NoError(t, m.AddExclusion("Oxygen", "H2"))
	require.NoError(t, m.AddExclusion("H1", "H2"))
	return m
}

// methanol returns a united-atom methanol: Me1, O2, H3, all excluded from each other.
func methanol(t testing.TB) *Molecule {
	t.Helper()
	m := NewMolecule("MeOH")
	require.NoError(t, m.AddParticleInResidue("Me1", "MeOH", cmType))
	require.NoError(t, m.AddParticleInResidue("O2", "MeOH", omType))
	require.NoError(t, m.AddParticleInResidue("H3", "MeOH", hmType))
	require.NoError(t, m.SetCharge("Me1", testCharges["CMet"]))
	require.NoError(t, m.SetCharge("O2", testCharges["OMet"]))
	require.NoError(t, m.SetCharge("H3", testCharges["HMet"]))
	require.NoError(t, m.AddExclusion("Me1", "O2"))
	require.NoError(t, m.AddExclusion("Me1", "H3"))
	require.NoError(t, m.AddExclusion("H3", "O2"))
	return m
}

func waterTopology(t testing.TB, n int) *Topology {
	t.Helper()
	B := NewTopologyBuilder()
	require.NoError(t, B.AddMolecule(water(t), n))
	top, err := B.Build()
	require.NoError(t, err)
	return top
}

// requireValidTopology checks the properties every built topology must have.
func requireValidTopology(t require.TestingT, top *Topology) {
	N := top.NumParticles()
	require.Len(t, top.Charges(), N)
	require.Len(t, top.Masses(), N)
	require.Len(t, top.ParticleTypeIDs(), N)
	types := top.ParticleTypes()
	masses := top.Masses()
	for i, id := range top.ParticleTypeIDs() {
		require.True(t, id >= 0 && id < len(types), "type id %d of particle %d out of range", id, i)
		require.Equal(t, types[id].Mass(), masses[i])
	}
	ex := top.Exclusions()
	require.Equal(t, N, ex.Len())
	for i := 0; i < N; i++ {
		l := ex.At(i)
		require.Contains(t, l, i, "particle %d not excluded from itself", i)
		for k, j := range l {
			if k > 0 {
				require.Less(t, l[k-1], j, "exclusions of %d not strictly ascending", i)
			}
			require.Contains(t, ex.At(j), i, "exclusion %d-%d not symmetric", i, j)
		}
	}
	seen := make(map[int]bool, N)
	for i := 0; i < N; i++ {
		p, err := top.Identify(i)
		require.NoError(t, err)
		id, err := top.SequenceID(p.Molecule, p.Instance, p.Residue, p.Particle)
		require.NoError(t, err)
		require.Equal(t, i, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}
