/*
 * topology_test.go, part of nbtop.
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
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopologyHasNumParticles(Te *testing.T) {
	top := waterTopology(Te, 2)
	require.Equal(Te, 6, top.NumParticles())
	requireValidTopology(Te, top)
}

func TestTopologyHasCharges(Te *testing.T) {
	top := waterTopology(Te, 2)
	ow, hw := testCharges["Ow"], testCharges["Hw"]
	require.Equal(Te, []float64{ow, hw, hw, ow, hw, hw}, top.Charges())
	require.InDelta(Te, 0.0, top.TotalCharge(), 1e-12)
}

func TestTopologyHasMasses(Te *testing.T) {
	top := waterTopology(Te, 2)
	om, hm := owType.Mass(), hwType.Mass()
	ref := []float64{om, hm, hm, om, hm, hm}
	require.Equal(Te, ref, ExpandQuantity(top, ParticleType.Mass))
	require.Equal(Te, ref, top.Masses())
	require.InDelta(Te, 2*om+4*hm, top.TotalMass(), 1e-12)
	v := top.MassVec()
	require.Equal(Te, 6, v.Len())
	require.Equal(Te, om, v.AtVec(3))
}

func TestTopologyHasParticleTypes(Te *testing.T) {
	top := waterTopology(Te, 2)
	types := top.ParticleTypes()
	require.Len(Te, types, 2)
	//first occurrence order, not alphabetical
	require.True(Te, types[0].Equal(owType))
	require.True(Te, types[1].Equal(hwType))
}

func TestTopologyHasParticleTypeIds(Te *testing.T) {
	top := waterTopology(Te, 2)
	types := top.ParticleTypes()
	expanded := make([]ParticleType, 0, top.NumParticles())
	for _, id := range top.ParticleTypeIDs() {
		expanded = append(expanded, types[id])
	}
	require.Equal(Te, []ParticleType{owType, hwType, hwType, owType, hwType, hwType}, expanded)
	require.Equal(Te, []int{0, 1, 1, 0, 1, 1}, top.ParticleTypeIDs())
}

func TestTopologyThrowsIdenticalParticleType(Te *testing.T) {
	u235 := NewParticleType("Uranium", 235)
	u238 := NewParticleType("Uranium", 238)
	ud235 := NewMolecule("UraniumDimer235")
	require.NoError(Te, ud235.AddParticle("U1", u235))
	require.NoError(Te, ud235.AddParticle("U2", u235))
	ud238 := NewMolecule("UraniumDimer238")
	require.NoError(Te, ud238.AddParticle("U1", u238))
	require.NoError(Te, ud238.AddParticle("U2", u238))

	B := NewTopologyBuilder()
	require.NoError(Te, B.AddMolecule(ud235, 1))
	err := B.AddMolecule(ud238, 1)
	require.Error(Te, err)
	require.True(Te, IsInputError(err))
	require.Contains(Te, err.Error(), TypeCollision)
	require.Contains(Te, err.Error(), "Uranium")
}

func TestTopologyCollisionWithinMolecule(Te *testing.T) {
	m := NewMolecule("Mixed")
	require.NoError(Te, m.AddParticle("U1", NewParticleType("Uranium", 235)))
	require.NoError(Te, m.AddParticle("U2", NewParticleType("Uranium", 238)))
	B := NewTopologyBuilder()
	err := B.AddMolecule(m, 1)
	require.True(Te, IsInputError(err))
	//nothing was registered
	top, err := B.Build()
	require.NoError(Te, err)
	require.Equal(Te, 0, top.NumParticles())
	require.Equal(Te, 0, top.NumParticleTypes())
}

func TestTopologyHasExclusions(Te *testing.T) {
	top := waterTopology(Te, 2)
	ref := [][]int{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}, {3, 4, 5}, {3, 4, 5}, {3, 4, 5}}
	require.Equal(Te, ref, top.Exclusions().Slices())
	blocks := top.ExclusionBlocks()
	require.Len(Te, blocks, 6)
	for i, b := range blocks {
		require.Equal(Te, ref[i], b.AtomNumber)
	}
}

func TestTopologyHasSequencing(Te *testing.T) {
	top := waterTopology(Te, 2)
	cases := []struct {
		instance int
		particle string
		want     int
	}{
		{0, "Oxygen", 0}, {0, "H1", 1}, {0, "H2", 2},
		{1, "Oxygen", 3}, {1, "H1", 4}, {1, "H2", 5},
	}
	for _, c := range cases {
		got, err := top.SequenceID("SOL", c.instance, "SOL", c.particle)
		require.NoError(Te, err)
		require.Equal(Te, c.want, got, "%d %s", c.instance, c.particle)
	}
	for _, bad := range [][2]string{{"SOL", "H3"}, {"MeOH", "H1"}} {
		_, err := top.SequenceID(bad[0], 0, bad[0], bad[1])
		require.True(Te, IsInputError(err))
		require.Contains(Te, err.Error(), UnknownName)
	}
	_, err := top.SequenceID("SOL", 2, "SOL", "H1")
	require.True(Te, IsInputError(err))
	_, err = top.SequenceID("SOL", 0, "WAT", "H1")
	require.True(Te, IsInputError(err))
	p, err := top.Identify(4)
	require.NoError(Te, err)
	require.Equal(Te, ParticleIdentifier{Molecule: "SOL", Instance: 1, Residue: "SOL", Particle: "H1"}, p)
	_, err = top.Identify(6)
	require.True(Te, IsInputError(err))
}

func TestTopologyMixedSystemOrdering(Te *testing.T) {
	B := NewTopologyBuilder()
	require.NoError(Te, B.AddMolecule(water(Te), 2))
	require.NoError(Te, B.AddMolecule(methanol(Te), 3))
	require.NoError(Te, B.AddMolecule(water(Te), 1))
	top, err := B.Build()
	require.NoError(Te, err)
	requireValidTopology(Te, top)
	require.Equal(Te, 2*3+3*3+3, top.NumParticles())
	//types in order of first occurrence
	names := ExpandQuantity(top, ParticleType.Name)
	require.Equal(Te, "CMet", names[6])
	tnames := make([]string, 0)
	for _, t := range top.ParticleTypes() {
		tnames = append(tnames, t.Name())
	}
	require.Equal(Te, []string{"Ow", "Hw", "CMet", "OMet", "HMet"}, tnames)
	//index of instance k particle p of molecule i is sum_{j<i} c_j*s_j + k*s_i + p
	id, err := top.SequenceID("MeOH", 2, "MeOH", "H3")
	require.NoError(Te, err)
	require.Equal(Te, 6+2*3+2, id)
	//the second registration of SOL continues the instance count.
	id, err = top.SequenceID("SOL", 2, "SOL", "Oxygen")
	require.NoError(Te, err)
	require.Equal(Te, 15, id)
	require.Equal(Te, []int{15, 16, 17}, top.Exclusions().At(16))
}

func TestTopologyBuilderConsumed(Te *testing.T) {
	B := NewTopologyBuilder()
	require.NoError(Te, B.AddMolecule(water(Te), 1))
	_, err := B.Build()
	require.NoError(Te, err)
	_, err = B.Build()
	require.True(Te, IsInputError(err))
	require.Contains(Te, err.Error(), ConsumedBuilder)
	err = B.AddMolecule(water(Te), 1)
	require.True(Te, IsInputError(err))
	err = B.AddParticleTypesInteractions(NewParticleTypesInteractions(Geometric))
	require.True(Te, IsInputError(err))
}

func TestTopologyBuilderInvalidCount(Te *testing.T) {
	B := NewTopologyBuilder()
	for _, c := range []int{0, -1} {
		err := B.AddMolecule(water(Te), c)
		require.True(Te, IsInputError(err))
		require.Contains(Te, err.Error(), InvalidCount)
	}
	require.True(Te, IsInputError(B.AddMolecule(nil, 1)))
}

func TestTopologyBuilderSnapshot(Te *testing.T) {
	m := water(Te)
	B := NewTopologyBuilder()
	require.NoError(Te, B.AddMolecule(m, 1))
	//changes after registration don't reach the builder
	require.NoError(Te, m.SetCharge("Oxygen", 5))
	require.NoError(Te, m.AddParticle("Extra", hwType))
	top, err := B.Build()
	require.NoError(Te, err)
	require.Equal(Te, 3, top.NumParticles())
	require.Equal(Te, testCharges["Ow"], top.Charges()[0])
}

func TestTopologySingleMoleculeNoExclusions(Te *testing.T) {
	m := NewMolecule("Ar3")
	ar := NewParticleType("Ar", 39.948)
	for _, n := range []string{"A1", "A2", "A3"} {
		require.NoError(Te, m.AddParticle(n, ar))
	}
	B := NewTopologyBuilder()
	require.NoError(Te, B.AddMolecule(m, 1))
	top, err := B.Build()
	require.NoError(Te, err)
	require.Equal(Te, [][]int{{0}, {1}, {2}}, top.Exclusions().Slices())
	require.Equal(Te, []float64{0, 0, 0}, top.Charges())
}

func TestTopologyAccessorsReturnCopies(Te *testing.T) {
	top := waterTopology(Te, 1)
	c := top.Charges()
	c[0] = 100
	ids := top.ParticleTypeIDs()
	ids[0] = 7
	require.Equal(Te, testCharges["Ow"], top.Charges()[0])
	require.Equal(Te, 0, top.ParticleTypeIDs()[0])
}

func TestTopologyExclusionsCantBeModified(Te *testing.T) {
	top := waterTopology(Te, 2)
	ref := top.Exclusions().Slices()
	offsets, values := top.Exclusions().Raw()
	values[0] = 5
	offsets = append(offsets, 99)
	offsets[1] = 0
	s := top.Exclusions().Slices()
	s[0][0] = 7
	c := top.Exclusions().Copy()
	c.pushBack([]int{99})
	require.Equal(Te, top.NumParticles(), top.Exclusions().Len())
	require.Equal(Te, ref, top.Exclusions().Slices())
	requireValidTopology(Te, top)
}

func TestTopologyConcurrentReaders(Te *testing.T) {
	top := waterTopology(Te, 50)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				id, err := top.SequenceID("SOL", k, "SOL", "H2")
				if err != nil {
					errs <- err
					return
				}
				if l := top.Exclusions().At(id); l[0] != 3*k {
					errs <- inputErrorf("bad exclusions for %d: %v", id, l)
					return
				}
				_ = top.Masses()
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(Te, err)
	}
}

func TestInputErrorDecorations(Te *testing.T) {
	m := NewMolecule("SOL")
	err := m.SetCharge("Nope", 1)
	require.Error(Te, err)
	var ie *InputError
	require.ErrorAs(Te, err, &ie)
	require.Equal(Te, []string{"SetCharge"}, ie.Decorate(""))
	require.True(Te, strings.HasPrefix(err.Error(), "nbtop: SetCharge: "+UnknownName))
	require.Contains(Te, ie.Message(), `"Nope"`)
}
