/*
 * groio_test.go, part of nbtop.
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

package top

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/nbtop"
	"github.com/stretchr/testify/require"
)

const ffITP = `; force field
[ defaults ]
; nbfunc comb-rule gen-pairs fudgeLJ fudgeQQ
1 2 no 1.0 1.0

[ atomtypes ]
;name at.num   mass     charge ptype  sigma      epsilon
OW    8  15.99940   0.000   A   3.16557e-01  6.50194e-01
HW    1   1.00800   0.000   A   0.0          0.0
CH3   6  15.03500   0.000   A   3.75e-01     8.67e-01
OA    8  15.99940  -0.500   A   3.0e-01      7.0e-01
HO    1   1.00800   0.000   A   0.0          0.0

[ nonbond_params ]
OW  OA  1  3.1e-01  6.6e-01
`

const molsTOP = `
[ moleculetype ]
; name nrexcl
SOL 2

[ atoms ]
1 OW 1 SOL OW  1 -0.82
#ifdef HEAVY_H
2 HW 1 SOL HW1 1 0.41 4.032
3 HW 1 SOL HW2 1 0.41 4.032
#else
2 HW 1 SOL HW1 1 0.41
3 HW 1 SOL HW2 1 0.41
#endif

#ifdef FLEXIBLE
[ bonds ]
1 2 1 0.1 345000
1 3 1 0.1 345000
#else
[ settles ]
1 1 0.1 0.16330
#endif

[ exclusions ]
1 2 3
2 1 3
3 1 2

[ moleculetype ]
MeOH 3

[ atoms ]
1 CH3 1 MeOH Me1 1 0.176 15.035
2 OA  1 MeOH O2  1
3 HO  1 MeOH H3  1 0.398 ; comment

[ bonds ]
1 2 1 0.136 376560

[ exclusions ]
1 2 3
2 3

[ system ]
test system

[ molecules ]
SOL  2
MeOH 1
SOL  1
`

func readString(t *testing.T, s string, O *Options) *nbtop.System {
	t.Helper()
	S, err := Read(TopInMemFromString(s), O)
	require.NoError(t, err)
	return S
}

func TestReadTop(Te *testing.T) {
	S := readString(Te, ffITP+molsTOP, nil)
	require.Len(Te, S.Registrations, 3)
	require.Equal(Te, 12, S.NumParticles())
	top, err := S.Build()
	require.NoError(Te, err)
	require.Equal(Te, 12, top.NumParticles())

	ch := top.Charges()
	require.Equal(Te, []float64{-0.82, 0.41, 0.41}, ch[:3])
	//O2 takes its charge from the atom type
	require.Equal(Te, []float64{0.176, -0.5, 0.398}, ch[6:9])
	require.Equal(Te, 1.008, top.Masses()[1])

	names := make([]string, 0, 5)
	for _, v := range top.ParticleTypes() {
		names = append(names, v.Name())
	}
	require.Equal(Te, []string{"OW", "HW", "CH3", "OA", "HO"}, names)

	require.Equal(Te, []int{6, 7, 8}, top.Exclusions().At(7))
	require.Equal(Te, []int{9, 10, 11}, top.Exclusions().At(9))
	id, err := top.SequenceID("SOL", 2, "SOL", "HW2")
	require.NoError(Te, err)
	require.Equal(Te, 11, id)
	id, err = top.SequenceID("MeOH", 0, "MeOH", "H3")
	require.NoError(Te, err)
	require.Equal(Te, 8, id)

	require.Equal(Te, nbtop.LorentzBerthelot, S.Interactions.Rule())
	table, ok := top.NonbondedParameters()
	require.True(Te, ok)
	require.Equal(Te, 5, table.Len())
	c6, c12 := nbtop.SigmaEpsilonToC6C12(0.31, 0.66)
	require.InDelta(Te, c6, table.C6(0, 3), 1e-15)
	require.InDelta(Te, c12, table.C12(3, 0), 1e-18)
	c6, _ = nbtop.SigmaEpsilonToC6C12(0.316557, 0.650194)
	require.InDelta(Te, c6, table.C6(0, 0), 1e-12)
	require.Equal(Te, 0.0, table.C6(0, 1))
}

func TestReadTopDefines(Te *testing.T) {
	O := DefaultOptions()
	O.Defines([]string{"HEAVY_H", "FLEXIBLE"})
	S := readString(Te, ffITP+molsTOP, O)
	top, err := S.Build()
	require.NoError(Te, err)
	require.Equal(Te, 4.032, top.Masses()[1])
	require.Equal(Te, 4.032, top.ParticleTypes()[1].Mass())
	//exclusions don't depend on the bonded sections
	require.Equal(Te, []int{0, 1, 2}, top.Exclusions().At(0))

	O.Nonbonded(false)
	S = readString(Te, ffITP+molsTOP, O)
	require.Nil(Te, S.Interactions)
}

func TestReadTopNestedConditionals(Te *testing.T) {
	src := `
#define A
#ifdef A
#ifndef B
#define C
#else
#define D
#endif
#endif
[ moleculetype ]
X 1
[ atoms ]
#ifdef C
1 OW 1 X O 1 -1.0 16.0
#endif
#ifdef D
1 OW 1 X O 1 1.0 16.0
#endif
[ molecules ]
X 1
`
	top, err := readString(Te, src, nil).Build()
	require.NoError(Te, err)
	require.Equal(Te, []float64{-1}, top.Charges())
}

func TestReadTopErrors(Te *testing.T) {
	dupType := "[ moleculetype ]\nA 1\n[ atoms ]\n1 OW 1 A O 1 0.0 16.0\n" +
		"[ moleculetype ]\nB 1\n[ atoms ]\n1 OW 1 B O 1 0.0 17.0\n[ molecules ]\nA 1\nB 1\n"
	owTwice := func(second string) string {
		return "[ atomtypes ]\nOW 15.9994 0.0 A 0.0026 2.6e-06\n" + second +
			"[ moleculetype ]\nA 1\n[ atoms ]\n1 OW 1 A O 1\n[ molecules ]\nA 1\n"
	}
	cases := map[string]string{
		"unknown molecule": ffITP + molsTOP + "\nPROT 1\n",
		"bad exclusion":    ffITP + "[ moleculetype ]\nA 1\n[ atoms ]\n1 OW 1 A O 1\n[ exclusions ]\n1 4\n",
		"unclosed ifdef":   "#ifdef A\n[ atoms ]\n",
		"stray endif":      "#endif\n",
		"short atom":       "[ moleculetype ]\nA 1\n[ atoms ]\n1 OW 1 A\n",
		"atoms outside":    "[ atoms ]\n1 OW 1 A O 1\n",
		"bad atomtype":     "[ atomtypes ]\nOW 15.9 0.0 A x 1.0\n",
		"comb rule":        "[ defaults ]\n1 7 no 1.0 1.0\n",
		"negative count":   ffITP + molsTOP + "\nSOL -1\n",
		"duplicate type":   dupType,
		"redefined type":   owTwice("OW 15.9994 0.0 A 0.0099 9.9e-06\n"),
	}
	for name, src := range cases {
		S, err := Read(TopInMemFromString(src), nil)
		if err == nil {
			//some errors can only be found by the builder
			_, err = S.Build()
		}
		require.Error(Te, err, name)
	}
	S := readString(Te, dupType, nil)
	_, err := S.Build()
	require.True(Te, nbtop.IsInputError(err))

	//the reader catches a redefined atomtype, an identical one is fine.
	_, err = Read(TopInMemFromString(owTwice("OW 15.9994 0.0 A 0.0099 9.9e-06\n")), nil)
	require.ErrorContains(Te, err, "atomtype OW redefined")
	S = readString(Te, owTwice("OW 15.9994 0.0 A 0.0026 2.6e-06\n"), nil)
	top, err := S.Build()
	require.NoError(Te, err)
	table, ok := top.NonbondedParameters()
	require.True(Te, ok)
	require.InDelta(Te, 0.0026, table.C6(0, 0), 1e-12)
	require.InDelta(Te, 2.6e-06, table.C12(0, 0), 1e-15)
}

func TestReadFileIncludes(Te *testing.T) {
	dir := Te.TempDir()
	require.NoError(Te, os.MkdirAll(filepath.Join(dir, "ff"), 0o755))
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "ff", "ff.itp"), []byte(ffITP), 0o644))
	main := "#include \"ff/ff.itp\"\n" + molsTOP
	fname := filepath.Join(dir, "system.top")
	require.NoError(Te, os.WriteFile(fname, []byte(main), 0o644))

	S, err := ReadFile(fname, nil)
	require.NoError(Te, err)
	require.NotNil(Te, S.Interactions)
	top, err := S.Build()
	require.NoError(Te, err)
	require.Equal(Te, -0.5, top.Charges()[7])

	//without following, the atom types are unknown
	O := DefaultOptions()
	O.FollowIncludes(false)
	S, err = ReadFile(fname, O)
	require.NoError(Te, err)
	require.Nil(Te, S.Interactions)
	top, err = S.Build()
	require.NoError(Te, err)
	require.Equal(Te, 0.0, top.Charges()[7])
	require.Equal(Te, 15.9994, top.Masses()[7])

	//search path
	other := Te.TempDir()
	require.NoError(Te, os.WriteFile(filepath.Join(other, "sys.top"), []byte("#include \"ff.itp\"\n"+molsTOP), 0o644))
	_, err = ReadFile(filepath.Join(other, "sys.top"), nil)
	require.Error(Te, err)
	O = DefaultOptions()
	O.IncludeDirs([]string{filepath.Join(dir, "ff")})
	_, err = ReadFile(filepath.Join(other, "sys.top"), O)
	require.NoError(Te, err)
}

func TestWriteExclusions(Te *testing.T) {
	top, err := readString(Te, ffITP+molsTOP, nil).Build()
	require.NoError(Te, err)
	w := NewTopInMem(nil)
	require.NoError(Te, WriteExclusions(w, top))
	lines := strings.Split(w.String(), "\n")
	require.Equal(Te, "[ exclusions ]", lines[0])
	//three molecules with 2 lines each, plus methanol
	require.Len(Te, lines, 1+2*3+2)
	require.Equal(Te, []string{"1", "2", "3"}, fi(lines[1]))
	require.Equal(Te, []string{"2", "3"}, fi(lines[2]))
	require.Equal(Te, []string{"7", "8", "9"}, fi(lines[5]))
}

func TestWriteNonbonded(Te *testing.T) {
	top, err := readString(Te, ffITP+molsTOP, nil).Build()
	require.NoError(Te, err)
	w := NewTopInMem(nil)
	require.NoError(Te, WriteNonbonded(w, top))
	S, err := Read(w, nil)
	require.NoError(Te, err)
	require.Empty(Te, S.Registrations)
	require.Equal(Te, nbtop.Geometric, S.Interactions.Rule())
	got, err := S.Interactions.Table(top.ParticleTypes())
	require.NoError(Te, err)
	want, _ := top.NonbondedParameters()
	for i := 0; i < want.Len(); i++ {
		for j := 0; j < want.Len(); j++ {
			require.InDelta(Te, want.C6(i, j), got.C6(i, j), 1e-6*math.Abs(want.C6(i, j))+1e-15)
			require.InDelta(Te, want.C12(i, j), got.C12(i, j), 1e-6*math.Abs(want.C12(i, j))+1e-18)
		}
	}
	noTable := NewTopInMem(nil)
	top, err = readString(Te, ffITP+molsTOP, func() *Options { O := DefaultOptions(); O.Nonbonded(false); return O }()).Build()
	require.NoError(Te, err)
	require.Error(Te, WriteNonbonded(noTable, top))
}

func TestAtomTypeFromGro(Te *testing.T) {
	for _, s := range []string{
		"OW 15.9994 0.0 A 0.0026173 2.634e-06",
		"OW 8 15.9994 0.0 A 0.0026173 2.634e-06",
		"OW OW 8 15.9994 0.0 A 0.0026173 2.634e-06 ; comment",
	} {
		a, err := AtomTypeFromGro(s, false)
		require.NoError(Te, err, s)
		require.Equal(Te, "OW", a.Name)
		require.Equal(Te, 15.9994, a.Mass)
		require.Equal(Te, 0.0026173, a.C6)
		require.Equal(Te, "A", a.Ptype)
	}
	a, err := AtomTypeFromGro("OW 8 15.9994 0.0 A 0.0026173 2.634e-06", false)
	require.NoError(Te, err)
	require.Equal(Te, 8, a.AtNum)
	_, err = AtomTypeFromGro("OW 15.9994 A 0.1", false)
	require.Error(Te, err)
	_, err = LJPairFromGro("OW OA", false)
	require.Error(Te, err)
}
