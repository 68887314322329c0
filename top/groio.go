/*
 * groio.go, part of nbtop.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/nbtop"
)

// a frame of the #ifdef stack
type frame struct {
	parent bool //whether the enclosing block was being read
	on     bool
}

type cond struct {
	stack []frame
}

func newCond() *cond {
	return new(cond)
}

func (c *cond) reading() bool {
	if len(c.stack) == 0 {
		return true
	}
	f := c.stack[len(c.stack)-1]
	return f.parent && f.on
}

// a function to read conditional parts of gromacs topologies
// depending on the defined flags that should be in 'defines'.
// It returns true if the line is to be read. #define and #undef
// lines in the parts being read modify defines.
func (c *cond) read(line string, defines map[string]bool) (bool, error) {
	if !strings.HasPrefix(line, "#") {
		return c.reading(), nil
	}
	f := fi(line)
	switch f[0] {
	case "#ifdef", "#ifndef":
		if len(f) < 2 {
			return false, fmt.Errorf("%s without a symbol", f[0])
		}
		on := defines[f[1]]
		if f[0] == "#ifndef" {
			on = !on
		}
		c.stack = append(c.stack, frame{parent: c.reading(), on: on})
	case "#else":
		if len(c.stack) == 0 {
			return false, fmt.Errorf("#else without #ifdef")
		}
		c.stack[len(c.stack)-1].on = !c.stack[len(c.stack)-1].on
	case "#endif":
		if len(c.stack) == 0 {
			return false, fmt.Errorf("#endif without #ifdef")
		}
		c.stack = c.stack[:len(c.stack)-1]
	case "#define":
		if c.reading() && len(f) > 1 {
			defines[f[1]] = true
		}
	case "#undef":
		if c.reading() && len(f) > 1 {
			delete(defines, f[1])
		}
	default:
		//#include is handled by the caller, other directives are ignored.
		return c.reading() && f[0] == "#include", nil
	}
	return false, nil
}

// AtomType contains the data from a line of the [ atomtypes ] section.
// C6 and C12 are always stored as such, even if the topology used sigma and epsilon.
type AtomType struct {
	Name         string
	AtNum        int //-1 if not given
	Mass         float64
	Charge       float64
	Ptype        string
	C6           float64
	C12          float64
	SigmaEpsilon bool //whether the parameters are written as sigma/epsilon
}

// LJPair contains the data from a line of the [ nonbond_params ] section.
type LJPair struct {
	Names        [2]string
	FuncType     int
	C6           float64
	C12          float64
	SigmaEpsilon bool
}

type reader struct {
	O            *Options
	defines      map[string]bool
	h            *topHeader
	header       string
	comb         int
	sigmaEpsilon bool
	types        map[string]*AtomType
	typeOrder    []string
	pairs        []*LJPair
	mols         map[string]*nbtop.Molecule
	cur          *nbtop.Molecule
	ids          map[int]int //gromacs atom number to index in cur
	pendingEx    [][]int
	regs         []nbtop.Registration
	depth        int
}

func newReader(O *Options) *reader {
	if O == nil {
		O = DefaultOptions()
	}
	R := new(reader)
	R.O = O
	R.defines = make(map[string]bool)
	for _, v := range O.Defines() {
		R.defines[v] = true
	}
	R.h = newTopHeader()
	R.comb = 1
	R.types = make(map[string]*AtomType)
	R.mols = make(map[string]*nbtop.Molecule)
	return R
}

// Read reads a GROMACS topology (top/itp format) from r and returns the system it describes.
// Included files are searched for in the current directory, and then in the directories
// given in the options. Only the sections needed for non-bonded calculations are read
// (atomtypes, nonbond_params, moleculetype, atoms, exclusions and molecules), other sections
// are skipped. If O is nil, DefaultOptions() are used.
func Read(r StringReader, O *Options) (*nbtop.System, error) {
	R := newReader(O)
	if err := R.fill(r, "."); err != nil {
		return nil, err
	}
	return R.system()
}

// ReadFile reads the GROMACS topology in the file fname. Included files are searched for
// first relative to the directory of the including file.
func ReadFile(fname string, O *Options) (*nbtop.System, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("Failed to open topology %s: %w", fname, err)
	}
	defer f.Close()
	R := newReader(O)
	if err = R.fill(bufio.NewReader(f), filepath.Dir(fname)); err != nil {
		return nil, fmt.Errorf("Failed to read topology %s: %w", fname, err)
	}
	return R.system()
}

func (R *reader) include(s, dir string) error {
	f := fi(s)
	fname := strings.Trim(f[len(f)-1], "\"'<>")
	candidates := []string{fname}
	if !filepath.IsAbs(fname) {
		candidates = []string{filepath.Join(dir, fname)}
		for _, v := range R.O.IncludeDirs() {
			candidates = append(candidates, filepath.Join(v, fname))
		}
	}
	for _, c := range candidates {
		file, err := os.Open(c)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("Failed to include file: %s. Error: %w", c, err)
		}
		defer file.Close()
		R.depth++
		err = R.fill(bufio.NewReader(file), filepath.Dir(c))
		R.depth--
		if err != nil {
			return fmt.Errorf("Failed to include file: %s. Error: %w", c, err)
		}
		return nil
	}
	return fmt.Errorf("Failed to include file: %s. Not found in %v", fname, candidates)
}

func (R *reader) fill(r StringReader, dir string) error {
	if R.depth > 32 {
		return fmt.Errorf("#include nested too deep")
	}
	var err error
	var s string
	read := newCond()
	for s, err = r.ReadString('\n'); err == nil || (errors.Is(err, io.EOF) && s != ""); s, err = r.ReadString('\n') {
		last := err != nil
		s = cleanString(s)
		if s != "" {
			if err := R.line(s, dir, read); err != nil {
				return err
			}
		}
		if last {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if len(read.stack) != 0 {
		return fmt.Errorf("%d #ifdef blocks not closed", len(read.stack))
	}
	return nil
}

func (R *reader) line(s, dir string, read *cond) error {
	ok, err := read.read(s, R.defines)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if strings.HasPrefix(s, "#include") {
		if R.O.FollowIncludes() {
			return R.include(s, dir)
		}
		return nil
	}
	if R.h.Is(s) {
		R.header = R.h.Which(s)
		if R.header == "moleculetype" || R.header == "molecules" {
			if err := R.closeMolecule(); err != nil {
				return err
			}
		}
		return nil
	}
	switch R.header {
	case "defaults":
		err = R.defaultsFromGro(s)
	case "atomtypes":
		var att *AtomType
		att, err = AtomTypeFromGro(s, R.sigmaEpsilon)
		if err != nil {
			break
		}
		prev, ok := R.types[att.Name]
		if ok && *prev != *att {
			err = fmt.Errorf("atomtype %s redefined with different parameters", att.Name)
			break
		}
		if !ok {
			R.typeOrder = append(R.typeOrder, att.Name)
			R.types[att.Name] = att
		}
	case "nonbond":
		var LJ *LJPair
		LJ, err = LJPairFromGro(s, R.sigmaEpsilon)
		R.pairs = append(R.pairs, LJ)
	case "moleculetype":
		if R.cur != nil {
			return fmt.Errorf("Couldn't read header %s. Line: %s. Error: moleculetype with more than one line", R.header, s)
		}
		R.cur = nbtop.NewMolecule(fi(s)[0])
		R.ids = make(map[int]int)
	case "atoms":
		err = R.atomFromGro(s)
	case "exclusions":
		var ex []int
		ex, err = parseints(fi(s)...)
		if err == nil && R.cur == nil {
			err = fmt.Errorf("exclusions outside a moleculetype")
		}
		R.pendingEx = append(R.pendingEx, ex)
	case "molecules":
		err = R.moleculesFromGro(s)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("Couldn't read header %s. Line: %s. Error: %w", R.header, s, err)
	}
	return nil
}

func (R *reader) defaultsFromGro(s string) error {
	f := fi(s)
	if len(f) < 2 {
		return fmt.Errorf("expected at least nbfunc and comb-rule")
	}
	comb, err := strconv.Atoi(f[1])
	if err != nil {
		return err
	}
	if comb < 1 || comb > 3 {
		return fmt.Errorf("unknown combination rule %d", comb)
	}
	R.comb = comb
	R.sigmaEpsilon = comb != 1
	return nil
}

// atomFromGro adds the particle in the [ atoms ] line s to the current molecule.
// The fields are: nr type resnr residue atom cgnr [charge [mass]].
func (R *reader) atomFromGro(s string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	if R.cur == nil {
		return fmt.Errorf("atoms outside a moleculetype")
	}
	l := fi(s)
	if len(l) < 6 {
		return fmt.Errorf("expected at least 6 fields, got %d", len(l))
	}
	nr, err := strconv.Atoi(l[0])
	qerr(err)
	if _, ok := R.ids[nr]; ok {
		return fmt.Errorf("atom number %d repeated", nr)
	}
	tname, residue, name := l[1], l[3], l[4]
	at := R.types[tname]
	var charge, mass float64
	if at != nil {
		charge, mass = at.Charge, at.Mass
	}
	if len(l) > 6 {
		charge, err = strconv.ParseFloat(l[6], 64)
		qerr(err)
	}
	if len(l) > 7 {
		mass, err = strconv.ParseFloat(l[7], 64)
		qerr(err)
	}
	if mass <= 0 {
		mass, _ = nbtop.SymbolMass(nbtop.GuessSymbol(name))
	}
	//particle names must be unique in a molecule, residue names are just labels.
	if _, ok := R.cur.Index(name); ok {
		name = sf("%s_%d", name, nr)
	}
	if err := R.cur.AddParticleInResidue(name, residue, nbtop.NewParticleType(tname, mass)); err != nil {
		return err
	}
	R.ids[nr] = R.cur.Len() - 1
	return R.cur.SetCharge(name, charge)
}

// closeMolecule applies the exclusions read for the current molecule, which is then
// available to be used in the [ molecules ] section.
func (R *reader) closeMolecule() error {
	if R.cur == nil {
		return nil
	}
	for _, ex := range R.pendingEx {
		i, ok := R.ids[ex[0]]
		if !ok {
			return fmt.Errorf("Couldn't read exclusions of %s: no atom %d", R.cur.Name(), ex[0])
		}
		for _, v := range ex[1:] {
			j, ok := R.ids[v]
			if !ok {
				return fmt.Errorf("Couldn't read exclusions of %s: no atom %d", R.cur.Name(), v)
			}
			if err := R.cur.AddExclusionIndex(i, j); err != nil {
				return fmt.Errorf("Couldn't read exclusions of %s: %w", R.cur.Name(), err)
			}
		}
	}
	if _, ok := R.mols[R.cur.Name()]; ok {
		return fmt.Errorf("moleculetype %s defined twice", R.cur.Name())
	}
	R.mols[R.cur.Name()] = R.cur
	R.cur = nil
	R.ids = nil
	R.pendingEx = nil
	return nil
}

func (R *reader) moleculesFromGro(s string) error {
	f := fi(s)
	if len(f) < 2 {
		return fmt.Errorf("expected molecule name and count")
	}
	count, err := strconv.Atoi(f[1])
	if err != nil {
		return err
	}
	m, ok := R.mols[f[0]]
	if !ok {
		return fmt.Errorf("no moleculetype %s", f[0])
	}
	if count < 0 {
		return fmt.Errorf("negative count %d for %s", count, f[0])
	}
	if count == 0 {
		return nil
	}
	R.regs = append(R.regs, nbtop.Registration{Molecule: m, Count: count})
	return nil
}

func (R *reader) system() (*nbtop.System, error) {
	if err := R.closeMolecule(); err != nil {
		return nil, err
	}
	S := &nbtop.System{Registrations: R.regs}
	if !R.O.Nonbonded() || (len(R.typeOrder) == 0 && len(R.pairs) == 0) {
		return S, nil
	}
	rule := nbtop.Geometric
	if R.comb == 2 {
		rule = nbtop.LorentzBerthelot
	}
	P := nbtop.NewParticleTypesInteractions(rule)
	for _, v := range R.typeOrder {
		t := R.types[v]
		if err := P.Add(t.Name, t.C6, t.C12); err != nil {
			return nil, fmt.Errorf("Couldn't read non-bonded parameters: %w", err)
		}
	}
	for _, v := range R.pairs {
		if err := P.AddPair(v.Names[0], v.Names[1], v.C6, v.C12); err != nil {
			return nil, fmt.Errorf("Couldn't read non-bonded parameters: %w", err)
		}
	}
	S.Interactions = P
	return S, nil
}

// Reads a string with the appropriate gromacs topology format
// to return a pointer to AtomType. If sigmaep is true, it transforms
// the data in the string from sigma/epsilon to c6/c12.
// The last 5 fields are always mass charge ptype V W, the bonded type and the
// atomic number, which may or may not be present, are between the name and the mass.
func AtomTypeFromGro(s string, sigmaep bool) (ret *AtomType, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Couldn't read atom type from string. Error: %s String:%s", r, s)
		}
	}()
	f := fi(cleanString(s))
	n := len(f)
	if n < 6 {
		return nil, fmt.Errorf("Couldn't read atom type from string. Expected at least 6 fields, got %d. String: %s", n, s)
	}
	ret = new(AtomType)
	ret.Name = f[0]
	ret.AtNum = -1
	if n > 6 {
		if a, err := strconv.Atoi(f[n-6]); err == nil {
			ret.AtNum = a
		}
	}
	v, err := parsefloats(f[n-5], f[n-4])
	qerr(err)
	ret.Mass, ret.Charge = v[0], v[1]
	ret.Ptype = f[n-3]
	ret.C6, ret.C12, err = c6c12OrSigmaEpsilon(f[n-2], f[n-1], sigmaep)
	qerr(err)
	ret.SigmaEpsilon = sigmaep
	return ret, nil
}

func (A *AtomType) ToGro() (string, error) {
	v, w := A.C6, A.C12
	if A.SigmaEpsilon {
		v, w = nbtop.C6C12ToSigmaEpsilon(A.C6, A.C12)
	}
	return sf("%-8s %10.5f %8.4f %2s %14.6e %14.6e\n", A.Name, A.Mass, A.Charge, A.Ptype, v, w), nil
}

// LJPairFromGro reads a line of the [ nonbond_params ] section: type1 type2 func V W.
func LJPairFromGro(s string, sigmaep bool) (ret *LJPair, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Couldn't read non-bonded pair from string. Error: %s String:%s", r, s)
		}
	}()
	f := fi(cleanString(s))
	ret = new(LJPair)
	ret.Names[0] = f[0]
	ret.Names[1] = f[1]
	ret.FuncType, err = strconv.Atoi(f[2])
	qerr(err)
	ret.C6, ret.C12, err = c6c12OrSigmaEpsilon(f[3], f[4], sigmaep)
	qerr(err)
	ret.SigmaEpsilon = sigmaep
	return ret, nil
}

func (L *LJPair) ToGro() (string, error) {
	v, w := L.C6, L.C12
	if L.SigmaEpsilon {
		v, w = nbtop.C6C12ToSigmaEpsilon(L.C6, L.C12)
	}
	return sf("%-8s %-8s %1d %14.6e %14.6e\n", L.Names[0], L.Names[1], L.FuncType, v, w), nil
}

func c6c12OrSigmaEpsilon(num1, num2 string, sigmaepsilon bool) (float64, float64, error) {
	v, err := parsefloats(num1, num2)
	if err != nil {
		return -1, -1, err
	}
	if sigmaepsilon {
		c6, c12 := nbtop.SigmaEpsilonToC6C12(v[0], v[1])
		return c6, c12, nil
	}
	return v[0], v[1], nil
}

type groer interface {
	ToGro() (string, error)
}

func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

// exclusion is a line of an [ exclusions ] section, 1-based.
type exclusion []int

func (e exclusion) ToGro() (string, error) {
	ret := make([]string, 0, len(e))
	for _, v := range e {
		ret = append(ret, sf("%6d", v))
	}
	return strings.Join(ret, " ") + "\n", nil
}

// WriteExclusions writes the exclusions of t as an [ exclusions ] section, with 1-based
// global indexes. Each particle is written followed by the particles after it that are
// excluded from it. Particles with no such exclusions are not written.
func WriteExclusions(w io.StringWriter, t *nbtop.Topology) error {
	ex := t.Exclusions()
	lines := make([]exclusion, 0, ex.Len())
	for i := 0; i < ex.Len(); i++ {
		l := exclusion{i + 1}
		for _, j := range ex.At(i) {
			if j > i {
				l = append(l, j+1)
			}
		}
		if len(l) > 1 {
			lines = append(lines, l)
		}
	}
	if _, err := w.WriteString("[ exclusions ]\n"); err != nil {
		return err
	}
	return printGro(w, lines)
}

// WriteNonbonded writes the non-bonded parameters of t as [ defaults ], [ atomtypes ] and
// [ nonbond_params ] sections, with C6 and C12 given explicitly for each pair of types.
// It returns an error if t has no non-bonded parameters.
func WriteNonbonded(w io.StringWriter, t *nbtop.Topology) error {
	table, ok := t.NonbondedParameters()
	if !ok {
		return fmt.Errorf("WriteNonbonded: topology has no non-bonded parameters")
	}
	types := t.ParticleTypes()
	atypes := make([]*AtomType, len(types))
	pairs := make([]*LJPair, 0, len(types)*(len(types)-1)/2)
	for i, v := range types {
		atypes[i] = &AtomType{Name: v.Name(), AtNum: -1, Mass: v.Mass(), Ptype: "A", C6: table.C6(i, i), C12: table.C12(i, i)}
		for j := i + 1; j < len(types); j++ {
			pairs = append(pairs, &LJPair{Names: [2]string{v.Name(), types[j].Name()}, FuncType: 1, C6: table.C6(i, j), C12: table.C12(i, j)})
		}
	}
	for _, s := range []string{"[ defaults ]\n", "1 1 no 1.0 1.0\n", "[ atomtypes ]\n"} {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	if err := printGro(w, atypes); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}
	if _, err := w.WriteString("[ nonbond_params ]\n"); err != nil {
		return err
	}
	return printGro(w, pairs)
}
