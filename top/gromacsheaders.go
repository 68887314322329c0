/*
 * gromacsheaders.go, part of nbtop.
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
	"regexp"
	"strconv"
	"strings"
)

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

// Utility functions

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		i, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\r\n\t ")
}

type topHeader struct {
	wany *regexp.Regexp
	known map[string]*regexp.Regexp
}

func newTopHeader() *topHeader {
	T := new(topHeader)
	T.wany = regexp.MustCompile(`^\[\p{Zs}*.*\p{Zs}*\]$`)
	T.known = map[string]*regexp.Regexp{
		"defaults":     regexp.MustCompile(`\[\p{Zs}*defaults\p{Zs}*\]`),
		"atomtypes":    regexp.MustCompile(`\[\p{Zs}*atomtypes\p{Zs}*\]`),
		"nonbond":      regexp.MustCompile(`\[\p{Zs}*nonbond_params\p{Zs}*\]`),
		"moleculetype": regexp.MustCompile(`\[\p{Zs}*moleculetype\p{Zs}*\]`),
		"atoms":        regexp.MustCompile(`\[\p{Zs}*atoms\p{Zs}*\]`),
		"exclusions":   regexp.MustCompile(`\[\p{Zs}*exclusions\p{Zs}*\]`),
		"system":       regexp.MustCompile(`\[\p{Zs}*system\p{Zs}*\]`),
		"molecules":    regexp.MustCompile(`\[\p{Zs}*molecules\p{Zs}*\]`),
	}
	return T
}

// Returns true if the line is a Gromacs header. It discards comments.
func (T *topHeader) Is(line string) bool {
	return T.wany.MatchString(cleanString(line))
}

// Returns a string indicating which Gromacs top file header
// the line is, or an empty string if the line is not a header, or
// is a header for a section that is not read (bonded terms, for instance).
func (T *topHeader) Which(line string) string {
	line = cleanString(line)
	if !T.wany.MatchString(line) {
		return ""
	}
	for k, v := range T.known {
		if v.MatchString(line) {
			return k
		}
	}
	return ""
}

// StringReader is the reading interface for topologies. bufio.Reader and TopInMem
// implement it.
type StringReader interface {
	ReadString(byte) (string, error)
}

// Represents a topology stored in memory, as opposed to in a file.
type TopInMem struct {
	t []string
	i int
}

// Returns a new TopInMem, with the topology
// represented by the given slice of strings (each
// string must correspond to one line of the file).
func NewTopInMem(t []string) *TopInMem {
	return &TopInMem{t: t, i: 0}
}

// TopInMemFromString returns a TopInMem with the lines in s.
func TopInMemFromString(s string) *TopInMem {
	return NewTopInMem(strings.Split(s, "\n"))
}

// TopInMemFromFile reads the file fname into a TopInMem.
func TopInMemFromFile(fname string) (*TopInMem, error) {
	T := new(TopInMem)
	T.t = make([]string, 0, 10)
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	re := bufio.NewReader(f)
	var l string
	for l, err = re.ReadString('\n'); err == nil; l, err = re.ReadString('\n') {
		T.t = append(T.t, strings.TrimSuffix(l, "\n"))
	}
	if errors.Is(err, io.EOF) {
		if l != "" {
			T.t = append(T.t, l)
		}
		err = nil
	}
	return T, err
}

// Resets the reader to start from the first line
func (t *TopInMem) Reset() {
	t.i = 0
}

// Returns the number of lines in the topology
func (t *TopInMem) Len() int {
	return len(t.t)
}

// Adds a string to the topology. Each call adds one line, so s should
// not contain more than one line.
func (t *TopInMem) WriteString(s string) (int, error) {
	t.t = append(t.t, strings.TrimSuffix(s, "\n"))
	return len(s), nil
}

// Returns the next line in the topology. Note that the byte argument is
// not used, you can't choose how much you want to read, it's always the
// full next line (unlike in the bufio.Reader ReadString method).
func (t *TopInMem) ReadString(byte) (string, error) {
	if t.i >= len(t.t) {
		t.i = 0 //you can re-start reading it.
		return "", io.EOF
	}
	t.i++
	return t.t[t.i-1], nil
}

// String returns the whole topology, one line per element.
func (t *TopInMem) String() string {
	return strings.Join(t.t, "\n")
}
