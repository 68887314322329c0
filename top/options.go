/*
 * options.go, part of nbtop.
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

// Options contains the options for reading GROMACS topologies.
type Options struct {
	defines     []string
	follow      bool
	includeDirs []string
	nonbonded   bool
}

// DefaultOptions returns options that follow #include statements,
// with no symbols defined, and read the non-bonded parameters.
func DefaultOptions() *Options {
	r := new(Options)
	r.follow = true
	r.nonbonded = true
	return r
}

// Returns the symbols considered defined for #ifdef/#ifndef blocks
// and sets them to new values, if given.
func (O *Options) Defines(defs ...[]string) []string {
	if len(defs) > 0 {
		O.defines = append([]string(nil), defs[0]...)
	}
	return O.defines
}

// Returns whether #include statements are followed, and sets it
// to a new value, if given. If they are not, they are ignored.
func (O *Options) FollowIncludes(f ...bool) bool {
	if len(f) > 0 {
		O.follow = f[0]
	}
	return O.follow
}

// Returns the directories where included files are searched for, after
// the directory of the including file, and sets them to new values, if given.
func (O *Options) IncludeDirs(dirs ...[]string) []string {
	if len(dirs) > 0 {
		O.includeDirs = append([]string(nil), dirs[0]...)
	}
	return O.includeDirs
}

// Returns whether the Lennard-Jones parameters from [ atomtypes ] and [ nonbond_params ]
// are read into the system, and sets it to a new value, if given.
func (O *Options) Nonbonded(n ...bool) bool {
	if len(n) > 0 {
		O.nonbonded = n[0]
	}
	return O.nonbonded
}
