/*
 * interfaces.go, part of nbtop.
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

// Masser can return a slice with the masses of each particle in the reference.
type Masser interface {
	Masses() []float64
}

// Charger can return a slice with the charges of each particle in the reference.
type Charger interface {
	Charges() []float64
}

// Excluder is what a non-bonded kernel needs from a topology to know which
// pairs of particles don't interact.
type Excluder interface {
	//Len returns the number of particles
	Len() int
	//Exclusions returns, for each particle, the sorted list of particles it is excluded from.
	Exclusions() *ListOfLists
}

var (
	_ Masser   = (*Topology)(nil)
	_ Charger  = (*Topology)(nil)
	_ Excluder = (*Topology)(nil)
	_ Error    = (*InputError)(nil)
)
