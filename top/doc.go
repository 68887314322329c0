/*
 * doc.go, part of nbtop.
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

/*
Package top reads GROMACS topologies (top and itp files) into nbtop systems, and
writes the exclusions and non-bonded parameters of a built Topology back in the
same format.

Only the sections that matter for non-bonded calculations are read: defaults,
atomtypes, nonbond_params, moleculetype, atoms, exclusions and molecules. Bonded
sections are skipped, and so is the nrexcl value, so exclusions generated from
bonds are not produced. #ifdef/#ifndef/#else/#endif blocks, #define and #undef
are supported, and #include statements can be followed.
*/
package top
