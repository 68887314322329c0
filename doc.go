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

/*Package nbtop builds, from a library of molecule templates, the flat particle-level
description of a simulation system that non-bonded force kernels need.



	**nbtop capabilities**


    Particle types (name, mass) are unified across all the molecules of a system.
	Two types sharing a name must be identical, otherwise the builder reports an
	InputError.

    Molecule templates hold an ordered list of particles, their residues and charges,
	and the pairs of particles excluded from non-bonded interactions.

    The TopologyBuilder takes (Molecule, count) registrations and produces a Topology
	with per-particle charges, masses and type ids, a compact table of types, the
	exclusion adjacency, and a resolver from symbolic names to particle indexes.

    The exclusion adjacency is symmetric, sorted, and each particle is excluded from
	itself. It is stored as a ListOfLists (offsets plus values), which kernels can
	read without copying. A per-particle ExclusionBlock form is also available.

    Lennard-Jones parameters can be attached to the particle types, which produces
	a NonbondedTable with the parameters for every pair of types, using explicit pair
	parameters or a combination rule.

    Topologies can be JSON encoded. The tpz package writes them to zstd-compressed
	files, the top package reads GROMACS topologies, the sysdesc package reads YAML
	system descriptions, and exgraph and topplot help inspect exclusions.


A Topology is immutable and can be read from any number of goroutines. Builders and
molecule templates are not safe for concurrent use.
*/
package nbtop
