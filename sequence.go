/*
 * sequence.go, part of nbtop.
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

// ParticleIdentifier is the symbolic name of one particle of a topology.
type ParticleIdentifier struct {
	Molecule string
	Instance int //0-based, counted across all registrations of molecules with this name
	Residue  string
	Particle string
}

func (P ParticleIdentifier) String() string {
	return sf("%s[%d]/%s/%s", P.Molecule, P.Instance, P.Residue, P.Particle)
}

// sequencer maps particle identifiers to global indexes and back.
type sequencer struct {
	ids       map[ParticleIdentifier]int
	names     []ParticleIdentifier
	instances map[string]int
}

func newSequencer(n int) *sequencer {
	return &sequencer{
		ids:       make(map[ParticleIdentifier]int, n),
		names:     make([]ParticleIdentifier, n),
		instances: make(map[string]int),
	}
}

// nextInstance reserves count instances of the molecule name and returns the
// index of the first one.
func (S *sequencer) nextInstance(name string, count int) int {
	first := S.instances[name]
	S.instances[name] = first + count
	return first
}

func (S *sequencer) add(p ParticleIdentifier, global int) error {
	if prev, ok := S.ids[p]; ok {
		return inputErrorf("%s: particle %s assigned to both %d and %d", DuplicateParticle, p, prev, global)
	}
	S.ids[p] = global
	S.names[global] = p
	return nil
}

func (S *sequencer) id(p ParticleIdentifier) (int, bool) {
	i, ok := S.ids[p]
	return i, ok
}

func (S *sequencer) len() int {
	return len(S.names)
}
