/*
 * atomicdata.go, part of nbtop.
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
	"unicode"
)

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  15.9994,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
	"U":  238.03,
}

//In force fields, names like CA or NA are much more likely to be
//carbon or nitrogen than calcium or sodium.
var ambiguousSymbols = map[string]bool{"Ca": true, "Co": true, "Cr": true, "Na": true}

// SymbolMass returns the mass of the element with the given symbol, and whether
// the element is known.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

// GuessSymbol tries to obtain an element symbol from a force-field atom or type name,
// such as "OW", "HW1" or "CL". Two-letter symbols are tried before one-letter ones.
// It returns an empty string if no known element matches.
func GuessSymbol(name string) string {
	name = strings.TrimLeftFunc(name, unicode.IsDigit)
	if len(name) >= 2 {
		two := strings.ToUpper(name[:1]) + strings.ToLower(name[1:2])
		if _, ok := symbolMass[two]; ok && !ambiguousSymbols[two] {
			return two
		}
	}
	if len(name) >= 1 {
		one := strings.ToUpper(name[:1])
		if _, ok := symbolMass[one]; ok {
			return one
		}
	}
	return ""
}
