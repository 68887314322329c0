/*
 * errors.go, part of nbtop.
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
	"errors"
	"fmt"
	"strings"
)

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds information to the error when it is passed up, normally the name of the function passing it.
	//Each call returns the resulting decoration slice. An empty string only returns the current value.
	Decorate(string) []string
}

// InputError is the only kind of error produced while assembling a topology. It signals that
// the data given by the user breaks one of the rules of the builder (name collisions, unknown
// names, out of range indexes, invalid counts or the use of a consumed builder).
type InputError struct {
	message string
	deco    []string
}

func (E *InputError) Error() string {
	if len(E.deco) == 0 {
		return "nbtop: " + E.message
	}
	//the last function to decorate is the outermost one.
	d := make([]string, len(E.deco))
	for i, v := range E.deco {
		d[len(E.deco)-1-i] = v
	}
	return fmt.Sprintf("nbtop: %s: %s", strings.Join(d, ": "), E.message)
}

// Message returns the error message without decorations.
func (E *InputError) Message() string {
	return E.message
}

// Decorate adds new information to the error
func (E *InputError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func inputErrorf(format string, a ...any) *InputError {
	return &InputError{message: fmt.Sprintf(format, a...)}
}

// errDecorate decorates err with the caller's name, if err is an *InputError,
// and returns it. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	var ie *InputError
	if errors.As(err, &ie) {
		ie.Decorate(caller)
	}
	return err
}

// IsInputError returns true if err, or any error it wraps, is an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

//The messages for the different rules. Tests and callers can look for them
//in the error string.
const (
	TypeCollision     = "particle type name collision"
	DuplicateParticle = "duplicate particle name"
	UnknownName       = "unknown name"
	OutOfRange        = "index out of range"
	InvalidCount      = "invalid molecule count"
	ConsumedBuilder   = "builder already consumed"
	InvalidType       = "invalid particle type"
	InvalidParameter  = "invalid non-bonded parameter"
	InvalidTopology   = "inconsistent topology data"
)
