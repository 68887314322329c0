/*
 * tpz.go, part of nbtop.
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

package tpz

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/rmera/nbtop"
)

// the first line of the decompressed stream
const magic = "tpz 1"

// DefaultLevel is the zstd level used if none is given.
const DefaultLevel = 3

// Write writes t to w in the tpz format. The zstd compression level can be given,
// otherwise DefaultLevel is used.
func Write(w io.Writer, t *nbtop.Topology, compressionLevel ...int) error {
	level := DefaultLevel
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	z, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return &Error{message: UnableToCompress, deco: []string{"Write"}, err: err}
	}
	if _, err = z.Write([]byte(magic + "\n")); err != nil {
		z.Close()
		return &Error{message: WriteError, deco: []string{"Write"}, err: err}
	}
	if err = json.NewEncoder(z).Encode(t); err != nil {
		z.Close()
		return &Error{message: WriteError, deco: []string{"Write"}, err: err}
	}
	if err = z.Close(); err != nil {
		return &Error{message: WriteError, deco: []string{"Write"}, err: err}
	}
	return nil
}

// Read reads a tpz-formatted topology from r. The decoded topology is checked for
// consistency, and an error wrapping an nbtop.InputError is returned if it fails.
func Read(r io.Reader) (*nbtop.Topology, error) {
	z, err := zstd.NewReader(r)
	if err != nil {
		return nil, &Error{message: WrongFormat, deco: []string{"Read"}, err: err}
	}
	defer z.Close()
	b := bufio.NewReader(z)
	header, err := b.ReadString('\n')
	if err != nil {
		return nil, &Error{message: WrongFormat, deco: []string{"Read"}, err: err}
	}
	if h := strings.TrimSuffix(header, "\n"); h != magic {
		return nil, &Error{message: sf("%s: unknown header %q", WrongFormat, h), deco: []string{"Read"}}
	}
	t := new(nbtop.Topology)
	if err = json.NewDecoder(b).Decode(t); err != nil {
		return nil, &Error{message: WrongFormat, deco: []string{"Read"}, err: err}
	}
	return t, nil
}

// WriteFile writes t to the file name, in the tpz format.
func WriteFile(name string, t *nbtop.Topology, compressionLevel ...int) error {
	f, err := os.Create(name)
	if err != nil {
		return &Error{message: UnableToOpen, filename: name, deco: []string{"WriteFile"}, err: err}
	}
	if err = Write(f, t, compressionLevel...); err != nil {
		f.Close()
		return decorate(err, name, "WriteFile")
	}
	if err = f.Close(); err != nil {
		return &Error{message: WriteError, filename: name, deco: []string{"WriteFile"}, err: err}
	}
	return nil
}

// ReadFile reads the tpz file name.
func ReadFile(name string) (*nbtop.Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{message: UnableToOpen, filename: name, deco: []string{"ReadFile"}, err: err}
	}
	defer f.Close()
	t, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, decorate(err, name, "ReadFile")
	}
	return t, nil
}

func decorate(err error, filename, caller string) error {
	if e, ok := err.(*Error); ok {
		e.filename = filename
		e.Decorate(caller)
	}
	return err
}

// Error is the error type returned by the package. It wraps the underlying
// error, if any.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	err      error
}

func (err *Error) Error() string {
	s := "tpz error: " + err.message
	if err.filename != "" {
		s = sf("tpz file %s error: %s", err.filename, err.message)
	}
	if err.err != nil {
		s += ": " + err.err.Error()
	}
	return s
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error
func (err *Error) FileName() string { return err.filename }

// Unwrap returns the error that caused the receiver, if any.
func (err *Error) Unwrap() error { return err.err }

const (
	UnableToOpen     = "Unable to open file"
	UnableToCompress = "Unable to set up compression"
	WriteError       = "Error writing topology"
	WrongFormat      = "Wrong format in the tpz file"
)

var sf = fmt.Sprintf
