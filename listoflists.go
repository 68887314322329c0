/*
 * listoflists.go, part of nbtop.
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

// ListOfLists is a compact list of integer lists, stored as a flat slice of values
// plus a slice of offsets. List i is values[offsets[i]:offsets[i+1]].
// It is the layout non-bonded kernels consume, so they can read it without copying.
// A ListOfLists can't be modified once built.
type ListOfLists struct {
	offsets []int
	values  []int
}

func newListOfLists() *ListOfLists {
	return &ListOfLists{offsets: []int{0}}
}

// ListOfListsFromSlices builds a ListOfLists with the contents of l.
func ListOfListsFromSlices(l [][]int) *ListOfLists {
	L := newListOfLists()
	total := 0
	for _, v := range l {
		total += len(v)
	}
	L.values = make([]int, 0, total)
	L.offsets = make([]int, 1, len(l)+1)
	for _, v := range l {
		L.pushBack(v)
	}
	return L
}

// pushBack appends a copy of list as the last list.
func (L *ListOfLists) pushBack(list []int) {
	if len(L.offsets) == 0 {
		L.offsets = []int{0}
	}
	L.values = append(L.values, list...)
	L.offsets = append(L.offsets, len(L.values))
}

// Len returns the number of lists.
func (L *ListOfLists) Len() int {
	if L == nil || len(L.offsets) == 0 {
		return 0
	}
	return len(L.offsets) - 1
}

// NumElements returns the total number of values in all lists.
func (L *ListOfLists) NumElements() int {
	if L == nil {
		return 0
	}
	return len(L.values)
}

// At returns the ith list. The returned slice shares memory with the receiver
// and must not be modified. Panics if i is out of range.
func (L *ListOfLists) At(i int) []int {
	if i < 0 || i >= L.Len() {
		panic(sf("ListOfLists: requested list %d out of range (%d lists)", i, L.Len()))
	}
	return L.values[L.offsets[i]:L.offsets[i+1]:L.offsets[i+1]]
}

// Raw returns copies of the offsets and values of the receiver. Use At to
// read single lists without copying.
func (L *ListOfLists) Raw() (offsets, values []int) {
	if L == nil {
		return []int{0}, nil
	}
	return append([]int(nil), L.offsets...), append([]int(nil), L.values...)
}

// Slices returns a copy of the contents of the receiver as a slice of slices.
func (L *ListOfLists) Slices() [][]int {
	ret := make([][]int, L.Len())
	for i := range ret {
		ret[i] = append([]int(nil), L.At(i)...)
	}
	return ret
}

// Copy returns a deep copy of the receiver.
func (L *ListOfLists) Copy() *ListOfLists {
	return &ListOfLists{offsets: append([]int(nil), L.offsets...), values: append([]int(nil), L.values...)}
}
