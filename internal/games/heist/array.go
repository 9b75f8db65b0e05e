// Package heist implements the Array Heist puzzle: a ten-slot digit array
// with shifting insert/delete, contiguous pattern search, and a three-level
// campaign played against a 60 second countdown.
//
// The package has no terminal dependencies. The platform layer drives a
// Session with typed intents and renders what it reports back.
package heist

import (
	"fmt"
	"strings"
)

// Capacity is the fixed number of slots in the array.
const Capacity = 10

// Slot is one cell of the array: either empty or holding a digit 0..9.
// The zero value is an empty slot.
type Slot struct {
	digit  uint8
	filled bool
}

// EmptySlot returns an empty slot.
func EmptySlot() Slot {
	return Slot{}
}

// FilledSlot returns a slot holding d. It panics if d is not a digit;
// callers validate input before constructing slots.
func FilledSlot(d int) Slot {
	if d < 0 || d > 9 {
		panic(fmt.Sprintf("heist: slot digit %d out of range", d))
	}
	return Slot{digit: uint8(d), filled: true}
}

// IsEmpty reports whether the slot holds no digit.
func (s Slot) IsEmpty() bool {
	return !s.filled
}

// Digit returns the held digit and whether the slot is filled.
func (s Slot) Digit() (int, bool) {
	return int(s.digit), s.filled
}

// Is reports whether the slot holds digit d. Empty slots never match.
func (s Slot) Is(d int) bool {
	return s.filled && int(s.digit) == d
}

// String renders the digit, or "_" for an empty slot.
func (s Slot) String() string {
	if !s.filled {
		return "_"
	}
	return string(rune('0' + s.digit))
}

// ShiftOp identifies the mutation that produced a ShiftDescriptor.
type ShiftOp int

const (
	OpInsert ShiftOp = iota
	OpDelete
)

// String returns the operation name.
func (o ShiftOp) String() string {
	if o == OpDelete {
		return "delete"
	}
	return "insert"
}

// Span is an inclusive range of slot indices. A span with From > To is empty.
type Span struct {
	From, To int
}

// Empty reports whether the span covers no index.
func (s Span) Empty() bool {
	return s.From > s.To
}

// Contains reports whether i lies within the span.
func (s Span) Contains(i int) bool {
	return i >= s.From && i <= s.To
}

// ShiftDescriptor tells the presentation layer what moved.
// Index is the slot written (insert) or removed (delete); Shifted holds the
// destination slots whose contents moved by one position.
type ShiftDescriptor struct {
	Op      ShiftOp
	Index   int
	Value   int // inserted or removed digit
	Shifted Span
}

// Array is the fixed-capacity slot array. The zero value is all empty.
type Array struct {
	slots [Capacity]Slot
}

// Insert writes value at index, shifting slots [index, Capacity-2] one place
// right. It refuses to run when the tail slot is occupied, so no filled slot
// is ever pushed off the end.
func (a *Array) Insert(index, value int) (ShiftDescriptor, error) {
	if index < 0 || index >= Capacity {
		return ShiftDescriptor{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, Capacity)
	}
	if value < 0 || value > 9 {
		return ShiftDescriptor{}, fmt.Errorf("%w: %d not in [0, 9]", ErrValueOutOfRange, value)
	}
	if a.Full() {
		return ShiftDescriptor{}, ErrArrayFull
	}

	// Right-to-left so every slot is read before it is overwritten.
	for i := Capacity - 1; i > index; i-- {
		a.slots[i] = a.slots[i-1]
	}
	a.slots[index] = FilledSlot(value)

	return ShiftDescriptor{
		Op:      OpInsert,
		Index:   index,
		Value:   value,
		Shifted: Span{From: index + 1, To: Capacity - 1},
	}, nil
}

// Delete removes the digit at index, shifting slots after it one place left
// and emptying the last slot.
func (a *Array) Delete(index int) (ShiftDescriptor, error) {
	if index < 0 || index >= Capacity {
		return ShiftDescriptor{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, Capacity)
	}
	removed, ok := a.slots[index].Digit()
	if !ok {
		return ShiftDescriptor{}, fmt.Errorf("%w: nothing at index %d", ErrEmptySlot, index)
	}

	// Left-to-right for the same reason Insert goes the other way.
	for i := index; i < Capacity-1; i++ {
		a.slots[i] = a.slots[i+1]
	}
	a.slots[Capacity-1] = EmptySlot()

	return ShiftDescriptor{
		Op:      OpDelete,
		Index:   index,
		Value:   removed,
		Shifted: Span{From: index, To: Capacity - 2},
	}, nil
}

// Clear empties every slot.
func (a *Array) Clear() {
	a.slots = [Capacity]Slot{}
}

// Snapshot returns a copy of the slots in index order.
func (a *Array) Snapshot() [Capacity]Slot {
	return a.slots
}

// Full reports whether the tail slot is occupied.
func (a *Array) Full() bool {
	return !a.slots[Capacity-1].IsEmpty()
}

// Len returns the number of filled slots.
func (a *Array) Len() int {
	n := 0
	for _, s := range a.slots {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

// String renders the array as "[1 2 _ _ ...]".
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range a.slots {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
