//
// corvid - UCI chess engine
//
// MIT License
//
// Copyright (c) 2020-2026 corvid contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package chess

import "strconv"

// Value is a centipawn-scaled evaluation or search score.
type Value int16

const (
	ValueZero    Value = 0
	ValueDraw    Value = 0
	ValueInf     Value = 32000
	ValueNone    Value = 32001
	ValueMate    Value = 31000
	MateThreshold Value = ValueMate - 1000
)

// IsValid reports whether v is in the representable score range.
func (v Value) IsValid() bool { return v >= -ValueInf && v <= ValueInf }

// IsMateScore reports whether v represents a forced mate (for the side to
// move, a positive v, or being mated, a negative v).
func (v Value) IsMateScore() bool {
	return v >= MateThreshold || v <= -MateThreshold
}

// MateIn returns the score for delivering mate in the given number of plies.
func MateIn(ply int) Value { return ValueMate - Value(ply) }

// MatedIn returns the score for being mated in the given number of plies.
func MatedIn(ply int) Value { return -ValueMate + Value(ply) }

// String renders v as a mate distance ("mate 3", "mate -2") when it encodes
// a forced mate, or as a plain centipawn number otherwise.
func (v Value) String() string {
	switch {
	case v >= MateThreshold:
		plies := int(ValueMate - v)
		return "mate " + strconv.Itoa((plies+1)/2)
	case v <= -MateThreshold:
		plies := int(ValueMate + v)
		return "mate -" + strconv.Itoa((plies+1)/2)
	default:
		return "cp " + strconv.Itoa(int(v))
	}
}

// ValueType tags how a transposition-table score bounds the true value.
type ValueType int8

const (
	ValueTypeNone ValueType = iota
	ValueTypeExact
	ValueTypeUpper // "ALPHA" in classic engine terminology: fail-low bound
	ValueTypeLower // "BETA": fail-high bound
)

func (vt ValueType) String() string {
	switch vt {
	case ValueTypeExact:
		return "Exact"
	case ValueTypeUpper:
		return "Upper"
	case ValueTypeLower:
		return "Lower"
	default:
		return "None"
	}
}
