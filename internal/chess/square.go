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

// Package chess holds the fundamental, allocation-free chess primitives
// shared by every other package: squares, files, ranks, pieces, colors,
// moves, bitboards, magic attack tables and Zobrist hashing. Nothing in
// this package depends on position or search state.
package chess

import "fmt"

// Square is one of the 64 squares of a chess board, little-endian
// rank-file mapped: SqA1 = 0 ... SqH8 = 63.
type Square uint8

//noinspection GoUnusedConst
const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength = 64
)

// File is one of the 8 files A..H.
type File uint8

// Rank is one of the 8 ranks 1..8.
type Rank uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileLength
)

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankLength
)

// IsValid reports whether f names a real file.
func (f File) IsValid() bool { return f < FileLength }

// IsValid reports whether r names a real rank.
func (r Rank) IsValid() bool { return r < RankLength }

// String returns the single letter file name.
func (f File) String() string { return string("abcdefgh"[f]) }

// String returns the single digit rank name.
func (r Rank) String() string { return string("12345678"[r]) }

// IsValid reports whether sq is a real board square (sq < SqNone).
func (sq Square) IsValid() bool { return sq < SqNone }

// FileOf returns the file of sq.
func (sq Square) FileOf() File { return File(sq & 7) }

// RankOf returns the rank of sq.
func (sq Square) RankOf() Rank { return Rank(sq >> 3) }

// SquareOf builds a square from file and rank, or SqNone for an invalid pair.
func SquareOf(f File, r Rank) Square {
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return Square((int(r) << 3) + int(f))
}

// MakeSquare parses a square from its algebraic name (e.g. "e4"), returning
// SqNone if s does not name a valid square.
func MakeSquare(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	f := File(s[0] - 'a')
	r := Rank(s[1] - '1')
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return SquareOf(f, r)
}

// To steps sq one square in direction d, returning SqNone if that would
// leave the board (including wrap-around on the east/west edges).
func (sq Square) To(d Direction) Square {
	return sqTo[sq][d.index()]
}

// String returns the algebraic name of sq, or "-" if invalid.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return sq.FileOf().String() + sq.RankOf().String()
}

var sqTo [SqLength][8]Square

func initSquareTo() {
	for sq := SqA1; sq < SqNone; sq++ {
		for i, d := range directions {
			sqTo[sq][i] = sq.stepPrecompute(d)
		}
	}
}

func (sq Square) stepPrecompute(d Direction) Square {
	switch d {
	case North:
		sq += Square(d)
	case South:
		sq += Square(d)
	case East:
		if sq.FileOf() >= FileH {
			return SqNone
		}
		sq += Square(d)
	case West:
		if sq.FileOf() <= FileA {
			return SqNone
		}
		sq += Square(d)
	case Northeast, Southeast:
		if sq.FileOf() >= FileH {
			return SqNone
		}
		sq += Square(d)
	case Southwest, Northwest:
		if sq.FileOf() <= FileA {
			return SqNone
		}
		sq += Square(d)
	default:
		panic(fmt.Sprintf("invalid direction %d", d))
	}
	if sq.IsValid() {
		return sq
	}
	return SqNone
}
