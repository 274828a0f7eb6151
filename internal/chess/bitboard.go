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

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set with one bit per board square.
type Bitboard uint64

const (
	BbZero Bitboard = 0
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = 1

	FileABb Bitboard = 0x0101010101010101
	FileBBb          = FileABb << 1
	FileCBb          = FileABb << 2
	FileDBb          = FileABb << 3
	FileEBb          = FileABb << 4
	FileFBb          = FileABb << 5
	FileGBb          = FileABb << 6
	FileHBb          = FileABb << 7

	Rank1Bb Bitboard = 0xFF
	Rank2Bb          = Rank1Bb << (8 * 1)
	Rank3Bb          = Rank1Bb << (8 * 2)
	Rank4Bb          = Rank1Bb << (8 * 3)
	Rank5Bb          = Rank1Bb << (8 * 4)
	Rank6Bb          = Rank1Bb << (8 * 5)
	Rank7Bb          = Rank1Bb << (8 * 6)
	Rank8Bb          = Rank1Bb << (8 * 7)

	notFileABb Bitboard = ^FileABb
	notFileHBb Bitboard = ^FileHBb
)

// Bb returns the single-square bitboard for sq.
func (sq Square) Bb() Bitboard { return sqBb[sq] }

// PushSquare sets the bit for s in b.
func (b *Bitboard) PushSquare(s Square) { *b |= s.Bb() }

// PopSquare clears the bit for s in b.
func (b *Bitboard) PopSquare(s Square) { *b &^= s.Bb() }

// Has reports whether s is set in b.
func (b Bitboard) Has(s Square) bool { return b&sqBb[s] != 0 }

// Lsb returns the lowest-indexed set square, or SqNone if b is empty.
func (b Bitboard) Lsb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLsb returns and clears the lowest-indexed set square.
func (b *Bitboard) PopLsb() Square {
	lsb := b.Lsb()
	if lsb != SqNone {
		*b &= *b - 1
	}
	return lsb
}

// PopCount returns the number of set bits in b.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// MoreThanOne reports whether b has two or more bits set, without a full
// population count.
func (b Bitboard) MoreThanOne() bool { return b&(b-1) != 0 }

// String renders b as a 64-character bit string, msb (square 63) first.
func (b Bitboard) String() string { return fmt.Sprintf("%064b", uint64(b)) }

// StringBoard renders b as an 8x8 ASCII board, rank 8 on top.
func (b Bitboard) StringBoard() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r)) {
				sb.WriteString("| X ")
			} else {
				sb.WriteString("|   ")
			}
		}
		sb.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
		if r == Rank1 {
			break
		}
	}
	return sb.String()
}

// shift moves every bit of b one square in direction d, clearing bits that
// would wrap around a board edge.
func shift(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b & notFileHBb) << 1
	case West:
		return (b & notFileABb) >> 1
	case Northeast:
		return (b & notFileHBb) << 9
	case Southeast:
		return (b & notFileHBb) >> 7
	case Southwest:
		return (b & notFileABb) >> 9
	case Northwest:
		return (b & notFileABb) << 7
	default:
		return b
	}
}

// FileDistance returns the absolute file distance between two files.
func FileDistance(f1, f2 File) int { return absInt(int(f1) - int(f2)) }

// RankDistance returns the absolute rank distance between two ranks.
func RankDistance(r1, r2 Rank) int { return absInt(int(r1) - int(r2)) }

// SquareDistance returns Chebyshev distance between two squares.
func SquareDistance(s1, s2 Square) int { return squareDistance[s1][s2] }

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
