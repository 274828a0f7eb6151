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

import "strings"

// CastlingRights is a 4-bit set of which castling moves are still available.
type CastlingRights uint8

const (
	CastlingNone    CastlingRights = 0
	CastlingWhiteOO CastlingRights = 1
	CastlingWhiteOOO               = CastlingWhiteOO << 1
	CastlingBlackOO                = CastlingWhiteOO << 2
	CastlingBlackOOO                = CastlingWhiteOO << 3
	CastlingWhite                  = CastlingWhiteOO | CastlingWhiteOOO
	CastlingBlack                  = CastlingBlackOO | CastlingBlackOOO
	CastlingAny                    = CastlingWhite | CastlingBlack
)

// Has reports whether any right in rhs is present in cr.
func (cr CastlingRights) Has(rhs CastlingRights) bool { return cr&rhs != 0 }

// Remove clears the given rights from cr.
func (cr *CastlingRights) Remove(rhs CastlingRights) { *cr &^= rhs }

// Add sets the given rights on cr.
func (cr *CastlingRights) Add(rhs CastlingRights) { *cr |= rhs }

// String renders cr in FEN order (KQkq), or "-" if none are set.
func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var sb strings.Builder
	if cr.Has(CastlingWhiteOO) {
		sb.WriteString("K")
	}
	if cr.Has(CastlingWhiteOOO) {
		sb.WriteString("Q")
	}
	if cr.Has(CastlingBlackOO) {
		sb.WriteString("k")
	}
	if cr.Has(CastlingBlackOOO) {
		sb.WriteString("q")
	}
	return sb.String()
}

// CastlingConfiguration records, per color and side, the starting square of
// the rook involved in castling. In standard chess this is always the A or H
// file; in Chess960/DFRC it can be any file, so move generation and the
// push/pop logic always consult this rather than assuming A/H.
type CastlingConfiguration struct {
	RookFrom   [2][2]Square // [color][CastleSideKing/CastleSideQueen]
	KingFrom   [2]Square
	Chess960   bool
}

// CastleSide selects king-side or queen-side castling.
type CastleSide int

const (
	CastleSideKing CastleSide = iota
	CastleSideQueen
)

// StandardCastling returns the CastlingConfiguration for orthodox chess
// (king e-file, rooks a/h-file).
func StandardCastling() CastlingConfiguration {
	return CastlingConfiguration{
		RookFrom: [2][2]Square{
			{SqH1, SqA1},
			{SqH8, SqA8},
		},
		KingFrom: [2]Square{SqE1, SqE8},
		Chess960: false,
	}
}
