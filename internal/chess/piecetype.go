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

// PieceType is a piece kind independent of color: King, Pawn, Knight,
// Bishop, Rook or Queen. Bit 2 (0b100) distinguishes sliders (Bishop,
// Rook, Queen) from non-sliders.
type PieceType uint8

const (
	PtNone PieceType = iota
	King
	Pawn
	Knight
	Bishop
	Rook
	Queen
	PtLength
)

// IsValid reports whether pt is one of the six real piece types.
func (pt PieceType) IsValid() bool { return pt > PtNone && pt < PtLength }

// IsSlider reports whether pt moves along unblocked rays (Bishop/Rook/Queen).
func (pt PieceType) IsSlider() bool { return pt >= Bishop }

var gamePhaseValue = [PtLength]int{0, 0, 0, 1, 1, 2, 4}

// GamePhaseValue is the weight this piece type contributes to the 0..24
// game-phase counter used to scale the NNUE eval.
func (pt PieceType) GamePhaseValue() int { return gamePhaseValue[pt] }

var pieceTypeValue = [PtLength]Value{0, 20000, 100, 320, 330, 500, 900}

// ValueOf returns the static material value of pt (mate-scale for King).
func (pt PieceType) ValueOf() Value { return pieceTypeValue[pt] }

var pieceTypeToString = [PtLength]string{"None", "King", "Pawn", "Knight", "Bishop", "Rook", "Queen"}

// String returns the English name of the piece type.
func (pt PieceType) String() string { return pieceTypeToString[pt] }

var pieceTypeToChar = "-KPNBRQ"

// Char returns the single-letter FEN-style piece letter (uppercase).
func (pt PieceType) Char() string { return string(pieceTypeToChar[pt]) }
