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

// Zobrist holds the fixed random keys used to incrementally hash a
// position: one key per (piece, square), one for the side to move, one per
// castling-rights bit pattern, and one per en passant file.
var (
	zobristPieceSquare [PieceLength][SqLength]uint64
	zobristSide        uint64
	zobristCastling    [16]uint64
	zobristEnPassant   [FileLength]uint64
)

// PieceSquareKey returns the Zobrist key contribution of piece p on sq.
func PieceSquareKey(p Piece, sq Square) uint64 { return zobristPieceSquare[p][sq] }

// SideToMoveKey returns the Zobrist key contribution toggled each ply.
func SideToMoveKey() uint64 { return zobristSide }

// CastlingKey returns the Zobrist key contribution for a castling rights state.
func CastlingKey(cr CastlingRights) uint64 { return zobristCastling[cr] }

// EnPassantKey returns the Zobrist key contribution for an en passant target file.
func EnPassantKey(f File) uint64 { return zobristEnPassant[f] }

// initZobrist fills the key tables with a deterministic xorshift64* sequence
// (same generator family as the magic-number search) so a given binary
// always hashes a given position the same way across runs.
func initZobrist() {
	rng := newSplitMix(0x9E3779B97F4A7C15)
	for p := PieceNone; p < PieceLength; p++ {
		for sq := SqA1; sq < SqNone; sq++ {
			zobristPieceSquare[p][sq] = rng.next()
		}
	}
	zobristSide = rng.next()
	for cr := 0; cr < 16; cr++ {
		zobristCastling[cr] = rng.next()
	}
	for f := FileA; f < FileLength; f++ {
		zobristEnPassant[f] = rng.next()
	}
}
