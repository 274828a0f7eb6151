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

package evaluator

import "github.com/corvidchess/corvid/internal/chess"

// accFrame is one ply's perspective accumulators, parallel to a Position's
// Board stack. kingSq/bucket/mirror record the state each side's values
// were computed against, so the next push can tell cheaply whether a mere
// incremental update suffices or a bucket-cache refresh is required.
type accFrame struct {
	values [chess.ColorLength][HiddenSize]int16
	kingSq [chess.ColorLength]chess.Square
	bucket [chess.ColorLength]int
	mirror [chess.ColorLength]bool
}

// bucketCacheEntry is a finny-style cache slot: the last full accumulator
// snapshot computed for a given (perspective, input bucket, mirror half),
// together with the absolute piece placement that produced it. A refresh
// only has to add/remove the symmetric difference against this snapshot
// rather than recompute from an empty board.
type bucketCacheEntry struct {
	values [HiddenSize]int16
	pieces [chess.ColorLength][chess.PtLength]chess.Bitboard
}

// dirtyEntry is one piece addition or removal driving an incremental
// accumulator update.
type dirtyEntry struct {
	add   bool
	piece chess.Piece
	sq    chess.Square
}

// computeDirty derives the feature-level add/remove list for a move from
// its recorded (move, movedPiece, capturedPiece), following the usual NNUE
// case analysis. movedPiece is the piece as it was before the move (a pawn
// for promotions, the king for castling).
func computeDirty(m chess.Move, movedPiece, capturedPiece chess.Piece) []dirtyEntry {
	from, to, flag := m.From(), m.To(), m.Flag()
	us := movedPiece.ColorOf()

	switch {
	case flag == chess.FlagCastleKing || flag == chess.FlagCastleQueen:
		rank := from.RankOf()
		var kingDest, rookDest chess.Square
		if flag == chess.FlagCastleKing {
			kingDest, rookDest = chess.SquareOf(chess.FileG, rank), chess.SquareOf(chess.FileF, rank)
		} else {
			kingDest, rookDest = chess.SquareOf(chess.FileC, rank), chess.SquareOf(chess.FileD, rank)
		}
		rookPiece := chess.MakePiece(us, chess.Rook)
		return []dirtyEntry{
			{add: false, piece: movedPiece, sq: from},
			{add: true, piece: movedPiece, sq: kingDest},
			{add: false, piece: rookPiece, sq: to},
			{add: true, piece: rookPiece, sq: rookDest},
		}

	case flag == chess.FlagEnPassant:
		capSq := chess.SquareOf(to.FileOf(), from.RankOf())
		return []dirtyEntry{
			{add: false, piece: movedPiece, sq: from},
			{add: false, piece: capturedPiece, sq: capSq},
			{add: true, piece: movedPiece, sq: to},
		}

	case m.IsPromotion():
		promoted := chess.MakePiece(us, m.PromotionType())
		entries := []dirtyEntry{
			{add: false, piece: movedPiece, sq: from},
			{add: true, piece: promoted, sq: to},
		}
		if capturedPiece != chess.PieceNone {
			entries = append(entries, dirtyEntry{add: false, piece: capturedPiece, sq: to})
		}
		return entries

	default:
		entries := []dirtyEntry{
			{add: false, piece: movedPiece, sq: from},
			{add: true, piece: movedPiece, sq: to},
		}
		if capturedPiece != chess.PieceNone {
			entries = append(entries, dirtyEntry{add: false, piece: capturedPiece, sq: to})
		}
		return entries
	}
}

// featureIndex returns the [bucket][feature] weight-row index for a piece
// placed on sq, as seen by persp with the given mirror flag.
func featureIndex(persp chess.Color, mirror bool, p chess.Piece, sq chess.Square) int {
	rel := perspectiveSquare(persp, sq)
	if mirror {
		rel = mirrorFile(rel)
	}
	colorRel := 0
	if p.ColorOf() != persp {
		colorRel = 1
	}
	return colorRel*6*64 + featureTypeIndex(p.TypeOf())*64 + int(rel)
}

func mirrorIdx(mirror bool) int {
	if mirror {
		return 1
	}
	return 0
}
