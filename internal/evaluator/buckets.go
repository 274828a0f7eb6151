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

// perspectiveSquare flips rank (XOR 0x38) for Black to re-express an absolute square in the
// side-to-perspective frame where the perspective's own pieces start on the
// low ranks; both sides then share the same king-bucket and feature tables.
func perspectiveSquare(persp chess.Color, sq chess.Square) chess.Square {
	if persp == chess.Black {
		return sq ^ 0x38
	}
	return sq
}

// mirrorsHorizontally reports whether sq (already expressed in the
// perspective frame) sits on the right half of the board, the trigger for
// horizontal mirroring applied to the feature index below.
func mirrorsHorizontally(sq chess.Square) bool { return sq.FileOf() >= chess.FileE }

// mirrorFile flips sq's file (XOR 7), leaving its rank untouched.
func mirrorFile(sq chess.Square) chess.Square { return sq ^ 7 }

// kingBucketTable maps a king square already folded into the low 32 squares
// (file A-D, any rank) to one of the 14 input buckets, grouping king rank
// bands the way engines conventionally do (own back rank and the next rank
// each get the finest resolution, since that's where king safety differs
// most), coarsening further out. This choice is recorded as an open
// decision in DESIGN.md.
var kingBucketTable = [32]int{
	// rank 1 (own back rank): one bucket per file, finest resolution
	0, 1, 2, 3,
	// rank 2
	4, 5, 6, 7,
	// rank 3
	8, 8, 9, 9,
	// rank 4
	10, 10, 10, 10,
	// rank 5
	11, 11, 11, 11,
	// rank 6
	12, 12, 12, 12,
	// rank 7-8 share the coarsest bucket
	13, 13, 13, 13,
	13, 13, 13, 13,
}

// inputBucketOf returns the input-feature bucket for a king square already
// expressed in the perspective frame and already horizontally mirrored onto
// files A-D.
func inputBucketOf(mirroredKingSq chess.Square) int {
	idx := int(mirroredKingSq.RankOf())*4 + int(mirroredKingSq.FileOf())
	return kingBucketTable[idx]
}

// outputBucketOf returns the output-layer bucket for the total piece count
// on the board: floor((count-2) / ceil(32/8)).
func outputBucketOf(pieceCount int) int {
	b := (pieceCount - 2) / 4
	if b < 0 {
		b = 0
	}
	if b >= OutputBuckets {
		b = OutputBuckets - 1
	}
	return b
}

// featureTypeIndex maps a piece type to its 0..5 slot within a perspective's
// half of the 768 input features (King=0 .. Queen=5).
func featureTypeIndex(pt chess.PieceType) int { return int(pt) - 1 }
