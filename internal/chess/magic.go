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

// magic holds the fancy-magic-bitboard attack table for a single square of
// a single slider piece type.
type magic struct {
	mask    Bitboard
	number  Bitboard
	attacks []Bitboard
	shift   uint
}

func (m *magic) index(occupied Bitboard) uint {
	occ := occupied & m.mask
	occ *= m.number
	occ >>= m.shift
	return uint(occ)
}

var (
	sqBb           [SqLength]Bitboard
	squareDistance [SqLength][SqLength]int
	centerDistance [SqLength]int

	pawnAttacks   [2][SqLength]Bitboard
	pseudoAttacks [PtLength][SqLength]Bitboard

	rookTable  []Bitboard
	bishopTable []Bitboard
	rookMagics  [SqLength]magic
	bishopMagics [SqLength]magic

	rays         [8][SqLength]Bitboard
	intermediate [SqLength][SqLength]Bitboard
	// lineThrough holds, for each pair of squares that share a rank, file or
	// diagonal, the full infinite line through both (including squares
	// behind each endpoint). Used by SEE's pin detection: an attacker
	// pinned to its king is only a legal attacker on the target square if
	// the target square lies on lineThrough(attacker, king).
	lineThrough [SqLength][SqLength]Bitboard

	passedPawnMask      [2][SqLength]Bitboard
	kingSideCastleMask  [2]Bitboard
	queenSideCastleMask [2]Bitboard
	squareColorBb       [2]Bitboard
)

// BishopAttacks returns the bishop attack set from sq given the occupied
// bitboard, via the fancy magic bitboard lookup.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.attacks[m.index(occupied)]
}

// RookAttacks returns the rook attack set from sq given the occupied bitboard.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.attacks[m.index(occupied)]
}

// QueenAttacks returns the queen attack set from sq given the occupied bitboard.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttacksBb returns the attack set for a piece of type pt (not Pawn) placed
// on sq, given the board occupation. For King/Knight occupied is ignored.
func AttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	default:
		return pseudoAttacks[pt][sq]
	}
}

// PseudoAttacks returns the attack set of piece type pt from sq on an
// otherwise empty board.
func PseudoAttacks(pt PieceType, sq Square) Bitboard { return pseudoAttacks[pt][sq] }

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }

// Intermediate returns the squares strictly between s1 and s2 if they share
// a rank, file or diagonal; otherwise BbZero.
func Intermediate(s1, s2 Square) Bitboard { return intermediate[s1][s2] }

// ShortConnectingRay is an alias for Intermediate kept for readability at SEE
// and pin-detection call sites that talk about "the ray connecting two
// squares" rather than board geometry.
func ShortConnectingRay(s1, s2 Square) Bitboard { return Intermediate(s1, s2) }

// LineThrough returns the full rank/file/diagonal line through s1 and s2
// (including s1, s2, and the squares beyond each), or BbZero if they don't
// share one.
func LineThrough(s1, s2 Square) Bitboard { return lineThrough[s1][s2] }

// PassedPawnMask returns the squares on which an enemy pawn would stop sq's
// pawn (of color c) from being a passed pawn.
func (sq Square) PassedPawnMask(c Color) Bitboard { return passedPawnMask[c][sq] }

// KingSideCastleMask returns the squares (excluding the king's own square)
// that must be empty for king-side castling in the standard starting
// position layout.
func KingSideCastleMask(c Color) Bitboard { return kingSideCastleMask[c] }

// QueenSideCastleMask returns the corresponding mask for queen-side castling.
func QueenSideCastleMask(c Color) Bitboard { return queenSideCastleMask[c] }

// SquareColorBb returns all light (White) or dark (Black) squares.
func SquareColorBb(c Color) Bitboard { return squareColorBb[c] }

func init() {
	initSquareTo()
	initBitboards()
	initZobrist()
}

func initBitboards() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = Bitboard(1) << sq
	}
	for s1 := SqA1; s1 <= SqH8; s1++ {
		for s2 := SqA1; s2 <= SqH8; s2++ {
			if s1 != s2 {
				squareDistance[s1][s2] = maxInt(FileDistance(s1.FileOf(), s2.FileOf()), RankDistance(s1.RankOf(), s2.RankOf()))
			}
		}
	}
	for sq := SqA1; sq <= SqH8; sq++ {
		d5 := squareDistance[sq][SqD5]
		e5 := squareDistance[sq][SqE5]
		d4 := squareDistance[sq][SqD4]
		e4 := squareDistance[sq][SqE4]
		centerDistance[sq] = minInt(minInt(d5, e5), minInt(d4, e4))
	}

	pseudoAttacksPreCompute()
	raysAndIntermediatePreCompute()
	for sq := SqA1; sq <= SqH8; sq++ {
		pseudoAttacks[Rook][sq] = rays[OrientN][sq] | rays[OrientE][sq] | rays[OrientS][sq] | rays[OrientW][sq]
		pseudoAttacks[Bishop][sq] = rays[OrientNE][sq] | rays[OrientSE][sq] | rays[OrientSW][sq] | rays[OrientNW][sq]
		pseudoAttacks[Queen][sq] = pseudoAttacks[Rook][sq] | pseudoAttacks[Bishop][sq]
	}
	lineThroughPreCompute()
	passedPawnMasksPreCompute()
	castleMasksPreCompute()
	squareColorsPreCompute()
	initMagicBitboards()
}

func castleMasksPreCompute() {
	kingSideCastleMask[White] = sqBb[SqF1] | sqBb[SqG1]
	kingSideCastleMask[Black] = sqBb[SqF8] | sqBb[SqG8]
	queenSideCastleMask[White] = sqBb[SqD1] | sqBb[SqC1] | sqBb[SqB1]
	queenSideCastleMask[Black] = sqBb[SqD8] | sqBb[SqC8] | sqBb[SqB8]
}

func squareColorsPreCompute() {
	for sq := SqA1; sq <= SqH8; sq++ {
		if (int(sq.FileOf())+int(sq.RankOf()))%2 == 0 {
			squareColorBb[Black] |= sqBb[sq]
		} else {
			squareColorBb[White] |= sqBb[sq]
		}
	}
}

func passedPawnMasksPreCompute() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f, r := sq.FileOf(), sq.RankOf()
		passedPawnMask[White][sq] = rays[OrientN][sq]
		if f < FileH && r < Rank8 {
			passedPawnMask[White][sq] |= rays[OrientN][sq.To(East)]
		}
		if f > FileA && r < Rank8 {
			passedPawnMask[White][sq] |= rays[OrientN][sq.To(West)]
		}
		passedPawnMask[Black][sq] = rays[OrientS][sq]
		if f < FileH && r > Rank1 {
			passedPawnMask[Black][sq] |= rays[OrientS][sq.To(East)]
		}
		if f > FileA && r > Rank1 {
			passedPawnMask[Black][sq] |= rays[OrientS][sq.To(West)]
		}
	}
}

// pseudoAttacksPreCompute computes king, pawn and knight attack sets; steps
// are bounded by a Chebyshev distance check to reject board-edge wraparound.
// Bishop/Rook/Queen pseudo attacks are filled in separately once rays[] is
// available (see initBitboards).
func pseudoAttacksPreCompute() {
	kingSteps := []Direction{North, South, East, West, Northeast, Southeast, Southwest, Northwest}
	knightSteps := []int{17, 15, 10, 6, -6, -10, -15, -17}

	for sq := SqA1; sq <= SqH8; sq++ {
		for _, d := range kingSteps {
			to := sq.To(d)
			if to.IsValid() {
				pseudoAttacks[King][sq] |= sqBb[to]
			}
		}
		for c := White; c <= Black; c++ {
			for _, d := range []Direction{Northwest, Northeast} {
				step := d
				if c == Black {
					step = -d
				}
				to := sq.To(step)
				if to.IsValid() {
					pawnAttacks[c][sq] |= sqBb[to]
				}
			}
		}
		for _, delta := range knightSteps {
			toIdx := int(sq) + delta
			if toIdx < 0 || toIdx >= SqLength {
				continue
			}
			to := Square(toIdx)
			if squareDistance[sq][to] <= 2 {
				pseudoAttacks[Knight][sq] |= sqBb[to]
			}
		}
	}
}

func raysAndIntermediatePreCompute() {
	rayDirs := [8]Direction{North, East, South, West, Northeast, Southeast, Southwest, Northwest}
	for sq := SqA1; sq <= SqH8; sq++ {
		for o, d := range rayDirs {
			from := sq
			for {
				to := from.To(d)
				if !to.IsValid() {
					break
				}
				rays[o][sq] |= sqBb[to]
				from = to
			}
		}
	}
	for s1 := SqA1; s1 <= SqH8; s1++ {
		for s2 := SqA1; s2 <= SqH8; s2++ {
			if s1 == s2 {
				continue
			}
			for o := range rayDirs {
				if rays[o][s1]&sqBb[s2] != 0 {
					intermediate[s1][s2] = rays[o][s1] &^ rays[o][s2] &^ sqBb[s2]
				}
			}
		}
	}
}

func lineThroughPreCompute() {
	for s1 := SqA1; s1 <= SqH8; s1++ {
		for s2 := SqA1; s2 <= SqH8; s2++ {
			if s1 == s2 {
				continue
			}
			// two squares share a line if a rook or bishop pseudo attack
			// (on an empty board) from s1 reaches s2
			if pseudoAttacks[Rook][s1]&sqBb[s2] != 0 {
				lineThrough[s1][s2] = (pseudoAttacks[Rook][s1] & pseudoAttacks[Rook][s2]) | sqBb[s1] | sqBb[s2]
			} else if pseudoAttacks[Bishop][s1]&sqBb[s2] != 0 {
				lineThrough[s1][s2] = (pseudoAttacks[Bishop][s1] & pseudoAttacks[Bishop][s2]) | sqBb[s1] | sqBb[s2]
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
