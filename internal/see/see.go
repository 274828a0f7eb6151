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

// Package see implements the Static Exchange Evaluator: it
// simulates the full sequence of recaptures on a square and reports the
// material a side nets from initiating it. Both internal/movepicker (move
// ordering) and internal/search (capture pruning) need this, so it lives on
// its own rather than under either of them.
package see

import (
	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/position"
)

// Value is the evaluator's own piece-value table, deliberately separate
// from chess.PieceType.ValueOf()'s evaluation-scale values: SEE only needs
// the relative order and rough ratio of piece worth to drive the exchange
// simulation, not tuned eval weights.
var Value = [chess.PtLength]int{
	chess.PtNone: 0,
	chess.King:   20000,
	chess.Pawn:   100,
	chess.Knight: 300,
	chess.Bishop: 300,
	chess.Rook:   500,
	chess.Queen:  1000,
}

// order lists piece types in ascending Value, the order the exchange loop
// tries each side's attackers in.
var order = [6]chess.PieceType{chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King}

// attacksTo returns by's pieces attacking sq under occupancy occ.
func attacksTo(b *position.Board, sq chess.Square, occ chess.Bitboard, by chess.Color) chess.Bitboard {
	bb := chess.PawnAttacks(by.Flip(), sq) & b.PieceBb(by, chess.Pawn)
	bb |= chess.PseudoAttacks(chess.Knight, sq) & b.PieceBb(by, chess.Knight)
	bb |= chess.PseudoAttacks(chess.King, sq) & b.PieceBb(by, chess.King)
	bb |= chess.AttacksBb(chess.Rook, sq, occ) & (b.PieceBb(by, chess.Rook) | b.PieceBb(by, chess.Queen))
	bb |= chess.AttacksBb(chess.Bishop, sq, occ) & (b.PieceBb(by, chess.Bishop) | b.PieceBb(by, chess.Queen))
	return bb & occ
}

// isPinnedAway reports whether the piece on from is pinned to kingSq by an
// enemy slider (under occupancy occ) along a line that does not also pass
// through to: such a piece can't legally join the exchange there.
func isPinnedAway(b *position.Board, from, kingSq, to chess.Square, occ chess.Bitboard) bool {
	line := chess.LineThrough(kingSq, from)
	if line == 0 || line.Has(to) {
		return false
	}
	them := b.PieceOn(from).ColorOf().Flip()
	beyond := occ &^ from.Bb()
	sliders := chess.AttacksBb(chess.Bishop, kingSq, beyond) & (b.PieceBb(them, chess.Bishop) | b.PieceBb(them, chess.Queen))
	sliders |= chess.AttacksBb(chess.Rook, kingSq, beyond) & (b.PieceBb(them, chess.Rook) | b.PieceBb(them, chess.Queen))
	for sliders != 0 {
		sniper := sliders.PopLsb()
		if chess.Intermediate(kingSq, sniper).Has(from) {
			return true
		}
	}
	return false
}

// Eval runs the exchange simulation for move m: each side always answers
// with its least valuable attacker, and it reports whether the side making
// m nets at least threshold centipawns. Used both to order captures ahead
// of quiets and to prune clearly-losing captures before they're searched.
func Eval(pos *position.Position, m chess.Move, threshold int) bool {
	b := pos.Current()
	from, to := m.From(), m.To()

	if m.IsCastle() {
		return threshold <= 0
	}

	us := b.PieceOn(from).ColorOf()
	movedType := b.PieceOn(from).TypeOf()

	var gain [32]int
	depth := 0

	if m.IsEnPassant() {
		gain[0] = Value[chess.Pawn]
	} else if victim := b.PieceOn(to); victim != chess.PieceNone {
		gain[0] = Value[victim.TypeOf()]
	}

	sideValue := Value[movedType]
	if m.IsPromotion() {
		promoType := m.PromotionType()
		gain[0] += Value[promoType] - Value[chess.Pawn]
		sideValue = Value[promoType]
	}

	occ := b.Occupied() &^ from.Bb()
	if m.IsEnPassant() {
		capSq := chess.SquareOf(to.FileOf(), from.RankOf())
		occ &^= capSq.Bb()
	}

	side := us.Flip()
	for depth < len(gain)-1 {
		attackers := (attacksTo(b, to, occ, chess.White) | attacksTo(b, to, occ, chess.Black)) & occ
		candidates := attackers & b.OccupiedBy(side)
		if candidates == 0 {
			break
		}

		kingSq := b.KingSquare(side)
		var pt chess.PieceType
		var sq chess.Square = chess.SqNone
		for _, cand := range order {
			bb := candidates & b.PieceBb(side, cand)
			for bb != 0 {
				s := bb.PopLsb()
				if cand != chess.King && isPinnedAway(b, s, kingSq, to, occ) {
					continue
				}
				pt, sq = cand, s
				break
			}
			if sq != chess.SqNone {
				break
			}
		}
		if sq == chess.SqNone {
			break
		}
		if pt == chess.King {
			// A king can only join the exchange if the opponent has no
			// attacker left to answer with, else it would step into check.
			opp := attackers &^ candidates
			if opp != 0 {
				break
			}
		}

		depth++
		gain[depth] = sideValue - gain[depth-1]
		// Stop once neither side can improve by continuing: the exchange is
		// settled when max(-gain[depth-1], gain[depth]) < 0.
		best := -gain[depth-1]
		if gain[depth] > best {
			best = gain[depth]
		}
		if best < 0 {
			break
		}
		occ &^= sq.Bb()
		sideValue = Value[pt]
		side = side.Flip()
	}

	for depth > 0 {
		best := -gain[depth-1]
		if gain[depth] > best {
			best = gain[depth]
		}
		gain[depth-1] = -best
		depth--
	}

	return gain[0] >= threshold
}
