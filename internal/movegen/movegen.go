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

// Package movegen generates pseudo-legal and legal moves for a position,
// templated on a Noisy/Quiet split rather than a single undifferentiated
// move list: search uses the split to probe captures first in quiescence
// and to run late-move pruning on quiet moves only. Legality is decided
// without make/unmake by exploiting the king's pinned-piece and checker
// bitboards.
package movegen

import (
	"regexp"
	"strings"

	"github.com/op/go-logging"

	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/position"

	"github.com/corvidchess/corvid/internal/chess"
)

var log *logging.Logger

func init() {
	log = myLogging.GetLog("movegen")
}

// GenMode selects which move categories to produce: Noisy (captures, queen
// promotions, en passant) or Quiet (everything else, including
// under-promotions and castling).
type GenMode int

const (
	GenNoisy GenMode = 1 << iota
	GenQuiet
	GenAll = GenNoisy | GenQuiet
)

var promoFlags = [4]chess.MoveFlag{chess.FlagPromoQueen, chess.FlagPromoKnight, chess.FlagPromoRook, chess.FlagPromoBishop}
var promoCaptureFlags = [4]chess.MoveFlag{chess.FlagPromoCaptureQueen, chess.FlagPromoCaptureKnight, chess.FlagPromoCaptureRook, chess.FlagPromoCaptureBishop}

func addPromotions(ml *moveslice.MoveList, kind GenMode, from, to chess.Square, capture bool) {
	for i, f := range promoFlags {
		flag := f
		noisy := flag == chess.FlagPromoQueen
		if capture {
			flag = promoCaptureFlags[i]
			noisy = true
		}
		if noisy && kind&GenNoisy != 0 {
			ml.Add(chess.CreateMove(from, to, flag), 0)
		} else if !noisy && kind&GenQuiet != 0 {
			ml.Add(chess.CreateMove(from, to, flag), 0)
		}
	}
}

func generatePawnMoves(p *position.Position, kind GenMode, ml *moveslice.MoveList) {
	b := p.Current()
	us := b.SideToMove()
	them := us.Flip()
	occ := b.Occupied()
	enemyBb := b.OccupiedBy(them)
	pushDir := us.PawnPushDirection()
	promRank := us.PromotionRank()
	startRank := us.PawnStartRank()
	epSq := b.EnPassantSquare()

	pawns := b.PieceBb(us, chess.Pawn)
	for pawns != 0 {
		from := pawns.PopLsb()

		if kind&GenNoisy != 0 {
			attacks := chess.PawnAttacks(us, from) & enemyBb
			for attacks != 0 {
				to := attacks.PopLsb()
				if to.RankOf() == promRank {
					addPromotions(ml, kind, from, to, true)
				} else {
					ml.Add(chess.CreateMove(from, to, chess.FlagCapture), 0)
				}
			}
			if epSq != chess.SqNone && chess.PawnAttacks(us, from).Has(epSq) {
				ml.Add(chess.CreateMove(from, epSq, chess.FlagEnPassant), 0)
			}
		}

		push1 := from.To(pushDir)
		if !push1.IsValid() || occ.Has(push1) {
			continue
		}
		if push1.RankOf() == promRank {
			addPromotions(ml, kind, from, push1, false)
			continue
		}
		if kind&GenQuiet == 0 {
			continue
		}
		ml.Add(chess.CreateMove(from, push1, chess.FlagQuiet), 0)
		if from.RankOf() == startRank {
			push2 := push1.To(pushDir)
			if push2.IsValid() && !occ.Has(push2) {
				ml.Add(chess.CreateMove(from, push2, chess.FlagDoublePawnPush), 0)
			}
		}
	}
}

func addTargets(ml *moveslice.MoveList, kind GenMode, from chess.Square, targets, enemyBb chess.Bitboard) {
	if kind&GenNoisy != 0 {
		caps := targets & enemyBb
		for caps != 0 {
			to := caps.PopLsb()
			ml.Add(chess.CreateMove(from, to, chess.FlagCapture), 0)
		}
	}
	if kind&GenQuiet != 0 {
		quiets := targets &^ enemyBb
		for quiets != 0 {
			to := quiets.PopLsb()
			ml.Add(chess.CreateMove(from, to, chess.FlagQuiet), 0)
		}
	}
}

func generateKnightMoves(p *position.Position, kind GenMode, ml *moveslice.MoveList) {
	b := p.Current()
	us := b.SideToMove()
	ownBb := b.OccupiedBy(us)
	enemyBb := b.OccupiedBy(us.Flip())
	knights := b.PieceBb(us, chess.Knight)
	for knights != 0 {
		from := knights.PopLsb()
		targets := chess.PseudoAttacks(chess.Knight, from) &^ ownBb
		addTargets(ml, kind, from, targets, enemyBb)
	}
}

func generateKingMoves(p *position.Position, kind GenMode, ml *moveslice.MoveList) {
	b := p.Current()
	us := b.SideToMove()
	ownBb := b.OccupiedBy(us)
	enemyBb := b.OccupiedBy(us.Flip())
	from := b.KingSquare(us)
	targets := chess.PseudoAttacks(chess.King, from) &^ ownBb
	addTargets(ml, kind, from, targets, enemyBb)
}

func generateSliderMoves(p *position.Position, pt chess.PieceType, kind GenMode, ml *moveslice.MoveList) {
	b := p.Current()
	us := b.SideToMove()
	ownBb := b.OccupiedBy(us)
	enemyBb := b.OccupiedBy(us.Flip())
	occ := b.Occupied()
	pieces := b.PieceBb(us, pt)
	for pieces != 0 {
		from := pieces.PopLsb()
		targets := chess.AttacksBb(pt, from, occ) &^ ownBb
		addTargets(ml, kind, from, targets, enemyBb)
	}
}

func castlingRightFor(c chess.Color, side chess.CastleSide) chess.CastlingRights {
	switch {
	case c == chess.White && side == chess.CastleSideKing:
		return chess.CastlingWhiteOO
	case c == chess.White && side == chess.CastleSideQueen:
		return chess.CastlingWhiteOOO
	case c == chess.Black && side == chess.CastleSideKing:
		return chess.CastlingBlackOO
	default:
		return chess.CastlingBlackOOO
	}
}

func generateCastling(p *position.Position, ml *moveslice.MoveList) {
	b := p.Current()
	us := b.SideToMove()
	them := us.Flip()
	cfg := p.Config()
	kingFrom := b.KingSquare(us)
	occAll := b.Occupied()

	for _, side := range [2]chess.CastleSide{chess.CastleSideKing, chess.CastleSideQueen} {
		right := castlingRightFor(us, side)
		if !b.CastlingRights().Has(right) {
			continue
		}
		rookFrom := cfg.RookFrom[us][side]
		rank := kingFrom.RankOf()
		var kingDest, rookDest chess.Square
		if side == chess.CastleSideKing {
			kingDest, rookDest = chess.SquareOf(chess.FileG, rank), chess.SquareOf(chess.FileF, rank)
		} else {
			kingDest, rookDest = chess.SquareOf(chess.FileC, rank), chess.SquareOf(chess.FileD, rank)
		}

		occWithoutMovers := occAll &^ kingFrom.Bb() &^ rookFrom.Bb()
		path := chess.Intermediate(kingFrom, kingDest) | kingDest.Bb() |
			chess.Intermediate(rookFrom, rookDest) | rookDest.Bb()
		if path&occWithoutMovers != 0 {
			continue
		}

		kingPath := chess.Intermediate(kingFrom, kingDest) | kingFrom.Bb() | kingDest.Bb()
		blocked := false
		for bb := kingPath; bb != 0; {
			sq := bb.PopLsb()
			if attackersOfOcc(b, sq, them, occWithoutMovers) != 0 {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		flag := chess.FlagCastleKing
		if side == chess.CastleSideQueen {
			flag = chess.FlagCastleQueen
		}
		ml.Add(chess.CreateMove(kingFrom, rookFrom, flag), 0)
	}
}

// GenerateMoves appends every pseudo-legal move of kind (Noisy, Quiet, or
// both) at the current position to ml, clearing it first.
func GenerateMoves(p *position.Position, kind GenMode, ml *moveslice.MoveList) {
	ml.Clear()
	generatePawnMoves(p, kind, ml)
	generateKnightMoves(p, kind, ml)
	generateSliderMoves(p, chess.Bishop, kind, ml)
	generateSliderMoves(p, chess.Rook, kind, ml)
	generateSliderMoves(p, chess.Queen, kind, ml)
	generateKingMoves(p, kind, ml)
	if kind&GenQuiet != 0 {
		generateCastling(p, ml)
	}
}

// GenerateLegalMoves appends every fully legal move of kind to ml.
func GenerateLegalMoves(p *position.Position, kind GenMode, ml *moveslice.MoveList) {
	var pseudo moveslice.MoveList
	GenerateMoves(p, kind, &pseudo)
	ml.Clear()
	for i := 0; i < pseudo.Len(); i++ {
		e := pseudo.At(i)
		if IsLegal(p, e.Move) {
			ml.Add(e.Move, e.Score)
		}
	}
}

// HasLegalMove reports whether the side to move has at least one legal move.
func HasLegalMove(p *position.Position) bool {
	var ml moveslice.MoveList
	GenerateLegalMoves(p, GenAll, &ml)
	return ml.Len() > 0
}

func attackersOf(b *position.Board, sq chess.Square, by chess.Color) chess.Bitboard {
	return attackersOfOcc(b, sq, by, b.Occupied())
}

// attackersOfOcc returns the set of by-colored pieces attacking sq, using
// occ as the occupancy for slider attack lookups (letting callers probe
// "what if this square were empty" scenarios such as castling-path checks
// or king moves that vacate their own square).
func attackersOfOcc(b *position.Board, sq chess.Square, by chess.Color, occ chess.Bitboard) chess.Bitboard {
	var bb chess.Bitboard
	bb |= chess.PawnAttacks(by.Flip(), sq) & b.PieceBb(by, chess.Pawn)
	bb |= chess.PseudoAttacks(chess.Knight, sq) & b.PieceBb(by, chess.Knight)
	bb |= chess.PseudoAttacks(chess.King, sq) & b.PieceBb(by, chess.King)
	bb |= chess.AttacksBb(chess.Bishop, sq, occ) & (b.PieceBb(by, chess.Bishop) | b.PieceBb(by, chess.Queen))
	bb |= chess.AttacksBb(chess.Rook, sq, occ) & (b.PieceBb(by, chess.Rook) | b.PieceBb(by, chess.Queen))
	return bb
}

// computePinned returns, for color us, the bitboard of us's own pieces that
// stand alone between their king and an enemy slider (the classic
// "blockers for king" construction): such a piece may move only along the
// line through the king and the pinning slider.
func computePinned(b *position.Board, us chess.Color) chess.Bitboard {
	them := us.Flip()
	kingSq := b.KingSquare(us)
	occ := b.Occupied()
	snipers := (chess.PseudoAttacks(chess.Bishop, kingSq) & (b.PieceBb(them, chess.Bishop) | b.PieceBb(them, chess.Queen))) |
		(chess.PseudoAttacks(chess.Rook, kingSq) & (b.PieceBb(them, chess.Rook) | b.PieceBb(them, chess.Queen)))
	var pinned chess.Bitboard
	for snipers != 0 {
		sniperSq := snipers.PopLsb()
		between := chess.Intermediate(kingSq, sniperSq) & occ
		if between != 0 && !between.MoreThanOne() && between&b.OccupiedBy(us) != 0 {
			pinned |= between
		}
	}
	return pinned
}

func legalKingMove(b *position.Board, us chess.Color, to chess.Square) bool {
	them := us.Flip()
	occWithoutKing := b.Occupied() &^ b.KingSquare(us).Bb()
	return attackersOfOcc(b, to, them, occWithoutKing) == 0
}

func legalEnPassant(b *position.Board, us chess.Color, from, to chess.Square) bool {
	them := us.Flip()
	capSq := chess.SquareOf(to.FileOf(), from.RankOf())
	kingSq := b.KingSquare(us)

	// Generic check-evasion test: a checker other than the captured pawn
	// must still be dealt with by this capture (rare, but e.g. a discovered
	// check from a third piece is not resolved by an en passant capture).
	checkers := attackersOf(b, kingSq, them)
	checkers &^= capSq.Bb()
	if checkers != 0 {
		return false
	}

	occ := b.Occupied()
	occ &^= from.Bb()
	occ &^= capSq.Bb()
	occ |= to.Bb()
	attackers := chess.AttacksBb(chess.Bishop, kingSq, occ) & (b.PieceBb(them, chess.Bishop) | b.PieceBb(them, chess.Queen))
	attackers |= chess.AttacksBb(chess.Rook, kingSq, occ) & (b.PieceBb(them, chess.Rook) | b.PieceBb(them, chess.Queen))
	return attackers == 0
}

// IsLegal is the final filter applied to a pseudo-legal, non-TT-sourced
// move: it decides legality by exploiting pins and checkers rather than by
// making the move and recomputing threats from scratch. Castling moves are
// always legal here since generateCastling only emits already-legal ones.
func IsLegal(p *position.Position, m chess.Move) bool {
	b := p.Current()
	us := b.SideToMove()
	from, to, flag := m.From(), m.To(), m.Flag()

	if flag == chess.FlagCastleKing || flag == chess.FlagCastleQueen {
		return true
	}
	if flag == chess.FlagEnPassant {
		return legalEnPassant(b, us, from, to)
	}
	if from == b.KingSquare(us) {
		return legalKingMove(b, us, to)
	}

	them := us.Flip()
	kingSq := b.KingSquare(us)
	checkers := attackersOf(b, kingSq, them)
	if checkers.MoreThanOne() {
		return false
	}
	if checkers != 0 {
		checkerSq := checkers.Lsb()
		blockSquares := chess.Intermediate(kingSq, checkerSq)
		if to != checkerSq && !blockSquares.Has(to) {
			return false
		}
	}

	pinned := computePinned(b, us)
	if pinned.Has(from) && !chess.LineThrough(kingSq, from).Has(to) {
		return false
	}
	return true
}

func epTargetBb(epSq chess.Square) chess.Bitboard {
	var bb chess.Bitboard
	if epSq != chess.SqNone {
		bb.PushSquare(epSq)
	}
	return bb
}

func pseudoPawnTargets(b *position.Board, us chess.Color, from chess.Square) chess.Bitboard {
	occ := b.Occupied()
	pushDir := us.PawnPushDirection()
	var bb chess.Bitboard
	push1 := from.To(pushDir)
	if push1.IsValid() && !occ.Has(push1) {
		bb.PushSquare(push1)
		if from.RankOf() == us.PawnStartRank() {
			push2 := push1.To(pushDir)
			if push2.IsValid() && !occ.Has(push2) {
				bb.PushSquare(push2)
			}
		}
	}
	bb |= chess.PawnAttacks(us, from) & (b.OccupiedBy(us.Flip()) | epTargetBb(b.EnPassantSquare()))
	return bb
}

// IsPseudoLegal cheaply validates a move from an external source (typically
// a transposition-table hash move) against the current position: piece
// presence and color, flag/target consistency, and non-jumping sliders.
// It does not check for check evasion or pins — call IsLegal afterward.
func IsPseudoLegal(p *position.Position, m chess.Move) bool {
	if !m.IsValid() {
		return false
	}
	b := p.Current()
	us := b.SideToMove()
	from, to, flag := m.From(), m.To(), m.Flag()
	moved := b.PieceOn(from)
	if moved == chess.PieceNone || moved.ColorOf() != us {
		return false
	}

	if flag == chess.FlagCastleKing || flag == chess.FlagCastleQueen {
		var ml moveslice.MoveList
		generateCastling(p, &ml)
		return ml.Contains(m)
	}

	pt := moved.TypeOf()
	var pseudoTargets chess.Bitboard
	switch pt {
	case chess.Pawn:
		pseudoTargets = pseudoPawnTargets(b, us, from)
	case chess.Knight:
		pseudoTargets = chess.PseudoAttacks(chess.Knight, from)
	case chess.King:
		pseudoTargets = chess.PseudoAttacks(chess.King, from)
	default:
		pseudoTargets = chess.AttacksBb(pt, from, b.Occupied())
	}
	if !pseudoTargets.Has(to) {
		return false
	}

	target := b.PieceOn(to)
	if flag == chess.FlagEnPassant {
		return pt == chess.Pawn && to == b.EnPassantSquare()
	}
	if m.IsCapture() {
		if target == chess.PieceNone || target.ColorOf() == us {
			return false
		}
	} else if target != chess.PieceNone {
		return false
	}

	wantsPromotion := pt == chess.Pawn && to.RankOf() == us.PromotionRank()
	if m.IsPromotion() != wantsPromotion {
		return false
	}
	if flag == chess.FlagDoublePawnPush && from.RankOf() != us.PawnStartRank() {
		return false
	}
	return true
}

// Regex for UCI move notation, e.g. "e2e4" or "e7e8q".
var regexUciMove = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([nbrq])?$`)

// MoveFromUci generates all legal moves and returns the one matching uci, or
// chess.MoveNone if there is no match.
func MoveFromUci(p *position.Position, uci string) chess.Move {
	matches := regexUciMove.FindStringSubmatch(strings.TrimSpace(uci))
	if matches == nil {
		return chess.MoveNone
	}
	var ml moveslice.MoveList
	GenerateLegalMoves(p, GenAll, &ml)
	chess960 := p.Config().Chess960
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if m.UCI(chess960) == uci || m.UCI(!chess960) == uci {
			return m
		}
	}
	return chess.MoveNone
}
