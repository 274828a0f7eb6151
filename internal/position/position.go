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

// Package position represents a chess position as an append-only stack of
// board snapshots: pushing a move computes a new Board from the current top
// of stack and appends it; popping truncates the stack. Nothing is undone
// bit-by-bit, which keeps Pop trivial and keeps every historical Board
// available for repetition detection.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/corvidchess/corvid/internal/assert"
	"github.com/corvidchess/corvid/internal/chess"
	myLogging "github.com/corvidchess/corvid/internal/logging"
)

var log *logging.Logger

func init() {
	log = myLogging.GetLog("position")
}

// StartFen is the FEN of the standard chess starting position.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MaxHistory upper-bounds the number of plies a single game can realistically
// reach; the board stack grows past it only in pathological test inputs, in
// which case it simply reallocates like any Go slice.
const MaxHistory = 1024

// Board is one ply's complete, self-contained snapshot of the game state:
// piece placement (both bitboards and a mailbox), side to move, castling
// rights, en passant target, move clocks, the threat bitboard (squares
// attacked by the side NOT to move) and the incrementally maintained Zobrist
// hashes.
type Board struct {
	pieces  [chess.ColorLength][chess.PtLength]chess.Bitboard
	colorBb [chess.ColorLength]chess.Bitboard
	mailbox [chess.SqLength]chess.Piece

	sideToMove      chess.Color
	castlingRights  chess.CastlingRights
	enPassantSquare chess.Square
	halfmoveClock   int
	fullmoveNumber  int

	// threats is the set of squares attacked by the side NOT to move,
	// i.e. the threats the side to move must respect. Recomputed after
	// every push.
	threats chess.Bitboard

	hash        uint64
	nonPawnHash [chess.ColorLength]uint64
}

// Occupied returns the bitboard of all occupied squares.
func (b *Board) Occupied() chess.Bitboard { return b.colorBb[chess.White] | b.colorBb[chess.Black] }

// OccupiedBy returns the bitboard of squares occupied by color c.
func (b *Board) OccupiedBy(c chess.Color) chess.Bitboard { return b.colorBb[c] }

// PieceBb returns the bitboard of pieces of color c and type pt.
func (b *Board) PieceBb(c chess.Color, pt chess.PieceType) chess.Bitboard { return b.pieces[c][pt] }

// PieceOn returns the piece (possibly PieceNone) occupying sq.
func (b *Board) PieceOn(sq chess.Square) chess.Piece { return b.mailbox[sq] }

// SideToMove returns the color to move.
func (b *Board) SideToMove() chess.Color { return b.sideToMove }

// CastlingRights returns the currently available castling rights.
func (b *Board) CastlingRights() chess.CastlingRights { return b.castlingRights }

// EnPassantSquare returns the en passant target square, or SqNone.
func (b *Board) EnPassantSquare() chess.Square { return b.enPassantSquare }

// HalfmoveClock returns the number of halfmoves since the last pawn move or
// capture (the fifty-move counter, in halfmoves).
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the FEN fullmove counter.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Threats returns the squares attacked by the side NOT to move.
func (b *Board) Threats() chess.Bitboard { return b.threats }

// Hash returns the full Zobrist hash of the board.
func (b *Board) Hash() uint64 { return b.hash }

// NonPawnHash returns the incremental hash of color c's non-pawn, non-king
// material.
func (b *Board) NonPawnHash(c chess.Color) uint64 { return b.nonPawnHash[c] }

// KingSquare returns the square of color c's king.
func (b *Board) KingSquare(c chess.Color) chess.Square { return b.pieces[c][chess.King].Lsb() }

// IsInCheck reports whether the side to move is in check.
func (b *Board) IsInCheck() bool {
	return b.threats.Has(b.KingSquare(b.sideToMove))
}

// PawnKey derives the position's pawn-only Zobrist key on demand (used to
// index the pawn correction-history table).
func (b *Board) PawnKey() uint64 {
	var key uint64
	for c := chess.White; c < chess.ColorLength; c++ {
		bb := b.pieces[c][chess.Pawn]
		for bb != 0 {
			sq := bb.PopLsb()
			key ^= chess.PieceSquareKey(chess.MakePiece(c, chess.Pawn), sq)
		}
	}
	return key
}

// MaterialKey derives an on-demand key summarizing the material configuration
// (piece type and count per side, ignoring square), used to index the
// material correction-history table.
func (b *Board) MaterialKey() uint64 {
	var key uint64
	for c := chess.White; c < chess.ColorLength; c++ {
		for pt := chess.Pawn; pt < chess.PtLength; pt++ {
			n := b.pieces[c][pt].PopCount()
			key = key*1000003 + uint64(n)*31 + uint64(pt)<<8 + uint64(c)<<16
		}
	}
	return key
}

func (b *Board) placePiece(p chess.Piece, sq chess.Square) {
	b.mailbox[sq] = p
	c, pt := p.ColorOf(), p.TypeOf()
	b.pieces[c][pt].PushSquare(sq)
	b.colorBb[c].PushSquare(sq)
	key := chess.PieceSquareKey(p, sq)
	b.hash ^= key
	if pt != chess.Pawn && pt != chess.King {
		b.nonPawnHash[c] ^= key
	}
}

func (b *Board) removePiece(p chess.Piece, sq chess.Square) {
	b.mailbox[sq] = chess.PieceNone
	c, pt := p.ColorOf(), p.TypeOf()
	b.pieces[c][pt].PopSquare(sq)
	b.colorBb[c].PopSquare(sq)
	key := chess.PieceSquareKey(p, sq)
	b.hash ^= key
	if pt != chess.Pawn && pt != chess.King {
		b.nonPawnHash[c] ^= key
	}
}

// computeThreats recomputes, from scratch, the set of squares attacked by
// the side not to move. Used after every push to fill Board.threats, and
// exposed through ComputeThreats for the test that checks the stored field
// against a fresh recomputation.
func computeThreats(b *Board) chess.Bitboard {
	them := b.sideToMove.Flip()
	occ := b.Occupied()
	var bb chess.Bitboard

	pawns := b.pieces[them][chess.Pawn]
	for pawns != 0 {
		sq := pawns.PopLsb()
		bb |= chess.PawnAttacks(them, sq)
	}
	for _, pt := range [4]chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen} {
		pieces := b.pieces[them][pt]
		for pieces != 0 {
			sq := pieces.PopLsb()
			bb |= chess.AttacksBb(pt, sq, occ)
		}
	}
	bb |= chess.PseudoAttacks(chess.King, b.KingSquare(them))
	return bb
}

// ComputeThreats exposes computeThreats for tests that want to verify the
// stored Board.threats field against a full recomputation.
func ComputeThreats(b *Board) chess.Bitboard { return computeThreats(b) }

// moveRecord is the per-ply bookkeeping Position keeps alongside each Board,
// used by undo (trivial truncation, so mostly unused today), NNUE accumulator
// updates and search move-ordering (counter-move/continuation history index
// by the previous move).
type moveRecord struct {
	move          chess.Move
	movedPiece    chess.Piece
	capturedPiece chess.Piece
}

// Position is a stack of Boards plus the parallel stack of moves that
// produced each one, and the CastlingConfiguration (rook starting squares)
// needed to support Chess960/DFRC.
type Position struct {
	boards []Board
	moves  []moveRecord
	config chess.CastlingConfiguration
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := NewPositionFen(StartFen)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPositionFen parses fen (the standard six space-separated fields) into a
// new Position. Castling rights given as file letters (A-H/a-h, as Chess960
// FENs do) are recorded into a non-standard CastlingConfiguration; KQkq
// letters use the standard configuration.
func NewPositionFen(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("position: malformed fen %q: need at least 4 fields", fen)
	}

	var b Board
	b.enPassantSquare = chess.SqNone

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("position: malformed fen %q: need 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		r := chess.Rank(7 - i)
		f := chess.FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				f += chess.File(ch - '0')
				continue
			}
			if f > chess.FileH {
				return nil, fmt.Errorf("position: malformed fen %q: rank overflow", fen)
			}
			p := chess.PieceFromChar(string(ch))
			if p == chess.PieceNone {
				return nil, fmt.Errorf("position: malformed fen %q: bad piece char %q", fen, ch)
			}
			sq := chess.SquareOf(f, r)
			b.placePiece(p, sq)
			f++
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = chess.White
	case "b":
		b.sideToMove = chess.Black
	default:
		return nil, fmt.Errorf("position: malformed fen %q: bad side to move %q", fen, fields[1])
	}

	config, rights, err := parseCastling(&b, fields[2])
	if err != nil {
		return nil, err
	}
	b.castlingRights = rights

	if fields[3] != "-" {
		sq := chess.MakeSquare(fields[3])
		if !sq.IsValid() {
			return nil, fmt.Errorf("position: malformed fen %q: bad ep square %q", fen, fields[3])
		}
		b.enPassantSquare = sq
	}

	b.halfmoveClock = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.halfmoveClock = n
		}
	}
	b.fullmoveNumber = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			b.fullmoveNumber = n
		}
	}

	b.hash ^= chess.CastlingKey(b.castlingRights)
	if b.sideToMove == chess.Black {
		b.hash ^= chess.SideToMoveKey()
	}
	if b.enPassantSquare != chess.SqNone {
		b.hash ^= chess.EnPassantKey(b.enPassantSquare.FileOf())
	}
	b.threats = computeThreats(&b)

	p := &Position{
		boards: make([]Board, 0, MaxHistory),
		moves:  make([]moveRecord, 0, MaxHistory),
		config: config,
	}
	p.boards = append(p.boards, b)
	return p, nil
}

// parseCastling interprets the FEN castling field, which is either the
// standard "KQkq"-style letters or, for Chess960, the files of the rooks
// ("HAha", etc). It derives the CastlingConfiguration from the actual piece
// placement on b so it works for any starting back rank.
func parseCastling(b *Board, field string) (chess.CastlingConfiguration, chess.CastlingRights, error) {
	cfg := chess.CastlingConfiguration{Chess960: false}
	var rights chess.CastlingRights

	kingSq := [chess.ColorLength]chess.Square{b.KingSquare(chess.White), b.KingSquare(chess.Black)}
	cfg.KingFrom = kingSq

	// Default rook-from squares assume the standard back rank; Chess960
	// file letters override them below.
	cfg.RookFrom[chess.White][chess.CastleSideKing] = chess.SqH1
	cfg.RookFrom[chess.White][chess.CastleSideQueen] = chess.SqA1
	cfg.RookFrom[chess.Black][chess.CastleSideKing] = chess.SqH8
	cfg.RookFrom[chess.Black][chess.CastleSideQueen] = chess.SqA8

	if field == "-" {
		return cfg, rights, nil
	}

	for _, ch := range field {
		switch ch {
		case 'K':
			rights.Add(chess.CastlingWhiteOO)
		case 'Q':
			rights.Add(chess.CastlingWhiteOOO)
		case 'k':
			rights.Add(chess.CastlingBlackOO)
		case 'q':
			rights.Add(chess.CastlingBlackOOO)
		default:
			cfg.Chess960 = true
			c := chess.White
			lower := ch
			if ch >= 'a' && ch <= 'h' {
				c = chess.Black
			} else if ch < 'A' || ch > 'H' {
				return cfg, rights, fmt.Errorf("position: bad castling field %q", field)
			}
			if c == chess.White {
				lower = ch + ('a' - 'A')
			}
			file := chess.File(lower - 'a')
			rookSq := chess.SquareOf(file, kingSq[c].RankOf())
			if file > kingSq[c].FileOf() {
				cfg.RookFrom[c][chess.CastleSideKing] = rookSq
				rights.Add(sideRight(c, chess.CastleSideKing))
			} else {
				cfg.RookFrom[c][chess.CastleSideQueen] = rookSq
				rights.Add(sideRight(c, chess.CastleSideQueen))
			}
		}
	}
	return cfg, rights, nil
}

func sideRight(c chess.Color, side chess.CastleSide) chess.CastlingRights {
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

// Current returns the Board at the top of the stack (the current position).
func (p *Position) Current() *Board { return &p.boards[len(p.boards)-1] }

// Ply returns the number of halfmoves played since the position was created.
func (p *Position) Ply() int { return len(p.boards) - 1 }

// Config returns the CastlingConfiguration (rook starting squares), needed
// by move generation to support Chess960/DFRC.
func (p *Position) Config() chess.CastlingConfiguration { return p.config }

// SetChess960 forces the castling configuration's 960 flag, used when the
// UCI_Chess960 option is on even for a standard-looking back rank (FRC game
// #518 is the standard layout).
func (p *Position) SetChess960(on bool) { p.config.Chess960 = on }

// LastMove returns the move that produced the current position, or
// MoveNone at the root.
func (p *Position) LastMove() chess.Move {
	if len(p.moves) == 0 {
		return chess.MoveNone
	}
	return p.moves[len(p.moves)-1].move
}

// MovedPiece returns the piece that made the last move (before promotion).
func (p *Position) MovedPiece() chess.Piece {
	if len(p.moves) == 0 {
		return chess.PieceNone
	}
	return p.moves[len(p.moves)-1].movedPiece
}

// CapturedPiece returns the piece captured by the last move, or PieceNone.
func (p *Position) CapturedPiece() chess.Piece {
	if len(p.moves) == 0 {
		return chess.PieceNone
	}
	return p.moves[len(p.moves)-1].capturedPiece
}

// PrevMoveAt returns the move played `back` plies ago (1 = last move),
// or MoveNone if the stack isn't that deep. Used by continuation history.
func (p *Position) PrevMoveAt(back int) chess.Move {
	idx := len(p.moves) - back
	if idx < 0 {
		return chess.MoveNone
	}
	return p.moves[idx].move
}

// PrevPieceAt returns the piece that made the move `back` plies ago.
func (p *Position) PrevPieceAt(back int) chess.Piece {
	idx := len(p.moves) - back
	if idx < 0 {
		return chess.PieceNone
	}
	return p.moves[idx].movedPiece
}

// Push applies move m to the current board and appends the resulting Board
// to the stack. Move application is case-analyzed on (movedPiece,
// capturedPiece, flag); castling is always
// encoded king-takes-rook so 960 rook squares never need special-casing.
func (p *Position) Push(m chess.Move) {
	cur := p.Current()
	nb := *cur // shallow copy: arrays copy by value

	us := cur.sideToMove
	them := us.Flip()
	from, to, flag := m.From(), m.To(), m.Flag()
	movedPiece := cur.mailbox[from]
	capturedPiece := chess.PieceNone

	nb.halfmoveClock++
	if us == chess.Black {
		nb.fullmoveNumber++
	}
	prevEp := cur.enPassantSquare
	nb.enPassantSquare = chess.SqNone

	switch {
	case flag == chess.FlagCastleKing || flag == chess.FlagCastleQueen:
		side := chess.CastleSideKing
		if flag == chess.FlagCastleQueen {
			side = chess.CastleSideQueen
		}
		kingFrom, rookFrom := from, to
		rank := kingFrom.RankOf()
		var kingDest, rookDest chess.Square
		if side == chess.CastleSideKing {
			kingDest, rookDest = chess.SquareOf(chess.FileG, rank), chess.SquareOf(chess.FileF, rank)
		} else {
			kingDest, rookDest = chess.SquareOf(chess.FileC, rank), chess.SquareOf(chess.FileD, rank)
		}
		rookPiece := cur.mailbox[rookFrom]
		nb.removePiece(movedPiece, kingFrom)
		nb.removePiece(rookPiece, rookFrom)
		nb.placePiece(movedPiece, kingDest)
		nb.placePiece(rookPiece, rookDest)

	case flag == chess.FlagEnPassant:
		capSq := chess.SquareOf(to.FileOf(), from.RankOf())
		capturedPiece = cur.mailbox[capSq]
		nb.removePiece(capturedPiece, capSq)
		nb.removePiece(movedPiece, from)
		nb.placePiece(movedPiece, to)
		nb.halfmoveClock = 0

	case m.IsPromotion():
		if m.IsCapture() {
			capturedPiece = cur.mailbox[to]
			nb.removePiece(capturedPiece, to)
		}
		nb.removePiece(movedPiece, from)
		nb.placePiece(chess.MakePiece(us, m.PromotionType()), to)
		nb.halfmoveClock = 0

	default:
		if m.IsCapture() {
			capturedPiece = cur.mailbox[to]
			nb.removePiece(capturedPiece, to)
		}
		nb.removePiece(movedPiece, from)
		nb.placePiece(movedPiece, to)
		if movedPiece.TypeOf() == chess.Pawn || capturedPiece != chess.PieceNone {
			nb.halfmoveClock = 0
		}
		if flag == chess.FlagDoublePawnPush {
			midRank := chess.Rank((int(from.RankOf()) + int(to.RankOf())) / 2)
			epSq := chess.SquareOf(to.FileOf(), midRank)
			if enemyPawnAdjacent(&nb, them, to) {
				nb.enPassantSquare = epSq
			}
		}
	}

	updateCastlingRights(&nb, p.config, us, from, to, movedPiece, capturedPiece)

	nb.hash ^= chess.CastlingKey(cur.castlingRights)
	nb.hash ^= chess.CastlingKey(nb.castlingRights)
	if prevEp != chess.SqNone {
		nb.hash ^= chess.EnPassantKey(prevEp.FileOf())
	}
	if nb.enPassantSquare != chess.SqNone {
		nb.hash ^= chess.EnPassantKey(nb.enPassantSquare.FileOf())
	}
	nb.hash ^= chess.SideToMoveKey()
	nb.sideToMove = them
	nb.threats = computeThreats(&nb)

	p.boards = append(p.boards, nb)
	p.moves = append(p.moves, moveRecord{move: m, movedPiece: movedPiece, capturedPiece: capturedPiece})
}

// PushNull applies a null move: side to move flips, en passant is cleared,
// nothing else changes. Used by null-move pruning.
func (p *Position) PushNull() {
	cur := p.Current()
	nb := *cur
	prevEp := cur.enPassantSquare
	nb.enPassantSquare = chess.SqNone
	nb.halfmoveClock++
	if cur.sideToMove == chess.Black {
		nb.fullmoveNumber++
	}
	if prevEp != chess.SqNone {
		nb.hash ^= chess.EnPassantKey(prevEp.FileOf())
	}
	nb.hash ^= chess.SideToMoveKey()
	nb.sideToMove = cur.sideToMove.Flip()
	nb.threats = computeThreats(&nb)
	p.boards = append(p.boards, nb)
	p.moves = append(p.moves, moveRecord{move: chess.Move(0xFFFF), movedPiece: chess.PieceNone, capturedPiece: chess.PieceNone})
}

// Pop truncates the stack, discarding the most recent ply. Because every
// Board is a complete snapshot, no inverse computation is needed.
func (p *Position) Pop() {
	if assert.DEBUG {
		assert.Assert(len(p.boards) > 1, "position: Pop() called at the root")
	}
	p.boards = p.boards[:len(p.boards)-1]
	p.moves = p.moves[:len(p.moves)-1]
}

func enemyPawnAdjacent(b *Board, them chess.Color, pushDest chess.Square) bool {
	enemyPawns := b.pieces[them][chess.Pawn]
	if pushDest.FileOf() > chess.FileA {
		if enemyPawns.Has(pushDest.To(chess.West)) {
			return true
		}
	}
	if pushDest.FileOf() < chess.FileH {
		if enemyPawns.Has(pushDest.To(chess.East)) {
			return true
		}
	}
	return false
}

func updateCastlingRights(nb *Board, cfg chess.CastlingConfiguration, us chess.Color, from, to chess.Square, movedPiece, capturedPiece chess.Piece) {
	if movedPiece.TypeOf() == chess.King {
		nb.castlingRights.Remove(sideRight(us, chess.CastleSideKing) | sideRight(us, chess.CastleSideQueen))
	} else if movedPiece.TypeOf() == chess.Rook {
		if from == cfg.RookFrom[us][chess.CastleSideKing] {
			nb.castlingRights.Remove(sideRight(us, chess.CastleSideKing))
		} else if from == cfg.RookFrom[us][chess.CastleSideQueen] {
			nb.castlingRights.Remove(sideRight(us, chess.CastleSideQueen))
		}
	}
	if capturedPiece.TypeOf() == chess.Rook {
		them := us.Flip()
		if to == cfg.RookFrom[them][chess.CastleSideKing] {
			nb.castlingRights.Remove(sideRight(them, chess.CastleSideKing))
		} else if to == cfg.RookFrom[them][chess.CastleSideQueen] {
			nb.castlingRights.Remove(sideRight(them, chess.CastleSideQueen))
		}
	}
}

// Fen renders the current position as a standard 6-field FEN string.
func (p *Position) Fen() string {
	b := p.Current()
	var sb strings.Builder
	for r := chess.Rank8; ; r-- {
		empty := 0
		for f := chess.FileA; f <= chess.FileH; f++ {
			sq := chess.SquareOf(f, r)
			pc := b.mailbox[sq]
			if pc == chess.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r == chess.Rank1 {
			break
		}
		sb.WriteString("/")
	}
	sb.WriteString(" ")
	sb.WriteString(b.sideToMove.String())
	sb.WriteString(" ")
	sb.WriteString(p.castlingFen())
	sb.WriteString(" ")
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

func (p *Position) castlingFen() string {
	b := p.Current()
	if !p.config.Chess960 {
		return b.castlingRights.String()
	}
	var sb strings.Builder
	add := func(c chess.Color, side chess.CastleSide, right chess.CastlingRights) {
		if !b.castlingRights.Has(right) {
			return
		}
		letter := byte('A' + p.config.RookFrom[c][side].FileOf())
		if c == chess.Black {
			letter += 'a' - 'A'
		}
		sb.WriteByte(letter)
	}
	add(chess.White, chess.CastleSideKing, chess.CastlingWhiteOO)
	add(chess.White, chess.CastleSideQueen, chess.CastlingWhiteOOO)
	add(chess.Black, chess.CastleSideKing, chess.CastlingBlackOO)
	add(chess.Black, chess.CastleSideQueen, chess.CastlingBlackOOO)
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// IsFiftyMoveRule reports whether the fifty-move (100 halfmove) rule draw
// applies at the current position.
func (p *Position) IsFiftyMoveRule() bool { return p.Current().halfmoveClock >= 100 }

// IsRepetition reports whether the current position (by full Zobrist hash)
// has occurred at least twice before since the last irreversible move
// (pawn move, capture, or castling-rights change), i.e. this occurrence
// would be the third: a threefold repetition draw.
func (p *Position) IsRepetition() bool {
	cur := p.Current()
	limit := len(p.boards) - 1 - cur.halfmoveClock
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := len(p.boards) - 3; i >= limit; i -= 2 {
		if p.boards[i].hash == cur.hash {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsInsufficientMaterial reports K-vs-K, K+minor-vs-K, or same-colored-bishop
// K+B-vs-K+B endings, the textbook draws.
func (p *Position) IsInsufficientMaterial() bool {
	b := p.Current()
	for c := chess.White; c < chess.ColorLength; c++ {
		if b.pieces[c][chess.Pawn] != 0 || b.pieces[c][chess.Rook] != 0 || b.pieces[c][chess.Queen] != 0 {
			return false
		}
	}
	wMinors := b.pieces[chess.White][chess.Knight].PopCount() + b.pieces[chess.White][chess.Bishop].PopCount()
	bMinors := b.pieces[chess.Black][chess.Knight].PopCount() + b.pieces[chess.Black][chess.Bishop].PopCount()
	if wMinors == 0 && bMinors == 0 {
		return true
	}
	if wMinors+bMinors == 1 {
		return true
	}
	if wMinors == 1 && bMinors == 1 &&
		b.pieces[chess.White][chess.Bishop].PopCount() == 1 && b.pieces[chess.Black][chess.Bishop].PopCount() == 1 {
		wBishopSq := b.pieces[chess.White][chess.Bishop].Lsb()
		bBishopSq := b.pieces[chess.Black][chess.Bishop].Lsb()
		wDark := chess.SquareColorBb(chess.Black).Has(wBishopSq)
		bDark := chess.SquareColorBb(chess.Black).Has(bBishopSq)
		return wDark == bDark
	}
	return false
}

// IsDraw reports whether any of the automatic draw conditions (fifty-move,
// threefold repetition, insufficient material) apply.
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveRule() || p.IsRepetition() || p.IsInsufficientMaterial()
}

// String renders an ASCII board diagram followed by the FEN, for debug logs.
func (p *Position) String() string {
	b := p.Current()
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := chess.Rank8; ; r-- {
		for f := chess.FileA; f <= chess.FileH; f++ {
			pc := b.mailbox[chess.SquareOf(f, r)]
			if pc == chess.PieceNone {
				sb.WriteString("|   ")
			} else {
				sb.WriteString(fmt.Sprintf("| %s ", pc.String()))
			}
		}
		sb.WriteString(fmt.Sprintf("|\n+---+---+---+---+---+---+---+---+\n"))
		if r == chess.Rank1 {
			break
		}
	}
	sb.WriteString(p.Fen())
	return sb.String()
}
