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

// Move packs a chess move into 16 bits: 6 bits "from", 6 bits "to", 4 bits
// flag. Castling is encoded king-takes-rook: From is the king's origin
// square and To is the castling rook's origin square, so Chess960/DFRC
// castling never needs a special-cased destination square.
//
//	 15 14 13 12 | 11 10  9  8  7  6 | 5  4  3  2  1  0
//	 ------flag--|---------to-------|------from--------
type Move uint16

const (
	MoveNone Move = 0

	fromShift = 0
	toShift   = 6
	flagShift = 12

	squareBits Move = 0x3F
)

// MoveFlag is the 4-bit move-type tag, following the classic
// chessprogramming.org 16-bit move encoding table.
type MoveFlag uint8

const (
	FlagQuiet MoveFlag = iota
	FlagDoublePawnPush
	FlagCastleKing
	FlagCastleQueen
	FlagCapture
	FlagEnPassant
	_ // 0110 unused
	_ // 0111 unused
	FlagPromoKnight
	FlagPromoBishop
	FlagPromoRook
	FlagPromoQueen
	FlagPromoCaptureKnight
	FlagPromoCaptureBishop
	FlagPromoCaptureRook
	FlagPromoCaptureQueen
)

// CreateMove encodes a move with the given from/to squares and flag.
func CreateMove(from, to Square, flag MoveFlag) Move {
	return Move(from)<<fromShift | Move(to)<<toShift | Move(flag)<<flagShift
}

// CreatePromotion encodes a promotion (or promotion-capture) move for the
// given promotion piece type (Knight, Bishop, Rook or Queen).
func CreatePromotion(from, to Square, promo PieceType, capture bool) Move {
	base := FlagPromoKnight
	if capture {
		base = FlagPromoCaptureKnight
	}
	flag := base + MoveFlag(promo-Knight)
	return CreateMove(from, to, flag)
}

// From returns the origin square (king square for castling moves).
func (m Move) From() Square { return Square((m >> fromShift) & squareBits) }

// To returns the destination square (castling rook's origin square for
// castling moves).
func (m Move) To() Square { return Square((m >> toShift) & squareBits) }

// Flag returns the 4-bit move flag.
func (m Move) Flag() MoveFlag { return MoveFlag(m >> flagShift) }

// IsCapture reports whether m captures a piece (plain capture, en passant,
// or promotion-capture).
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || f >= FlagPromoCaptureKnight
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag() >= FlagPromoKnight }

// IsCastle reports whether m is a king-side or queen-side castle.
func (m Move) IsCastle() bool { return m.Flag() == FlagCastleKing || m.Flag() == FlagCastleQueen }

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsDoublePawnPush reports whether m is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool { return m.Flag() == FlagDoublePawnPush }

// PromotionType returns the promoted-to piece type. Only meaningful when
// IsPromotion() is true.
func (m Move) PromotionType() PieceType {
	f := m.Flag()
	if f >= FlagPromoCaptureKnight {
		return Knight + PieceType(f-FlagPromoCaptureKnight)
	}
	return Knight + PieceType(f-FlagPromoKnight)
}

// IsValid reports whether m has valid squares and isn't MoveNone.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From().IsValid() && m.To().IsValid()
}

// String renders m as "e2e4", "e7e8q" for promotions, and castling moves in
// the traditional king-two-squares form (it is UCI(false)).
func (m Move) String() string {
	return m.UCI(false)
}

// UCI renders m in UCI move notation. When chess960 is false, castling moves
// are rendered with the traditional king-moves-two-squares destination
// square rather than the internal king-takes-rook encoding.
func (m Move) UCI(chess960 bool) string {
	if m == MoveNone {
		return "0000"
	}
	from := m.From()
	to := m.To()
	if m.IsCastle() && !chess960 {
		rank := from.RankOf()
		if m.Flag() == FlagCastleKing {
			to = SquareOf(FileG, rank)
		} else {
			to = SquareOf(FileC, rank)
		}
	}
	var sb strings.Builder
	sb.WriteString(from.String())
	sb.WriteString(to.String())
	if m.IsPromotion() {
		sb.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return sb.String()
}
