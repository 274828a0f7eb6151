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

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/chess"
)

const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestNewPositionStartFen(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, StartFen, p.Fen())
	assert.Equal(t, chess.White, p.Current().SideToMove())
	assert.Equal(t, chess.SqNone, p.Current().EnPassantSquare())
	assert.Equal(t, chess.CastlingAny, p.Current().CastlingRights())
	assert.False(t, p.Current().IsInCheck())
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		kiwipeteFen,
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, p.Fen())
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	p := NewPosition()
	startFen := p.Fen()
	startHash := p.Current().Hash()

	m := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	p.Push(m)
	assert.NotEqual(t, startFen, p.Fen())
	assert.Equal(t, chess.SqNone, p.Current().EnPassantSquare()) // no black pawn on d4/f4
	assert.Equal(t, chess.Black, p.Current().SideToMove())

	p.Pop()
	assert.Equal(t, startFen, p.Fen())
	assert.Equal(t, startHash, p.Current().Hash())
}

func TestPushRecomputesThreatsFromScratch(t *testing.T) {
	p, err := NewPositionFen(kiwipeteFen)
	require.NoError(t, err)
	for _, uci := range []string{"e1g1", "e8g8", "f3h3"} {
		m := findMove(t, p, uci)
		p.Push(m)
		assert.Equal(t, ComputeThreats(p.Current()), p.Current().Threats(), "threats out of sync after %s", uci)
	}
}

func TestCastlingKingTakesRookStandard(t *testing.T) {
	p, err := NewPositionFen(kiwipeteFen)
	require.NoError(t, err)
	m := chess.CreateMove(chess.SqE1, chess.SqH1, chess.FlagCastleKing)
	p.Push(m)
	b := p.Current()
	assert.Equal(t, chess.MakePiece(chess.White, chess.King), b.PieceOn(chess.SqG1))
	assert.Equal(t, chess.MakePiece(chess.White, chess.Rook), b.PieceOn(chess.SqF1))
	assert.Equal(t, chess.PieceNone, b.PieceOn(chess.SqE1))
	assert.Equal(t, chess.PieceNone, b.PieceOn(chess.SqH1))
	assert.False(t, b.CastlingRights().Has(chess.CastlingWhiteOO))
	assert.False(t, b.CastlingRights().Has(chess.CastlingWhiteOOO))
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	// Black rook on a8 captured by the white rook from a1: black loses
	// queenside rights.
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K1NR w KQkq - 0 1")
	require.NoError(t, err)
	rookTakesRook := chess.CreateMove(chess.SqA1, chess.SqA8, chess.FlagCapture)
	p.Push(rookTakesRook)
	assert.False(t, p.Current().CastlingRights().Has(chess.CastlingBlackOOO))
}

func TestEnPassantCapture(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	ep := chess.CreateMove(chess.SqE5, chess.SqD6, chess.FlagEnPassant)
	p.Push(ep)
	b := p.Current()
	assert.Equal(t, chess.MakePiece(chess.White, chess.Pawn), b.PieceOn(chess.SqD6))
	assert.Equal(t, chess.PieceNone, b.PieceOn(chess.SqD5))
	assert.Equal(t, chess.PieceNone, b.PieceOn(chess.SqE5))
	assert.Equal(t, 0, b.HalfmoveClock())
}

func TestEnPassantSquareOnlySetWhenCapturable(t *testing.T) {
	// No black pawn adjacent to e4, so no ep square should be recorded.
	p, err := NewPositionFen("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	push := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	p.Push(push)
	assert.Equal(t, chess.SqNone, p.Current().EnPassantSquare())
}

func TestPromotion(t *testing.T) {
	p, err := NewPositionFen("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	require.NoError(t, err)
	promo := chess.CreatePromotion(chess.SqA7, chess.SqA8, chess.Queen, false)
	p.Push(promo)
	assert.Equal(t, chess.MakePiece(chess.White, chess.Queen), p.Current().PieceOn(chess.SqA8))
	assert.Equal(t, 0, p.Current().HalfmoveClock())
}

func TestHalfmoveClockResetAndIncrement(t *testing.T) {
	p := NewPosition()
	p.Push(chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet))
	assert.Equal(t, 1, p.Current().HalfmoveClock())
	p.Push(chess.CreateMove(chess.SqG8, chess.SqF6, chess.FlagQuiet))
	assert.Equal(t, 2, p.Current().HalfmoveClock())
	p.Push(chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush))
	assert.Equal(t, 0, p.Current().HalfmoveClock())
}

func TestZobristHashMatchesFromScratchFen(t *testing.T) {
	p := NewPosition()
	p.Push(chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush))
	p.Push(chess.CreateMove(chess.SqE7, chess.SqE5, chess.FlagDoublePawnPush))

	fromScratch, err := NewPositionFen(p.Fen())
	require.NoError(t, err)
	assert.Equal(t, fromScratch.Current().Hash(), p.Current().Hash())
}

func TestThreefoldRepetition(t *testing.T) {
	p := NewPosition()
	knightDance := []chess.Move{
		chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet),
		chess.CreateMove(chess.SqG8, chess.SqF6, chess.FlagQuiet),
		chess.CreateMove(chess.SqF3, chess.SqG1, chess.FlagQuiet),
		chess.CreateMove(chess.SqF6, chess.SqG8, chess.FlagQuiet),
	}
	for i := 0; i < 1; i++ {
		for _, m := range knightDance {
			p.Push(m)
		}
	}
	assert.False(t, p.IsRepetition())
	for _, m := range knightDance {
		p.Push(m)
	}
	assert.True(t, p.IsRepetition())
}

func TestInsufficientMaterial(t *testing.T) {
	kvk, err := NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, kvk.IsInsufficientMaterial())

	kbvk, err := NewPositionFen("4k3/8/8/8/8/8/3B4/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, kbvk.IsInsufficientMaterial())

	kvkp, err := NewPositionFen("4k3/8/8/8/8/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, kvkp.IsInsufficientMaterial())
}

func TestChess960CastlingConfigFromFen(t *testing.T) {
	p, err := NewPositionFen("nrkbqrbn/pppppppp/8/8/8/8/PPPPPPPP/NRKBQRBN w FBfb - 0 1")
	require.NoError(t, err)
	cfg := p.Config()
	assert.True(t, cfg.Chess960)
	assert.Equal(t, chess.SqB1, cfg.RookFrom[chess.White][chess.CastleSideQueen])
	assert.Equal(t, chess.SqF1, cfg.RookFrom[chess.White][chess.CastleSideKing])
}

func findMove(t *testing.T, p *Position, uci string) chess.Move {
	t.Helper()
	from := chess.MakeSquare(uci[0:2])
	to := chess.MakeSquare(uci[2:4])
	cur := p.Current()
	flag := chess.FlagQuiet
	moved := cur.PieceOn(from)
	captured := cur.PieceOn(to)
	if moved.TypeOf() == chess.King && chess.FileDistance(from.FileOf(), to.FileOf()) == 2 {
		if to.FileOf() > from.FileOf() {
			return chess.CreateMove(from, p.Config().RookFrom[cur.SideToMove()][chess.CastleSideKing], chess.FlagCastleKing)
		}
		return chess.CreateMove(from, p.Config().RookFrom[cur.SideToMove()][chess.CastleSideQueen], chess.FlagCastleQueen)
	}
	if captured != chess.PieceNone {
		flag = chess.FlagCapture
	}
	return chess.CreateMove(from, to, flag)
}
