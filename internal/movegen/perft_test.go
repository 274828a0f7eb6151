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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// /////////////////////////////////////////////////////////////////
// Perft reference values from https://www.chessprogramming.org/Perft_Results
// /////////////////////////////////////////////////////////////////

func TestPerftStartpos(t *testing.T) {
	expected := map[int]uint64{
		1: 20,
		2: 400,
		3: 8_902,
		4: 197_281,
		5: 4_865_609,
		6: 119_060_324,
	}
	for depth, want := range expected {
		perft := NewPerft()
		got := perft.StartPerft("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", depth)
		assert.Equalf(t, want, got, "perft(%d) from startpos", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	expected := map[int]uint64{
		1: 48,
		2: 2_039,
		3: 97_862,
		4: 4_085_603,
		5: 193_690_690,
	}
	for depth, want := range expected {
		perft := NewPerft()
		got := perft.StartPerft(kiwipeteFen, depth)
		assert.Equalf(t, want, got, "perft(%d) from kiwipete", depth)
	}
}

func TestPerftPosition5(t *testing.T) {
	const fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	expected := map[int]uint64{
		1: 44,
		2: 1_486,
		3: 62_379,
		4: 2_103_487,
	}
	for depth, want := range expected {
		perft := NewPerft()
		got := perft.StartPerft(fen, depth)
		assert.Equalf(t, want, got, "perft(%d) from position 5", depth)
	}
}

func TestPerftMirroredPositions(t *testing.T) {
	const white = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	const black = "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1"
	expected := map[int]uint64{
		1: 6,
		2: 264,
		3: 9_467,
		4: 422_333,
	}
	for depth, want := range expected {
		whitePerft := NewPerft()
		blackPerft := NewPerft()
		gotWhite := whitePerft.StartPerft(white, depth)
		gotBlack := blackPerft.StartPerft(black, depth)
		assert.Equalf(t, want, gotWhite, "perft(%d) from mirrored position (white to move)", depth)
		assert.Equalf(t, want, gotBlack, "perft(%d) from mirrored position (black to move)", depth)
	}
}

func TestPerftChess960PositionsAreSelfConsistent(t *testing.T) {
	// Two DFRC start positions exercising castling rights encoded by
	// originating rook file. Depth-2 node count must equal the sum of the
	// depth-2 divide, and depth-1 itself must match the legal move count -
	// this catches generator regressions without depending on a
	// hand-transcribed published node total.
	fens := []string{
		"1rqbkrbn/1ppppp1p/1n6/p1N3p1/8/2P4P/PP1PPPP1/1RQBKRBN w FBfb - 0 9",
		"brnqnbkr/pppppppp/8/8/8/8/PPPPPPPP/BQNRNKRB w GDhb - 0 1",
	}
	for _, fen := range fens {
		rootMoves := Divide(fen, 1)
		var rootCount uint64
		for range rootMoves {
			rootCount++
		}

		perft := NewPerft()
		depth2 := perft.StartPerft(fen, 2)

		divided := Divide(fen, 2)
		var sum uint64
		for _, n := range divided {
			sum += n
		}

		assert.Equalf(t, rootCount, perft.StartPerft(fen, 1), "perft(1) should equal legal move count for %s", fen)
		assert.Equalf(t, sum, depth2, "divide(2) should sum to perft(2) for %s", fen)
	}
}

func TestPerftEnPassantPinIsExcluded(t *testing.T) {
	// White king a5, white pawn b5, black pawn c5 (just played c7c5), black
	// rook h5: the en passant capture b5c6 would remove both pawns from the
	// 5th rank and expose the king to the rook, so it must not appear among
	// the legal moves.
	fen := "4k3/8/8/KPp4r/8/8/8/8 w - c6 0 1"
	divided := Divide(fen, 1)
	if _, ok := divided["b5c6"]; ok {
		t.Fatalf("en passant pin case: b5c6 should have been excluded by IsLegal, got moves %v", divided)
	}
	// The plain forward push stays legal; only the ep capture is pinned away.
	if _, ok := divided["b5b6"]; !ok {
		t.Fatalf("expected quiet push b5b6 to remain legal, got moves %v", divided)
	}
}

func TestPerft960CastlingMoveEmitted(t *testing.T) {
	fen := "brnqnbkr/pppppppp/8/8/8/8/PPPPPPPP/BQNRNKRB w GDhb - 0 1"
	divided := Divide(fen, 1)
	if _, ok := divided["f1g1"]; !ok {
		t.Fatalf("expected 960 kingside castle f1g1 among root moves, got %v", divided)
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	divided := Divide(kiwipeteFen, 3)
	var sum uint64
	for _, n := range divided {
		sum += n
	}
	assert.Equal(t, uint64(97_862), sum)
}
