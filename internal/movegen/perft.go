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
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/position"
)

var out = message.NewPrinter(language.German)

// Perft counts leaf nodes (and a few move-category totals) of the full game
// tree to a fixed depth, the standard move-generator correctness check.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft creates a new empty Perft instance.
func NewPerft() *Perft { return &Perft{} }

// Stop aborts a running perft started in a goroutine.
func (perft *Perft) Stop() { perft.stopFlag = true }

// StartPerft runs perft to depth from fen, printing a result summary.
func (perft *Perft) StartPerft(fen string, depth int) uint64 {
	perft.stopFlag = false
	if depth <= 0 {
		depth = 1
	}
	perft.resetCounter()
	p, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("invalid fen %q: %v\n", fen, err)
		return 0
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)

	start := time.Now()
	result := perft.search(depth, p)
	elapsed := time.Since(start)

	if perft.stopFlag {
		out.Print("Perft stopped\n")
		return 0
	}
	perft.Nodes = result

	out.Printf("Time      : %s\n", elapsed)
	out.Printf("NPS       : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Nodes     : %d\n", perft.Nodes)
	out.Printf("Captures  : %d\n", perft.CaptureCounter)
	out.Printf("EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("Castles   : %d\n", perft.CastleCounter)
	out.Printf("Promotions: %d\n", perft.PromotionCounter)
	return result
}

// StartPerftFromPosition runs perft to depth against an already-built
// position (e.g. one reached via "position ... moves ..."), printing the
// same result summary as StartPerft.
func (perft *Perft) StartPerftFromPosition(p *position.Position, depth int) uint64 {
	perft.stopFlag = false
	if depth <= 0 {
		depth = 1
	}
	perft.resetCounter()

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", p.Fen())

	start := time.Now()
	result := perft.search(depth, p)
	elapsed := time.Since(start)

	if perft.stopFlag {
		out.Print("Perft stopped\n")
		return 0
	}
	perft.Nodes = result

	out.Printf("Time      : %s\n", elapsed)
	out.Printf("NPS       : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Nodes     : %d\n", perft.Nodes)
	out.Printf("Captures  : %d\n", perft.CaptureCounter)
	out.Printf("EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("Castles   : %d\n", perft.CastleCounter)
	out.Printf("Promotions: %d\n", perft.PromotionCounter)
	return result
}

func (perft *Perft) search(depth int, p *position.Position) uint64 {
	if perft.stopFlag {
		return 0
	}
	var ml moveslice.MoveList
	GenerateLegalMoves(p, GenAll, &ml)

	if depth == 1 {
		for i := 0; i < ml.Len(); i++ {
			m := ml.At(i).Move
			if m.IsCapture() {
				perft.CaptureCounter++
				if m.IsEnPassant() {
					perft.EnpassantCounter++
				}
			}
			if m.IsCastle() {
				perft.CastleCounter++
			}
			if m.IsPromotion() {
				perft.PromotionCounter++
			}
		}
		return uint64(ml.Len())
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		p.Push(ml.At(i).Move)
		nodes += perft.search(depth-1, p)
		p.Pop()
	}
	return nodes
}

// Divide returns, for each legal root move (keyed by its UCI string), the
// perft node count of the subtree below it — the standard tool for diffing a buggy move generator
// against a known-good one move by move.
func Divide(fen string, depth int) map[string]uint64 {
	p, err := position.NewPositionFen(fen)
	if err != nil {
		return nil
	}
	var ml moveslice.MoveList
	GenerateLegalMoves(p, GenAll, &ml)
	chess960 := p.Config().Chess960

	result := make(map[string]uint64, ml.Len())
	perft := NewPerft()
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		p.Push(m)
		var nodes uint64
		if depth <= 1 {
			nodes = 1
		} else {
			nodes = perft.search(depth-1, p)
		}
		p.Pop()
		result[m.UCI(chess960)] = nodes
	}
	return result
}

func (perft *Perft) resetCounter() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
}
