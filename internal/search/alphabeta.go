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

package search

import (
	"math/rand"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/movepicker"
	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/see"
)

// aspirationSearch runs searchRoot at depth, starting with a narrow window
// around prevValue and widening it along aspirationSteps whenever the
// result falls outside, falling back to a full-width search once the steps
// run out. Shallow iterations skip the dance entirely: there is no reliable
// previous score to center a window on yet.
func (s *Search) aspirationSearch(depth int, prevValue chess.Value) chess.Value {
	if depth <= 4 {
		return s.searchRoot(depth, -chess.ValueInf, chess.ValueInf)
	}

	step := 0
	alpha := prevValue - aspirationSteps[step]
	beta := prevValue + aspirationSteps[step]

	for {
		value := s.searchRoot(depth, alpha, beta)
		if s.stopped() {
			return value
		}
		if value <= alpha {
			s.stats.AspirationResearches++
			step++
			if step >= len(aspirationSteps) {
				alpha = -chess.ValueInf
			} else {
				alpha = prevValue - aspirationSteps[step]
			}
			continue
		}
		if value >= beta {
			s.stats.AspirationResearches++
			step++
			if step >= len(aspirationSteps) {
				beta = chess.ValueInf
			} else {
				beta = prevValue + aspirationSteps[step]
			}
			continue
		}
		return value
	}
}

// searchRoot is the ply-0 move loop: essentially negamax's PV branch with
// searchmoves filtering and currmove reporting bolted on, and a transposition
// store at the end so later iterations' move ordering benefits from this one.
func (s *Search) searchRoot(depth int, alpha, beta chess.Value) chess.Value {
	pos := s.pos
	origAlpha := alpha
	ttHash := pos.Current().Hash()

	ttMove := chess.MoveNone
	if entry, ok := s.tt.Probe(ttHash, 0); ok {
		ttMove = entry.Move()
	}

	restrict := len(s.limits.SearchMoves) > 0
	mp := movepicker.New(pos, s.hist, ttMove, 0, movegen.GenAll)

	bestValue := -chess.ValueInf
	bestMove := chess.MoveNone
	moveNumber := 0

	for {
		picked, ok := mp.Next()
		if !ok {
			break
		}
		m := picked.Move
		if restrict && !containsMove(s.limits.SearchMoves, m) {
			continue
		}
		moveNumber++
		s.sink.SendCurrentMove(m, moveNumber)

		pos.Push(m)
		s.eval.Push(pos)

		var value chess.Value
		if moveNumber == 1 {
			value = -s.negamax(depth-1, 1, -beta, -alpha, true, false)
		} else {
			value = -s.negamax(depth-1, 1, -alpha-1, -alpha, false, true)
			if value > alpha && value < beta && !s.stopped() {
				value = -s.negamax(depth-1, 1, -beta, -alpha, true, false)
			}
		}

		pos.Pop()
		s.eval.Pop()

		if s.stopped() && moveNumber > 1 {
			break
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				alpha = value
				s.pv.update(0, m)
				if value >= beta {
					break
				}
			}
		}
	}

	if moveNumber == 0 {
		if pos.Current().IsInCheck() {
			return chess.MatedIn(0)
		}
		return chess.ValueDraw
	}

	var vt chess.ValueType
	switch {
	case bestValue <= origAlpha:
		vt = chess.ValueTypeUpper
	case bestValue >= beta:
		vt = chess.ValueTypeLower
	default:
		vt = chess.ValueTypeExact
	}
	s.tt.Store(ttHash, 0, bestMove, depth, bestValue, vt, bestValue, true)
	return bestValue
}

func containsMove(list []chess.Move, m chess.Move) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

// negamax searches one interior node (ply > 0) to the given remaining depth,
// applying the full pruning, reduction and extension suite before
// and during the move loop. cutNode marks a node negamax expects to fail
// high at (the non-PV branch of a null-window search), which nudges both
// null-move verification depth and LMR's reduction amount.
func (s *Search) negamax(depth, ply int, alpha, beta chess.Value, pvNode, cutNode bool) chess.Value {
	if ply >= MaxPly {
		return s.evaluateStatic(s.pos)
	}
	if pvNode {
		s.pv.length[ply] = 0
	}

	if depth <= 0 {
		return s.qsearch(ply, alpha, beta)
	}

	s.nodes++
	if s.nodes&2047 == 0 && s.tm != nil && s.tm.shouldStopHard() {
		s.stopFlag.Store(true)
	}
	if s.stopped() {
		return 0
	}
	if ply > s.seldepth {
		s.seldepth = ply
	}

	pos := s.pos
	if pos.IsDraw() {
		return s.drawValue(ply)
	}

	// Mate-distance pruning: a mate found closer to the root than this node
	// could possibly deliver or suffer already resolves the window.
	alpha = maxValue(alpha, chess.MatedIn(ply))
	beta = minValue(beta, chess.MateIn(ply+1))
	if alpha >= beta {
		return alpha
	}

	cfg := &config.Settings.Search

	ttHash := pos.Current().Hash()
	ttEntry, ttHit := s.tt.Probe(ttHash, ply)
	ttMove := chess.MoveNone
	ttPv := pvNode
	if ttHit {
		// A hash collision (or a stale entry from another position sharing
		// the cluster) can hand back a move that doesn't exist here; validate
		// it cheaply instead of trusting the table.
		ttMove = ttEntry.Move()
		if ttMove != chess.MoveNone && !movegen.IsPseudoLegal(pos, ttMove) {
			ttMove = chess.MoveNone
		}
		if ttEntry.TtPv() {
			ttPv = true
		}
		s.stats.TTHits++
		if cfg.UseTTMove && !pvNode && ttEntry.Depth() >= depth {
			v := ttEntry.Value(ply)
			switch ttEntry.ValueType() {
			case chess.ValueTypeExact:
				s.stats.TTCuts++
				return v
			case chess.ValueTypeLower:
				if v >= beta {
					s.stats.TTCuts++
					return v
				}
			case chess.ValueTypeUpper:
				if v <= alpha {
					s.stats.TTCuts++
					return v
				}
			}
		}
	} else {
		s.stats.TTMisses++
	}

	inCheck := pos.Current().IsInCheck()
	var staticEval chess.Value
	switch {
	case inCheck:
		staticEval = chess.ValueNone
	case ttHit && ttEntry.Eval() != chess.ValueNone:
		staticEval = ttEntry.Eval()
	default:
		staticEval = s.evaluateStatic(pos)
	}
	s.staticEvalAtPly[ply] = staticEval

	improving := false
	if !inCheck && ply >= 2 && s.staticEvalAtPly[ply-2] != chess.ValueNone {
		improving = staticEval > s.staticEvalAtPly[ply-2]
	}

	if !pvNode && !inCheck && staticEval != chess.ValueNone && !beta.IsMateScore() {
		if cfg.UseRFP && depth <= cfg.RfpMaxDepth && staticEval-RfpMargin(depth, ttPv) >= beta {
			s.stats.RfpPrunings++
			return staticEval
		}
		if cfg.UseRazoring && depth <= cfg.RazorMaxDepth && staticEval+RazorMargin(depth) <= alpha {
			v := s.qsearch(ply, alpha, alpha+1)
			if v <= alpha {
				s.stats.RazorPrunings++
				return v
			}
		}
		if cfg.UseNullMove && depth >= cfg.NmpMinDepth && staticEval >= beta && hasNonPawnMaterial(pos) {
			r := NmpReduction(depth, staticEval, beta)
			pos.PushNull()
			s.eval.PushNull()
			v := -s.negamax(depth-1-r, ply+1, -beta, -beta+1, false, !cutNode)
			pos.Pop()
			s.eval.Pop()
			if s.stopped() {
				return 0
			}
			if v >= beta {
				s.stats.NullMoveCuts++
				if v >= chess.MateThreshold {
					v = beta
				}
				return v
			}
		}
	}

	// Internal iterative reduction: no TT move to trust at a node that
	// expects to do real work, so shave a ply off before searching it.
	if cfg.UseIIR && depth >= cfg.IIRMinDepth && ttMove == chess.MoveNone && (pvNode || cutNode) {
		depth -= cfg.IIRReduction
		s.stats.IIRReductions++
	}

	singularCandidate := chess.MoveNone
	if cfg.UseSingularExt && ttHit && ttMove != chess.MoveNone &&
		depth >= cfg.SingularMinDepth &&
		int(ttEntry.Depth()) >= depth-cfg.SingularTTDepthOK &&
		ttEntry.ValueType() != chess.ValueTypeUpper &&
		!ttEntry.Value(ply).IsMateScore() {
		singularCandidate = ttMove
	}

	mp := movepicker.New(pos, s.hist, ttMove, ply, movegen.GenAll)
	origAlpha := alpha
	bestValue := -chess.ValueInf
	bestMove := chess.MoveNone
	moveCount := 0
	doubleExtensions := 0
	var quietsTried, capturesTried moveBuffer

	for {
		picked, ok := mp.Next()
		if !ok {
			break
		}
		m := picked.Move
		moveCount++
		quiet := picked.Quiet

		extension := 0
		if m == singularCandidate {
			margin := chess.Value(2 * depth)
			sBeta := ttEntry.Value(ply) - margin
			sDepth := (depth - 1) / 2
			v := s.negamaxExcluding(sDepth, ply, sBeta-1, sBeta, m, cutNode)
			switch {
			case v < sBeta:
				extension = 1
				s.stats.SingularExtensions++
				if !pvNode && v < sBeta-chess.Value(cfg.DoubleExtMargin) && doubleExtensions < cfg.MaxDoubleExtPerBranch {
					extension = 2
					doubleExtensions++
					s.stats.DoubleExtensions++
				}
			case sBeta >= beta:
				return sBeta
			}
		}

		if !pvNode && ply > 0 && moveCount > 1 && bestValue > -chess.MateThreshold {
			if quiet {
				if cfg.UseLMP && depth <= 8 && moveCount >= LmpMovesSearched(depth) {
					s.stats.LmpPrunings++
					continue
				}
				if cfg.UseFP && depth <= 6 && !inCheck && staticEval != chess.ValueNone &&
					staticEval+FpMargin(depth) <= alpha {
					s.stats.FpPrunings++
					continue
				}
				if cfg.UseHistoryPruning && depth <= 6 {
					piece := pos.Current().PieceOn(m.From())
					if s.hist.QuietScore(pos, m, piece, ply) < cfg.HistoryPruningThreshold {
						s.stats.HistPrunings++
						continue
					}
				}
				if cfg.UseSeePruning && !see.Eval(pos, m, SeeMargin(depth, true)) {
					s.stats.SeePrunings++
					continue
				}
			} else if cfg.UseSeePruning && !see.Eval(pos, m, SeeMargin(depth, false)) {
				s.stats.SeePrunings++
				continue
			}
		}

		pos.Push(m)
		s.tt.Prefetch(pos.Current().Hash())
		s.eval.Push(pos)
		givesCheck := pos.Current().IsInCheck()
		newDepth := depth - 1 + extension

		var value chess.Value
		reduced := false
		if cfg.UseLMR && depth >= cfg.LmrMinDepth && moveCount >= cfg.LmrMinMoveNumber && quiet && !inCheck {
			r := LmrReduction(depth, moveCount)
			if ttPv {
				r--
			}
			if givesCheck {
				r--
			}
			if !improving {
				r++
			}
			if r < 0 {
				r = 0
			}
			rDepth := newDepth - r
			if rDepth < 0 {
				rDepth = 0
			}
			if rDepth < newDepth {
				value = -s.negamax(rDepth, ply+1, -alpha-1, -alpha, false, true)
				s.stats.LmrReductions++
				reduced = true
				if value > alpha {
					s.stats.LmrResearches++
					value = -s.negamax(newDepth, ply+1, -alpha-1, -alpha, false, !cutNode)
				}
			}
		}
		if !reduced {
			if moveCount == 1 {
				value = -s.negamax(newDepth, ply+1, -beta, -alpha, pvNode, false)
			} else {
				value = -s.negamax(newDepth, ply+1, -alpha-1, -alpha, false, !cutNode)
			}
		}
		if pvNode && moveCount > 1 && value > alpha && value < beta {
			value = -s.negamax(newDepth, ply+1, -beta, -alpha, true, false)
		}

		pos.Pop()
		s.eval.Pop()

		if s.stopped() {
			return 0
		}

		if quiet {
			quietsTried.add(m)
		} else {
			capturesTried.add(m)
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				alpha = value
				if pvNode {
					s.pv.update(ply, m)
				}
				if value >= beta {
					break
				}
			}
		}
	}

	if moveCount == 0 {
		if inCheck {
			return chess.MatedIn(ply)
		}
		return chess.ValueDraw
	}

	if bestValue >= beta {
		s.updateOrderingOnCutoff(pos, ply, depth, bestMove, &quietsTried, &capturesTried)
	}

	var vt chess.ValueType
	switch {
	case bestValue <= origAlpha:
		vt = chess.ValueTypeUpper
	case bestValue >= beta:
		vt = chess.ValueTypeLower
	default:
		vt = chess.ValueTypeExact
	}
	s.tt.Store(ttHash, ply, bestMove, depth, bestValue, vt, staticEval, ttPv)

	if !inCheck && staticEval != chess.ValueNone && bestMove != chess.MoveNone &&
		!bestMove.IsCapture() && !bestMove.IsPromotion() {
		s.corr.Update(pos, int(staticEval), int(bestValue), depth)
	}

	return bestValue
}

// negamaxExcluding backs the singular-extension test: a reduced-depth,
// reduced-window search of the node's other moves with ttMove itself taken
// out of consideration, used to ask whether anything else comes close to
// the transposition table's claimed value.
func (s *Search) negamaxExcluding(depth, ply int, alpha, beta chess.Value, excluded chess.Move, cutNode bool) chess.Value {
	pos := s.pos
	mp := movepicker.New(pos, s.hist, chess.MoveNone, ply, movegen.GenAll)
	best := alpha
	for {
		picked, ok := mp.Next()
		if !ok {
			break
		}
		if picked.Move == excluded {
			continue
		}
		pos.Push(picked.Move)
		s.eval.Push(pos)
		v := -s.negamax(depth, ply+1, -beta, -alpha, false, cutNode)
		pos.Pop()
		s.eval.Pop()
		if s.stopped() {
			return alpha
		}
		if v > best {
			best = v
		}
		if best >= beta {
			return best
		}
	}
	return best
}

// qsearch resolves captures (and, while in check, all evasions) until the
// position is quiet, grounding negamax's leaves in a stable static
// evaluation instead of the horizon effect of stopping mid-exchange.
func (s *Search) qsearch(ply int, alpha, beta chess.Value) chess.Value {
	s.nodes++
	if s.nodes&2047 == 0 && s.tm != nil && s.tm.shouldStopHard() {
		s.stopFlag.Store(true)
	}
	if s.stopped() {
		return 0
	}
	if ply > s.seldepth {
		s.seldepth = ply
	}

	pos := s.pos
	if pos.IsDraw() {
		return s.drawValue(ply)
	}
	if ply >= MaxPly {
		return s.evaluateStatic(pos)
	}

	ttHash := pos.Current().Hash()
	if ttEntry, ok := s.tt.Probe(ttHash, ply); ok {
		v := ttEntry.Value(ply)
		switch ttEntry.ValueType() {
		case chess.ValueTypeExact:
			return v
		case chess.ValueTypeLower:
			if v >= beta {
				return v
			}
		case chess.ValueTypeUpper:
			if v <= alpha {
				return v
			}
		}
	}

	inCheck := pos.Current().IsInCheck()
	origAlpha := alpha
	var bestValue chess.Value
	var kind movegen.GenMode
	if inCheck {
		bestValue = -chess.ValueInf
		kind = movegen.GenAll
	} else {
		staticEval := s.evaluateStatic(pos)
		bestValue = staticEval
		if config.Settings.Search.UseQSStandpat {
			if staticEval >= beta {
				s.stats.StandpatCuts++
				return staticEval
			}
			if staticEval > alpha {
				alpha = staticEval
			}
		}
		kind = movegen.GenNoisy
	}

	mp := movepicker.New(pos, s.hist, chess.MoveNone, ply, kind)
	moveCount := 0
	bestMove := chess.MoveNone

	for {
		picked, ok := mp.Next()
		if !ok {
			break
		}
		m := picked.Move
		if !inCheck && config.Settings.Search.UseSEE && m.IsCapture() && !see.Eval(pos, m, 0) {
			continue
		}
		moveCount++

		pos.Push(m)
		s.tt.Prefetch(pos.Current().Hash())
		s.eval.Push(pos)
		value := -s.qsearch(ply+1, -beta, -alpha)
		pos.Pop()
		s.eval.Pop()

		if s.stopped() {
			return 0
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				alpha = value
				if value >= beta {
					break
				}
			}
		}
	}

	if inCheck && moveCount == 0 {
		return chess.MatedIn(ply)
	}

	var vt chess.ValueType
	switch {
	case bestValue <= origAlpha:
		vt = chess.ValueTypeUpper
	case bestValue >= beta:
		vt = chess.ValueTypeLower
	default:
		vt = chess.ValueTypeExact
	}
	s.tt.Store(ttHash, ply, bestMove, 0, bestValue, vt, bestValue, false)
	return bestValue
}

// updateOrderingOnCutoff rewards the move that caused a beta cutoff and
// penalizes the others tried at this node first, following the gravity
// scheme internal/history already implements. pos is back at the node's own
// board (every move tried here has been pushed and popped in lockstep), so
// piece lookups by square are valid for all of them.
func (s *Search) updateOrderingOnCutoff(pos *position.Position, ply, depth int, bestMove chess.Move, quiets, captures *moveBuffer) {
	board := pos.Current()
	bonus := depth * depth
	if bonus > config.Settings.Search.HistoryGravity {
		bonus = config.Settings.Search.HistoryGravity
	}

	if !bestMove.IsCapture() && !bestMove.IsPromotion() {
		s.hist.SetKiller(ply, bestMove)
		if prevMove := pos.LastMove(); prevMove != chess.MoveNone {
			s.hist.SetCounter(prevMove, bestMove)
		}
		piece := board.PieceOn(bestMove.From())
		s.hist.UpdateQuiet(pos, bestMove, piece, bonus, ply)
		for i := 0; i < quiets.len; i++ {
			m := quiets.moves[i]
			if m == bestMove {
				continue
			}
			p := board.PieceOn(m.From())
			s.hist.UpdateQuiet(pos, m, p, -bonus, ply)
		}
	} else {
		attacker := board.PieceOn(bestMove.From())
		victim := captureVictim(board, bestMove)
		s.hist.UpdateCapture(attacker, bestMove.To(), victim, bonus)
	}

	for i := 0; i < captures.len; i++ {
		m := captures.moves[i]
		if m == bestMove {
			continue
		}
		a := board.PieceOn(m.From())
		v := captureVictim(board, m)
		s.hist.UpdateCapture(a, m.To(), v, -bonus)
	}
}

func captureVictim(board *position.Board, m chess.Move) chess.Piece {
	if m.IsEnPassant() {
		return chess.MakePiece(board.SideToMove().Flip(), chess.Pawn)
	}
	return board.PieceOn(m.To())
}

func (s *Search) evaluateStatic(pos *position.Position) chess.Value {
	raw := s.eval.Evaluate(pos)
	return chess.Value(s.corr.Apply(pos, int(raw)))
}

// drawValue returns the score a drawn position is worth. A tiny random
// jitter is applied only one ply below the root (config.UseDrawJitter) so
// the engine breaks ties between an immediate draw and its alternatives
// without destabilizing the transposition table with non-reproducible
// scores deeper in the tree.
func (s *Search) drawValue(ply int) chess.Value {
	if config.Settings.Search.UseDrawJitter && ply == 1 {
		return chess.Value(rand.Intn(3) - 1)
	}
	return chess.ValueDraw
}

func hasNonPawnMaterial(pos *position.Position) bool {
	b := pos.Current()
	us := b.SideToMove()
	return b.PieceBb(us, chess.Knight)|b.PieceBb(us, chess.Bishop)|
		b.PieceBb(us, chess.Rook)|b.PieceBb(us, chess.Queen) != 0
}

func maxValue(a, b chess.Value) chess.Value {
	if a > b {
		return a
	}
	return b
}

func minValue(a, b chess.Value) chess.Value {
	if a < b {
		return a
	}
	return b
}

// moveBuffer records the moves tried at a node so a beta cutoff can apply
// history maluses to the ones that didn't cause it, without allocating.
type moveBuffer struct {
	moves [moveslice.MaxMoves]chess.Move
	len   int
}

func (b *moveBuffer) add(m chess.Move) {
	if b.len < len(b.moves) {
		b.moves[b.len] = m
		b.len++
	}
}
