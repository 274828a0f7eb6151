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

// Package search drives iterative-deepening alpha-beta search on top of
// internal/position, internal/movepicker and internal/evaluator,
// using internal/transpositiontable and internal/history to order and prune
// the tree, and consulting internal/openingbook before searching at all.
package search

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/evaluator"
	"github.com/corvidchess/corvid/internal/history"
	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/openingbook"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/transpositiontable"
	"github.com/corvidchess/corvid/internal/util"
)

var out = message.NewPrinter(language.German)

// MaxPly bounds how deep any search line (root + extensions + quiescence)
// may run; the pv table, killer table and per-ply static-eval stack are all
// sized off of it.
const MaxPly = history.MaxPly

// Search owns one engine's worth of persistent search state: the
// transposition table and opening book are shared across the engine's
// lifetime, while history/correction reset only on ucinewgame and the
// evaluator is simply Reset onto each new root position.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	tt   *transpositiontable.Table
	eval *evaluator.Evaluator
	hist *history.History
	corr *history.Correction
	book *openingbook.Book

	sink InfoSink

	running   *semaphore.Weighted
	searching *util.Bool
	stopFlag  *util.Bool
	wg        sync.WaitGroup

	resultMu sync.Mutex
	result   Result

	// per-search scratch state, reset at the start of every think().
	pos              *position.Position
	limits           Limits
	tm               *timeManager
	nodes            uint64
	seldepth         int
	staticEvalAtPly  [MaxPly + 2]chess.Value
	pv               pvTable
	stats            Statistics
	stableIterations int
}

// NewSearch creates a Search with a fresh transposition table, evaluator,
// history and (if config.Settings.Search.UseBook is set) an initialized
// opening book.
func NewSearch() *Search {
	s := &Search{
		log:     myLogging.GetLog("search"),
		slog:    myLogging.GetLog("search_trace"),
		tt:      transpositiontable.NewTable(config.Settings.TT.HashSizeMB),
		eval:    evaluator.NewEvaluator(),
		hist:    history.NewHistory(),
		corr:    history.NewCorrection(),
		sink:      nullSink{},
		running:   semaphore.NewWeighted(1),
		searching: util.NewBool(false),
		stopFlag:  util.NewBool(false),
	}
	s.loadBook()
	return s
}

func (s *Search) loadBook() {
	if !config.Settings.Search.UseBook {
		return
	}
	format, ok := openingbook.FormatFromString[config.Settings.Search.BookFormat]
	if !ok {
		format = openingbook.Simple
	}
	book := openingbook.NewBook()
	if err := book.Initialize(config.Settings.Search.BookPath, format, true, false); err != nil {
		s.log.Warningf("opening book not loaded from %s: %v", config.Settings.Search.BookPath, err)
		return
	}
	s.book = book
	s.log.Infof("opening book loaded: %d entries from %s", book.NumberOfEntries(), config.Settings.Search.BookPath)
}

// SetInfoSink installs the receiver of iteration/currmove reports; the UCI
// handler calls this once after constructing both itself and its Search.
func (s *Search) SetInfoSink(sink InfoSink) {
	if sink == nil {
		sink = nullSink{}
	}
	s.sink = sink
}

// IsReady blocks until any in-progress initialization has settled, the
// contract UCI's "isready"/"readyok" handshake needs. NewSearch does all
// initialization eagerly, so there is nothing left to wait for.
func (s *Search) IsReady() {}

// NewGame resets everything that should not carry over between games: the
// transposition table, move-ordering history (including the slower-moving
// quiet/capture/continuation tables) and correction history. The opening
// book and loaded network are untouched.
func (s *Search) NewGame() {
	s.tt.Clear()
	s.hist.Clear()
	s.corr.Clear()
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	return s.searching.Load()
}

// LastSearchResult returns the most recently completed (or stopped) search's
// result. Safe to call concurrently with a running search.
func (s *Search) LastSearchResult() Result {
	s.resultMu.Lock()
	defer s.resultMu.Unlock()
	return s.result
}

// StopSearch requests that a running search stop as soon as possible. It
// does not block; call WaitWhileSearching to wait for it to actually finish.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
}

// SetHashSizeMB resizes the shared transposition table, discarding its
// current contents. Called from the UCI "Hash" option handler.
func (s *Search) SetHashSizeMB(mb int) {
	s.tt.Resize(mb)
}

// ClearHash empties the transposition table without resizing it, the "Clear
// Hash" UCI button.
func (s *Search) ClearHash() {
	s.tt.Clear()
}

// TTHashfull reports the transposition table's permille fill level, the
// UCI "info hashfull" field.
func (s *Search) TTHashfull() int {
	return s.tt.Hashfull()
}

// PonderHit tells a search running in ponder mode that the predicted move
// was actually played. Pondering is not honored as its own mode: a "go
// ponder" search already runs exactly like a normal timed
// search, so there is nothing for a ponderhit to change here.
func (s *Search) PonderHit() {}

// WaitWhileSearching blocks until the current (or most recently started)
// search has finished.
func (s *Search) WaitWhileSearching() {
	s.wg.Wait()
}

// StartSearch begins a new search from pos under limits, running
// asynchronously in its own goroutine. Only one search may run at a time; a
// caller that starts a second search before the first finishes waits for the
// first one to release its slot rather than getting an error back.
func (s *Search) StartSearch(pos position.Position, limits Limits) {
	s.wg.Wait()
	_ = s.running.Acquire(context.TODO(), 1)
	s.wg.Add(1)
	s.stopFlag.Store(false)
	s.searching.Store(true)

	p := pos
	go func() {
		defer s.wg.Done()
		defer s.searching.Store(false)
		defer s.running.Release(1)
		s.think(&p, limits)
	}()
}

func (s *Search) stopped() bool {
	return s.stopFlag.Load()
}

// think is the body of one search: a book probe, then (if that didn't
// produce a move) the iterative-deepening driver.
func (s *Search) think(pos *position.Position, limits Limits) {
	startTime := time.Now()
	s.pos = pos
	s.limits = limits
	s.nodes = 0
	s.seldepth = 0
	s.stableIterations = 0
	s.stats = Statistics{}
	s.pv.clear()
	s.hist.ClearKillersAndCounters()

	if bookMove, ok := s.probeBook(pos); ok {
		s.resultMu.Lock()
		s.result = Result{BestMove: bookMove, BestValue: chess.ValueZero, BookMove: true, SearchTime: time.Since(startTime)}
		s.resultMu.Unlock()
		return
	}

	s.tm = newTimeManager(limits, pos.Current().SideToMove(), startTime)
	s.tt.NewSearch()
	s.eval.Reset(pos)

	depthLimit := MaxPly
	if limits.Depth > 0 && limits.Depth < depthLimit {
		depthLimit = limits.Depth
	}

	var bestMove chess.Move
	var bestValue chess.Value
	prevValue := chess.ValueZero
	lastCompletedDepth := 0

	for depth := 1; depth <= depthLimit; depth++ {
		s.stats.CurrentIterationDepth = depth
		value := s.aspirationSearch(depth, prevValue)
		if s.stopped() && depth > 1 {
			break
		}

		bestValue = value
		lastCompletedDepth = depth
		if pv := s.pv.pv(); len(pv) > 0 {
			newBest := pv[0]
			if newBest == bestMove {
				s.stableIterations++
			} else {
				s.stableIterations = 0
			}
			bestMove = newBest
		}

		elapsed := time.Since(startTime)
		nps := uint64(0)
		if elapsed > 0 {
			nps = util.Nps(s.nodes, elapsed)
		}
		s.sink.SendIterationInfo(IterationInfo{
			Depth: depth, SelDepth: s.seldepth, Value: bestValue, Bound: chess.ValueTypeExact,
			Nodes: s.nodes, Nps: nps, Time: elapsed, Hashfull: s.tt.Hashfull(), PV: s.pv.pv(),
		})

		if limits.Mate > 0 && bestValue.IsMateScore() {
			pliesToMate := int(chess.ValueMate) - int(util.Abs16(int16(bestValue)))
			if pliesToMate <= limits.Mate*2 {
				break
			}
		}
		if limits.Nodes > 0 && s.nodes >= limits.Nodes {
			break
		}
		if s.tm.shouldStopHard() {
			break
		}
		scoreDropped := bestValue < prevValue-20
		if s.tm.shouldStopSoft(s.stableIterations, scoreDropped) {
			break
		}
		prevValue = bestValue
	}

	if bestMove == chess.MoveNone {
		var ml moveslice.MoveList
		movegen.GenerateLegalMoves(pos, movegen.GenAll, &ml)
		if ml.Len() > 0 {
			bestMove = ml.At(0).Move
		}
	}

	result := Result{
		BestMove:    bestMove,
		BestValue:   bestValue,
		SearchDepth: lastCompletedDepth,
		ExtraDepth:  s.seldepth,
		Nodes:       s.nodes,
		SearchTime:  time.Since(startTime),
	}
	s.resultMu.Lock()
	s.result = result
	s.resultMu.Unlock()
}

// probeBook looks up pos in the opening book, returning a weighted-random
// successor move when the book has one and config allows using it.
func (s *Search) probeBook(pos *position.Position) (chess.Move, bool) {
	if s.book == nil || !config.Settings.Search.UseBook || !s.limits.TimeControl {
		return chess.MoveNone, false
	}
	entry, found := s.book.GetEntry(pos.Current().Hash())
	if !found || len(entry.Moves) == 0 {
		return chess.MoveNone, false
	}
	total := 0
	for _, m := range entry.Moves {
		total += util.Max(m.Count, 1)
	}
	pick := rand.Intn(total)
	for _, m := range entry.Moves {
		w := util.Max(m.Count, 1)
		if pick < w {
			move := chess.Move(m.Move)
			if movegen.IsLegal(pos, move) {
				return move, true
			}
			return chess.MoveNone, false
		}
		pick -= w
	}
	return chess.MoveNone, false
}
