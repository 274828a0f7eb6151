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

// Package uci implements the Universal Chess Interface protocol front-end:
// it scans commands off stdin, drives internal/position and internal/search
// accordingly, and renders internal/search's progress reports back out as
// "info"/"bestmove" lines.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/corvidchess/corvid/internal/chess"
	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/search"
)

// engineName/engineAuthor answer the UCI "uci" handshake's id lines.
const (
	engineName   = "corvid 1.0"
	engineAuthor = "corvid contributors"
)

// UciHandler owns one running engine instance's UCI session: the position
// under discussion, the Search driving it, and the in/out streams the
// protocol is read from and written to. Command() redirects OutIo to a
// buffer so tests can drive the handler without a real stdout.
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	search   *search.Search
	position *position.Position
	perft    *movegen.Perft

	chess960 bool
	showWDL  bool

	log *logging.Logger
}

// NewUciHandler wires up a Search (installing itself as its InfoSink), a
// fresh starting position and a Perft instance, reading/writing os.Stdin
// and os.Stdout.
func NewUciHandler() *UciHandler {
	u := &UciHandler{
		InIo:     bufio.NewScanner(os.Stdin),
		OutIo:    bufio.NewWriter(os.Stdout),
		search:   search.NewSearch(),
		position: position.NewPosition(),
		perft:    movegen.NewPerft(),
		showWDL:  true,
		log:      myLogging.GetLog("uci"),
	}
	u.InIo.Buffer(make([]byte, 1024), 1024*1024)
	u.search.SetInfoSink(u)
	return u
}

// Loop reads and handles commands from InIo until "quit" or EOF.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if !u.handleReceivedCommand(u.InIo.Text()) {
			return
		}
	}
}

// Command runs a single command through the handler and returns whatever it
// wrote to OutIo, for tests that don't want to wire up real stdin/stdout.
func (u *UciHandler) Command(cmd string) string {
	var buf bytes.Buffer
	prevOut := u.OutIo
	u.OutIo = bufio.NewWriter(&buf)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = prevOut
	return buf.String()
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// handleReceivedCommand dispatches one line of UCI input. It returns false
// only for "quit", telling Loop to stop reading.
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	trimmed := strings.TrimSpace(cmd)
	if trimmed == "" {
		return true
	}
	tokens := regexWhiteSpace.Split(trimmed, -1)

	switch tokens[0] {
	case "quit":
		return false
	case "uci":
		u.uciCommand()
	case "isready":
		u.isReadyCommand()
	case "ucinewgame":
		u.uciNewGameCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "ponderhit":
		u.search.PonderHit()
	case "perft":
		u.perftCommand(tokens)
	case "debug":
		u.debugCommand(tokens)
	case "register":
		u.registerCommand()
	default:
		u.log.Warningf("unknown command: %q", cmd)
	}
	return true
}

func (u *UciHandler) uciCommand() {
	u.send(fmt.Sprintf("id name %s", engineName))
	u.send(fmt.Sprintf("id author %s", engineAuthor))
	for _, line := range GetOptions() {
		u.send(line)
	}
	u.send("uciok")
}

// setOptionCommand parses "setoption name <id> [value <x>]" and applies the
// matching uciOption's handler. <id> and <x> may themselves contain spaces
// (e.g. "Clear Hash"), so this splits on the literal " value " marker rather
// than tokenizing further.
func (u *UciHandler) setOptionCommand(tokens []string) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.Join(tokens[1:], " "), "name "))
	name, value := rest, ""
	if idx := strings.Index(rest, " value "); idx >= 0 {
		name = rest[:idx]
		value = rest[idx+len(" value "):]
	}
	opt, ok := uciOptions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		u.log.Warningf("setoption: unknown option %q", name)
		return
	}
	if opt.optType != optButton {
		opt.currentValue = strings.TrimSpace(value)
	}
	opt.handler(u, opt)
}

func (u *UciHandler) isReadyCommand() {
	u.search.IsReady()
	u.send("readyok")
}

func (u *UciHandler) uciNewGameCommand() {
	u.position = position.NewPosition()
	u.position.SetChess960(u.chess960)
	u.search.NewGame()
}

// positionCommand parses "position [startpos|fen <fen>] [moves <uci>...]",
// replacing u.position with a freshly built one and then replaying the move
// list onto it.
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.log.Warning("position: missing startpos/fen")
		return
	}

	var fen string
	i := 2
	switch tokens[1] {
	case "startpos":
		fen = position.StartFen
	case "fen":
		var fields []string
		for i < len(tokens) && tokens[i] != "moves" {
			fields = append(fields, tokens[i])
			i++
		}
		fen = strings.Join(fields, " ")
	default:
		u.log.Warningf("position: expected startpos or fen, got %q", tokens[1])
		return
	}

	pos, err := position.NewPositionFen(fen)
	if err != nil {
		u.log.Warningf("position: %v", err)
		return
	}
	pos.SetChess960(u.chess960)
	u.position = pos

	if i < len(tokens) && tokens[i] == "moves" {
		for _, uciMove := range tokens[i+1:] {
			m := movegen.MoveFromUci(u.position, uciMove)
			if m == chess.MoveNone {
				u.log.Warningf("position: illegal or unknown move %q", uciMove)
				break
			}
			u.position.Push(m)
		}
	}
}

// goCommand parses the search limits and starts an asynchronous search,
// sending "bestmove" once it completes. "go perft N" (accepted alongside
// the standalone "perft" debug command) runs perft instead of a search.
func (u *UciHandler) goCommand(tokens []string) {
	limits := u.readSearchLimits(tokens)
	if limits.Perft > 0 {
		u.runPerft(limits.Perft)
		return
	}

	u.search.StartSearch(*u.position, limits)
	go func() {
		u.search.WaitWhileSearching()
		result := u.search.LastSearchResult()
		u.send("bestmove " + result.BestMove.UCI(u.chess960))
	}()
}

func (u *UciHandler) stopCommand() {
	u.search.StopSearch()
	u.perft.Stop()
}

func (u *UciHandler) perftCommand(tokens []string) {
	u.runPerft(atoiAt(tokens, 1))
}

func (u *UciHandler) runPerft(depth int) {
	nodes := u.perft.StartPerftFromPosition(u.position, depth)
	u.send(fmt.Sprintf("info string perft depth %d nodes %d", depth, nodes))
}

func (u *UciHandler) debugCommand(tokens []string) {
	u.log.Infof("debug: %v", tokens)
}

func (u *UciHandler) registerCommand() {
	u.send("info string registration not required")
}

// readSearchLimits parses every known "go" sub-token into a
// search.Limits. Unknown tokens are ignored rather than rejected, matching
// how real GUIs occasionally send engine-specific extensions.
func (u *UciHandler) readSearchLimits(tokens []string) search.Limits {
	var l search.Limits
	for i := 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "infinite":
			l.Infinite = true
		case "ponder":
			l.Ponder = true
		case "depth":
			i++
			l.Depth = atoiAt(tokens, i)
		case "nodes":
			i++
			l.Nodes = uint64(atoiAt(tokens, i))
		case "mate":
			i++
			l.Mate = atoiAt(tokens, i)
		case "movetime":
			i++
			l.MoveTime = time.Duration(atoiAt(tokens, i)) * time.Millisecond
			l.TimeControl = true
		case "wtime":
			i++
			l.WhiteTime = time.Duration(atoiAt(tokens, i)) * time.Millisecond
			l.TimeControl = true
		case "btime":
			i++
			l.BlackTime = time.Duration(atoiAt(tokens, i)) * time.Millisecond
			l.TimeControl = true
		case "winc":
			i++
			l.WhiteInc = time.Duration(atoiAt(tokens, i)) * time.Millisecond
		case "binc":
			i++
			l.BlackInc = time.Duration(atoiAt(tokens, i)) * time.Millisecond
		case "movestogo":
			i++
			l.MovesToGo = atoiAt(tokens, i)
		case "perft":
			i++
			l.Perft = atoiAt(tokens, i)
		case "searchmoves":
			for i+1 < len(tokens) {
				m := movegen.MoveFromUci(u.position, tokens[i+1])
				if m == chess.MoveNone {
					break
				}
				l.SearchMoves = append(l.SearchMoves, m)
				i++
			}
		}
	}
	return l
}

func atoiAt(tokens []string, i int) int {
	if i < 0 || i >= len(tokens) {
		return 0
	}
	n, err := strconv.Atoi(tokens[i])
	if err != nil {
		return 0
	}
	return n
}

// SendIterationInfo implements search.InfoSink, rendering one completed
// iteration as a UCI "info" line.
func (u *UciHandler) SendIterationInfo(info search.IterationInfo) {
	ply := u.position.Ply()
	var scoreStr string
	if info.Value.IsMateScore() {
		scoreStr = "score " + info.Value.String()
	} else {
		scoreStr = fmt.Sprintf("score cp %d", ToCentipawns(info.Value, ply))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d seldepth %d %s", info.Depth, info.SelDepth, scoreStr)
	if u.showWDL {
		w, d, l := WDL(info.Value, ply)
		fmt.Fprintf(&sb, " wdl %d %d %d", w, d, l)
	}
	fmt.Fprintf(&sb, " nodes %d nps %d time %d hashfull %d",
		info.Nodes, info.Nps, info.Time.Milliseconds(), info.Hashfull)
	if len(info.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range info.PV {
			sb.WriteString(" ")
			sb.WriteString(m.UCI(u.chess960))
		}
	}
	u.send(sb.String())
}

// SendCurrentMove implements search.InfoSink, reporting which root move is
// currently being searched.
func (u *UciHandler) SendCurrentMove(move chess.Move, moveNumber int) {
	u.send(fmt.Sprintf("info currmove %s currmovenumber %d", move.UCI(u.chess960), moveNumber))
}

func (u *UciHandler) send(s string) {
	u.log.Debug(s)
	_, _ = fmt.Fprintln(u.OutIo, s)
	_ = u.OutIo.Flush()
}
