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

// Package openingbook reads game databases of several formats into an
// in-memory index keyed by position hash and serves weighted successor
// moves for a hash, the data search.probeBook needs to play straight out
// of book instead of searching. Supported source formats:
//
//   - Simple: one game per line, plain UCI move tokens ("e2e4 e7e5 ...")
//   - San:    one game per line, numbered SAN move text
//   - Pgn:    PGN game collections, tags and comments stripped, reduced to
//     its SAN move text and processed the same way as San
//   - Polyglot: a fixed 16-byte-entry binary index (this package's own
//     hash, not the standard Polyglot hash - see DESIGN.md)
//   - Protobuf: this package's own length-prefixed protobuf framing, also
//     used for the on-disk cache of any of the text formats above
package openingbook

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/chess"
	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/position"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

func init() {
	log = myLogging.GetLog("openingbook")
}

// parallel controls whether lines/games are processed concurrently; false
// is useful when debugging a parse failure with a consistent stack trace.
const parallel = true

// BookFormat selects how Initialize interprets bookPath.
type BookFormat int

const (
	Simple BookFormat = iota
	San
	Pgn
	Polyglot
	Protobuf
)

// FormatFromString maps the config.Settings.Search.BookFormat string to a
// BookFormat. Unrecognized values fall back to Simple in the caller.
var FormatFromString = map[string]BookFormat{
	"simple":   Simple,
	"san":      San,
	"pgn":      Pgn,
	"polyglot": Polyglot,
	"protobuf": Protobuf,
}

// Successor is one move out of a BookEntry's position, with how many times
// it was seen played (Simple/San/Pgn) or its stored weight (Polyglot/Protobuf).
type Successor struct {
	Move  uint32
	Count int
}

// BookEntry describes every move known to follow one hashed position.
type BookEntry struct {
	Hash  uint64
	Moves []Successor
}

// Book is a queryable, in-memory opening book. The zero value is not ready
// to use; construct one with NewBook.
type Book struct {
	mu          sync.Mutex
	bookMap     map[uint64]BookEntry
	rootHash    uint64
	initialized bool
}

// NewBook returns an empty, uninitialized Book.
func NewBook() *Book {
	return &Book{}
}

// Initialize loads bookPath (format-dependent) into the book, or, when
// useCache is set and a matching cache file already exists, loads that
// instead and skips parsing entirely. recreateCache forces a fresh parse
// even if a cache file is present (the cache is then rewritten at the end).
// Calling Initialize on an already-initialized Book is a no-op.
func (b *Book) Initialize(bookPath string, format BookFormat, useCache, recreateCache bool) error {
	if b.initialized {
		return nil
	}

	if _, err := os.Stat(bookPath); err != nil {
		log.Errorf("opening book file %q does not exist: %v", bookPath, err)
		return err
	}

	start := time.Now()
	cache := bookPath + ".pbcache"

	if useCache && !recreateCache {
		if entries, err := readProtobufFile(cache); err == nil {
			b.bookMap = entries
			b.setRootHash()
			b.initialized = true
			log.Infof("opening book loaded from cache %s: %d entries in %s", cache, len(b.bookMap), time.Since(start))
			return nil
		}
	}

	var err error
	switch format {
	case Polyglot:
		err = b.readPolyglot(bookPath)
	case Protobuf:
		var entries map[uint64]BookEntry
		entries, err = readProtobufFile(bookPath)
		if err == nil {
			b.bookMap = entries
			b.setRootHash()
		}
	default:
		err = b.readTextBook(bookPath, format)
	}
	if err != nil {
		log.Errorf("could not read opening book %q: %v", bookPath, err)
		return err
	}

	log.Infof("opening book %q initialized with %d entries in %s", bookPath, len(b.bookMap), time.Since(start))

	if useCache {
		if werr := writeProtobufFile(cache, b.bookMap); werr != nil {
			log.Warningf("could not write opening book cache %s: %v", cache, werr)
		} else {
			log.Infof("wrote opening book cache %s", cache)
		}
	}

	b.initialized = true
	return nil
}

// NumberOfEntries returns how many positions the book knows about.
func (b *Book) NumberOfEntries() int {
	return len(b.bookMap)
}

// GetEntry returns the entry for hash, if any.
func (b *Book) GetEntry(hash uint64) (BookEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.bookMap[hash]
	return e, ok
}

// Reset discards the loaded book so Initialize can be called again.
func (b *Book) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookMap = nil
	b.rootHash = 0
	b.initialized = false
}

func (b *Book) setRootHash() {
	root := position.NewPosition()
	b.rootHash = root.Current().Hash()
}

// ///////////////////////////////////////////////////////////////////////
// Text formats (Simple / San / Pgn)
// ///////////////////////////////////////////////////////////////////////

func readFile(path string) (*[]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Errorf("could not close %q: %v", path, cerr)
		}
	}()
	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return &lines, nil
}

func (b *Book) readTextBook(bookPath string, format BookFormat) error {
	lines, err := readFile(bookPath)
	if err != nil {
		return err
	}
	b.bookMap = make(map[uint64]BookEntry)
	b.setRootHash()
	b.bookMap[b.rootHash] = BookEntry{Hash: b.rootHash}

	switch format {
	case San:
		b.parallelOverLines(lines, b.processSanLine)
	case Pgn:
		b.processPgn(lines)
	default:
		b.parallelOverLines(lines, b.processSimpleLine)
	}
	return nil
}

func (b *Book) parallelOverLines(lines *[]string, fn func(string)) {
	if !parallel {
		for _, l := range *lines {
			fn(l)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(*lines))
	for _, line := range *lines {
		go func(l string) {
			defer wg.Done()
			fn(l)
		}(line)
	}
	wg.Wait()
}

var regexSimpleUciMove = regexp.MustCompile(`[a-h][1-8][a-h][1-8][nbrq]?`)

func (b *Book) processSimpleLine(line string) {
	matches := regexSimpleUciMove.FindAllString(strings.TrimSpace(line), -1)
	if len(matches) == 0 {
		return
	}
	pos := position.NewPosition()
	for _, uci := range matches {
		if !b.playUciMove(pos, uci) {
			break
		}
	}
}

var regexSanLineStart = regexp.MustCompile(`^\d+\.`)
var regexSanLineCleanUpNumbers = regexp.MustCompile(`\d+\.{1,3}\s*`)
var regexSanLineCleanUpResults = regexp.MustCompile(`(1/2|1|0)-(1/2|1|0)`)
var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (b *Book) processSanLine(line string) {
	line = strings.TrimSpace(line)
	if !regexSanLineStart.MatchString(line) {
		return
	}
	line = regexSanLineCleanUpNumbers.ReplaceAllString(line, "")
	line = regexSanLineCleanUpResults.ReplaceAllString(line, "")
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	pos := position.NewPosition()
	for _, token := range regexWhiteSpace.Split(line, -1) {
		if token == "" {
			continue
		}
		if !b.playSanMove(pos, token) {
			break
		}
	}
}

var regexPgnResult = regexp.MustCompile(`((1-0)|(0-1)|(1/2-1/2)|(\*))\s*$`)
var regexPgnTagPairs = regexp.MustCompile(`\[\w+ +".*?"\]`)
var regexPgnNagAnnotation = regexp.MustCompile(`\$\d{1,3}`)
var regexPgnBracketComments = regexp.MustCompile(`\{[^{}]*\}`)
var regexPgnReservedSymbols = regexp.MustCompile(`<[^<>]*>`)
var regexPgnRavVariants = regexp.MustCompile(`\([^()]*\)`)

func (b *Book) processPgn(lines *[]string) {
	var games [][]string
	start := 0
	for i, l := range *lines {
		if regexPgnResult.MatchString(strings.TrimSpace(l)) {
			end := i + 1
			games = append(games, (*lines)[start:end])
			start = end
		}
	}

	if !parallel {
		for _, g := range games {
			b.processPgnGame(g)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(games))
	for _, g := range games {
		go func(g []string) {
			defer wg.Done()
			b.processPgnGame(g)
		}(g)
	}
	wg.Wait()
}

func (b *Book) processPgnGame(gameLines []string) {
	var moveLine strings.Builder
	for _, l := range gameLines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "%") || l == "" {
			continue
		}
		l = regexPgnTagPairs.ReplaceAllString(l, "")
		l = regexPgnResult.ReplaceAllString(l, "")
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		moveLine.WriteString(" ")
		moveLine.WriteString(l)
	}

	line := moveLine.String()
	line = regexPgnNagAnnotation.ReplaceAllString(line, " ")
	line = regexPgnBracketComments.ReplaceAllString(line, " ")
	line = regexPgnReservedSymbols.ReplaceAllString(line, " ")
	for regexPgnRavVariants.MatchString(line) {
		line = regexPgnRavVariants.ReplaceAllString(line, " ")
	}

	b.processSanLine(strings.TrimSpace(line))
}

// playUciMove plays one UCI move token from pos, recording it in the book,
// and reports whether parsing should continue with the rest of the line.
func (b *Book) playUciMove(pos *position.Position, uci string) bool {
	m := movegen.MoveFromUci(pos, uci)
	if m == chess.MoveNone {
		return false
	}
	b.recordMove(pos, m)
	pos.Push(m)
	return true
}

func (b *Book) playSanMove(pos *position.Position, token string) bool {
	m, err := parseSanMove(pos, token)
	if err != nil {
		log.Debugf("book: unparseable SAN token %q on %s: %v", token, pos.Fen(), err)
		return false
	}
	b.recordMove(pos, m)
	pos.Push(m)
	return true
}

func (b *Book) recordMove(pos *position.Position, m chess.Move) {
	curHash := pos.Current().Hash()
	pos.Push(m)
	nextHash := pos.Current().Hash()
	pos.Pop()
	b.addToBook(curHash, nextHash, m)
}

func (b *Book) addToBook(curHash, nextHash uint64, m chess.Move) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok := b.bookMap[curHash]
	if !ok {
		cur = BookEntry{Hash: curHash}
	}
	found := false
	for i := range cur.Moves {
		if cur.Moves[i].Move == uint32(m) {
			cur.Moves[i].Count++
			found = true
			break
		}
	}
	if !found {
		cur.Moves = append(cur.Moves, Successor{Move: uint32(m), Count: 1})
	}
	b.bookMap[curHash] = cur

	if _, exists := b.bookMap[nextHash]; !exists {
		b.bookMap[nextHash] = BookEntry{Hash: nextHash}
	}
}

// parseSanMove resolves a SAN token against pos's legal moves. It handles
// the usual disambiguation forms (piece letter, source file/rank, explicit
// promotion) by generating every legal move and keeping the one whose
// shape matches, the same approach any SAN reader uses in the absence of a
// dedicated SAN-aware move generator.
var regexSanMove = regexp.MustCompile(`^([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8])(=([NBRQ]))?[+#!?]*$`)

var sanPieceLetter = map[string]chess.PieceType{
	"N": chess.Knight, "B": chess.Bishop, "R": chess.Rook, "Q": chess.Queen, "K": chess.King,
}

// ParseSan exposes parseSanMove for callers outside the book formats that
// need to resolve a SAN token against a position's legal moves, such as the
// EPD test-suite reader's bm/am/dm opcodes.
func ParseSan(pos *position.Position, token string) (chess.Move, error) {
	return parseSanMove(pos, token)
}

func parseSanMove(pos *position.Position, token string) (chess.Move, error) {
	token = strings.TrimSuffix(strings.TrimSuffix(token, "!"), "?")

	var ml moveslice.MoveList
	movegen.GenerateLegalMoves(pos, movegen.GenAll, &ml)

	if token == "O-O" || token == "0-0" {
		return findCastle(&ml, chess.FlagCastleKing)
	}
	if token == "O-O-O" || token == "0-0-0" {
		return findCastle(&ml, chess.FlagCastleQueen)
	}

	match := regexSanMove.FindStringSubmatch(token)
	if match == nil {
		return chess.MoveNone, errors.New("unrecognized SAN token")
	}
	pieceLetter, fromFile, fromRank, dest, promo := match[1], match[2], match[3], match[4], match[6]

	wantPiece := chess.Pawn
	if pieceLetter != "" {
		wantPiece = sanPieceLetter[pieceLetter]
	}
	destSq := chess.MakeSquare(dest)

	board := pos.Current()
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if m.IsCastle() {
			continue
		}
		if m.To() != destSq {
			continue
		}
		if board.PieceOn(m.From()).TypeOf() != wantPiece {
			continue
		}
		if promo != "" {
			if !m.IsPromotion() || sanPieceLetter[promo] != m.PromotionType() {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		if fromFile != "" && m.From().FileOf() != chess.File(fromFile[0]-'a') {
			continue
		}
		if fromRank != "" && m.From().RankOf() != chess.Rank(fromRank[0]-'1') {
			continue
		}
		return m, nil
	}
	return chess.MoveNone, errors.New("no legal move matches SAN token")
}

func findCastle(ml *moveslice.MoveList, flag chess.MoveFlag) (chess.Move, error) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if m.Flag() == flag {
			return m, nil
		}
	}
	return chess.MoveNone, errors.New("no legal castling move")
}

// ///////////////////////////////////////////////////////////////////////
// Polyglot-style binary format
// ///////////////////////////////////////////////////////////////////////

// polyglotEntrySize is the fixed record size of this package's Polyglot-
// style index: an 8-byte position hash, a 2-byte move (chess.Move packs
// into uint16 already), a 2-byte weight and a reserved 4-byte field,
// mirroring the standard Polyglot book layout. The hash is this engine's
// own Board.Hash(), not the official Polyglot random-table hash (see
// DESIGN.md), so files are only interchangeable between corvid instances.
const polyglotEntrySize = 16

func (b *Book) readPolyglot(bookPath string) error {
	data, err := os.ReadFile(bookPath)
	if err != nil {
		return err
	}
	if len(data)%polyglotEntrySize != 0 {
		return errors.New("openingbook: truncated polyglot-style book file")
	}

	b.bookMap = make(map[uint64]BookEntry)
	b.setRootHash()
	b.bookMap[b.rootHash] = BookEntry{Hash: b.rootHash}

	for i := 0; i+polyglotEntrySize <= len(data); i += polyglotEntrySize {
		hash := binary.BigEndian.Uint64(data[i : i+8])
		move := binary.BigEndian.Uint16(data[i+8 : i+10])
		weight := binary.BigEndian.Uint16(data[i+10 : i+12])

		entry, ok := b.bookMap[hash]
		if !ok {
			entry = BookEntry{Hash: hash}
		}
		entry.Moves = append(entry.Moves, Successor{Move: uint32(move), Count: int(weight)})
		b.bookMap[hash] = entry
	}
	return nil
}

// ///////////////////////////////////////////////////////////////////////
// Protobuf-framed format (also used for the on-disk cache)
// ///////////////////////////////////////////////////////////////////////

// bookEntryProto is a hand-declared protobuf message (the book format is
// small and stable enough that running protoc over a .proto source would
// be pure ceremony): it implements proto.Message directly so
// github.com/golang/protobuf's Marshal/Unmarshal work on it exactly as
// they would on generated code.
type bookEntryProto struct {
	Hash    uint64   `protobuf:"varint,1,opt,name=hash,proto3" json:"hash,omitempty"`
	Moves   []uint32 `protobuf:"varint,2,rep,packed,name=moves,proto3" json:"moves,omitempty"`
	Weights []uint32 `protobuf:"varint,3,rep,packed,name=weights,proto3" json:"weights,omitempty"`
}

func (m *bookEntryProto) Reset()         { *m = bookEntryProto{} }
func (m *bookEntryProto) String() string { return proto.CompactTextString(m) }
func (m *bookEntryProto) ProtoMessage()  {}

func writeProtobufFile(path string, entries map[uint64]BookEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	lenBuf := make([]byte, binary.MaxVarintLen64)
	for hash, entry := range entries {
		msg := &bookEntryProto{Hash: hash}
		for _, s := range entry.Moves {
			msg.Moves = append(msg.Moves, s.Move)
			msg.Weights = append(msg.Weights, uint32(s.Count))
		}
		data, err := proto.Marshal(msg)
		if err != nil {
			return err
		}
		n := binary.PutUvarint(lenBuf, uint64(len(data)))
		if _, err := w.Write(lenBuf[:n]); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readProtobufFile(path string) (map[uint64]BookEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	entries := make(map[uint64]BookEntry)
	for {
		length, err := binary.ReadUvarint(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		msg := &bookEntryProto{}
		if err := proto.Unmarshal(buf, msg); err != nil {
			return nil, err
		}
		entry := BookEntry{Hash: msg.Hash}
		for i, mv := range msg.Moves {
			weight := 0
			if i < len(msg.Weights) {
				weight = int(msg.Weights[i])
			}
			entry.Moves = append(entry.Moves, Successor{Move: mv, Count: weight})
		}
		entries[msg.Hash] = entry
	}
	return entries, nil
}

var _ = out // reserved for future locale-formatted progress logging
