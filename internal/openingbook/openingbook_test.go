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

package openingbook

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/position"
)

const simpleFixture = "e2e4 e7e5 g1f3 b8c6\ne2e4 c7c5 g1f3 d7d6\nd2d4 d7d5\n"

const sanFixture = "1. e4 e5 2. Nf3 Nc6\n1. e4 c5 2. Nf3\n1. d4 d5\n"

const pgnFixture = `[Event "Test"]
[Site "?"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0

[Event "Test2"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitializeSimple(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "simple.book", simpleFixture)

	b := NewBook()
	require.NoError(t, b.Initialize(path, Simple, false, false))
	assert.True(t, b.NumberOfEntries() > 1)

	root := position.NewPosition()
	entry, ok := b.GetEntry(root.Current().Hash())
	require.True(t, ok)
	assert.NotEmpty(t, entry.Moves)

	total := 0
	for _, m := range entry.Moves {
		total += m.Count
	}
	assert.Equal(t, 3, total) // three games, all starting 1.e4 or 1.d4
}

func TestInitializeSan(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "san.book", sanFixture)

	b := NewBook()
	require.NoError(t, b.Initialize(path, San, false, false))

	root := position.NewPosition()
	entry, ok := b.GetEntry(root.Current().Hash())
	require.True(t, ok)
	assert.NotEmpty(t, entry.Moves)
}

func TestInitializePgn(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "games.pgn", pgnFixture)

	b := NewBook()
	require.NoError(t, b.Initialize(path, Pgn, false, false))

	root := position.NewPosition()
	entry, ok := b.GetEntry(root.Current().Hash())
	require.True(t, ok)
	assert.NotEmpty(t, entry.Moves)
}

func TestGetEntryMissing(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "simple.book", simpleFixture)

	b := NewBook()
	require.NoError(t, b.Initialize(path, Simple, false, false))

	_, ok := b.GetEntry(0xdeadbeefdeadbeef)
	assert.False(t, ok)
}

func TestInitializeTwiceIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "simple.book", simpleFixture)

	b := NewBook()
	require.NoError(t, b.Initialize(path, Simple, false, false))
	before := b.NumberOfEntries()
	require.NoError(t, b.Initialize(path, Simple, false, false))
	assert.Equal(t, before, b.NumberOfEntries())
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "simple.book", simpleFixture)

	b1 := NewBook()
	require.NoError(t, b1.Initialize(path, Simple, true, false))
	_, err := os.Stat(path + ".pbcache")
	require.NoError(t, err)

	b2 := NewBook()
	require.NoError(t, b2.Initialize(path, Simple, true, false))
	assert.Equal(t, b1.NumberOfEntries(), b2.NumberOfEntries())

	root := position.NewPosition()
	e1, ok1 := b1.GetEntry(root.Current().Hash())
	e2, ok2 := b2.GetEntry(root.Current().Hash())
	require.True(t, ok1)
	require.True(t, ok2)
	assert.ElementsMatch(t, e1.Moves, e2.Moves)
}

func TestPolyglotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.bin")

	root := position.NewPosition()
	hash := root.Current().Hash()

	buf := make([]byte, polyglotEntrySize*2)
	binary.BigEndian.PutUint64(buf[0:8], hash)
	binary.BigEndian.PutUint16(buf[8:10], 0x1234)
	binary.BigEndian.PutUint16(buf[10:12], 5)
	binary.BigEndian.PutUint64(buf[16:24], hash)
	binary.BigEndian.PutUint16(buf[24:26], 0x5678)
	binary.BigEndian.PutUint16(buf[26:28], 2)
	require.NoError(t, os.WriteFile(path, buf, 0644))

	b := NewBook()
	require.NoError(t, b.Initialize(path, Polyglot, false, false))

	entry, ok := b.GetEntry(hash)
	require.True(t, ok)
	require.Len(t, entry.Moves, 2)
	assert.Equal(t, uint32(0x1234), entry.Moves[0].Move)
	assert.Equal(t, 5, entry.Moves[0].Count)
	assert.Equal(t, uint32(0x5678), entry.Moves[1].Move)
	assert.Equal(t, 2, entry.Moves[1].Count)
}

func TestResetAllowsReinitialize(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "simple.book", simpleFixture)

	b := NewBook()
	require.NoError(t, b.Initialize(path, Simple, false, false))
	b.Reset()
	assert.Equal(t, 0, b.NumberOfEntries())

	require.NoError(t, b.Initialize(path, Simple, false, false))
	assert.True(t, b.NumberOfEntries() > 1)
}

func TestFormatFromString(t *testing.T) {
	cases := map[string]BookFormat{
		"simple": Simple, "san": San, "pgn": Pgn, "polyglot": Polyglot, "protobuf": Protobuf,
	}
	for s, want := range cases {
		got, ok := FormatFromString[s]
		require.True(t, ok, s)
		assert.Equal(t, want, got)
	}
	_, ok := FormatFromString["bogus"]
	assert.False(t, ok)
}
