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

package testsuite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/config"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func writeEpd(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.epd")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetTestBestMove(t *testing.T) {
	line := `2b4k/8/8/8/8/3N3N/P4p2/1K6 w - - bm Nhxf2 Ndxf2; id "corvid #7";`
	test := getTest(line)
	require.NotNil(t, test)
	assert.Equal(t, "2b4k/8/8/8/8/3N3N/P4p2/1K6 w - -", test.fen)
	require.Len(t, test.targetMoves, 2)
	assert.Equal(t, "h3f2", test.targetMoves[0].String())
	assert.Equal(t, "d3f2", test.targetMoves[1].String())
	assert.Equal(t, "corvid #7", test.id)
	assert.Equal(t, BM, test.tType)
}

func TestGetTestPromotion(t *testing.T) {
	line := `6k1/P7/8/8/8/8/8/3K4 w - - bm a8=Q; id "corvid #4";`
	test := getTest(line)
	require.NotNil(t, test)
	require.Len(t, test.targetMoves, 1)
	assert.Equal(t, "a7a8q", test.targetMoves[0].String())
}

func TestGetTestDirectMate(t *testing.T) {
	line := `4r1b1/1p4B1/pN2pR2/RB2k3/1P2N2p/2p3b1/n2P1p1r/5K1n w - - dm 3; id "mate #1";`
	test := getTest(line)
	require.NotNil(t, test)
	assert.Equal(t, DM, test.tType)
	assert.Equal(t, 3, test.mateDepth)
}

func TestGetTestInvalidFen(t *testing.T) {
	line := `6k1/P7/8/9/8/8/8/3K4 w - - bm a8=Q; id "bad fen";`
	assert.Nil(t, getTest(line))
}

func TestGetTestUnknownOpcode(t *testing.T) {
	line := `6k1/P7/8/8/8/8/8/3K4 w - - aa a8=Q; id "bad opcode";`
	assert.Nil(t, getTest(line))
}

func TestGetTestPartiallyInvalidMoveListStillParses(t *testing.T) {
	line := `2b4k/8/8/8/8/3N3N/P4p2/1K6 w - - bm Nhxf2 Naxf2; id "one invalid";`
	test := getTest(line)
	assert.NotNil(t, test) // one of the two bm moves is illegal, the other isn't
}

func TestGetTestAllInvalidMoveListFails(t *testing.T) {
	line := `2b4k/8/8/8/8/3N3N/P4p2/1K6 w - - bm Nbxf2 Naxf2; id "all invalid";`
	assert.Nil(t, getTest(line))
}

func TestNewTestSuiteParsesEveryLine(t *testing.T) {
	path := writeEpd(t, ""+
		"6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm Re8; id \"mate in 1\";\n"+
		"# a comment line, ignored\n"+
		"\n"+
		"4k3/8/4K3/8/4N3/4B3/3P1P2/8 w - - dm 6; id \"mate in 6\";\n")

	ts, err := NewTestSuite(path, time.Second, 0)
	require.NoError(t, err)
	require.Len(t, ts.Tests, 2)
	assert.Equal(t, BM, ts.Tests[0].tType)
	assert.Equal(t, DM, ts.Tests[1].tType)
}

func TestRunTestsFindsMateInOne(t *testing.T) {
	path := writeEpd(t, `6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm Re8; id "mate in 1";`+"\n")
	ts, err := NewTestSuite(path, 2*time.Second, 4)
	require.NoError(t, err)
	require.Len(t, ts.Tests, 1)

	ts.RunTests()

	require.NotNil(t, ts.LastResult)
	assert.Equal(t, 1, ts.LastResult.Counter)
	assert.Equal(t, Success, ts.Tests[0].rType)
}

func TestRunTestsDirectMate(t *testing.T) {
	path := writeEpd(t, `4k3/8/4K3/8/4N3/4B3/3P1P2/8 w - - dm 1; id "not actually mate in 1";`+"\n")
	ts, err := NewTestSuite(path, 500*time.Millisecond, 2)
	require.NoError(t, err)
	require.Len(t, ts.Tests, 1)

	ts.RunTests()

	assert.Equal(t, Failed, ts.Tests[0].rType)
}
