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

func TestFeatureTests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	config.Settings.Search.UseQuiescence = true
	config.Settings.Search.UseSEE = true
	config.Settings.Search.UseTTMove = true
	config.Settings.Search.UseIIR = true
	config.Settings.Search.UseNullMove = true
	config.Settings.Search.UseRFP = true
	config.Settings.Search.UseRazoring = true
	config.Settings.Search.UseSingularExt = true
	config.Settings.Search.UseLMP = true
	config.Settings.Search.UseFP = true
	config.Settings.Search.UseHistoryPruning = true
	config.Settings.Search.UseLMR = true

	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "mates.epd"),
		[]byte(`6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm Re8; id "mate in 1";`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "notes.txt"),
		[]byte("not an epd file, must be skipped\n"), 0o644))

	report := FeatureTests(folder, 200*time.Millisecond, 4)
	assert.Contains(t, report, "Feature Test Result Report")
	assert.Contains(t, report, "mates.epd")
	assert.Contains(t, report, "TOTAL")
}

func TestFeatureTestsEmptyFolder(t *testing.T) {
	report := FeatureTests(t.TempDir(), 50*time.Millisecond, 1)
	assert.Contains(t, report, "Number of testsuites : 0")
}
