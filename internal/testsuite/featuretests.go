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
	"sort"
	"strings"
	"time"

	"github.com/corvidchess/corvid/internal/config"
	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/util"
)

// FeatureTests runs every ".epd" file in folder and returns a combined
// report across all of them, the reporting counterpart to a single
// TestSuite's RunTests.
func FeatureTests(folder string, searchTime time.Duration, searchDepth int) string {
	if log == nil {
		log = myLogging.GetLog("testsuite")
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		log.Errorf("cannot read feature test folder %q: %v", folder, err)
		return ""
	}
	var list []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".epd" {
			list = append(list, e.Name())
		}
	}
	sort.Strings(list)

	config.Settings.Search.UseBook = false
	result := make(map[string]*TestSuite, len(list))
	executedTests := 0

	start := time.Now()
	for _, name := range list {
		ts, err := NewTestSuite(filepath.Join(folder, name), searchTime, searchDepth)
		if err != nil {
			log.Warningf("skipping %s: %v", name, err)
			continue
		}
		ts.RunTests()
		executedTests += len(ts.Tests)
		result[name] = ts
	}
	duration := time.Since(start)

	var totalNodes uint64
	var totalTime time.Duration
	var totalSuccess, totalFailed, totalSkipped, totalNotTested, totalTests int

	var sb strings.Builder
	sb.WriteString(out.Sprintf("Feature Test Result Report\n"))
	sb.WriteString(out.Sprintf("==============================================================================\n"))
	sb.WriteString(out.Sprintf("Date                 : %s\n", time.Now()))
	sb.WriteString(out.Sprintf("Test took            : %s\n", duration))
	sb.WriteString(out.Sprintf("Test setup           : search time: %s max depth: %d\n", searchTime, searchDepth))
	sb.WriteString(out.Sprintf("Number of testsuites : %d\n", len(result)))
	sb.WriteString(out.Sprintf("Number of tests      : %d\n", executedTests))
	sb.WriteString(out.Sprintln())
	sb.WriteString(out.Sprintf("===============================================================================================================================================\n"))
	sb.WriteString(out.Sprintf(" %-25s | %-12s | %-15s | %-10s | %-10s | %-10s | %-10s | %-6s | %s\n", "Test Suite", "Success Rate", "          Nodes", "Successful", "    Failed", "   Skipped", "       N/A", "  Tests", "File"))
	sb.WriteString(out.Sprintf("===============================================================================================================================================\n"))
	for _, name := range list {
		r, ok := result[name]
		if !ok || r.LastResult == nil {
			continue
		}
		lr := r.LastResult
		successRate := 0.0
		if lr.Counter > 0 {
			successRate = float64(lr.SuccessCounter) / float64(lr.Counter) * 100
		}
		totalNodes += lr.Nodes
		totalTime += lr.Time
		totalSuccess += lr.SuccessCounter
		totalFailed += lr.FailedCounter
		totalSkipped += lr.SkippedCounter
		totalNotTested += lr.NotTestedCounter
		totalTests += lr.Counter
		sb.WriteString(out.Sprintf(" %-25s |      %5.1f %% | %15d |   %8d |   %8d |   %8d |   %8d |  %6d | %s\n",
			name, successRate, lr.Nodes, lr.SuccessCounter, lr.FailedCounter, lr.SkippedCounter, lr.NotTestedCounter, len(r.Tests), filepath.Join(folder, name)))
	}
	successRate := 0.0
	if totalTests > 0 {
		successRate = float64(totalSuccess) / float64(totalTests) * 100
	}
	sb.WriteString(out.Sprintf("-----------------------------------------------------------------------------------------------------------------------------------------------\n"))
	sb.WriteString(out.Sprintf(" %-25s |      %5.1f %% | %15d |   %8d |   %8d |   %8d |   %8d |  %6d | %s\n", "TOTAL", successRate, totalNodes, totalSuccess, totalFailed, totalSkipped, totalNotTested, totalTests, ""))
	sb.WriteString(out.Sprintf("===============================================================================================================================================\n"))
	sb.WriteString(out.Sprintln())
	sb.WriteString(out.Sprintf("Total Time: %s\n", totalTime))
	sb.WriteString(out.Sprintf("Total NPS : %d\n", util.Nps(totalNodes, totalTime)))
	sb.WriteString(out.Sprintln())
	sb.WriteString(out.Sprintf("Configuration: %s\n", config.Settings.String()))
	sb.WriteString(out.Sprintln())

	return sb.String()
}
