// Copyright 2012 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nin-build/dcache"
)

const testFilename = "BuildLogPerfTest-tempfile"

type noDeadPaths struct{}

func (noDeadPaths) IsPathDead(string) bool { return false }

// syntheticEdge stands in for a fully evaluated build-graph edge: perftest
// only cares about RecordCommand's hot path, not the evaluator that would
// normally produce these values.
type syntheticEdge struct {
	output  string
	command string
}

func (e *syntheticEdge) Outputs() []string { return []string{e.output} }
func (e *syntheticEdge) Command() string   { return e.command }

// writeTestData fabricates a log with a command-length distribution
// modeled on a real large build (see the histogram below) and appends one
// entry per synthetic output.
//
// A histogram of command lengths in chromium. For example, 407 builds,
// 1.4% of all builds, had commands longer than 32 bytes but shorter than 64.
//      32    407   1.4%
//      64    183   0.6%
//     128   1461   5.1%
//     256    791   2.8%
//     512   1314   4.6%
//    1024   6114  21.3%
//    2048  11759  41.0%
//    4096   2056   7.2%
//    8192   4567  15.9%
//   16384     13   0.0%
//   32768      4   0.0%
//   65536      5   0.0%
// The average command length is 4.1 kB and there were 28674 commands in
// total, which makes for a total log size of ~120 MB (also counting output
// filenames). Based on that, this writes 30000 command lines around 4 kB
// each.
func writeTestData() error {
	log := nin.NewBuildLog()
	if err := log.OpenForWrite(testFilename, noDeadPaths{}); err != nil {
		return err
	}

	const ruleSize = 4000
	longCommand := "gcc "
	for i := 0; len(longCommand) < ruleSize; i++ {
		longCommand += fmt.Sprintf("-I../../and/arbitrary/but/fairly/long/path/suffixed/%d ", i)
	}

	const numCommands = 30000
	for i := int32(0); i < numCommands; i++ {
		edge := &syntheticEdge{
			output:  fmt.Sprintf("input%d.o", i),
			command: fmt.Sprintf("%s input%d.cc -o input%d.o", longCommand, i, i),
		}
		if err := log.RecordCommand(edge, 100*i, 100*i+1, 0); err != nil {
			return err
		}
	}
	return log.Close()
}

func mainImpl() error {
	if err := writeTestData(); err != nil {
		return fmt.Errorf("failed to write test data: %w", err)
	}

	{
		// Read once to warm up disk cache.
		log := nin.NewBuildLog()
		if status, err := log.Load(testFilename); status == nin.LoadError {
			return fmt.Errorf("failed to read test data: %w", err)
		}
	}

	const repetitions = 5
	var times []time.Duration
	for i := 0; i < repetitions; i++ {
		start := time.Now()
		log := nin.NewBuildLog()
		if status, err := log.Load(testFilename); status == nin.LoadError {
			return fmt.Errorf("failed to read test data: %w", err)
		}
		delta := time.Since(start)
		fmt.Printf("%s\n", delta.Round(time.Microsecond))
		times = append(times, delta)
	}

	min, max, total := times[0], times[0], time.Duration(0)
	for _, d := range times {
		total += d
		if d < min {
			min = d
		} else if d > max {
			max = d
		}
	}
	avg := total / time.Duration(len(times))
	fmt.Printf("min %s  max %s  avg %s\n", min.Round(time.Microsecond), max.Round(time.Microsecond), avg.Round(time.Microsecond))
	return os.Remove(testFilename)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "build_log_perftest: %s\n", err)
		os.Exit(1)
	}
}
