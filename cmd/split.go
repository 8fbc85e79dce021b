// samplesheet: a sample sheet engine for sequencing run demultiplexing.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/samplesheet/internal/logging"
	"github.com/exascience/samplesheet/samplesheet"
)

// SplitHelp is the help string for this command.
const SplitHelp = "\nsplit parameters:\n" +
	"samplesheet split sample-sheet /path/to/output/\n" +
	"[--output-prefix name]\n" +
	"[--compress]\n" +
	"[--nr-of-threads nr]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"Writes one sample sheet per combined index length, named prefix_length.csv.\n"

// SplitCmd implements the samplesheet split command.
type SplitCmd struct {
	Sheet        string `arg:"" help:"Input sample sheet." type:"existingfile"`
	OutputDir    string `arg:"" help:"Directory for the output sample sheets." type:"path"`
	OutputPrefix string `name:"output-prefix" help:"Prefix for the output files (default: the input file name)."`
	Compress     bool   `help:"Write xz-compressed output files."`
	NrOfThreads  int    `name:"nr-of-threads" help:"Number of worker threads."`
}

// Help returns the detailed help of the command.
func (c *SplitCmd) Help() string { return SplitHelp }

func (c *SplitCmd) outputPrefix() string {
	if c.OutputPrefix != "" {
		return c.OutputPrefix
	}
	base := filepath.Base(c.Sheet)
	base = strings.TrimSuffix(base, samplesheet.XZExt)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run executes the command.
func (c *SplitCmd) Run(globals *Globals) error {
	if err := globals.setup("split"); err != nil {
		return err
	}
	if c.NrOfThreads > 0 {
		runtime.GOMAXPROCS(c.NrOfThreads)
	}
	return timedRun(globals.Timed, "Splitting sample sheet by index length.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		groups, err := doc.GroupByIndexLength()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(c.OutputDir, 0700); err != nil {
			return err
		}
		_, err = c.writeGroups(groups)
		return err
	})
}

// writeGroups writes all groups in parallel, and returns the names of
// the files, in index length order.
func (c *SplitCmd) writeGroups(groups map[int]*samplesheet.Document) ([]string, error) {
	lengths := make([]int, 0, len(groups))
	for length := range groups {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)
	ext := samplesheet.CsvExt
	if c.Compress {
		ext += samplesheet.XZExt
	}
	prefix := c.outputPrefix()
	filenames := make([]string, len(lengths))
	errs := make([]error, len(lengths))
	for i, length := range lengths {
		filenames[i] = filepath.Join(c.OutputDir, prefix+"_"+strconv.Itoa(length)+ext)
	}
	if len(lengths) > 0 {
		parallel.Range(0, len(lengths), 0, func(low, high int) {
			for i := low; i < high; i++ {
				errs[i] = writeDocument(groups[lengths[i]], filenames[i])
			}
		})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	logging.Info("split sample sheet", "file", c.Sheet, "groups", len(lengths))
	return filenames, nil
}
