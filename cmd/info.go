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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/exascience/samplesheet/runparams"
	"github.com/exascience/samplesheet/samplesheet"
)

// InfoHelp is the help string for this command.
const InfoHelp = "\ninfo parameters:\n" +
	"samplesheet info sample-sheet\n" +
	"[--run-parameters RunParameters.xml]\n" +
	"[--log-path path]\n" +
	"Prints the platform, lanes, projects and index length counts of a sample sheet.\n"

// InfoCmd implements the samplesheet info command.
type InfoCmd struct {
	Sheet         string `arg:"" help:"Input sample sheet." type:"existingfile"`
	RunParameters string `name:"run-parameters" help:"RunParameters.xml of the sequencing run." type:"existingfile"`
}

// Help returns the detailed help of the command.
func (c *InfoCmd) Help() string { return InfoHelp }

// Run executes the command.
func (c *InfoCmd) Run(globals *Globals, out io.Writer) error {
	if err := globals.setup("info"); err != nil {
		return err
	}
	doc, err := globals.parse(c.Sheet)
	if err != nil {
		return err
	}
	return c.report(doc, out)
}

func (c *InfoCmd) report(doc *samplesheet.Document, out io.Writer) error {
	platform, err := doc.Platform()
	if err != nil {
		return err
	}
	lanes, err := doc.LaneIDs(doc.Options.LaneColumn, doc.Options.PlatformPrefix)
	if err != nil {
		return err
	}
	projects, err := doc.ProjectLanes(doc.Options.ProjectColumn, doc.Options.LaneColumn)
	if err != nil {
		return err
	}
	counts, err := doc.IndexCount()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "platform:", platform)
	if c.RunParameters != "" {
		params, err := runparams.Open(c.RunParameters)
		if err != nil {
			return err
		}
		if application, ok := params.ApplicationName(); ok {
			fmt.Fprintln(out, "application:", application)
		}
		if flowcell, ok := params.Flowcell(); ok {
			fmt.Fprintln(out, "flowcell:", flowcell)
		}
	}
	fmt.Fprintln(out, "lanes:", strings.Join(lanes, ","))
	fmt.Fprintln(out, "records:", len(doc.Records))
	for _, project := range projects {
		fmt.Fprintln(out, "project:", project)
	}
	for _, column := range doc.IndexColumns() {
		lengths := make([]int, 0, len(counts[column]))
		for length := range counts[column] {
			lengths = append(lengths, length)
		}
		sort.Ints(lengths)
		for _, length := range lengths {
			fmt.Fprintf(out, "%v length %v: %v\n", column, length, counts[column][length])
		}
	}
	return nil
}
