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
	"github.com/exascience/samplesheet/samplesheet"
)

// FilterHelp is the help string for this command.
const FilterHelp = "\nfilter parameters:\n" +
	"samplesheet filter sample-sheet output-file --column name --value value\n" +
	"[--exclude]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"Keeps the records whose column equals the value, ignoring case, or drops them with --exclude.\n"

// FilterCmd implements the samplesheet filter command.
type FilterCmd struct {
	Sheet   string `arg:"" help:"Input sample sheet." type:"existingfile"`
	Output  string `arg:"" help:"Output sample sheet, .xz for compressed output." type:"path"`
	Column  string `required:"" help:"Column to compare."`
	Value   string `required:"" help:"Value to compare with, ignoring case."`
	Exclude bool   `help:"Drop the matching records instead of keeping them."`
}

// Help returns the detailed help of the command.
func (c *FilterCmd) Help() string { return FilterHelp }

// Run executes the command.
func (c *FilterCmd) Run(globals *Globals) error {
	if err := globals.setup("filter"); err != nil {
		return err
	}
	mode := samplesheet.Include
	if c.Exclude {
		mode = samplesheet.Exclude
	}
	return timedRun(globals.Timed, "Filtering sample sheet.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		if err := doc.Filter(c.Column, c.Value, mode); err != nil {
			return err
		}
		return writeDocument(doc, c.Output)
	})
}
