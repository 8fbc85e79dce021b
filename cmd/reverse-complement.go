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

// ReverseComplementHelp is the help string for this command.
const ReverseComplementHelp = "\nreverse-complement parameters:\n" +
	"samplesheet reverse-complement sample-sheet output-file\n" +
	"[--column index2]\n" +
	"[--log-path path]\n" +
	"[--timed]\n"

// ReverseComplementCmd implements the samplesheet reverse-complement
// command.
type ReverseComplementCmd struct {
	Sheet  string `arg:"" help:"Input sample sheet." type:"existingfile"`
	Output string `arg:"" help:"Output sample sheet, .xz for compressed output." type:"path"`
	Column string `help:"Index column to reverse complement." default:"index2"`
}

// Help returns the detailed help of the command.
func (c *ReverseComplementCmd) Help() string { return ReverseComplementHelp }

// Run executes the command.
func (c *ReverseComplementCmd) Run(globals *Globals) error {
	if err := globals.setup("reverse-complement"); err != nil {
		return err
	}
	return timedRun(globals.Timed, "Reverse complementing index column.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		if !doc.HasColumn(c.Column) {
			return &samplesheet.ColumnError{Column: c.Column, Source: c.Sheet, Row: -1, Err: samplesheet.ErrMissingColumn}
		}
		if err := doc.ReverseComplement(c.Column); err != nil {
			return err
		}
		return writeDocument(doc, c.Output)
	})
}
