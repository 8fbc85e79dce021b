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

// SingleCellHelp is the help string for this command.
const SingleCellHelp = "\nsinglecell parameters:\n" +
	"samplesheet singlecell sample-sheet output-file --barcodes barcodes.json\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"Replaces single-cell kit barcode names by one record per barcode sequence.\n"

// SingleCellCmd implements the samplesheet singlecell command.
type SingleCellCmd struct {
	Sheet    string `arg:"" help:"Input sample sheet." type:"existingfile"`
	Output   string `arg:"" help:"Output sample sheet, .xz for compressed output." type:"path"`
	Barcodes string `required:"" help:"JSON file mapping barcode names onto sequences." type:"existingfile"`
}

// Help returns the detailed help of the command.
func (c *SingleCellCmd) Help() string { return SingleCellHelp }

// Run executes the command.
func (c *SingleCellCmd) Run(globals *Globals) error {
	if err := globals.setup("singlecell"); err != nil {
		return err
	}
	return timedRun(globals.Timed, "Expanding single-cell barcodes.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		table, err := samplesheet.LoadBarcodeTable(c.Barcodes)
		if err != nil {
			return err
		}
		if err := doc.ExpandSingleCellIndexes(table); err != nil {
			return err
		}
		return writeDocument(doc, c.Output)
	})
}
