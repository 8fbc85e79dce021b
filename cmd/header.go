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

	"github.com/exascience/samplesheet/samplesheet"
)

// HeaderHelp is the help string for this command.
const HeaderHelp = "\nheader parameters:\n" +
	"samplesheet header sample-sheet [output-file] --key key\n" +
	"[--section name]\n" +
	"[--op add | remove | check]\n" +
	"[--value value]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"check prints the number of lines with the key and needs no output file.\n"

// HeaderCmd implements the samplesheet header command.
type HeaderCmd struct {
	Sheet   string `arg:"" help:"Input sample sheet." type:"existingfile"`
	Output  string `arg:"" optional:"" help:"Output sample sheet, .xz for compressed output." type:"path"`
	Section string `help:"Header section to modify (default: the configured header section)."`
	Op      string `help:"Operation (${enum})." enum:"add,remove,check" default:"check"`
	Key     string `required:"" help:"Leading token of the header line, matched ignoring case."`
	Value   string `help:"Value of an added header line."`
}

// Help returns the detailed help of the command.
func (c *HeaderCmd) Help() string { return HeaderHelp }

// Run executes the command.
func (c *HeaderCmd) Run(globals *Globals, out io.Writer) error {
	if err := globals.setup("header"); err != nil {
		return err
	}
	if c.Op != "check" && c.Output == "" {
		return &samplesheet.ArgumentError{Name: "output file", Reason: "required for " + c.Op}
	}
	return timedRun(globals.Timed, "Modifying sample sheet header.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		section := c.Section
		if section == "" {
			section = doc.Options.HeaderSection
		}
		if c.Op == "check" {
			count, err := doc.CheckHeader(section, c.Key)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, count)
			return nil
		}
		if err := doc.ModifyHeader(section, c.Op, c.Key, c.Value); err != nil {
			return err
		}
		return writeDocument(doc, c.Output)
	})
}
