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

// PseudoLaneHelp is the help string for this command.
const PseudoLaneHelp = "\npseudo-lane parameters:\n" +
	"samplesheet pseudo-lane sample-sheet output-file\n" +
	"[--lane lane | --lanes lane,lane,...]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"Without --lane, every record is copied once per lane (default: the configured pseudo lanes).\n"

// PseudoLaneCmd implements the samplesheet pseudo-lane command.
type PseudoLaneCmd struct {
	Sheet  string   `arg:"" help:"Input sample sheet." type:"existingfile"`
	Output string   `arg:"" help:"Output sample sheet, .xz for compressed output." type:"path"`
	Lane   string   `help:"Assign this single lane to every record." xor:"lanes"`
	Lanes  []string `help:"Copy every record once per lane." xor:"lanes"`
}

// Help returns the detailed help of the command.
func (c *PseudoLaneCmd) Help() string { return PseudoLaneHelp }

// Run executes the command.
func (c *PseudoLaneCmd) Run(globals *Globals) error {
	if err := globals.setup("pseudo-lane"); err != nil {
		return err
	}
	return timedRun(globals.Timed, "Adding pseudo lanes.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		if c.Lane != "" {
			doc.AddPseudoLane(c.Lane)
		} else {
			lanes := c.Lanes
			if len(lanes) == 0 {
				lanes = doc.Options.PseudoLanes
			}
			if err := doc.AddPseudoLanes(lanes); err != nil {
				return err
			}
		}
		return writeDocument(doc, c.Output)
	})
}
