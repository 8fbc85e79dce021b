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

// Package cmd implements the commands of the samplesheet binary.
package cmd

// HelpMessage is printed to show the --help flag.
const HelpMessage = "Print command details:\n" +
	"samplesheet command --help\n"

// CLI is the command line of the samplesheet binary.
type CLI struct {
	Globals

	Validate          ValidateCmd          `cmd:"" help:"Validate a sample sheet against a JSON schema and the domain rules."`
	Filter            FilterCmd            `cmd:"" help:"Keep or drop the records with a given column value."`
	ReverseComplement ReverseComplementCmd `cmd:"" name:"reverse-complement" help:"Reverse complement an index column."`
	PseudoLane        PseudoLaneCmd        `cmd:"" name:"pseudo-lane" help:"Add a PseudoLane column."`
	Split             SplitCmd             `cmd:"" help:"Split a sample sheet by combined index length."`
	Header            HeaderCmd            `cmd:"" help:"Check, add or remove header section lines."`
	Info              InfoCmd              `cmd:"" help:"Print platform, lanes, projects and index lengths."`
	SingleCell        SingleCellCmd        `cmd:"" name:"singlecell" help:"Expand single-cell kit barcodes into index sequences."`
}
