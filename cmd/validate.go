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

	"github.com/exascience/samplesheet/internal/logging"
)

// ValidateHelp is the help string for this command.
const ValidateHelp = "\nvalidate parameters:\n" +
	"samplesheet validate sample-sheet --schema schema.json\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"Prints one line per schema or semantic violation, and fails if there is any.\n"

// ValidateCmd implements the samplesheet validate command.
type ValidateCmd struct {
	Sheet  string `arg:"" help:"Sample sheet to validate." type:"existingfile"`
	Schema string `required:"" help:"JSON schema (draft 4) for the data section." type:"existingfile"`
}

// Help returns the detailed help of the command.
func (c *ValidateCmd) Help() string { return ValidateHelp }

// Run executes the command.
func (c *ValidateCmd) Run(globals *Globals, out io.Writer) error {
	if err := globals.setup("validate"); err != nil {
		return err
	}
	return timedRun(globals.Timed, "Validating sample sheet.", func() error {
		doc, err := globals.parse(c.Sheet)
		if err != nil {
			return err
		}
		messages, err := doc.ValidateFile(c.Schema)
		if err != nil {
			return err
		}
		for _, msg := range messages {
			fmt.Fprintln(out, msg)
		}
		if len(messages) > 0 {
			return fmt.Errorf("%w %v: %d violations", ErrInvalidSheet, c.Sheet, len(messages))
		}
		logging.Info("sample sheet is valid", "file", c.Sheet)
		return nil
	})
}
