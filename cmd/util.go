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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/exascience/samplesheet/internal"
	"github.com/exascience/samplesheet/internal/logging"
	"github.com/exascience/samplesheet/samplesheet"
	"github.com/exascience/samplesheet/utils"
)

// ProgramMessage is the first line printed when the samplesheet binary
// is called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// ErrInvalidSheet is returned by commands that find validation
// violations.
var ErrInvalidSheet = errors.New("invalid sample sheet")

// Globals are the flags shared by all commands.
type Globals struct {
	LogPath   string `name:"log-path" help:"Also write the log to a timestamped file below this directory." type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (${enum})." enum:"debug,info,warn,error" default:"info"`
	LogFormat string `name:"log-format" help:"Log format (${enum})." enum:"text,json" default:"text"`
	Config    string `name:"config" help:"YAML file with sample sheet options." type:"existingfile"`
	Timed     bool   `name:"timed" help:"Log the elapsed time of the command."`
}

func (globals *Globals) options() (samplesheet.Options, error) {
	if globals.Config == "" {
		return samplesheet.DefaultOptions(), nil
	}
	return samplesheet.LoadOptions(globals.Config)
}

// setup configures logging for the given command.
func (globals *Globals) setup(command string) error {
	level, err := logging.ParseLevel(globals.LogLevel)
	if err != nil {
		return err
	}
	format := logging.FormatText
	if globals.LogFormat == "json" {
		format = logging.FormatJSON
	}
	if globals.LogPath == "" {
		logging.InitLogger(level, format, os.Stderr)
		return nil
	}
	return setLogOutput(globals.LogPath, level, format, command)
}

// parse reads a sample sheet with the configured options.
func (globals *Globals) parse(filename string) (*samplesheet.Document, error) {
	opts, err := globals.options()
	if err != nil {
		return nil, err
	}
	doc, err := samplesheet.ParseFile(filename, opts)
	if err != nil {
		return nil, err
	}
	logging.Info("read sample sheet", "file", filename, "document", doc.ID, "records", len(doc.Records))
	return doc, nil
}

func writeDocument(doc *samplesheet.Document, filename string) error {
	digest, err := doc.Write(filename)
	if err != nil {
		return err
	}
	logging.Info("wrote sample sheet", "file", filename, "document", doc.ID,
		"records", len(doc.Records), "blake3", digest)
	return nil
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/samplesheet/samplesheet-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput duplicates stderr into a new log file below path, so
// that the log file also receives messages that bypass the logger.
func setLogOutput(path string, level logging.Level, format logging.Format, command string) error {
	fullPath, err := internal.FullPathname(filepath.Join(path, createLogFilename()))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		return err
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		return err
	}

	logging.InitLogger(level, format, io.MultiWriter(f, ferr))
	logging.Info("created log file", "path", fullPath)
	logging.Info("command line", "command", command, "args", os.Args)
	return nil
}

func timedRun(timed bool, msg string, f func() error) error {
	if timed {
		logging.Info(msg)
		start := time.Now()
		defer func() {
			logging.Info("elapsed time", "command", msg, "duration", time.Since(start))
		}()
	}
	return f()
}
