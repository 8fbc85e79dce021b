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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/exascience/samplesheet/samplesheet"
)

var (
	hiseqSheet   = filepath.Join("..", "samplesheet", "testdata", "SampleSheet.csv")
	nextseqSheet = filepath.Join("..", "samplesheet", "testdata", "NextSeqSheet.csv")
	schemaFile   = filepath.Join("..", "samplesheet", "testdata", "schema.json")
	barcodesFile = filepath.Join("..", "samplesheet", "testdata", "barcodes.json")
	runParams    = filepath.Join("..", "runparams", "testdata", "HiSeqRunParameters.xml")
)

func testGlobals() *Globals {
	return &Globals{LogLevel: "error", LogFormat: "text"}
}

func TestParseCommandLine(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("samplesheet"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse([]string{"--log-level", "debug", "filter", hiseqSheet, "out.csv", "--column", "Lane", "--value", "1", "--exclude"})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Command() != "filter <sheet> <output>" {
		t.Errorf("unexpected command %v", ctx.Command())
	}
	if cli.LogLevel != "debug" || cli.Filter.Column != "Lane" || cli.Filter.Value != "1" || !cli.Filter.Exclude {
		t.Errorf("flags not parsed: %+v", cli)
	}
	if _, err := parser.Parse([]string{"header", hiseqSheet, "--key", "Date", "--op", "replace"}); err == nil {
		t.Error("invalid header operation accepted")
	}
}

func TestValidateCmd(t *testing.T) {
	var out bytes.Buffer
	if err := (&ValidateCmd{Sheet: hiseqSheet, Schema: schemaFile}).Run(testGlobals(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %v", out.String())
	}
	invalid := filepath.Join(t.TempDir(), "invalid.csv")
	sheet := "[Data]\nSample_ID,Sample_Name,index,Sample_Project,Description\nIGF1,IGF1,ACGT,P,D\n"
	if err := os.WriteFile(invalid, []byte(sheet), 0666); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	err := (&ValidateCmd{Sheet: invalid, Schema: schemaFile}).Run(testGlobals(), &out)
	if !errors.Is(err, ErrInvalidSheet) {
		t.Errorf("expected invalid sheet error, got %v", err)
	}
	if !strings.Contains(out.String(), "same ID and name not allowed: IGF1") {
		t.Errorf("violation not printed: %v", out.String())
	}
}

func TestFilterCmd(t *testing.T) {
	output := filepath.Join(t.TempDir(), "filtered.csv")
	cmd := &FilterCmd{Sheet: hiseqSheet, Output: output, Column: "Lane", Value: "2", Exclude: true}
	if err := cmd.Run(testGlobals()); err != nil {
		t.Fatal(err)
	}
	doc, err := samplesheet.ParseFile(output, samplesheet.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 2 {
		t.Errorf("expected 2 records, got %v", len(doc.Records))
	}
	if err := cmd.Run(testGlobals()); !errors.Is(err, samplesheet.ErrNotFound) {
		t.Errorf("existing output overwritten, got %v", err)
	}
}

func TestReverseComplementCmd(t *testing.T) {
	output := filepath.Join(t.TempDir(), "rc.csv")
	if err := (&ReverseComplementCmd{Sheet: hiseqSheet, Output: output, Column: "index2"}).Run(testGlobals()); err != nil {
		t.Fatal(err)
	}
	doc, err := samplesheet.ParseFile(output, samplesheet.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if index2 := doc.Records[0].Value("index2"); index2 != "AGGCTATA" {
		t.Errorf("expected AGGCTATA, got %v", index2)
	}
	err = (&ReverseComplementCmd{Sheet: hiseqSheet, Output: output + ".2", Column: "index3"}).Run(testGlobals())
	if !errors.Is(err, samplesheet.ErrMissingColumn) {
		t.Errorf("expected missing column error, got %v", err)
	}
}

func TestPseudoLaneCmd(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cmd     PseudoLaneCmd
		records int
	}{
		{"default lanes", PseudoLaneCmd{Sheet: nextseqSheet}, 12},
		{"two lanes", PseudoLaneCmd{Sheet: nextseqSheet, Lanes: []string{"1", "2"}}, 6},
		{"single lane", PseudoLaneCmd{Sheet: nextseqSheet, Lane: "1"}, 3},
	}
	for i, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.cmd.Output = filepath.Join(dir, "lanes"+string(rune('0'+i))+".csv")
			if err := test.cmd.Run(testGlobals()); err != nil {
				t.Fatal(err)
			}
			doc, err := samplesheet.ParseFile(test.cmd.Output, samplesheet.DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			if len(doc.Records) != test.records {
				t.Errorf("expected %v records, got %v", test.records, len(doc.Records))
			}
			if !doc.HasColumn(samplesheet.PseudoLaneColumn) {
				t.Error("PseudoLane column missing")
			}
		})
	}
}

func TestSplitCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "split")
	cmd := &SplitCmd{Sheet: nextseqSheet, OutputDir: dir, Compress: true}
	if err := cmd.Run(testGlobals()); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"NextSeqSheet_6.csv.xz", "NextSeqSheet_8.csv.xz"} {
		doc, err := samplesheet.ParseFile(filepath.Join(dir, name), samplesheet.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(doc.Records) != 1 {
			t.Errorf("%v: expected 1 record, got %v", name, len(doc.Records))
		}
	}
	if err := cmd.Run(testGlobals()); !errors.Is(err, samplesheet.ErrNotFound) {
		t.Errorf("existing output overwritten, got %v", err)
	}
}

func TestHeaderCmd(t *testing.T) {
	var out bytes.Buffer
	if err := (&HeaderCmd{Sheet: hiseqSheet, Op: "check", Key: "date"}).Run(testGlobals(), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "1\n" {
		t.Errorf("unexpected count %q", out.String())
	}
	if err := (&HeaderCmd{Sheet: hiseqSheet, Op: "add", Key: "Chemistry"}).Run(testGlobals(), &out); !errors.Is(err, samplesheet.ErrInvalidArgument) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
	output := filepath.Join(t.TempDir(), "header.csv")
	if err := (&HeaderCmd{Sheet: hiseqSheet, Output: output, Op: "add", Key: "Chemistry", Value: "Amplicon"}).Run(testGlobals(), &out); err != nil {
		t.Fatal(err)
	}
	doc, err := samplesheet.ParseFile(output, samplesheet.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if count, _ := doc.CheckHeader("Header", "chemistry"); count != 1 {
		t.Errorf("header line not added, count %v", count)
	}
}

func TestInfoCmd(t *testing.T) {
	var out bytes.Buffer
	if err := (&InfoCmd{Sheet: hiseqSheet, RunParameters: runParams}).Run(testGlobals(), &out); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"platform: HiSeq FASTQ Only\n",
		"flowcell: HiSeq 3000/4000 PE\n",
		"lanes: 1,2\n",
		"records: 4\n",
		"project: ProjectA : 1\n",
		"index2 length 0: 2\n",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("missing %q in output:\n%v", line, out.String())
		}
	}
}

func TestSingleCellCmd(t *testing.T) {
	output := filepath.Join(t.TempDir(), "singlecell.csv")
	if err := (&SingleCellCmd{Sheet: hiseqSheet, Output: output, Barcodes: barcodesFile}).Run(testGlobals()); err != nil {
		t.Fatal(err)
	}
	doc, err := samplesheet.ParseFile(output, samplesheet.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 7 {
		t.Errorf("expected 7 records, got %v", len(doc.Records))
	}
}

func TestConfig(t *testing.T) {
	globals := testGlobals()
	globals.Config = filepath.Join("..", "samplesheet", "testdata", "options.yaml")
	var out bytes.Buffer
	if err := (&InfoCmd{Sheet: hiseqSheet}).Run(globals, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "lanes: 1\n") {
		t.Errorf("platform prefix not configured:\n%v", out.String())
	}
}
