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

package samplesheet

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilter(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "SampleSheet.csv"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	included, excluded := doc.Clone(), doc.Clone()
	if err := included.Filter("Sample_Project", "projecta", Include); err != nil {
		t.Fatal(err)
	}
	if err := excluded.Filter("Sample_Project", "projecta", Exclude); err != nil {
		t.Fatal(err)
	}
	if len(included.Records) != 2 || len(excluded.Records) != 2 {
		t.Fatalf("unexpected partition %v/%v", len(included.Records), len(excluded.Records))
	}
	seen := make(map[string]bool)
	for _, record := range append(included.Records, excluded.Records...) {
		id := record.Value(SampleIDColumn)
		if seen[id] {
			t.Errorf("record %v kept by both modes", id)
		}
		seen[id] = true
	}
	if len(seen) != len(doc.Records) {
		t.Error("filter modes are not complementary")
	}
	if included.Records[0].Value(SampleIDColumn) != "IGF0001" || included.Records[1].Value(SampleIDColumn) != "IGF0002" {
		t.Error("record order not preserved")
	}
}

func TestFilterNoTrim(t *testing.T) {
	doc := parseString(t, "[Data]\nSample_ID,index,Sample_Project,Description\nS1,ACGT, P,D\nS2,ACGT,P,D\n")
	if err := doc.Filter("Sample_Project", "p", Include); err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 1 || doc.Records[0].Value(SampleIDColumn) != "S2" {
		t.Error("leading whitespace ignored")
	}
}

func TestFilterErrors(t *testing.T) {
	doc := parseString(t, "[Data]\nSample_Project,Description,Sample_ID,index,Lane\nP,D,S1,ACGT,1\nP,D,S2,ACGT\n")
	if err := doc.Filter("Lane", "1", Include); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected missing column error, got %v", err)
	}
	if err := doc.Filter("Sample_ID", "S1", FilterMode("keep")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
	if err := doc.Filter("Sample_ID", "S1", FilterMode("Include")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument error for upper case mode, got %v", err)
	}
	if len(doc.Records) != 2 {
		t.Error("document modified on failure")
	}
}

func TestMatch(t *testing.T) {
	doc := parseString(t, indexSheet)
	matches, err := doc.Match("index", "acgt")
	if err != nil {
		t.Fatal(err)
	}
	if matches.Count() != 1 || !matches.Test(0) {
		t.Errorf("unexpected matches %v", matches)
	}
}
