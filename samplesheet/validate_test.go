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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var permissiveSchema = []byte(`{"type": "array", "items": {"type": "object"}}`)

func readSchema(t *testing.T) []byte {
	t.Helper()
	schema, err := os.ReadFile(filepath.Join("testdata", "schema.json"))
	if err != nil {
		t.Fatal(err)
	}
	return schema
}

func TestValidateValidSheet(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "SampleSheet.csv"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	messages, err := doc.ValidateFile(filepath.Join("testdata", "schema.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 0 {
		t.Errorf("unexpected violations %v", messages)
	}
}

func TestSameIDAndName(t *testing.T) {
	doc := parseString(t, "[Data]\nSample_ID,Sample_Name,index,index2,Description,Sample_Project\nS1,S1,ACGT,TGCA,Plain,proj:alice\n")
	messages, err := doc.Validate(permissiveSchema)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0] != "same ID and name not allowed: S1" {
		t.Errorf("unexpected violations %v", messages)
	}
	record := doc.Records[0]
	if record.Value("Sample_Project") != "proj" || record.Value("Description") != "PLAIN" {
		t.Errorf("record not normalized: %v, %v", record.Value("Sample_Project"), record.Value("Description"))
	}
	if err := doc.ReverseComplement("index2"); err != nil {
		t.Fatal(err)
	}
	if index2 := record.Value("index2"); index2 != "TGCA" {
		t.Errorf("palindromic index changed: %v", index2)
	}
}

func TestCheckSemantics(t *testing.T) {
	doc := parseString(t, `[Data]
Sample_ID,Sample_Name,I5_Index_ID,index,index2,Sample_Project,Description
A1,N1,,ACGT,,P,DNA
A2,N2,D501,ACGT,,P,DNA
A3,N3,,ACGT,,P,10X
A4,N4,,SI-GA-A1,,P,DNA
A5,N5,,SI-NA-B12,ACGT,P,10x
A6,A6,D501,ACGT,,P,DNA
`)
	expected := map[int][]string{
		1: {"missing I5 index sequence: A2"},
		2: {"required single-cell index missing: A3"},
		3: {"found single-cell index without single-cell description: A4"},
		4: {"I5 index not allowed for single-cell sample: A5"},
		5: {"same ID and name not allowed: A6", "missing I5 index sequence: A6"},
	}
	violations := doc.CheckSemantics()
	if len(violations) != len(expected) {
		t.Fatalf("expected %v violations, got %v", len(expected), violations)
	}
	for _, v := range violations {
		if !stringsEqual(v.Messages, expected[v.Row]) {
			t.Errorf("row %v: expected %v, got %v", v.Row, expected[v.Row], v.Messages)
		}
		if v.SampleID != doc.Records[v.Row].Value(SampleIDColumn) {
			t.Errorf("row %v: wrong sample ID %v", v.Row, v.SampleID)
		}
	}
}

func TestValidateSchema(t *testing.T) {
	doc := parseString(t, "[Data]\nSample_ID,index,Sample_Project,Description\nIGF1,ACGT,P,D\nbad,ACGT,P,D\n")
	violations, err := doc.ValidateSchema(readSchema(t))
	if err != nil {
		t.Fatal(err)
	}
	expected := []SchemaViolation{
		{Row: 0, Field: "Sample_Name"},
		{Row: 1, Field: "Sample_ID"},
		{Row: 1, Field: "Sample_Name"},
	}
	if len(violations) != len(expected) {
		t.Fatalf("expected %v violations, got %v", len(expected), violations)
	}
	for i, v := range violations {
		if v.Row != expected[i].Row || v.Field != expected[i].Field || v.Message == "" {
			t.Errorf("expected violation of %v in row %v, got %v", expected[i].Field, expected[i].Row, v)
		}
	}
	if s := violations[1].String(); !strings.HasPrefix(s, "row 2, Sample_ID: ") {
		t.Errorf("unexpected message %v", s)
	}
	messages, err := doc.Validate(readSchema(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 3 {
		t.Errorf("expected 3 messages, got %v", messages)
	}
}

func TestValidateSchemaErrors(t *testing.T) {
	doc := parseString(t, normalizedSheet)
	if _, err := doc.Validate([]byte("not json")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
	if _, err := doc.ValidateFile(filepath.Join(t.TempDir(), "schema.json")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestSchemaViolationString(t *testing.T) {
	tests := []struct {
		v        SchemaViolation
		expected string
	}{
		{SchemaViolation{Row: -1, Message: "Invalid type"}, "Invalid type"},
		{SchemaViolation{Row: 0, Message: "Invalid type"}, "row 1: Invalid type"},
		{SchemaViolation{Row: 2, Field: "index", Message: "Does not match"}, "row 3, index: Does not match"},
	}
	for _, test := range tests {
		if s := test.v.String(); s != test.expected {
			t.Errorf("expected %q, got %q", test.expected, s)
		}
	}
}

func TestIsSingleCellIndex(t *testing.T) {
	for index, expected := range map[string]bool{
		"SI-GA-A1":  true,
		"SI-NA-H12": true,
		"SI-TT-A1":  false,
		"si-ga-a1":  false,
		"ACGTACGT":  false,
		"":          false,
	} {
		if IsSingleCellIndex(index) != expected {
			t.Errorf("IsSingleCellIndex(%q) != %v", index, expected)
		}
	}
}
