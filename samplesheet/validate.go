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
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	psort "github.com/exascience/pargo/sort"
	"github.com/xeipuuv/gojsonschema"
)

// singleCellIndexPattern matches the names of single-cell library kit
// barcodes, such as SI-GA-A1.
var singleCellIndexPattern = regexp.MustCompile(`^SI-[GN]A-[A-Z][0-9]+`)

// IsSingleCellIndex reports whether index is a single-cell kit barcode
// name rather than a sequence.
func IsSingleCellIndex(index string) bool {
	return singleCellIndexPattern.MatchString(index)
}

func singleCellKeywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(keyword) + `$`)
}

// A SchemaViolation is a record that does not conform to the schema.
// Row is -1 for violations of the record list as a whole.
type SchemaViolation struct {
	Row     int
	Field   string
	Message string
}

func (v SchemaViolation) String() string {
	switch {
	case v.Row < 0:
		return v.Message
	case v.Field == "":
		return fmt.Sprintf("row %d: %s", v.Row+1, v.Message)
	default:
		return fmt.Sprintf("row %d, %s: %s", v.Row+1, v.Field, v.Message)
	}
}

// A SemanticViolation collects the domain rule violations of a record.
type SemanticViolation struct {
	Row      int
	SampleID string
	Messages []string
}

func (v SemanticViolation) String() string {
	return strings.Join(v.Messages, "\n")
}

func newSchemaViolation(e gojsonschema.ResultError) SchemaViolation {
	v := SchemaViolation{Row: -1, Message: e.Description()}
	if path := e.Field(); path != "(root)" {
		head, rest, _ := strings.Cut(path, ".")
		if row, err := strconv.Atoi(head); err == nil {
			v.Row, v.Field = row, rest
		} else {
			v.Field = path
		}
	}
	if v.Field == "" {
		if property, ok := e.Details()["property"].(string); ok {
			v.Field = property
		}
	}
	return v
}

type violationSorter []SchemaViolation

func (s violationSorter) SequentialSort(i, j int) {
	sub := s[i:j]
	sort.SliceStable(sub, sub.Less)
}

func (s violationSorter) NewTemp() psort.StableSorter {
	return violationSorter(make([]SchemaViolation, len(s)))
}

func (s violationSorter) Len() int {
	return len(s)
}

func (s violationSorter) Less(i, j int) bool {
	if s[i].Row != s[j].Row {
		return s[i].Row < s[j].Row
	}
	if s[i].Field != s[j].Field {
		return s[i].Field < s[j].Field
	}
	return s[i].Message < s[j].Message
}

func (s violationSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(violationSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// schemaRows converts the records into the JSON shape the schema
// describes: one object per record, with every data header column
// present. Missing values are empty strings.
func (doc *Document) schemaRows() []map[string]interface{} {
	rows := make([]map[string]interface{}, len(doc.Records))
	for i, record := range doc.Records {
		row := make(map[string]interface{}, len(doc.DataHeader))
		for _, column := range doc.DataHeader {
			row[column] = record.Value(column)
		}
		rows[i] = row
	}
	return rows
}

// ValidateSchema validates the records against a draft-04 JSON
// schema. All violations are returned, sorted by row and field. An
// error is only returned when the schema itself is unusable.
func (doc *Document) ValidateSchema(schema []byte) ([]SchemaViolation, error) {
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft4
	loader.AutoDetect = false
	compiled, err := loader.Compile(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, &ArgumentError{Name: "schema", Reason: err.Error()}
	}
	result, err := compiled.Validate(gojsonschema.NewGoLoader(doc.schemaRows()))
	if err != nil {
		return nil, &ArgumentError{Name: "schema", Reason: err.Error()}
	}
	violations := make([]SchemaViolation, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, newSchemaViolation(e))
	}
	psort.StableSort(violationSorter(violations))
	return violations, nil
}

// CheckSemantics applies the domain rules to every record, and returns
// one violation per offending record, in record order.
func (doc *Document) CheckSemantics() []SemanticViolation {
	singleCell := singleCellKeywordPattern(doc.Options.SingleCellKeyword)
	description := doc.Options.DescriptionColumn
	var result []SemanticViolation
	for i, record := range doc.Records {
		sampleID := record.Value(SampleIDColumn)
		index := record.Value(DefaultIndexColumn)
		index2 := record.Value(DefaultIndex2Column)
		isSingleCell := singleCell.MatchString(record.Value(description))
		hasSingleCellIndex := IsSingleCellIndex(index)

		var messages []string
		if sampleID == record.Value(SampleNameColumn) {
			messages = append(messages, "same ID and name not allowed: "+sampleID)
		}
		if record.Value(I5IndexIDColumn) != "" && index2 == "" {
			messages = append(messages, "missing I5 index sequence: "+sampleID)
		}
		if isSingleCell && !hasSingleCellIndex {
			messages = append(messages, "required single-cell index missing: "+sampleID)
		}
		if !isSingleCell && hasSingleCellIndex {
			messages = append(messages, "found single-cell index without single-cell description: "+sampleID)
		}
		if isSingleCell && hasSingleCellIndex && index2 != "" {
			messages = append(messages, "I5 index not allowed for single-cell sample: "+sampleID)
		}
		if len(messages) > 0 {
			result = append(result, SemanticViolation{Row: i, SampleID: sampleID, Messages: messages})
		}
	}
	return result
}

// Validate runs the schema pass and the semantic pass, and returns
// the schema violations followed by the semantic violations as
// messages. An empty result means the document is valid.
func (doc *Document) Validate(schema []byte) ([]string, error) {
	schemaViolations, err := doc.ValidateSchema(schema)
	if err != nil {
		return nil, err
	}
	semanticViolations := doc.CheckSemantics()
	messages := make([]string, 0, len(schemaViolations)+len(semanticViolations))
	for _, v := range schemaViolations {
		messages = append(messages, v.String())
	}
	for _, v := range semanticViolations {
		messages = append(messages, v.String())
	}
	return messages, nil
}

// ValidateFile is Validate with the schema read from a file.
func (doc *Document) ValidateFile(schemaFile string) ([]string, error) {
	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Resource: "schema file", ID: schemaFile, Err: err}
		}
		return nil, err
	}
	return doc.Validate(schema)
}
