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
	"github.com/google/uuid"

	"github.com/exascience/samplesheet/utils"
)

// A Record is one row of the data section. It keeps the order in
// which its fields were set, so that records can be formatted and
// compared field by field.
type Record struct {
	fields []string
	values utils.StringMap
}

// NewRecord allocates and initializes an empty Record.
func NewRecord() *Record {
	return &Record{values: make(utils.StringMap)}
}

// Get returns the value of the given field, and whether it is present.
func (record *Record) Get(field string) (string, bool) {
	value, found := record.values[field]
	return value, found
}

// Value returns the value of the given field, or "" if it is not
// present.
func (record *Record) Value(field string) string {
	return record.values[field]
}

// Has reports whether the given field is present.
func (record *Record) Has(field string) bool {
	_, found := record.values[field]
	return found
}

// Set sets the value of the given field. New fields are added after
// all existing fields.
func (record *Record) Set(field, value string) {
	if record.values.SetUniqueEntry(field, value) {
		record.fields = append(record.fields, field)
		return
	}
	record.values[field] = value
}

// Fields returns the field names of the record in order.
func (record *Record) Fields() []string {
	return append([]string(nil), record.fields...)
}

// Len returns the number of fields in the record.
func (record *Record) Len() int {
	return len(record.fields)
}

// Clone returns a deep copy of the record.
func (record *Record) Clone() *Record {
	return &Record{
		fields: append([]string(nil), record.fields...),
		values: record.values.Clone(),
	}
}

// Sections holds the raw lines of the header sections of a sample
// sheet, in the order in which the sections first appeared.
type Sections struct {
	names []string
	lines map[string][]string
}

// NewSections allocates and initializes an empty Sections.
func NewSections() *Sections {
	return &Sections{lines: make(map[string][]string)}
}

// Names returns the section names in order.
func (sections *Sections) Names() []string {
	return append([]string(nil), sections.names...)
}

// Has reports whether the given section exists.
func (sections *Sections) Has(name string) bool {
	_, found := sections.lines[name]
	return found
}

// Lines returns the raw lines of the given section. The result must
// not be modified.
func (sections *Sections) Lines(name string) ([]string, bool) {
	lines, found := sections.lines[name]
	return lines, found
}

// Add makes sure the given section exists, appending it to the
// section order if it is new.
func (sections *Sections) Add(name string) {
	if _, found := sections.lines[name]; !found {
		sections.names = append(sections.names, name)
		sections.lines[name] = []string{}
	}
}

// Append adds a raw line to the given section, creating the section
// if necessary.
func (sections *Sections) Append(name, line string) {
	sections.Add(name)
	sections.lines[name] = append(sections.lines[name], line)
}

// Set replaces the raw lines of the given section, creating the
// section if necessary.
func (sections *Sections) Set(name string, lines []string) {
	sections.Add(name)
	sections.lines[name] = lines
}

// Clone returns a deep copy of the sections.
func (sections *Sections) Clone() *Sections {
	result := &Sections{
		names: append([]string(nil), sections.names...),
		lines: make(map[string][]string, len(sections.lines)),
	}
	for name, lines := range sections.lines {
		result.lines[name] = append([]string{}, lines...)
	}
	return result
}

// Document is the in-memory representation of a sample sheet.
type Document struct {
	// ID identifies the document in log output.
	ID string
	// Source is the file the document was parsed from.
	Source string
	// Options the document was parsed with.
	Options Options
	// Sections are the header sections, that is all sections except
	// the data section.
	Sections *Sections
	// DataHeader lists the unique column names of the data section.
	DataHeader []string
	// Records are the rows of the data section.
	Records []*Record

	indexColumns []string
}

// NewDocument allocates and initializes an empty Document.
func NewDocument(opts Options) *Document {
	return &Document{
		ID:       uuid.New().String(),
		Options:  opts.withDefaults(),
		Sections: NewSections(),
	}
}

// HasColumn reports whether the data header declares the given column.
func (doc *Document) HasColumn(column string) bool {
	for _, c := range doc.DataHeader {
		if c == column {
			return true
		}
	}
	return false
}

// addColumn appends a column to the data header unless it is already
// declared.
func (doc *Document) addColumn(column string) {
	if !doc.HasColumn(column) {
		doc.DataHeader = append(doc.DataHeader, column)
	}
}

// requireColumn checks that every record has the given field.
func (doc *Document) requireColumn(column string) error {
	for i, record := range doc.Records {
		if !record.Has(column) {
			return missingColumn(column, doc.Source, i)
		}
	}
	return nil
}

// derive returns a new Document that is a deep copy of doc, except
// that its records are deep copies of the given records.
func (doc *Document) derive(records []*Record) *Document {
	opts := doc.Options
	opts.PseudoLanes = append([]string(nil), opts.PseudoLanes...)
	result := &Document{
		ID:           uuid.New().String(),
		Source:       doc.Source,
		Options:      opts,
		Sections:     doc.Sections.Clone(),
		DataHeader:   append([]string(nil), doc.DataHeader...),
		Records:      make([]*Record, len(records)),
		indexColumns: append([]string(nil), doc.indexColumns...),
	}
	for i, record := range records {
		result.Records[i] = record.Clone()
	}
	return result
}

// Clone returns a deep copy of the document with a fresh ID.
func (doc *Document) Clone() *Document {
	return doc.derive(doc.Records)
}
