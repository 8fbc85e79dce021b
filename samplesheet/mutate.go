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

import "golang.org/x/text/cases"

var complement [256]byte

func init() {
	for _, pair := range []string{"AT", "CG", "GC", "TA"} {
		complement[pair[0]] = pair[1]
		complement[pair[0]+'a'-'A'] = pair[1]
	}
}

// reverseComplement returns the upper-case reverse complement of an
// ACGT sequence, or the position of the first base that is not ACGT.
func reverseComplement(seq string) (string, int) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[i]]
		if c == 0 {
			return "", i
		}
		out[n-1-i] = c
	}
	return string(out), -1
}

// ReverseComplement replaces the value of the given index column by
// its reverse complement in every record that has the column. It fails
// without modifying any record if a value contains a base other than
// A, C, G or T.
func (doc *Document) ReverseComplement(column string) error {
	results := make([]string, len(doc.Records))
	for i, record := range doc.Records {
		value, found := record.Get(column)
		if !found {
			continue
		}
		rc, bad := reverseComplement(value)
		if bad >= 0 {
			return &EncodingError{Column: column, Row: i, Value: value, Base: value[bad]}
		}
		results[i] = rc
	}
	for i, record := range doc.Records {
		if record.Has(column) {
			record.Set(column, results[i])
		}
	}
	return nil
}

// AddPseudoLane assigns the given lane to every record, in the
// PseudoLane column. It is meant for single-lane flow cells.
func (doc *Document) AddPseudoLane(lane string) {
	doc.addColumn(PseudoLaneColumn)
	for _, record := range doc.Records {
		record.Set(PseudoLaneColumn, lane)
	}
}

// AddPseudoLanes replaces every record by one copy per lane, each with
// the lane in the PseudoLane column. Copies of a record stay together,
// in lane order.
func (doc *Document) AddPseudoLanes(lanes []string) error {
	if len(lanes) == 0 {
		return &ArgumentError{Name: "lanes", Reason: "at least one lane required"}
	}
	doc.addColumn(PseudoLaneColumn)
	records := make([]*Record, 0, len(lanes)*len(doc.Records))
	for _, record := range doc.Records {
		for _, lane := range lanes {
			clone := record.Clone()
			clone.Set(PseudoLaneColumn, lane)
			records = append(records, clone)
		}
	}
	doc.Records = records
	return nil
}

// Header modifications.
const (
	HeaderAdd    = "add"
	HeaderRemove = "remove"
)

func leadingToken(line string) string {
	var sc StringScanner
	sc.Reset(line)
	token, _ := sc.ParseField()
	return token
}

// CheckHeader returns how many lines of the given header section have
// a leading comma-separated token that equals key, ignoring case.
func (doc *Document) CheckHeader(section, key string) (int, error) {
	if section == "" || key == "" {
		return 0, &ArgumentError{Name: "header key", Value: section + ":" + key, Reason: "section and key are required"}
	}
	fold := cases.Fold()
	key = fold.String(key)
	lines, _ := doc.Sections.Lines(section)
	count := 0
	for _, line := range lines {
		if fold.String(leadingToken(line)) == key {
			count++
		}
	}
	return count, nil
}

// ModifyHeader adds a "key,value" line to a header section, or removes
// all lines of a section whose leading token equals key, ignoring
// case. Adding a key that is already present fails.
func (doc *Document) ModifyHeader(section, op, key, value string) error {
	if op != HeaderAdd && op != HeaderRemove {
		return &ArgumentError{Name: "header operation", Value: op, Reason: "expected add or remove"}
	}
	count, err := doc.CheckHeader(section, key)
	if err != nil {
		return err
	}
	if op == HeaderAdd {
		if count > 0 {
			return &ArgumentError{Name: "header key", Value: key, Reason: "already present in section " + section, Err: ErrAlreadyExists}
		}
		doc.Sections.Append(section, key+","+value)
		return nil
	}
	lines, found := doc.Sections.Lines(section)
	if !found || count == 0 {
		return nil
	}
	fold := cases.Fold()
	key = fold.String(key)
	kept := make([]string, 0, len(lines)-count)
	for _, line := range lines {
		if fold.String(leadingToken(line)) != key {
			kept = append(kept, line)
		}
	}
	doc.Sections.Set(section, kept)
	return nil
}
