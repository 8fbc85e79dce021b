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
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/text/cases"

	"github.com/exascience/samplesheet/internal/logging"
)

// FilterMode selects whether Filter keeps or drops matching records.
type FilterMode string

// The supported filter modes.
const (
	Include FilterMode = "include"
	Exclude FilterMode = "exclude"
)

// Match returns the set of record positions whose value for column
// equals value, ignoring case. Values are not trimmed.
func (doc *Document) Match(column, value string) (*bitset.BitSet, error) {
	if err := doc.requireColumn(column); err != nil {
		return nil, err
	}
	fold := cases.Fold()
	value = fold.String(value)
	matches := bitset.New(uint(len(doc.Records)))
	for i, record := range doc.Records {
		if fold.String(record.Value(column)) == value {
			matches.Set(uint(i))
		}
	}
	return matches, nil
}

// Filter keeps only the records that match (Include) or do not match
// (Exclude) the given column value. The records that are filtered out
// are gone for good.
func (doc *Document) Filter(column, value string, mode FilterMode) error {
	if mode != Include && mode != Exclude {
		return &ArgumentError{Name: "filter mode", Value: string(mode), Reason: "expected include or exclude"}
	}
	matches, err := doc.Match(column, value)
	if err != nil {
		return err
	}
	keep := matches
	if mode == Exclude {
		keep = matches.Complement()
	}
	records := make([]*Record, 0, keep.Count())
	for i, ok := keep.NextSet(0); ok; i, ok = keep.NextSet(i + 1) {
		records = append(records, doc.Records[i])
	}
	logging.Debug("filtered records", "document", doc.ID, "column", column, "value", value,
		"mode", string(mode), "before", len(doc.Records), "after", len(records))
	doc.Records = records
	return nil
}
