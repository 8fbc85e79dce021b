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
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// Columns added by ExpandSingleCellIndexes.
const (
	OriginalSampleIDColumn = "Original_Sample_ID"
	OriginalIndexColumn    = "Original_index"
)

// A BarcodeTable maps single-cell kit barcode names, such as SI-GA-A1,
// onto the index sequences they stand for.
type BarcodeTable map[string][]string

// LoadBarcodeTable reads a barcode table from a JSON file that maps
// barcode names onto lists of sequences.
func LoadBarcodeTable(filename string) (BarcodeTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Resource: "barcode file", ID: filename, Err: err}
		}
		return nil, err
	}
	var table BarcodeTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("invalid barcode file %v: %w", filename, err)
	}
	return table, nil
}

// ExpandSingleCellIndexes replaces every single-cell record that uses a
// kit barcode name as index by one record per sequence of that barcode.
// The copies get numbered sample IDs (ID_1, ID_2, ...). The original
// sample ID and index are kept in the Original_Sample_ID and
// Original_index columns, which all other records fill with their own
// values.
//
// ExpandSingleCellIndexes fails without modifying the document if a
// barcode name is missing from the table.
func (doc *Document) ExpandSingleCellIndexes(table BarcodeTable) error {
	description := doc.Options.DescriptionColumn
	for _, column := range []string{SampleIDColumn, DefaultIndexColumn, description} {
		if err := doc.requireColumn(column); err != nil {
			return err
		}
	}
	singleCell := singleCellKeywordPattern(doc.Options.SingleCellKeyword)
	expand := make([]bool, len(doc.Records))
	size := 0
	for i, record := range doc.Records {
		index := record.Value(DefaultIndexColumn)
		if !singleCell.MatchString(record.Value(description)) || !IsSingleCellIndex(index) {
			size++
			continue
		}
		sequences := table[index]
		if len(sequences) == 0 {
			return &NotFoundError{Resource: "single-cell barcode", ID: index}
		}
		expand[i] = true
		size += len(sequences)
	}
	doc.addColumn(OriginalSampleIDColumn)
	doc.addColumn(OriginalIndexColumn)
	records := make([]*Record, 0, size)
	for i, record := range doc.Records {
		sampleID, index := record.Value(SampleIDColumn), record.Value(DefaultIndexColumn)
		record.Set(OriginalSampleIDColumn, sampleID)
		record.Set(OriginalIndexColumn, index)
		if !expand[i] {
			records = append(records, record)
			continue
		}
		for n, sequence := range table[index] {
			clone := record.Clone()
			clone.Set(SampleIDColumn, sampleID+"_"+strconv.Itoa(n+1))
			clone.Set(DefaultIndexColumn, sequence)
			records = append(records, clone)
		}
	}
	doc.Records = records
	return nil
}
