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
	"sort"
	"strings"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/samplesheet/internal/logging"
	"github.com/exascience/samplesheet/utils"
)

var wildcardRemover = strings.NewReplacer("N", "", "n", "")

// stripWildcards removes the N/n wildcard bases from an index sequence.
func stripWildcards(index string) string {
	return wildcardRemover.Replace(index)
}

// findIndexColumns returns the columns whose name starts with "index",
// ignoring case.
func findIndexColumns(header []string, source string) ([]string, error) {
	var columns []string
	seen := make(utils.StringMap)
	for _, column := range header {
		if len(column) >= 5 && strings.EqualFold(column[:5], "index") {
			if !seen.SetUniqueEntry(column, "") {
				return nil, duplicateColumn(column, source)
			}
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 {
		return nil, missingColumn("index", source, -1)
	}
	return columns, nil
}

// IndexColumns returns the index columns of the data header, such as
// index and index2, in data header order.
func (doc *Document) IndexColumns() []string {
	return append([]string(nil), doc.indexColumns...)
}

func (doc *Document) requireIndexColumns() error {
	for _, column := range doc.indexColumns {
		if err := doc.requireColumn(column); err != nil {
			return err
		}
	}
	return nil
}

// IndexCount returns, for every index column, how many records have
// an index of a given length. Wildcard bases are not counted.
func (doc *Document) IndexCount() (map[string]map[int]int, error) {
	if err := doc.requireIndexColumns(); err != nil {
		return nil, err
	}
	result := make(map[string]map[int]int, len(doc.indexColumns))
	for _, column := range doc.indexColumns {
		counts := make(map[int]int)
		for _, record := range doc.Records {
			counts[len(stripWildcards(record.Value(column)))]++
		}
		result[column] = counts
	}
	return result, nil
}

// A CombinedIndex is the concatenation of all index values of a
// record. Valid is false when all index values are empty.
type CombinedIndex struct {
	Value string
	Valid bool
}

// CombinedIndexes returns, for every record, its trimmed non-empty
// index values joined by '+', in index column order.
func (doc *Document) CombinedIndexes() ([]CombinedIndex, error) {
	if err := doc.requireIndexColumns(); err != nil {
		return nil, err
	}
	result := make([]CombinedIndex, len(doc.Records))
	parts := make([]string, 0, len(doc.indexColumns))
	for i, record := range doc.Records {
		parts = parts[:0]
		for _, column := range doc.indexColumns {
			if index := strings.TrimSpace(record.Value(column)); index != "" {
				parts = append(parts, index)
			}
		}
		if len(parts) > 0 {
			result[i] = CombinedIndex{Value: strings.Join(parts, "+"), Valid: true}
		}
	}
	return result, nil
}

// GroupByIndexLength removes the wildcard bases from all index values
// of the document, and groups the records by their combined index
// length. Records without any index bases are dropped.
//
// Each group is returned as a new Document that shares no state with
// doc or the other groups, so groups can be processed in parallel.
// The wildcard removal is permanent, also in doc.
func (doc *Document) GroupByIndexLength() (map[int]*Document, error) {
	if err := doc.requireIndexColumns(); err != nil {
		return nil, err
	}
	buckets := make(map[int][]*Record)
	for _, record := range doc.Records {
		length := 0
		for _, column := range doc.indexColumns {
			index := stripWildcards(record.Value(column))
			record.Set(column, index)
			length += len(index)
		}
		if length > 0 {
			buckets[length] = append(buckets[length], record)
		}
	}
	lengths := make([]int, 0, len(buckets))
	for length := range buckets {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)
	groups := make([]*Document, len(lengths))
	if len(lengths) > 0 {
		parallel.Range(0, len(lengths), 0, func(low, high int) {
			for i := low; i < high; i++ {
				groups[i] = doc.derive(buckets[lengths[i]])
			}
		})
	}
	result := make(map[int]*Document, len(lengths))
	for i, length := range lengths {
		result[length] = groups[i]
		logging.Debug("index length group", "document", doc.ID, "group", groups[i].ID,
			"length", length, "records", len(groups[i].Records))
	}
	return result, nil
}
