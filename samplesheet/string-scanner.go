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

import "strings"

// A StringScanner can be used scan/parse strings representing
// lines in sample sheets.
//
// The zero StringScanner is valid and empty.
type StringScanner struct {
	index int
	data  string
}

// Reset resets the scanner, and initializes it with the given string.
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
}

// Len returns the number of ASCII characters that still need to be
// scanned/parsed.
func (sc *StringScanner) Len() int {
	return len(sc.data) - sc.index
}

func (sc *StringScanner) readUntilByte(c byte) (s string, found bool) {
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

// ParseSectionName parses a section marker line such as
// "[Header],,,". The name is the text up to the first comma, without
// the enclosing brackets.
func (sc *StringScanner) ParseSectionName() string {
	marker, _ := sc.readUntilByte(',')
	return strings.TrimRight(strings.TrimLeft(marker, "["), "]")
}

// ParseField parses the next comma-separated field, and reports
// whether more fields follow.
func (sc *StringScanner) ParseField() (field string, more bool) {
	return sc.readUntilByte(',')
}

// ParseFields parses all remaining comma-separated fields. An empty
// line yields a single empty field.
func (sc *StringScanner) ParseFields() (fields []string) {
	for {
		field, more := sc.readUntilByte(',')
		fields = append(fields, field)
		if !more {
			return fields
		}
	}
}
