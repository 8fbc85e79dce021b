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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize removes the user qualifier (everything from the first ':')
// from the project column, and upper-cases the description column
// after replacing every ':' by '-'. Parse calls Normalize once;
// normalizing again changes nothing.
//
// Normalize fails without modifying any record if the project or
// description column is missing from the data header or any record.
func (doc *Document) Normalize() error {
	project, description := doc.Options.ProjectColumn, doc.Options.DescriptionColumn
	for _, column := range []string{project, description} {
		if !doc.HasColumn(column) {
			return missingColumn(column, doc.Source, -1)
		}
		if err := doc.requireColumn(column); err != nil {
			return err
		}
	}
	upper := cases.Upper(language.Und)
	for _, record := range doc.Records {
		name := record.Value(project)
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		record.Set(project, name)
		record.Set(description, upper.String(strings.ReplaceAll(record.Value(description), ":", "-")))
	}
	return nil
}
