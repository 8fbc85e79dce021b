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
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// PlatformName returns the second comma-separated token of the first
// line in section whose leading token equals field, ignoring case.
func (doc *Document) PlatformName(section, field string) (string, error) {
	lines, _ := doc.Sections.Lines(section)
	fold := cases.Fold()
	field = fold.String(field)
	var sc StringScanner
	for _, line := range lines {
		sc.Reset(line)
		if token, more := sc.ParseField(); more && fold.String(token) == field {
			name, _ := sc.ParseField()
			return name, nil
		}
	}
	return "", &NotFoundError{Resource: "header field", ID: section + "/" + field}
}

// Platform is PlatformName for the configured header section and
// platform field.
func (doc *Document) Platform() (string, error) {
	return doc.PlatformName(doc.Options.HeaderSection, doc.Options.PlatformField)
}

// LaneIDs returns the distinct values of laneField, in order of first
// appearance, if the platform name starts with platformPrefix. Other
// platforms have no lane column, and get the configured default lane.
func (doc *Document) LaneIDs(laneField, platformPrefix string) ([]string, error) {
	platform, err := doc.Platform()
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	if !strings.HasPrefix(fold.String(platform), fold.String(platformPrefix)) {
		return []string{doc.Options.DefaultLane}, nil
	}
	if err := doc.requireColumn(laneField); err != nil {
		return nil, err
	}
	var lanes []string
	seen := make(map[string]bool)
	for _, record := range doc.Records {
		if lane := record.Value(laneField); !seen[lane] {
			seen[lane] = true
			lanes = append(lanes, lane)
		}
	}
	return lanes, nil
}

// ProjectNames returns the distinct project names, in order of first
// appearance. The project column is the first data header column whose
// name contains tag, ignoring case.
func (doc *Document) ProjectNames(tag string) ([]string, error) {
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tag))
	column := ""
	for _, c := range doc.DataHeader {
		if pattern.MatchString(c) {
			column = c
			break
		}
	}
	if column == "" {
		return nil, missingColumn(tag, doc.Source, -1)
	}
	if err := doc.requireColumn(column); err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]bool)
	for _, record := range doc.Records {
		if name := record.Value(column); !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, &NotFoundError{Resource: "project name", ID: doc.Source}
	}
	return names, nil
}

// ProjectLanes returns the sorted distinct "project : lane" pairs if
// the data header has laneColumn, or the sorted distinct projects
// otherwise.
func (doc *Document) ProjectLanes(projectColumn, laneColumn string) ([]string, error) {
	if err := doc.requireColumn(projectColumn); err != nil {
		return nil, err
	}
	withLane := doc.HasColumn(laneColumn)
	if withLane {
		if err := doc.requireColumn(laneColumn); err != nil {
			return nil, err
		}
	}
	var groups []string
	seen := make(map[string]bool)
	for _, record := range doc.Records {
		group := record.Value(projectColumn)
		if withLane {
			group += " : " + record.Value(laneColumn)
		}
		if !seen[group] {
			seen[group] = true
			groups = append(groups, group)
		}
	}
	sort.Strings(groups)
	return groups, nil
}
