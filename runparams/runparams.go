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

// Package runparams reads the RunParameters.xml files that Illumina
// sequencers write into every run folder.
package runparams

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/exascience/samplesheet/samplesheet"
)

// Element names are matched ignoring case.
var (
	flowcellExpr        = xpath.MustCompile(`//*[lower-case(local-name())='flowcell']`)
	applicationNameExpr = xpath.MustCompile(`//*[lower-case(local-name())='applicationname']`)
)

// RunParameters is a parsed RunParameters.xml file.
type RunParameters struct {
	Source string
	root   *xmlquery.Node
}

// Parse reads run parameters from an XML stream.
func Parse(reader io.Reader, source string) (*RunParameters, error) {
	root, err := xmlquery.Parse(reader)
	if err != nil {
		return nil, &samplesheet.ArgumentError{Name: "run parameters", Value: source, Reason: err.Error()}
	}
	return &RunParameters{Source: source, root: root}, nil
}

// Open reads a RunParameters.xml file.
func Open(filename string) (params *RunParameters, err error) {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &samplesheet.NotFoundError{Resource: "run parameters file", ID: filename, Err: err}
		}
		return nil, err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	return Parse(file, filename)
}

func (params *RunParameters) text(expr *xpath.Expr) (string, bool) {
	node := xmlquery.QuerySelector(params.root, expr)
	if node == nil {
		return "", false
	}
	return strings.TrimSpace(node.InnerText()), true
}

// Flowcell returns the flow cell type of a HiSeq run. MiSeq and
// NextSeq runs do not record it.
func (params *RunParameters) Flowcell() (string, bool) {
	return params.text(flowcellExpr)
}

// ApplicationName returns the name of the control software that
// performed the run.
func (params *RunParameters) ApplicationName() (string, bool) {
	return params.text(applicationNameExpr)
}
