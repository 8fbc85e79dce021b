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
)

// Sentinel errors for the structural failure kinds. Every error
// returned by this package wraps one of them, so callers can use
// errors.Is.
var (
	// ErrNotFound indicates a missing input file, section or field, or an
	// output file that would be overwritten.
	ErrNotFound = errors.New("not found")
	// ErrMissingColumn indicates an operation refers to a column that a
	// record or the data header does not have.
	ErrMissingColumn = errors.New("missing column")
	// ErrDuplicateColumn indicates non-unique data or index column names.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrInvalidArgument indicates an unsupported mode or operation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEncoding indicates a non-ACGT base in an index sequence.
	ErrEncoding = errors.New("invalid encoding")
	// ErrAlreadyExists indicates a header key that is already present.
	ErrAlreadyExists = errors.New("already exists")
)

// NotFoundError represents a resource that could not be found.
type NotFoundError struct {
	Resource string // e.g. "file", "section", "header field"
	ID       string
	Err      error // underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrNotFound, e.Err}
	}
	return []error{ErrNotFound}
}

// FileError represents a failure to create an output file. An output
// file that already exists is reported as ErrNotFound together with
// fs.ErrExist.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{ErrNotFound, e.Err}
}

// ColumnError represents a missing or duplicate column. Row is the
// zero-based record position, or -1 when the data header itself is
// at fault.
type ColumnError struct {
	Column string
	Source string
	Row    int
	Err    error // ErrMissingColumn or ErrDuplicateColumn
}

func (e *ColumnError) Error() string {
	msg := fmt.Sprintf("%v %v", e.Err, e.Column)
	if e.Source != "" {
		msg += " in sample sheet " + e.Source
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(" (row %d)", e.Row+1)
	}
	return msg
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

func missingColumn(column, source string, row int) error {
	return &ColumnError{Column: column, Source: source, Row: row, Err: ErrMissingColumn}
}

func duplicateColumn(column, source string) error {
	return &ColumnError{Column: column, Source: source, Row: -1, Err: ErrDuplicateColumn}
}

// ArgumentError represents an unsupported argument value.
type ArgumentError struct {
	Name   string
	Value  string
	Reason string
	Err    error // defaults to ErrInvalidArgument
}

func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
	}
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q", e.Name, e.Value)
}

func (e *ArgumentError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidArgument
}

// EncodingError represents a base that cannot be complemented.
type EncodingError struct {
	Column string
	Row    int
	Value  string
	Base   byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid base %q in %s value %q (row %d)", e.Base, e.Column, e.Value, e.Row+1)
}

func (e *EncodingError) Unwrap() error {
	return ErrEncoding
}
