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

// Package samplesheet is a library for parsing, validating,
// transforming and formatting Illumina sample sheets.
//
// A sample sheet consists of [Section] blocks of raw lines, and one
// data section (by default [Data]) with a comma-separated header row
// and one row per sample. ParseFile reads such a file into a Document,
// and normalizes the project and description columns.
//
// Validation never fails on bad content: Validate returns schema and
// semantic violations as messages, so that all problems can be
// reported at once. Structural problems, such as a missing column or
// an unsupported mode, are returned as errors that wrap one of the
// package's sentinel errors. Operations that modify records check
// their preconditions for all records before they modify any record.
//
// GroupByIndexLength splits a document into independent documents,
// one per combined index length, that can be processed in parallel.
package samplesheet
