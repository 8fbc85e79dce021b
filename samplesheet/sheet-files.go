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
	"bufio"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/exascience/samplesheet/internal/logging"
	"github.com/exascience/samplesheet/utils"
)

// The possible file extensions for sample sheets.
const (
	CsvExt = ".csv"
	XZExt  = utils.XZExt
)

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return
}

// Parse reads a sample sheet. The data section is split into the data
// header and records, and the records are normalized.
func Parse(reader *bufio.Reader, source string, opts Options) (*Document, error) {
	doc := NewDocument(opts)
	doc.Source = source
	dataSection := doc.Options.DataSection
	var (
		sc        StringScanner
		section   string
		dataSeen  bool
		dataLines []string
	)
	for {
		line, err := getLine(reader)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch {
		case strings.HasPrefix(line, "["):
			sc.Reset(line)
			section = sc.ParseSectionName()
			if section == dataSection {
				dataSeen = true
			} else {
				doc.Sections.Add(section)
			}
		case section == dataSection:
			dataLines = append(dataLines, line)
		default:
			doc.Sections.Append(section, line)
		}
	}
	if !dataSeen {
		return nil, &NotFoundError{Resource: "section", ID: dataSection}
	}
	if err := doc.loadData(dataLines); err != nil {
		return nil, err
	}
	if err := doc.Normalize(); err != nil {
		return nil, err
	}
	logging.Debug("parsed sample sheet", "document", doc.ID, "source", source,
		"sections", len(doc.Sections.names), "records", len(doc.Records))
	return doc, nil
}

// loadData splits the raw lines of the data section into the data
// header and records. Rows with fewer fields than the data header lack
// the trailing columns; additional fields are dropped.
func (doc *Document) loadData(lines []string) error {
	var sc StringScanner
	headerSeen := false
	for _, line := range lines {
		if line == "" {
			continue
		}
		sc.Reset(line)
		if !headerSeen {
			headerSeen = true
			doc.DataHeader = sc.ParseFields()
			seen := make(utils.StringMap, len(doc.DataHeader))
			for _, column := range doc.DataHeader {
				if !seen.SetUniqueEntry(column, "") {
					return duplicateColumn(column, doc.Source)
				}
			}
			continue
		}
		record := NewRecord()
		for i, field := range sc.ParseFields() {
			if i >= len(doc.DataHeader) {
				break
			}
			record.Set(doc.DataHeader[i], strings.TrimRight(field, " \t\r\n\v\f"))
		}
		doc.Records = append(doc.Records, record)
	}
	if !headerSeen {
		return &NotFoundError{Resource: "data header", ID: doc.Source}
	}
	indexColumns, err := findIndexColumns(doc.DataHeader, doc.Source)
	if err != nil {
		return err
	}
	doc.indexColumns = indexColumns
	return nil
}

// InputFile represents a sample sheet file for input.
type InputFile struct {
	rc io.ReadCloser
	*bufio.Reader
}

// Open a sample sheet file for input. xz-compressed files are
// decompressed transparently.
//
// If the name is "/dev/stdin", then the input is read from os.Stdin.
func Open(name string) (*InputFile, error) {
	var rc io.ReadCloser
	if name == "/dev/stdin" {
		rc = os.Stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &NotFoundError{Resource: "file", ID: name, Err: err}
			}
			return nil, err
		}
		rc = file
	}
	reader, err := utils.HandleXZ(bufio.NewReader(rc))
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return &InputFile{rc, bufio.NewReader(reader)}, nil
}

// Close the sample sheet input file.
func (input *InputFile) Close() error {
	if input.rc != os.Stdin {
		return input.rc.Close()
	}
	return nil
}

// ParseFile opens, parses and normalizes a sample sheet file.
func ParseFile(filename string, opts Options) (doc *Document, err error) {
	input, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := input.Close()
		if err == nil {
			err = nerr
		}
	}()
	return Parse(input.Reader, filename, opts)
}

// OutputFile represents a sample sheet file for output. It computes
// the BLAKE3 digest of the bytes that end up in the file.
type OutputFile struct {
	wc     io.WriteCloser
	xzw    *xz.Writer
	hasher *blake3.Hasher
	*bufio.Writer
}

// Create a sample sheet file for output. Create never overwrites an
// existing file.
//
// If the filename extension is .xz, the output is xz-compressed.
//
// If the name is "/dev/stdout", then the output is written to
// os.Stdout.
func Create(name string) (*OutputFile, error) {
	var wc io.WriteCloser
	if name == "/dev/stdout" {
		wc = os.Stdout
	} else {
		file, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return nil, &FileError{Op: "create", Path: name, Err: err}
			}
			return nil, err
		}
		wc = file
	}
	hasher := blake3.New()
	sink := io.MultiWriter(wc, hasher)
	output := &OutputFile{wc: wc, hasher: hasher}
	if filepath.Ext(name) == XZExt {
		xzw, err := xz.NewWriter(sink)
		if err != nil {
			_ = wc.Close()
			return nil, err
		}
		output.xzw = xzw
		output.Writer = bufio.NewWriter(xzw)
	} else {
		output.Writer = bufio.NewWriter(sink)
	}
	return output, nil
}

// Close the sample sheet output file.
func (output *OutputFile) Close() error {
	if err := output.Flush(); err != nil {
		return err
	}
	if output.xzw != nil {
		if err := output.xzw.Close(); err != nil {
			return err
		}
	}
	if output.wc != os.Stdout {
		return output.wc.Close()
	}
	return nil
}

// Digest returns the hex-encoded BLAKE3 digest of everything written
// to the underlying file so far.
func (output *OutputFile) Digest() string {
	return hex.EncodeToString(output.hasher.Sum(nil))
}

// checkComplete verifies that every record has a value for every
// column of the data header.
func (doc *Document) checkComplete() error {
	for i, record := range doc.Records {
		for _, column := range doc.DataHeader {
			if !record.Has(column) {
				return missingColumn(column, doc.Source, i)
			}
		}
	}
	return nil
}

// Format outputs a full sample sheet. Lines of the implicit section
// that precedes all section markers are written without a marker.
func (doc *Document) Format(out *bufio.Writer) error {
	if err := doc.checkComplete(); err != nil {
		return err
	}
	for i, name := range doc.Sections.names {
		if i > 0 || name != "" {
			if err := writeLine(out, "["+name+"]"); err != nil {
				return err
			}
		}
		for _, line := range doc.Sections.lines[name] {
			if err := writeLine(out, line); err != nil {
				return err
			}
		}
	}
	if err := writeLine(out, "["+doc.Options.DataSection+"]"); err != nil {
		return err
	}
	if err := writeLine(out, strings.Join(doc.DataHeader, ",")); err != nil {
		return err
	}
	row := make([]string, len(doc.DataHeader))
	for _, record := range doc.Records {
		for i, column := range doc.DataHeader {
			row[i] = record.Value(column)
		}
		if err := writeLine(out, strings.Join(row, ",")); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(out *bufio.Writer, line string) error {
	if _, err := out.WriteString(line); err != nil {
		return err
	}
	return out.WriteByte('\n')
}

// Write outputs the sample sheet to a new file, and returns the BLAKE3
// digest of the file contents. Write fails if the file already exists,
// and leaves no file behind when formatting fails.
func (doc *Document) Write(filename string) (digest string, err error) {
	if err := doc.checkComplete(); err != nil {
		return "", err
	}
	output, err := Create(filename)
	if err != nil {
		return "", err
	}
	if err = doc.Format(output.Writer); err == nil {
		err = output.Close()
	} else {
		_ = output.Close()
	}
	if err != nil {
		if output.wc != os.Stdout {
			_ = os.Remove(filename)
		}
		return "", err
	}
	digest = output.Digest()
	logging.Debug("wrote sample sheet", "document", doc.ID, "file", filename,
		"records", len(doc.Records), "blake3", digest)
	return digest, nil
}
