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

package utils

import (
	"bufio"
	"bytes"
	"io"

	"github.com/ulikunitz/xz"
)

// XZExt is the filename extension of xz-compressed sample sheets.
const XZExt = ".xz"

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// IsXZ checks if the given reader produces an xz stream by looking
// at the header magic. IsXZ uses Peek, so no input is consumed.
func IsXZ(buf *bufio.Reader) (bool, error) {
	magic, err := buf.Peek(len(xzMagic))
	if err == io.EOF || err == bufio.ErrBufferFull {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(magic, xzMagic), nil
}

// HandleXZ checks if the given reader produces an xz stream. It then
// either returns an xz.Reader, or returns the given reader unchanged.
func HandleXZ(buf *bufio.Reader) (io.Reader, error) {
	if ok, err := IsXZ(buf); err != nil {
		return nil, err
	} else if ok {
		r, err := xz.NewReader(buf)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return buf, nil
}
