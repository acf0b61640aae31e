// Copyright 2011 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nin

import (
	"bytes"
	"io"
)

// lineReaderBufSize is the fixed buffer size recommended by the on-disk log
// format: lines are guaranteed short, so a line that doesn't fit is tail
// corruption (or a crash mid-write), not a format we need to support.
const lineReaderBufSize = 256 << 10

// lineReader reads newline-terminated lines out of a byte stream without
// allocating per line; ReadLine returns a slice that aliases the internal
// buffer and is only valid until the next call.
type lineReader struct {
	r   io.Reader
	buf [lineReaderBufSize]byte

	bufEnd    int // one past the last valid byte in buf
	lineStart int
	lineEnd   int // index of the next \n in buf after lineStart, or -1
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: r, lineEnd: -1}
}

// ReadLine returns the next line, excluding its trailing \n. hasNewline is
// false when the buffer filled up before a \n was found; the caller should
// treat that line as unparseable and move on, per the format's short-line
// guarantee. ok is false at end of stream.
func (l *lineReader) ReadLine() (line []byte, hasNewline bool, ok bool) {
	if l.lineStart >= l.bufEnd || l.lineEnd < 0 {
		// Buffer empty, refill from scratch.
		n, _ := io.ReadFull(l.r, l.buf[:])
		if n == 0 {
			return nil, false, false
		}
		l.lineStart = 0
		l.bufEnd = n
	} else {
		// Advance to the next line already sitting in the buffer.
		l.lineStart = l.lineEnd + 1
	}

	l.lineEnd = indexByte(l.buf[l.lineStart:l.bufEnd], '\n', l.lineStart)
	if l.lineEnd < 0 {
		// No newline in what's left. Shift the unconsumed tail to the front
		// and top up the rest of the buffer.
		alreadyConsumed := l.lineStart
		sizeRest := l.bufEnd - alreadyConsumed
		copy(l.buf[:sizeRest], l.buf[l.lineStart:l.bufEnd])

		n, _ := io.ReadFull(l.r, l.buf[sizeRest:])
		l.bufEnd = sizeRest + n
		l.lineStart = 0
		if l.bufEnd == 0 {
			return nil, false, false
		}
		l.lineEnd = indexByte(l.buf[:l.bufEnd], '\n', 0)
	}

	if l.lineEnd < 0 {
		return l.buf[l.lineStart:l.bufEnd], false, true
	}
	return l.buf[l.lineStart:l.lineEnd], true, true
}

// indexByte finds c in buf[from:] and returns its absolute index, or -1.
func indexByte(buf []byte, c byte, from int) int {
	i := bytes.IndexByte(buf, c)
	if i < 0 {
		return -1
	}
	return from + i
}
