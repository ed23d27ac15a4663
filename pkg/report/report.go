// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package report implements a small streaming XML format for describing the
// contents of a vfat image: an image-level header followed by one element
// per file. It is written element-by-element rather than built up in memory
// first, so a report can be produced for an image with many files without
// holding the whole document as one tree.
package report

import (
	"encoding/xml"
	"io"
)

const outputVersion = "1.0"

// Header describes the image a report was generated from.
type Header struct {
	Image       string `xml:"image"`
	TotalBlocks uint16 `xml:"total_blocks"`
	DataBlocks  uint16 `xml:"data_blocks"`
}

// FileEntry describes one root-directory entry.
type FileEntry struct {
	XMLName     xml.Name `xml:"file"`
	Name        string   `xml:"name"`
	Size        uint32   `xml:"size"`
	FirstIndex  uint16   `xml:"first_index"`
	ChainLength int      `xml:"chain_length"`
}

// Writer streams a report document: WriteHeader, then any number of
// WriteFile calls, then Close.
type Writer struct {
	w   io.Writer
	enc *xml.Encoder
}

func NewWriter(w io.Writer) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &Writer{w: w, enc: enc}
}

// WriteHeader writes the XML declaration, opens the root <vfatreport>
// element, and writes hdr as its first child, a <Header> element holding
// hdr's fields. The root element is left open for WriteFile calls to append
// to.
func (w *Writer) WriteHeader(hdr Header) error {
	if _, err := w.w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	start := xml.StartElement{
		Name: xml.Name{Local: "vfatreport"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "version"}, Value: outputVersion}},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	return w.enc.Encode(hdr)
}

// WriteFile appends one <file> element to the open report document.
func (w *Writer) WriteFile(e FileEntry) error {
	return w.enc.Encode(e)
}

// Close writes the closing </vfatreport> tag and flushes the encoder.
func (w *Writer) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "vfatreport"}}); err != nil {
		return err
	}
	return w.enc.Flush()
}

// ReadFiles parses every <file> element out of a report document, ignoring
// the header. It streams the input rather than unmarshaling the whole
// document at once.
func ReadFiles(r io.Reader) ([]FileEntry, error) {
	dec := xml.NewDecoder(r)

	var files []FileEntry
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "file" {
			var fe FileEntry
			if err := dec.DecodeElement(&fe, &start); err != nil {
				return nil, err
			}
			files = append(files, fe)
		}
	}
	return files, nil
}
