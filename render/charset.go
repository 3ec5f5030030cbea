// Copyright 2015 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

import (
	"fmt"

	gencoding "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"oriel/config"
)

// charsets is the name table render understands, built on gdamore's
// pre-built Charmap tables the same way the teacher's own
// encoding.Register does for its wider set (see encoding/all.go) —
// render only needs the two codepages an actual Windows 3.x box would
// have booted with, plus a pass-through UTF-8.
var charsets = map[string]encoding.Encoding{
	"CP437":  gencoding.CP437,
	"OEM":    gencoding.CP437,
	"CP1252": gencoding.CP1252,
	"ANSI":   gencoding.CP1252,
}

// DefaultCharset returns the codepage a real Windows install of the
// given dialect would have used: the OEM codepage (CP437) for the
// win3.0-era console subsystem, and the ANSI codepage (CP1252) once
// win3.1 made that the GUI default.
func DefaultCharset(d config.Dialect) string {
	if d == config.Win30 {
		return "CP437"
	}
	return "CP1252"
}

// newDecoder resolves a charset name (falling back to the dialect
// default when name is empty) to a ready-to-use decoder, or an error if
// the name isn't one render knows.
func newDecoder(name string, d config.Dialect) (*encoding.Decoder, error) {
	if name == "" {
		name = DefaultCharset(d)
	}
	if name == "UTF-8" || name == "UTF8" {
		return nil, nil
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown charset %q", name)
	}
	return enc.NewDecoder(), nil
}

// decodeBytes converts raw script/dialog bytes in the configured
// charset to a native Go string, the inverse of what a Windows 3.x
// console would have fed the GDI text APIs.
func decodeBytes(dec *encoding.Decoder, b []byte) (string, error) {
	if dec == nil {
		return string(b), nil
	}
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeSource decodes a script file's raw bytes per cfg.Charset (or
// the dialect default) before handing it to the parser, the same
// codepage-to-UTF-8 pass DrawText/UseCaption/MessageBox payloads go
// through at execution time.
func DecodeSource(b []byte, cfg config.Config) (string, error) {
	dec, err := newDecoder(cfg.Charset, cfg.Dialect)
	if err != nil {
		return "", err
	}
	return decodeBytes(dec, b)
}
