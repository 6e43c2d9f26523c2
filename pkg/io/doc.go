// Package io reads and writes universal cycles as text and JSON.
//
// The core packages hand out symbols as plain integers; rendering them is the
// job of this package.
//
// # Text Format
//
// A cycle is one line with one character per symbol. Symbols 1–9 are decimal
// digits and 10 onwards are uppercase letters, so n = 12 uses 1–9, A, B, C:
//
//	321312
//	CBA987654321CBA98...
//
// Without the letters a run like "1112" could mean 1,11,2 or 11,12.
// [DecodeText] also accepts the comma-separated form "{3,2,1,3,1,2}".
//
// # JSON Format
//
//	{
//	  "n": 3,
//	  "length": 6,
//	  "strategy": "ruskey-williams",
//	  "symbols": "321312"
//	}
//
// The symbols field uses the text encoding. [ReadJSON] rejects documents
// whose length does not match their symbols.
package io
