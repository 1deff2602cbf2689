// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// Estimates are often split across several files. Keeping the file path and
// line of every row lets data-quality warnings say exactly where a bad value
// was defined instead of only naming the row.
package model

import "fmt"

// FSInfo records where a Row was defined.
type FSInfo struct {
	FilePath string
	Line     int
}

// NewFSInfo creates FSInfo for the given file and line.
func NewFSInfo(filePath string, line int) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
		Line:     line,
	}
}

// String renders the location as "path:line".
func (f *FSInfo) String() string {
	if f == nil {
		return "<unknown>"
	}
	if f.Line <= 0 {
		return f.FilePath
	}
	return fmt.Sprintf("%s:%d", f.FilePath, f.Line)
}
