// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the estimate Row, the WorkTask built from it and the
// WorkCatalog that groups them.
//
// Why both Row and WorkTask?
//
// A Row is what an upstream parser hands over: a flat line with a hierarchy
// level. A WorkTask is the same line after the catalog builder has resolved
// its place in the hierarchy (parent code and ancestor names). Keeping them
// apart makes it obvious which fields are input and which are derived.
package model

// Row is a single estimate line as produced by an upstream parser.
type Row struct {
	// Code is the optional estimate code, e.g. "1.2.3".
	Code string
	// Name is the required human-readable work name.
	Name string
	// Quantity is the optional work volume.
	Quantity *float64
	// Unit is the optional unit of Quantity.
	Unit string
	// DurationDays is the optional planned duration. Nil means unknown.
	DurationDays *float64
	// StartDate and FinishDate are informational only.
	StartDate  string
	FinishDate string
	// Level is the hierarchy depth, 0 for top-level rows.
	Level int
	// DependsOn lists codes of rows that must finish before this one starts.
	// Only explicit-precedence dependency inference reads it.
	DependsOn []string
	// Metadata is an opaque key/value bag. The "resources" key holds a list of
	// resource records ({group|type, hours_total|planned_hours}).
	Metadata map[string]any
	// Source points at the definition of the row, when known.
	Source *FSInfo
}

// WorkTask is a Row placed in the estimate hierarchy. It is never modified
// after the catalog builder returns it.
type WorkTask struct {
	Code         string
	Name         string
	Quantity     *float64
	Unit         string
	DurationDays *float64
	StartDate    string
	FinishDate   string
	Level        int
	// ParentCode is the code of the closest ancestor, empty for roots.
	ParentCode string
	// GroupPath holds the names of all ancestors, outermost first.
	GroupPath []string
	DependsOn []string
	Metadata  map[string]any
	Source    *FSInfo
}

// Totals summarises a WorkCatalog.
type Totals struct {
	Count        int     `json:"count" yaml:"count"`
	SumQuantity  float64 `json:"sum_quantity" yaml:"sum_quantity"`
	WithDuration int     `json:"with_duration" yaml:"with_duration"`
}

// WorkCatalog is the ordered, hierarchical list of work tasks of one estimate.
type WorkCatalog struct {
	Tasks    []WorkTask
	Totals   Totals
	Warnings []string
}

// IsEmpty reports whether the catalog holds no tasks.
func (c *WorkCatalog) IsEmpty() bool {
	return c == nil || len(c.Tasks) == 0
}
