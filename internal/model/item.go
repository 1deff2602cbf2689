// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements a table-driven parser for the body of an `item` block,
// the HCL form of one estimate row.
//
// Numeric attributes are parsed leniently: a value that cannot be read as a
// number becomes "unknown" plus a warning, because the scheduler has documented
// defaults for missing durations and quantities. Structural mistakes (a list
// where a name is expected, a missing level) are reported as HCL diagnostics.
package model

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// hclItem represents a single 'item' block for initial decoding from HCL.
type hclItem struct {
	Body hcl.Body `hcl:",remain"`
}

// itemState accumulates the row being built together with its warnings and
// diagnostics.
type itemState struct {
	row      *Row
	warnings []string
	diags    hcl.Diagnostics
}

func (s *itemState) warn(attr *hcl.Attribute, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, fmt.Sprintf("%s: %s", attr.Range.String(), msg))
}

func (s *itemState) fail(attr *hcl.Attribute, summary, detail string) {
	s.diags = append(s.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  attr.Expr.Range().Ptr(),
	})
}

// itemAttributeParser parses one attribute of an item and stores it on the row.
type itemAttributeParser struct {
	Name  string
	Parse func(s *itemState, attr *hcl.Attribute, val cty.Value)
}

// itemAttributeParsers is the table that drives item parsing. Order matters
// only for metadata: "metadata" is applied before "resources" so an explicit
// resources attribute wins over metadata.resources.
var itemAttributeParsers = []itemAttributeParser{
	{"code", parseStringInto(func(r *Row, v string) { r.Code = v })},
	{"name", parseStringInto(func(r *Row, v string) { r.Name = v })},
	{"unit", parseStringInto(func(r *Row, v string) { r.Unit = v })},
	{"start_date", parseStringInto(func(r *Row, v string) { r.StartDate = v })},
	{"finish_date", parseStringInto(func(r *Row, v string) { r.FinishDate = v })},
	{"level", parseLevel},
	{"quantity", parseLenientNumber(func(r *Row, v *float64) { r.Quantity = v })},
	{"duration_days", parseLenientNumber(func(r *Row, v *float64) { r.DurationDays = v })},
	{"depends_on", parseDependsOn},
	{"metadata", parseMetadata},
	{"resources", parseResources},
}

// itemBodySchema defines the expected structure of an `item` block's body.
var itemBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "code"}, {Name: "name", Required: true}, {Name: "level", Required: true},
		{Name: "quantity"}, {Name: "unit"}, {Name: "duration_days"},
		{Name: "start_date"}, {Name: "finish_date"}, {Name: "depends_on"},
		{Name: "resources"}, {Name: "metadata"},
	},
}

// newRowFromHCL creates a Row from a parsed HCL item block.
func newRowFromHCL(item *hclItem, filePath string) (*Row, []string, hcl.Diagnostics) {
	line := item.Body.MissingItemRange().Start.Line
	state := &itemState{row: &Row{Source: NewFSInfo(filePath, line)}}

	content, diags := item.Body.Content(itemBodySchema)
	state.diags = append(state.diags, diags...)
	if diags.HasErrors() {
		return nil, nil, state.diags
	}

	for _, parser := range itemAttributeParsers {
		attr, exists := content.Attributes[parser.Name]
		if !exists {
			continue
		}
		val, valDiags := attr.Expr.Value(nil)
		state.diags = append(state.diags, valDiags...)
		if valDiags.HasErrors() || val.IsNull() {
			continue
		}
		parser.Parse(state, attr, val)
	}

	if state.diags.HasErrors() {
		return nil, nil, state.diags
	}
	return state.row, state.warnings, state.diags
}

func parseStringInto(set func(r *Row, v string)) func(*itemState, *hcl.Attribute, cty.Value) {
	return func(s *itemState, attr *hcl.Attribute, val cty.Value) {
		str, ok := ctyToString(val)
		if !ok {
			s.fail(attr, "Invalid attribute value", fmt.Sprintf("The '%s' attribute must be a string, got %s.", attr.Name, val.Type().FriendlyName()))
			return
		}
		set(s.row, str)
	}
}

func parseLenientNumber(set func(r *Row, v *float64)) func(*itemState, *hcl.Attribute, cty.Value) {
	return func(s *itemState, attr *hcl.Attribute, val cty.Value) {
		f, ok := ctyToFloat(val)
		if !ok {
			s.warn(attr, "%s is not a number, treating it as unknown", attr.Name)
			return
		}
		set(s.row, &f)
	}
}

func parseLevel(s *itemState, attr *hcl.Attribute, val cty.Value) {
	f, ok := ctyToFloat(val)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		s.fail(attr, "Invalid level", "The 'level' attribute must be a whole number between -2147483647 and 2147483647.")
		return
	}
	s.row.Level = int(f)
}

func parseDependsOn(s *itemState, attr *hcl.Attribute, val cty.Value) {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		s.fail(attr, "Invalid depends_on value", "The 'depends_on' attribute must be a list of item codes.")
		return
	}
	it := val.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		code, ok := ctyToString(elem)
		if !ok {
			s.fail(attr, "Invalid depends_on value", "Every element of 'depends_on' must be an item code.")
			return
		}
		s.row.DependsOn = append(s.row.DependsOn, code)
	}
}

func parseMetadata(s *itemState, attr *hcl.Attribute, val cty.Value) {
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		s.fail(attr, "Invalid metadata value", "The 'metadata' attribute must be an object.")
		return
	}
	native, err := ctyToNative(val)
	if err != nil {
		s.fail(attr, "Invalid metadata value", err.Error())
		return
	}
	bag, _ := native.(map[string]any)
	if s.row.Metadata == nil {
		s.row.Metadata = make(map[string]any, len(bag))
	}
	for k, v := range bag {
		s.row.Metadata[k] = v
	}
}

func parseResources(s *itemState, attr *hcl.Attribute, val cty.Value) {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		s.fail(attr, "Invalid resources value", "The 'resources' attribute must be a list of objects.")
		return
	}
	native, err := ctyToNative(val)
	if err != nil {
		s.fail(attr, "Invalid resources value", err.Error())
		return
	}
	if s.row.Metadata == nil {
		s.row.Metadata = make(map[string]any, 1)
	}
	s.row.Metadata["resources"] = native
}
