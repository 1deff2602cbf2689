package resources

import (
	"math"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// MetadataKey is the task metadata key holding resource records.
const MetadataKey = "resources"

// OtherGroup is the group of records with neither group nor type.
const OtherGroup = "other"

// DefaultLaborGroups are the group or type names that count as labor.
var DefaultLaborGroups = []string{"labor", "рабочие"}

// Record is one resource line of a task.
type Record struct {
	Group        string
	Type         string
	HoursTotal   float64
	PlannedHours float64
	// hasTotal records whether hours_total was present at all.
	hasTotal bool
}

// Hours returns hours_total when the record carries it, else planned_hours.
func (r Record) Hours() float64 {
	if r.hasTotal {
		return r.HoursTotal
	}
	return r.PlannedHours
}

// Key returns the lowercased group, falling back to the type and then to
// OtherGroup.
func (r Record) Key() string {
	if g := strings.ToLower(strings.TrimSpace(r.Group)); g != "" {
		return g
	}
	if t := strings.ToLower(strings.TrimSpace(r.Type)); t != "" {
		return t
	}
	return OtherGroup
}

// IsLabor reports whether the record's type or group matches one of groups,
// ignoring case.
func (r Record) IsLabor(groups []string) bool {
	typ := strings.TrimSpace(r.Type)
	grp := strings.TrimSpace(r.Group)
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if strings.EqualFold(typ, g) || strings.EqualFold(grp, g) {
			return true
		}
	}
	return false
}

// Records extracts the resource records of a task.
func Records(task model.WorkTask) []Record {
	raw, ok := task.Metadata[MetadataKey]
	if !ok || raw == nil {
		return nil
	}

	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	case []map[string]any:
		for _, m := range v {
			entries = append(entries, m)
		}
	case map[string]any:
		entries = []any{v}
	default:
		return nil
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		rec := Record{
			Group:        toString(m["group"]),
			Type:         toString(m["type"]),
			PlannedHours: toFloat(m["planned_hours"]),
		}
		if v, ok := m["hours_total"]; ok && v != nil {
			rec.HoursTotal = toFloat(v)
			rec.hasTotal = true
		}
		records = append(records, rec)
	}
	return records
}

// LaborHours sums the hours of the task's labor records.
func LaborHours(task model.WorkTask, groups []string) float64 {
	total := 0.0
	for _, rec := range Records(task) {
		if rec.IsLabor(groups) {
			total += rec.Hours()
		}
	}
	return total
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		val, ok := toCty(v)
		if !ok {
			return ""
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil || str.IsNull() || !str.IsKnown() {
			return ""
		}
		return str.AsString()
	}
}

// toFloat coerces v to a finite number, returning 0 on any failure.
func toFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case string:
		num, err := cty.ParseNumberVal(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		f, _ = num.AsBigFloat().Float64()
	case cty.Value:
		if n.IsNull() || !n.IsKnown() {
			return 0
		}
		num, err := convert.Convert(n, cty.Number)
		if err != nil || num.IsNull() || !num.IsKnown() {
			return 0
		}
		f, _ = num.AsBigFloat().Float64()
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toCty(v any) (cty.Value, bool) {
	switch x := v.(type) {
	case cty.Value:
		return x, !x.IsNull() && x.IsKnown()
	case bool:
		return cty.BoolVal(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return cty.NilVal, false
		}
		return cty.NumberFloatVal(x), true
	case int:
		return cty.NumberIntVal(int64(x)), true
	default:
		return cty.NilVal, false
	}
}
