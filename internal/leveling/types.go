package leveling

import (
	"math"
	"sort"

	"github.com/specialistvlad/cpmgrid/internal/model"
)

// MaxShift is the largest delay, in days, the heuristic applies to a task.
const MaxShift = 2.0

// MaxProfileDays bounds the number of daily buckets a single task may add to
// the labor profile. Longer tasks are left out and reported in
// Result.Warnings.
const MaxProfileDays = 36500

// Task is a scheduled task after leveling.
type Task struct {
	TaskID         string         `json:"task_id" yaml:"task_id"`
	Name           string         `json:"name" yaml:"name"`
	Task           model.WorkTask `json:"-" yaml:"-"`
	Duration       float64        `json:"duration" yaml:"duration"`
	Slack          float64        `json:"slack" yaml:"slack"`
	Critical       bool           `json:"critical" yaml:"critical"`
	NewEarlyStart  float64        `json:"new_early_start" yaml:"new_early_start"`
	NewEarlyFinish float64        `json:"new_early_finish" yaml:"new_early_finish"`
	Shift          float64        `json:"shift" yaml:"shift"`
	LaborHours     float64        `json:"labor_hours" yaml:"labor_hours"`
}

// Profile maps a whole day offset to the labor hours planned on that day.
type Profile map[int]float64

// Peak returns the largest daily load, or 0 for an empty profile.
func (p Profile) Peak() float64 {
	peak := 0.0
	for _, load := range p {
		peak = math.Max(peak, load)
	}
	return peak
}

// Days returns the day offsets of the profile in ascending order.
func (p Profile) Days() []int {
	days := make([]int, 0, len(p))
	for d := range p {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Result is the leveled schedule and its labor profile.
type Result struct {
	Tasks   []Task  `json:"tasks" yaml:"tasks"`
	Profile Profile `json:"resource_profile" yaml:"resource_profile"`
	// Warnings lists labor tasks left out of Profile.
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// PeakLoad returns the peak of the result's profile.
func (r *Result) PeakLoad() float64 {
	return r.Profile.Peak()
}

// Shifts returns the non-zero shifts by task ID.
func (r *Result) Shifts() map[string]float64 {
	shifts := make(map[string]float64)
	for _, t := range r.Tasks {
		if t.Shift > 0 {
			shifts[t.TaskID] = t.Shift
		}
	}
	return shifts
}
