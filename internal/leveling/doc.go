/*
Package leveling smooths labor demand by delaying non-critical tasks inside
their slack.

Level applies a fixed heuristic: a task with slack s is delayed by
min(s/2, MaxShift) days, critical tasks stay put. The resulting labor profile
has one bucket per whole day offset. A task with h labor hours and duration d
adds h/d to every bucket it touches, stepping one day at a time from its
start until its finish. A task spanning more than MaxProfileDays buckets is
left out of the profile and reported in Result.Warnings.

Labor hours of a task are the sum over its labor resources of hours_total,
falling back to planned_hours when hours_total is absent. Resources count as
labor when their group or type matches one of the configured labor groups.

The internal/optimizer package searches for better shifts starting from the
ones produced here.
*/
package leveling
