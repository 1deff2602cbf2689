/*
Package cpm implements the Critical Path Method over a dependency graph.

Build places every scheduled task in an arena graph (internal/dag), rejects
cyclic input with ErrCycle and then runs the two classic passes in
topological order:

	forward:  ES = max(EF of predecessors) or 0,   EF = ES + duration
	backward: LF = min(LS of successors) or T,      LS = LF - duration

where T, the project duration, is the largest EF. Slack is LS - ES clamped at
zero and a task is critical when its slack is below CriticalTolerance.

All times are day offsets from the project start (offset 0). Calendar
arithmetic is left to callers.

Result.CriticalPath is the set of every critical task in task order. When two
fully critical branches run in parallel it contains both, so it is not
necessarily a single chain.
*/
package cpm
