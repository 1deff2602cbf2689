/*
Package resources reads the resource records attached to work tasks and
aggregates planned hours per resource group.

Records live in a task's metadata under the "resources" key, as a list of
objects such as

	{ group = "Labor", hours_total = 80 }
	{ type = "machine", planned_hours = 12.5 }

The schema is owned by whoever produced the estimate, so reading it never
fails: missing or malformed numbers count as zero and entries that are not
objects are ignored.
*/
package resources
