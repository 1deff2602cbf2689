// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of a construction estimate and
// the work catalog derived from it. Its core purpose is to give the scheduling
// packages a strongly-typed, immutable view of the estimate rows, regardless of
// where those rows came from.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Row: One estimate line as delivered by an upstream parser (code, name,
//     hierarchy level, quantity, duration and an opaque metadata bag).
//
//   - WorkTask: A Row placed in the estimate hierarchy. It knows its parent code
//     and the names of all its ancestors.
//
//   - WorkCatalog: The ordered list of WorkTasks produced from one estimate,
//     with simple totals and data-quality warnings.
//
//   - Project: The result of loading one or more HCL project files. It carries
//     the rows in source order plus optional project-wide settings.
//
//   - FSInfo: Metadata that links every Row back to its source file, so
//     warnings can point the user at the offending definition.
//
// Why a separate model package?
//
// The catalog, dependency and CPM packages must not know about HCL or any other
// input format. This package is the seam: loaders produce Rows, everything
// downstream consumes WorkTasks.
package model
