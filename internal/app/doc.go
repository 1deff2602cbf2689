// Package app contains the core application logic. It defines the main App
// struct, its configuration and the scheduling pipeline, decoupled from any
// specific entrypoint like a CLI or server.
//
// A run loads the project files, builds the work catalog, infers
// dependencies, computes the CPM schedule, analyzes resource load, levels
// labor demand and writes one report document.
package app
