// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Project structure, which is the root container for all
// estimate rows loaded from a user's .hcl files.
//
// Why have a Project?
//
// A large estimate is usually split across several files (one per building
// section, for instance). The loader discovers all of them and concatenates
// their items in a stable order, because the dependency heuristics downstream
// depend on row order.
package model

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/fsutil"
)

// Settings are optional scheduling settings declared in a `settings` block.
type Settings struct {
	// MaxIterations overrides the optimizer iteration limit when set.
	MaxIterations *int
	// LaborGroups overrides the resource groups treated as labor when set.
	LaborGroups []string
}

// Project is everything loaded from a set of project files.
type Project struct {
	Name     string
	BaseDate string
	Settings Settings
	Rows     []Row
	Files    []string
	Warnings []string
}

// NewProject creates and returns an initialized, empty Project.
func NewProject() *Project {
	return &Project{
		Rows: []Row{},
	}
}

// hclProjectFile represents the top-level structure of a project file for decoding.
type hclProjectFile struct {
	Projects []*hclProject  `hcl:"project,block"`
	Settings []*hclSettings `hcl:"settings,block"`
	Items    []*hclItem     `hcl:"item,block"`
}

type hclProject struct {
	Name     string `hcl:"name,label"`
	BaseDate string `hcl:"base_date,optional"`
}

type hclSettings struct {
	MaxIterations *int     `hcl:"max_iterations,optional"`
	LaborGroups   []string `hcl:"labor_groups,optional"`
}

// ParseProjectSource parses a single project file held in memory and merges
// its contents into p.
func (p *Project) ParseProjectSource(ctx context.Context, parser *hclparse.Parser, filename string, src []byte) error {
	logger := ctxlog.FromContext(ctx).With("file", filename)

	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclProjectFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, proj := range parsed.Projects {
		if p.Name != "" && p.Name != proj.Name {
			p.Warnings = append(p.Warnings, fmt.Sprintf("%s: project %q redeclared as %q, keeping %q", filename, p.Name, proj.Name, p.Name))
			continue
		}
		p.Name = proj.Name
		if proj.BaseDate != "" {
			p.BaseDate = proj.BaseDate
		}
	}

	for _, s := range parsed.Settings {
		if s.MaxIterations != nil {
			p.Settings.MaxIterations = s.MaxIterations
		}
		if len(s.LaborGroups) > 0 {
			p.Settings.LaborGroups = s.LaborGroups
		}
	}

	var allDiags hcl.Diagnostics
	for _, item := range parsed.Items {
		row, warnings, itemDiags := newRowFromHCL(item, filename)
		allDiags = append(allDiags, itemDiags...)
		if itemDiags.HasErrors() {
			continue
		}
		p.Rows = append(p.Rows, *row)
		p.Warnings = append(p.Warnings, warnings...)
	}
	if allDiags.HasErrors() {
		return fmt.Errorf("error parsing items in file %s: %w", filename, allDiags)
	}

	p.Files = append(p.Files, filename)
	logger.Debug("Project file parsed.", "items", len(parsed.Items))
	return nil
}

// LoadProjectRecursively finds and parses all HCL files in a given path into a Project.
func LoadProjectRecursively(ctx context.Context, projectPath string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading project from path", "path", projectPath)

	files, err := fsutil.FindFilesByExtension(projectPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find project files in %s: %w", projectPath, err)
	}

	project := NewProject()
	if len(files) == 0 {
		logger.Warn("No .hcl project files found in path, returning empty project", "path", projectPath)
		return project, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read project file %s: %w", file, err)
		}
		if err := project.ParseProjectSource(ctx, parser, file, src); err != nil {
			return nil, err
		}
	}

	logger.Info("Project loaded.", "name", project.Name, "files", len(project.Files), "rows", len(project.Rows))
	return project, nil
}
