// Package report assembles the outputs of one scheduling run into a single
// document and encodes it as JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/analyzer"
	"github.com/specialistvlad/cpmgrid/internal/optimizer"
	"github.com/specialistvlad/cpmgrid/internal/resources"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", s)
	}
}

// Project describes the input the document was computed from.
type Project struct {
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	BaseDate string   `json:"base_date,omitempty" yaml:"base_date,omitempty"`
	Files    []string `json:"files" yaml:"files"`
	Strategy string   `json:"strategy" yaml:"strategy"`
}

// Document is the full result of a scheduling run.
type Document struct {
	Project     Project             `json:"project" yaml:"project"`
	Schedule    *analyzer.Report    `json:"schedule" yaml:"schedule"`
	Resources   *resources.Analysis `json:"resources" yaml:"resources"`
	Leveling    *optimizer.Result   `json:"leveling" yaml:"leveling"`
	DataQuality []string            `json:"data_quality" yaml:"data_quality"`
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
