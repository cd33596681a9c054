// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the transform configuration document described in
// §6: the template source location, its metavariable declarations, the RHS
// template, and the two output-mode flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"srcx.dev/xform/diagnostics"
	"srcx.dev/xform/srcrange"
)

// A Point is a [line, column] pair as it appears in the configuration
// document, 1-based like a text editor's cursor, matching the convention
// used by the original tool's LHSConfiguration parser.
type Point [2]int

// Location converts p to a srcrange.Location.
func (p Point) Location() srcrange.Location {
	return srcrange.Location{Line: p[0], Column: p[1]}
}

// A MetaVariable is one entry of the configuration document's
// meta_variables list.
type MetaVariable struct {
	Identifier string   `json:"identifier"`
	Range      [2]Point `json:"range"`
	NameOnly   bool     `json:"name_only,omitempty"`
}

// A Config is the parsed configuration document (§6).
type Config struct {
	TemplateSource          string         `json:"template_source"`
	TemplateRange           [2]Point       `json:"template_range"`
	MetaVariables           []MetaVariable `json:"meta_variables"`
	RHSTemplate             string         `json:"rhs_template"`
	TransformTemplateSource *bool          `json:"transform_template_source,omitempty"`
	OverwriteSourceFiles    bool           `json:"overwrite_source_files,omitempty"`
}

// TransformsTemplateSource reports whether the file the template was
// extracted from should itself be searched and rewritten, defaulting to
// true per §6.
func (c *Config) TransformsTemplateSource() bool {
	if c.TransformTemplateSource == nil {
		return true
	}
	return *c.TransformTemplateSource
}

// TemplateSourceRange converts TemplateRange to a srcrange.Range.
func (c *Config) TemplateSourceRange() srcrange.Range {
	return srcrange.Range{Begin: c.TemplateRange[0].Location(), End: c.TemplateRange[1].Location()}
}

// Load reads and parses the configuration document at path. Every failure
// is reported as a §7 MalformedConfig diagnostic, per SPEC_FULL.md's promise
// that each error kind in the taxonomy maps to a diagnostics constructor.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.New(diagnostics.MalformedConfig, path, srcrange.NoRange, "reading configuration document", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, diagnostics.New(diagnostics.MalformedConfig, path, srcrange.NoRange, "parsing configuration document", err)
	}
	if err := c.validate(); err != nil {
		return nil, diagnostics.New(diagnostics.MalformedConfig, path, srcrange.NoRange, err.Error(), nil)
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.TemplateSource == "" {
		return fmt.Errorf("template_source is required")
	}
	if c.RHSTemplate == "" {
		return fmt.Errorf("rhs_template is required")
	}
	if !c.TemplateSourceRange().Valid() {
		return fmt.Errorf("template_range %v is invalid", c.TemplateRange)
	}
	seen := make(map[string]bool, len(c.MetaVariables))
	for _, mv := range c.MetaVariables {
		if mv.Identifier == "" {
			return fmt.Errorf("a meta_variables entry is missing identifier")
		}
		if seen[mv.Identifier] {
			return fmt.Errorf("metavariable %q declared more than once", mv.Identifier)
		}
		seen[mv.Identifier] = true
		r := srcrange.Range{Begin: mv.Range[0].Location(), End: mv.Range[1].Location()}
		if !r.Valid() {
			return fmt.Errorf("metavariable %q has an invalid range", mv.Identifier)
		}
	}
	return nil
}
