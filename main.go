// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"srcx.dev/xform/compare"
	"srcx.dev/xform/config"
	"srcx.dev/xform/coordinator"
	"srcx.dev/xform/corpus"
	"srcx.dev/xform/diagnostics"
	"srcx.dev/xform/diffutil"
	"srcx.dev/xform/matcher"
	"srcx.dev/xform/rhs"
	"srcx.dev/xform/srcrange"
	"srcx.dev/xform/template"
)

var (
	configPath = flag.String("config", "", "path to the transform configuration document")
	showDiff   = flag.Bool("diff", false, "also show a diff of each change (a default-mode .xform output is removed once diffed)")
	verbose    = flag.Bool("v", false, "log every unit visited, matched or not")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: xform -config config.json [pkg ...]\n")
	os.Exit(2)
}

func main() {
	log.SetPrefix("xform: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	if *configPath == "" {
		usage()
	}
	pkgs := flag.Args()
	if len(pkgs) == 0 {
		pkgs = []string{"."}
	}

	if err := run(*configPath, pkgs); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string, pkgs []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	rhsText, err := os.ReadFile(cfg.RHSTemplate)
	if err != nil {
		return fmt.Errorf("reading rhs_template: %w", err)
	}
	rhsParts := rhs.Lex(string(rhsText))

	cp, err := corpus.Load(".", pkgs...)
	if err != nil {
		return err
	}

	tmplUnit, err := findUnit(cp, cfg.TemplateSource)
	if err != nil {
		return err
	}

	tpl, err := extractTemplate(cfg, tmplUnit)
	if err != nil {
		return err
	}

	cmp := compare.New(tmplUnit.Info, nil)
	m := matcher.New(cmp)
	coord := coordinator.New(m, tpl, rhsParts, cfg.OverwriteSourceFiles)

	failed := false
	for _, u := range cp.Units {
		if u == tmplUnit && !cfg.TransformsTemplateSource() {
			continue
		}
		cmp.CandidateInfo = u.Info

		src, err := u.Text()
		if err != nil {
			log.Printf("%s: %v", u.Path, err)
			failed = true
			continue
		}
		changed, outPath, err := coord.ProcessUnit(u)
		if err != nil {
			log.Printf("%s: %v", u.Path, err)
			failed = true
			continue
		}
		if !changed {
			if *verbose {
				log.Printf("%s: no match", u.Path)
			}
			continue
		}
		if *verbose {
			log.Printf("%s: wrote %s", u.Path, outPath)
		}
		if *showDiff {
			if err := diffutil.PrintTransform(os.Stdout, u.Path, src, outPath, !cfg.OverwriteSourceFiles); err != nil {
				log.Printf("%s: %v", u.Path, err)
				failed = true
			}
		}
	}

	for _, d := range cp.Diagnostics.Errors() {
		log.Print(d)
	}
	for _, d := range coord.Diagnostics.Errors() {
		log.Print(d)
	}
	if failed {
		return fmt.Errorf("one or more units failed to process")
	}
	return nil
}

func findUnit(cp *corpus.Corpus, templateSource string) (*corpus.Unit, error) {
	want, err := filepath.Abs(templateSource)
	if err != nil {
		return nil, err
	}
	for _, u := range cp.Units {
		got, err := filepath.Abs(u.Path)
		if err == nil && got == want {
			return u, nil
		}
	}
	return nil, fmt.Errorf("template_source %s is not among the packages loaded from %v", templateSource, cp.ModRoot)
}

func extractTemplate(cfg *config.Config, tmplUnit *corpus.Unit) (*template.LHSTemplate, error) {
	locs := make([]template.Location, 0, len(cfg.MetaVariables))
	for _, mv := range cfg.MetaVariables {
		locs = append(locs, template.Location{
			Metavariable: template.Metavariable{Identifier: mv.Identifier, NameOnly: mv.NameOnly},
			Range:        srcrange.Range{Begin: mv.Range[0].Location(), End: mv.Range[1].Location()},
		})
	}
	template.SortLocations(locs)
	if i, j, ok := template.OverlapCheck(locs); ok {
		return nil, diagnostics.New(diagnostics.MalformedConfig, tmplUnit.Path, srcrange.NoRange,
			fmt.Sprintf("metavariables %q and %q have overlapping ranges",
				locs[i].Metavariable.Identifier, locs[j].Metavariable.Identifier), nil)
	}
	tpl, err := template.Extract(tmplUnit.Roots(), cfg.TemplateSourceRange(), locs)
	if err != nil {
		return nil, bridgeTemplateError(tmplUnit.Path, cfg.TemplateSourceRange(), err)
	}
	return tpl, nil
}

// bridgeTemplateError maps the extractor's own *template.Error taxonomy
// (InvalidRange, Overshoot, PartialSpan, MissingMetavariable) onto the
// shared §7 diagnostics.Kind constants, so an extraction failure is reported
// through the same taxonomy as every other diagnostic.
func bridgeTemplateError(path string, r srcrange.Range, err error) error {
	terr, ok := err.(*template.Error)
	if !ok {
		return err
	}
	kind := diagnostics.Kind(terr.Kind)
	switch terr.Kind {
	case "InvalidRange", "Overshoot", "PartialSpan", "MissingMetavariable":
	default:
		kind = diagnostics.ParseFailure
	}
	return diagnostics.New(kind, path, r, terr.Message, nil)
}
