package scenario

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/wiregrid/internal/ctxlog"
	"github.com/specialistvlad/wiregrid/internal/fsutil"
)

// Extension is the file extension of scenario files.
const Extension = ".hcl"

// Scenario is a decoded set of scenario files.
type Scenario struct {
	// Netlist is the netlist path, resolved against the declaring file.
	// Empty if no file declares one.
	Netlist string
	Queries []*Query
}

// Query is one `query` block.
type Query struct {
	Name     string
	Wire     string
	Override *Override
	// File is the scenario file declaring the query.
	File string
}

// Override is the `override` block of a query. Value is evaluated lazily.
type Override struct {
	Wire  string
	Value hcl.Expression
}

// fileRoot is the top-level schema of a scenario file.
type fileRoot struct {
	Netlist *string        `hcl:"netlist,optional"`
	Queries []*querySchema `hcl:"query,block"`
}

type querySchema struct {
	Name     string          `hcl:"name,label"`
	Wire     string          `hcl:"wire"`
	Override *overrideSchema `hcl:"override,block"`
}

type overrideSchema struct {
	Wire  string         `hcl:"wire"`
	Value hcl.Expression `hcl:"value"`
}

// Load reads a scenario file, or every scenario file below a directory in
// lexical order, and merges them. At most one file may set `netlist` and
// query names must be unique across files.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scenario loader started.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", Extension, path)
	}
	logger.Debug("Discovered scenario files.", "count", len(files))

	parser := hclparse.NewParser()
	s := &Scenario{}
	seen := make(map[string]string)
	netlistFrom := ""

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse scenario file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode scenario file %s: %w", file, diags)
		}

		if root.Netlist != nil {
			if netlistFrom != "" {
				return nil, fmt.Errorf("netlist declared in both %s and %s", netlistFrom, file)
			}
			netlistFrom = file
			s.Netlist = *root.Netlist
			if !filepath.IsAbs(s.Netlist) {
				s.Netlist = filepath.Join(filepath.Dir(file), s.Netlist)
			}
		}

		for _, q := range root.Queries {
			if prev, dup := seen[q.Name]; dup {
				return nil, fmt.Errorf("duplicate query %q in %s, first declared in %s", q.Name, file, prev)
			}
			seen[q.Name] = file
			s.Queries = append(s.Queries, translateQuery(q, file))
		}
	}

	if err := s.validateReferences(); err != nil {
		return nil, err
	}

	logger.Debug("Scenario loading complete.", "netlist", s.Netlist, "queries", len(s.Queries))
	return s, nil
}

func translateQuery(q *querySchema, file string) *Query {
	out := &Query{Name: q.Name, Wire: q.Wire, File: file}
	if q.Override != nil {
		out.Override = &Override{Wire: q.Override.Wire, Value: q.Override.Value}
	}
	return out
}

// validateReferences checks that override values only refer to `query.<name>`
// where name is declared earlier.
func (s *Scenario) validateReferences() error {
	var errs []error
	declared := make(map[string]struct{}, len(s.Queries))

	for _, q := range s.Queries {
		if q.Override != nil {
			for _, traversal := range q.Override.Value.Variables() {
				if err := checkTraversal(q, traversal, declared); err != nil {
					errs = append(errs, err)
				}
			}
		}
		declared[q.Name] = struct{}{}
	}
	return errors.Join(errs...)
}

func checkTraversal(q *Query, traversal hcl.Traversal, declared map[string]struct{}) error {
	rng := traversal.SourceRange()
	if traversal.RootName() != variableName {
		return fmt.Errorf("%s: query %q: unknown variable %q", rng, q.Name, traversal.RootName())
	}
	if len(traversal) < 2 {
		return fmt.Errorf("%s: query %q: %s must name a query", rng, q.Name, variableName)
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return fmt.Errorf("%s: query %q: %s must be followed by a query name", rng, q.Name, variableName)
	}
	if _, ok := declared[attr.Name]; !ok {
		return fmt.Errorf("%s: query %q refers to %q, which is not declared before it", rng, q.Name, attr.Name)
	}
	return nil
}
