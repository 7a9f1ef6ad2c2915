package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/mentionrank/internal/config"
	"github.com/vk/mentionrank/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader that resolves env.* from
// the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// WithEnviron returns a loader that resolves env.* from environ instead of
// the process environment.
func (l *Loader) WithEnviron(environ []string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

// Load parses every HCL file found under paths, merges them in order over
// the defaults and validates the result.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.Default()

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	evalCtx := envContext(l.environ())

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := merge(model, &root); err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("HCL loading complete.",
		"precision", model.Ranking.Precision,
		"damping", model.Ranking.Damping,
		"max_iterations", model.Ranking.MaxIterations,
		"publish", model.Publish != nil,
	)
	return model, nil
}

// merge copies every attribute set in root onto model.
func merge(model *config.Model, root *fileRoot) error {
	if r := root.Ranking; r != nil {
		if r.Precision != nil {
			model.Ranking.Precision = *r.Precision
		}
		if r.Damping != nil {
			model.Ranking.Damping = *r.Damping
		}
		if r.MaxIterations != nil {
			model.Ranking.MaxIterations = *r.MaxIterations
		}
	}
	if in := root.Input; in != nil && in.Path != nil {
		model.Input.Path = *in.Path
	}
	if out := root.Output; out != nil {
		if out.Format != nil {
			model.Output.Format = *out.Format
		}
		if out.Top != nil {
			model.Output.Top = *out.Top
		}
	}
	if p := root.Publish; p != nil {
		pub := &config.Publish{URL: p.URL}
		if p.Namespace != nil {
			pub.Namespace = *p.Namespace
		}
		if p.Event != nil {
			pub.Event = *p.Event
		}
		if p.AckEvent != nil {
			pub.AckEvent = *p.AckEvent
		}
		if p.Timeout != nil {
			timeout, err := time.ParseDuration(*p.Timeout)
			if err != nil {
				return fmt.Errorf("failed to parse publish timeout: %w", err)
			}
			pub.Timeout = timeout
		}
		if p.InsecureSkipVerify != nil {
			pub.InsecureSkipVerify = *p.InsecureSkipVerify
		}
		model.Publish = pub
	}
	return nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
// Directories are walked in lexical order; a missing path is an error.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing config path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}

var _ config.Loader = (*Loader)(nil)

