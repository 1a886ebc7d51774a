// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert is the caller that ties request validation, argument
// dispatch, the external converter, and the history store together.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/media-shell/internal/dispatch"
	"github.com/pdiddy/media-shell/internal/history"
	"github.com/pdiddy/media-shell/internal/listing"
	"github.com/pdiddy/media-shell/internal/logging"
	"github.com/pdiddy/media-shell/internal/markdown"
	"github.com/pdiddy/media-shell/internal/runner"
	"github.com/pdiddy/media-shell/pkg/types"
)

// opMarkdown is the operation name recorded for Markdown conversions.
const opMarkdown = "markdown"

// Service runs conversions. Recorder may be nil to skip history.
type Service struct {
	dispatcher *dispatch.Dispatcher
	runner     runner.Runner
	recorder   history.Recorder
	log        *zap.Logger
}

// NewService creates a Service.
func NewService(d *dispatch.Dispatcher, r runner.Runner, rec history.Recorder, log *zap.Logger) *Service {
	return &Service{
		dispatcher: d,
		runner:     r,
		recorder:   rec,
		log:        logging.OrNop(log).Named("convert"),
	}
}

// Convert validates req, builds its argument sequence, and runs the external
// converter. It returns the converter's output payload.
func (s *Service) Convert(ctx context.Context, req types.ConversionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	args := s.dispatcher.Build(req)
	out, err := s.runner.Run(args)
	s.record(ctx, history.Entry{
		Operation: string(req.Operation),
		Source:    req.SourcePath,
		Args:      args,
	}, out, err)
	if err != nil {
		return "", err
	}
	return out, nil
}

// ConvertMarkdown normalizes the Markdown file at path and writes the
// plain-text sibling file. It returns the output path.
func (s *Service) ConvertMarkdown(ctx context.Context, path string) (string, error) {
	dst, _, err := markdown.ConvertFile(path)
	s.record(ctx, history.Entry{Operation: opMarkdown, Source: path}, dst, err)
	if err != nil {
		return "", err
	}
	return dst, nil
}

// record stores the outcome of a conversion. History is best-effort: a
// failing store is logged and never fails the conversion itself.
func (s *Service) record(ctx context.Context, e history.Entry, out string, convErr error) {
	if s.recorder == nil {
		return
	}
	if convErr != nil {
		e.Status = history.StatusFailed
		e.Error = convErr.Error()
	} else {
		e.Status = history.StatusSucceeded
		e.Output = out
	}
	if _, err := s.recorder.Record(ctx, e); err != nil {
		s.log.Warn("recording conversion history", zap.String("source", e.Source), zap.Error(err))
	}
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the total number of requests processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any request failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch runs reqs one after another, printing per-request status to w
// and returning a summary. A failing request does not stop the batch; a
// cancelled context does.
func (s *Service) ConvertBatch(ctx context.Context, reqs []types.ConversionRequest, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		out, err := s.Convert(ctx, req)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", req.SourcePath, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s\n", req.SourcePath, out)
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result, nil
}

// Manifest is the YAML document read by batch conversions.
type Manifest struct {
	Conversions []types.ConversionRequest `yaml:"conversions"`
}

// LoadManifest reads a batch manifest. Relative source paths are resolved
// against the manifest's directory.
func LoadManifest(path string) ([]types.ConversionRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Conversions {
		c := &m.Conversions[i]
		c.SourcePath = resolve(base, c.SourcePath)
		if c.Overlay.Path != nil {
			p := resolve(base, *c.Overlay.Path)
			c.Overlay.Path = &p
		}
	}
	return m.Conversions, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// FolderRequests expands tmpl into one request per image file in dir. The
// template's SourcePath is replaced for each file.
func FolderRequests(dir string, tmpl types.ConversionRequest) ([]types.ConversionRequest, error) {
	names, err := listing.Files(dir)
	if err != nil {
		return nil, err
	}
	images := listing.WithExtensions(names, listing.ImageExtensions...)

	reqs := make([]types.ConversionRequest, len(images))
	for i, name := range images {
		req := tmpl
		req.SourcePath = filepath.Join(dir, name)
		reqs[i] = req
	}
	return reqs, nil
}
