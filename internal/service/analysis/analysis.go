// Package analysis orchestrates snippet and batch analysis: language
// resolution, result caching, and bounded-concurrency provider calls.
package analysis

import (
	"context"
	"fmt"
	"os"

	"github.com/codalyzer/codalyzer/internal/cache"
	"github.com/codalyzer/codalyzer/internal/fileproc"
	"github.com/codalyzer/codalyzer/internal/provider"
	"github.com/codalyzer/codalyzer/internal/scanner"
	"github.com/codalyzer/codalyzer/pkg/config"
	"github.com/codalyzer/codalyzer/pkg/detect"
	"github.com/codalyzer/codalyzer/pkg/models"
)

// Service wraps a provider with caching and language detection. It satisfies
// provider.Provider, so it can stand in front of the HTTP server.
type Service struct {
	cfg   *config.Config
	prov  provider.Provider
	cache *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithProvider sets the LLM provider.
func WithProvider(p provider.Provider) Option {
	return func(s *Service) {
		s.prov = p
	}
}

// WithCache sets the result cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// New creates an analysis service. Without options it loads default config
// and builds a Gemini provider and cache from it.
func New(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg == nil {
		s.cfg = config.LoadOrDefault()
	}
	if s.prov == nil {
		s.prov = provider.NewGemini(s.cfg.Provider, nil)
	}
	if s.cache == nil {
		c, err := cache.New(s.cfg.Cache.Dir, s.cfg.Cache.TTL, s.cfg.Cache.Enabled)
		if err != nil {
			return nil, fmt.Errorf("init cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

// Available reports whether the underlying provider is usable.
func (s *Service) Available() bool {
	return s.prov.Available()
}

// Model returns the underlying provider's model identifier.
func (s *Service) Model() string {
	return s.prov.Model()
}

// Analyze resolves the language, consults the cache, and falls back to the
// provider. Cached results are re-stamped with the request's filename so
// metadata stays accurate.
func (s *Service) Analyze(ctx context.Context, req provider.Request) (*models.AnalysisResult, error) {
	language := req.Language
	if language == "" || language == "auto" {
		if detected := detect.Detect(req.Filename, req.Code); detected != "" {
			language = detected
		} else {
			language = "auto"
		}
	}
	req.Language = language

	if result, ok := s.cache.Get(req.Code, language, s.prov.Model()); ok {
		if req.Filename != "" && req.Filename != "untitled" {
			result.FileName = req.Filename
		}
		return result, nil
	}

	result, err := s.prov.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	// A failed cache write only costs a future round trip.
	_ = s.cache.Set(req.Code, language, s.prov.Model(), result)

	return result, nil
}

// BatchOptions configures AnalyzeFiles.
type BatchOptions struct {
	Workers    int
	OnProgress fileproc.ProgressFunc
}

// AnalyzeFiles expands paths (files or directories), filters out oversized
// files, and analyzes the rest concurrently. It returns the successful
// results plus per-file errors.
func (s *Service) AnalyzeFiles(ctx context.Context, paths []string, opts BatchOptions) ([]*models.AnalysisResult, *fileproc.ProcessingErrors, error) {
	files, err := s.collectFiles(paths)
	if err != nil {
		return nil, nil, err
	}

	files, _ = scanner.FilterBySize(files, s.cfg.Scan.MaxFileSize)
	if len(files) == 0 {
		return nil, nil, nil
	}

	results, errs := fileproc.ForEachFileN(ctx, files, opts.Workers,
		func(ctx context.Context, path string) (*models.AnalysisResult, error) {
			code, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return s.Analyze(ctx, provider.Request{
				Code:     string(code),
				Filename: path,
				Language: "auto",
			})
		}, opts.OnProgress)

	return results, errs, nil
}

// CountFiles reports how many analyzable files the paths expand to, for
// progress bar sizing.
func (s *Service) CountFiles(paths []string) (int, error) {
	files, err := s.collectFiles(paths)
	if err != nil {
		return 0, err
	}
	files, _ = scanner.FilterBySize(files, s.cfg.Scan.MaxFileSize)
	return len(files), nil
}

func (s *Service) collectFiles(paths []string) ([]string, error) {
	sc := scanner.New(s.cfg.Scan)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := sc.ScanDir(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		ok, err := sc.ScanFile(path)
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, path)
		}
	}
	return files, nil
}
