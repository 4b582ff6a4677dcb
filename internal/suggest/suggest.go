// Package suggest asks a language model for a one-word library category.
// It never fails: any error or empty answer yields Fallback.
package suggest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fallback is the category used whenever no suggestion is available.
const Fallback = "General"

// Defaults for Config fields left zero.
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultTemperature = 0.5
	DefaultTimeout     = 15 * time.Second
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, temperature float32) (string, error)
}

// Config tunes the suggestion call. A nil Temperature means
// DefaultTemperature; a set one is sent as is, including 0.
type Config struct {
	Model       string
	Temperature *float32
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == nil {
		t := float32(DefaultTemperature)
		c.Temperature = &t
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Suggester turns book titles into categories.
type Suggester struct {
	gen Generator
	cfg Config
	log *zap.Logger

	noGenOnce sync.Once
}

// New returns a Suggester. A nil gen is allowed; every call then answers
// Fallback and the first one logs why.
func New(gen Generator, cfg Config, log *zap.Logger) *Suggester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Suggester{gen: gen, cfg: cfg.withDefaults(), log: log.Named("suggest")}
}

// Prompt is the fixed request sent for a title.
func Prompt(title string) string {
	return fmt.Sprintf("Suggest a single-word library category for a book titled %q. "+
		"Return only the category name (e.g., History, Poetry, Fiction, Science, Biography).", title)
}

// Category returns a suggested category for title. It makes one call with
// the configured timeout and never retries.
func (s *Suggester) Category(ctx context.Context, title string) string {
	if s.gen == nil {
		s.noGenOnce.Do(func() {
			s.log.Warn("no suggestion backend configured; using fallback category",
				zap.String("fallback", Fallback))
		})
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, err := s.gen.Generate(ctx, s.cfg.Model, Prompt(title), *s.cfg.Temperature)
	if err != nil {
		s.log.Warn("category suggestion failed",
			zap.String("model", s.cfg.Model),
			zap.String("title", title),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Fallback
	}
	out = strings.TrimSpace(out)
	if out == "" {
		s.log.Warn("empty category suggestion", zap.String("title", title))
		return Fallback
	}
	s.log.Debug("category suggested",
		zap.String("title", title),
		zap.String("category", out),
		zap.Duration("elapsed", time.Since(start)))
	return out
}

// APIKeyFromEnv reads the model API key from keyEnv, falling back to
// API_KEY.
func APIKeyFromEnv(keyEnv string) string {
	if keyEnv != "" {
		if v := os.Getenv(keyEnv); v != "" {
			return v
		}
	}
	return os.Getenv("API_KEY")
}
