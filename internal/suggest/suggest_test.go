package suggest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/nexusshelf/internal/suggest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeGen struct {
	out   string
	err   error
	block bool

	calls       int
	model       string
	prompt      string
	temperature float32
}

func (f *fakeGen) Generate(ctx context.Context, model, prompt string, temperature float32) (string, error) {
	f.calls++
	f.model, f.prompt, f.temperature = model, prompt, temperature
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestCategory_ReturnsTrimmedAnswer(t *testing.T) {
	gen := &fakeGen{out: "  Poetry\n"}
	s := suggest.New(gen, suggest.Config{}, nil)

	if got := s.Category(context.Background(), "Shah Jo Risalo"); got != "Poetry" {
		t.Errorf("Category = %q, want Poetry", got)
	}
	if gen.model != suggest.DefaultModel {
		t.Errorf("model = %q, want %q", gen.model, suggest.DefaultModel)
	}
	if gen.temperature != 0.5 {
		t.Errorf("temperature = %v, want 0.5", gen.temperature)
	}
	if !strings.Contains(gen.prompt, `"Shah Jo Risalo"`) {
		t.Errorf("prompt does not quote the title: %q", gen.prompt)
	}
}

func TestCategory_FallbackOnErrorOrEmpty(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGen
	}{
		{"error", &fakeGen{err: errors.New("quota exceeded")}},
		{"empty", &fakeGen{out: ""}},
		{"whitespace", &fakeGen{out: " \n\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := observed()
			s := suggest.New(tt.gen, suggest.Config{}, log)
			if got := s.Category(context.Background(), "Any"); got != suggest.Fallback {
				t.Errorf("Category = %q, want %q", got, suggest.Fallback)
			}
			if tt.gen.calls != 1 {
				t.Errorf("calls = %d, want exactly 1 (no retry)", tt.gen.calls)
			}
			if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 1 {
				t.Errorf("warn entries = %d, want 1", n)
			}
		})
	}
}

func TestCategory_NoGenerator(t *testing.T) {
	log, logs := observed()
	s := suggest.New(nil, suggest.Config{}, log)
	for i := 0; i < 3; i++ {
		if got := s.Category(context.Background(), "Any"); got != suggest.Fallback {
			t.Errorf("Category = %q, want %q", got, suggest.Fallback)
		}
	}
	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 1 {
		t.Errorf("warn entries = %d, want 1", n)
	}
}

func TestCategory_TimeoutFallsBackWithoutLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &fakeGen{block: true}
	s := suggest.New(gen, suggest.Config{Timeout: 20 * time.Millisecond}, nil)

	start := time.Now()
	got := s.Category(context.Background(), "Slow")
	if got != suggest.Fallback {
		t.Errorf("Category = %q, want %q", got, suggest.Fallback)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not applied, took %v", elapsed)
	}
}

func TestCategory_CustomConfig(t *testing.T) {
	gen := &fakeGen{out: "History"}
	s := suggest.New(gen, suggest.Config{Model: "gemini-pro", Temperature: ptr(float32(0.2))}, nil)
	s.Category(context.Background(), "Tarikh")
	if gen.model != "gemini-pro" || gen.temperature != 0.2 {
		t.Errorf("config not applied: model=%q temp=%v", gen.model, gen.temperature)
	}
}

func TestCategory_ZeroTemperatureIsKept(t *testing.T) {
	gen := &fakeGen{out: "History"}
	s := suggest.New(gen, suggest.Config{Temperature: ptr(float32(0))}, nil)
	s.Category(context.Background(), "Tarikh")
	if gen.calls != 1 || gen.temperature != 0 {
		t.Errorf("temperature = %v after %d calls, want 0", gen.temperature, gen.calls)
	}
}

func ptr[T any](v T) *T { return &v }

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "fallback")
	if got := suggest.APIKeyFromEnv("GEMINI_API_KEY"); got != "fallback" {
		t.Errorf("APIKeyFromEnv = %q, want fallback", got)
	}
	t.Setenv("GEMINI_API_KEY", "primary")
	if got := suggest.APIKeyFromEnv("GEMINI_API_KEY"); got != "primary" {
		t.Errorf("APIKeyFromEnv = %q, want primary", got)
	}
}

func TestNewGenAI_RequiresKey(t *testing.T) {
	if _, err := suggest.NewGenAI(context.Background(), ""); err == nil {
		t.Error("expected error for empty key")
	}
}
