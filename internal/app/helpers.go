package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/blackwell-systems/nexusshelf/internal/operations"
	"github.com/blackwell-systems/nexusshelf/internal/session"
	"github.com/blackwell-systems/nexusshelf/internal/store"
	"github.com/blackwell-systems/nexusshelf/internal/suggest"
)

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-18s %s\n", color.CyanString(label+":"), value)
}

// now is the clock used to stamp records.
var now = time.Now

// openStore validates the backend settings and connects.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		Kind:  cfg.Backend.Kind,
		URL:   cfg.Backend.URL,
		Key:   cfg.Backend.Key,
		DSN:   cfg.Backend.DSN,
		Path:  cfg.Backend.Path,
		Table: cfg.Backend.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend.Kind, err)
	}
	logger.Debug("backend opened", zap.String("kind", cfg.Backend.Kind))
	return st, nil
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		logger.Warn("closing backend", zap.Error(err))
	}
}

func sessionStore() *session.FileStore {
	return session.NewFileStore(cacheMgr)
}

// newEffects wires the controller's effects. st may be nil for commands
// that only touch the session.
func newEffects(st store.Store) *operations.Effects {
	return &operations.Effects{
		Store:    st,
		Sessions: sessionStore(),
		Log:      logger,
		Timeout:  cfg.Backend.Timeout,
		Now:      now,
	}
}

// newSuggester returns a suggester; without an API key it always
// answers the fallback category.
func newSuggester(ctx context.Context) *suggest.Suggester {
	var gen suggest.Generator
	if cfg.Suggest.APIKey != "" {
		g, err := suggest.NewGenAI(ctx, cfg.Suggest.APIKey)
		if err != nil {
			logger.Warn("category suggestions disabled", zap.Error(err))
		} else {
			gen = g
		}
	}
	temperature := cfg.Suggest.Temperature
	return suggest.New(gen, suggest.Config{
		Model:       cfg.Suggest.Model,
		Temperature: &temperature,
		Timeout:     cfg.Suggest.Timeout,
	}, logger)
}

// openController connects the backend and resumes the stored session,
// loading the catalog. The returned func closes the backend.
func openController(ctx context.Context) (*operations.Controller, func(), error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	ctrl := operations.NewController(newEffects(st))
	cleanup := func() { closeStore(st) }

	restored, err := ctrl.RestoreSession(ctx)
	if !restored {
		cleanup()
		return nil, nil, fmt.Errorf("%w: run 'nexusshelf login' first", operations.ErrNotSignedIn)
	}
	if err != nil {
		cleanup()
		return nil, nil, noticeError(ctrl, err)
	}
	return ctrl, cleanup, nil
}

// noticeError turns a failed controller operation into the error shown on
// the command line, preferring the notice the controller recorded.
func noticeError(ctrl *operations.Controller, err error) error {
	if n := ctrl.State().Notice; n != nil && n.Level == operations.NoticeError {
		return &cliError{msg: n.Text, err: err}
	}
	return err
}

type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) Unwrap() error { return e.err }

var stdin = bufio.NewReader(os.Stdin)

// prompt reads one trimmed line from stdin.
func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", errCanceled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
