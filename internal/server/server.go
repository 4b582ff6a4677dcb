// Package server exposes the catalog controller as a small JSON API. The
// server acts as the librarian whose session is stored locally.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/nexusshelf/internal/editor"
	"github.com/blackwell-systems/nexusshelf/internal/operations"
)

// Server serializes HTTP access to one Controller.
type Server struct {
	mu        sync.Mutex
	ctrl      *operations.Controller
	suggester editor.CategorySuggester
	log       *zap.Logger
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a Server over ctrl. The controller should already hold a
// signed-in user and a loaded catalog.
func New(ctrl *operations.Controller, suggester editor.CategorySuggester, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		ctrl:      ctrl,
		suggester: suggester,
		log:       log,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(requestLogger(s.log), gin.Recovery())

	r.GET("/health", s.health)

	v1 := r.Group("/v1")
	v1.Use(s.requireSession)
	v1.GET("/books", s.listBooks)
	v1.POST("/books", s.createBook)
	v1.GET("/books/:id", s.getBook)
	v1.PUT("/books/:id", s.updateBook)
	v1.DELETE("/books/:id", s.deleteBook)
	v1.POST("/reload", s.reload)
	v1.GET("/stats", s.stats)
	v1.POST("/decode", s.decode)
	v1.POST("/suggest", s.suggest)
	return r
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Debug("request", fields...)
		}
	}
}

func (s *Server) requireSession(c *gin.Context) {
	s.mu.Lock()
	ok := s.ctrl.State().SignedIn()
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no librarian session; run nexusshelf login"})
		return
	}
	c.Next()
}
