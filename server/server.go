// Package server exposes a message history over the message API consumed by
// source.Client.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"git.sr.ht/~gioverse/scroll/list"
	"git.sr.ht/~gioverse/scroll/source"
	"git.sr.ht/~gioverse/scroll/store"
)

// Limits applied to the limit query parameter.
const (
	DefaultLimit = 30
	MaxLimit     = 100
)

// Pager reads pages of the message history.
type Pager interface {
	Page(ctx context.Context, limit int, token string) ([]list.Item, string, error)
}

// Server serves the message API.
type Server struct {
	pager Pager
	log   zerolog.Logger
}

// New constructs a server over the given history.
func New(pager Pager, logger zerolog.Logger) *Server {
	return &Server{pager: pager, log: logger}
}

// Routes returns the HTTP handler of the API.
func (s *Server) Routes() http.Handler {
	engine := gin.New()
	engine.Use(s.logRequests(), gin.Recovery())
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/messages", s.handleMessages)
	engine.GET("/photos/:name", s.handlePhoto)
	return engine
}

// Run serves the API on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("serving message API")
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMessages serves GET /messages?limit=N&pageToken=T.
func (s *Server) handleMessages(c *gin.Context) {
	limit := DefaultLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	items, next, err := s.pager.Page(c.Request.Context(), limit, c.Query("pageToken"))
	if errors.Is(err, store.ErrBadToken) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pageToken"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("read messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, source.Response{
		Count:     len(items),
		PageToken: next,
		Messages:  items,
	})
}

// logRequests logs each request through zerolog.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
