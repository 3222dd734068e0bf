package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-dateandtime/internal/config"
	"github.com/tartampluch/go-dateandtime/local"
	"github.com/tartampluch/go-dateandtime/sysclock"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers, empty if the clock failed
}

// CalendarServer serves the latest anniversary feed over HTTP.
type CalendarServer struct {
	// cache uses atomic.Pointer for lock-free reads. The feed is read often
	// and replaced only when the vCard file is read again.
	cache atomic.Pointer[cacheItem]
	Addr  string

	// Clock stamps Last-Modified; nil selects the host clock.
	Clock sysclock.Provider
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(addr string, clk sysclock.Provider) *CalendarServer {
	return &CalendarServer{Addr: addr, Clock: clk}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Addr == "" {
		return errors.New(config.ErrAddrRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleCalendarRequest)

	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, s.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served content. Last-Modified is read from
// s.Clock; when the clock is unavailable the header is left out and only the
// ETag validates caches.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{data: data, etag: etag}
	if now, err := local.Now(s.Clock); err == nil {
		item.lastModified = now.In(time.Local).UTC().Format(http.TimeFormat)
	} else {
		slog.Warn(config.MsgClockFailed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}

	// Any concurrent reader sees either the old or the new complete item.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Load Data (Atomic / Lock-Free)
	item := s.cache.Load()

	// 3. Readiness Check
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	// 4. Set Response Headers
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	if item.lastModified != "" {
		w.Header().Set(config.HeaderLastModified, item.lastModified)
	}

	// 5. Conditional Headers. If-None-Match takes precedence (RFC 9110).
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		if match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else if notModifiedSince(r.Header.Get(config.HeaderIfModifiedSince), item.lastModified) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	// 6. Serve Content
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModifiedSince reports whether content stamped lastModified is not newer
// than the client's copy.
func notModifiedSince(since, lastModified string) bool {
	if since == "" || lastModified == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}
