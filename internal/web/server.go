// Package web serves a read-only dashboard over the latest reporting cycle.
package web

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/guregu/null/v6"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

const (
	defaultCertCacheDir = "cert-cache"
	defaultFeatureLimit = 250
)

type reportReader interface {
	Latest() (*domain.Report, bool)
}

// Server exposes the latest report's chart, verdict and feature rows.
type Server struct {
	Addr   string
	Store  reportReader
	logger *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, store reportReader, logger *zap.Logger) *Server {
	return &Server{Addr: addr, Store: store, logger: logger}
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleChart)
	mux.HandleFunc("/chart.jpg", s.handleChartImage)
	mux.HandleFunc("/verdict", s.handleVerdict)
	mux.HandleFunc("/features", s.handleFeatures)
	mux.HandleFunc("/healthz", s.handleHealth)
	return gzipHandler(mux)
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.shutdownOnDone(ctx, server)

	s.logger.Info("dashboard listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "dashboard server failed")
	}
	return nil
}

// StartWithAutoTLS runs an HTTPS server with automatic TLS certificates via ACME.
// It also starts an HTTP server on port 80 to handle ACME HTTP-01 challenges.
func (s *Server) StartWithAutoTLS(ctx context.Context, domains []string, cacheDir string) error {
	if len(domains) == 0 {
		return errors.New("no domains provided for automatic TLS")
	}
	if cacheDir == "" {
		cacheDir = defaultCertCacheDir
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domains...),
		Cache:      autocert.DirCache(cacheDir),
	}

	httpSrv := &http.Server{
		Addr:              ":80",
		Handler:           manager.HTTPHandler(nil),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	addr := s.Addr
	if addr == "" {
		addr = ":443"
	}
	httpsSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSConfig:         tlsConfig,
	}

	go s.shutdownOnDone(ctx, httpSrv, httpsSrv)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("acme challenge server failed", zap.Error(err))
		}
	}()

	s.logger.Info("dashboard listening with automatic TLS", zap.String("addr", addr), zap.Strings("domains", domains))
	if err := httpsSrv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "dashboard tls server failed")
	}
	return nil
}

func (s *Server) shutdownOnDone(ctx context.Context, servers ...*http.Server) {
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("dashboard shutdown error", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
}

func (s *Server) latest(w http.ResponseWriter) (*domain.Report, bool) {
	rep, ok := s.Store.Latest()
	if !ok {
		http.Error(w, "no reporting cycle has finished yet", http.StatusServiceUnavailable)
		return nil, false
	}
	return rep, true
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rep, ok := s.latest(w)
	if !ok {
		return
	}
	if len(rep.ChartHTML) == 0 {
		http.Error(w, "latest cycle has no chart", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(rep.ChartHTML)
}

func (s *Server) handleChartImage(w http.ResponseWriter, _ *http.Request) {
	rep, ok := s.latest(w)
	if !ok {
		return
	}
	if len(rep.ChartImage) == 0 {
		http.Error(w, "latest cycle has no chart snapshot", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(rep.ChartImage)
}

type verdictResponse struct {
	CycleID             string                 `json:"cycle_id"`
	Ticker              string                 `json:"ticker"`
	Period              string                 `json:"period"`
	CompletedAt         time.Time              `json:"completed_at"`
	FailedStage         string                 `json:"failed_stage,omitempty"`
	Error               string                 `json:"error,omitempty"`
	InsufficientHistory bool                   `json:"insufficient_history"`
	Verdict             domain.SpikeVerdict    `json:"verdict"`
	Volume              *domain.VolumeAnalysis `json:"volume,omitempty"`
}

func (s *Server) handleVerdict(w http.ResponseWriter, _ *http.Request) {
	rep, ok := s.latest(w)
	if !ok {
		return
	}

	resp := verdictResponse{
		CycleID:             rep.ID.String(),
		Ticker:              rep.Ticker,
		Period:              rep.Period,
		CompletedAt:         rep.CompletedAt,
		FailedStage:         rep.FailedStage,
		Error:               rep.Err,
		InsufficientHistory: rep.Features.InsufficientHistory,
		Verdict:             rep.Verdict,
	}
	if volume, ok := domain.NewVolumeAnalysis(rep.Features); ok {
		resp.Volume = &volume
	}
	s.writeJSON(w, resp)
}

type featureRowJSON struct {
	Timestamp      time.Time  `json:"timestamp"`
	Open           string     `json:"open"`
	High           string     `json:"high"`
	Low            string     `json:"low"`
	Close          string     `json:"close"`
	Volume         string     `json:"volume"`
	Range          float64    `json:"range"`
	Midpoint       float64    `json:"midpoint"`
	RangeAvg       null.Float `json:"range_avg"`
	VolumeAvg20    null.Float `json:"volume_avg_20"`
	VolumeAvg200   null.Float `json:"volume_avg_200"`
	VolumeSpikeAvg null.Float `json:"volume_spike_avg"`
	PrevHigh       null.Float `json:"prev_high"`
	PrevLow        null.Float `json:"prev_low"`
	UpperBand      null.Float `json:"upper_band"`
	LowerBand      null.Float `json:"lower_band"`
	Bearish        null.Bool  `json:"bearish"`
	Bullish        null.Bool  `json:"bullish"`
	NeutralRange   null.Bool  `json:"neutral_range"`
	VolumeSpike    null.Bool  `json:"volume_spike"`
	Color          string     `json:"color_class"`
}

func toFeatureRowJSON(row domain.FeatureRow) featureRowJSON {
	return featureRowJSON{
		Timestamp:      row.Timestamp,
		Open:           row.Open.String(),
		High:           row.High.String(),
		Low:            row.Low.String(),
		Close:          row.Close.String(),
		Volume:         row.Volume.String(),
		Range:          row.Range,
		Midpoint:       row.Midpoint,
		RangeAvg:       row.RangeAvg,
		VolumeAvg20:    row.VolumeAvg20,
		VolumeAvg200:   row.VolumeAvg200,
		VolumeSpikeAvg: row.VolumeSpikeAvg,
		PrevHigh:       row.PrevHigh,
		PrevLow:        row.PrevLow,
		UpperBand:      row.UpperBand,
		LowerBand:      row.LowerBand,
		Bearish:        row.Bearish,
		Bullish:        row.Bullish,
		NeutralRange:   row.NeutralRange,
		VolumeSpike:    row.VolumeSpike,
		Color:          string(row.Color),
	}
}

// handleFeatures returns the most recent feature rows, oldest first.
// ?limit=N caps the row count, 0 returns every row.
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeatureLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	rep, ok := s.latest(w)
	if !ok {
		return
	}

	rows := rep.Features.Tail(limit)
	out := make([]featureRowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, toFeatureRowJSON(row))
	}
	s.writeJSON(w, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode dashboard response", zap.Error(err))
	}
}

func gzipHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chart.jpg" || !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Vary", "Accept-Encoding")

		gz := gzip.NewWriter(w)
		defer gz.Close()

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, writer: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	writer *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}
