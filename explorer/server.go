package explorer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/abigen/codegen"
)

// MaxRequestBytes bounds a conversion request body or live message.
const MaxRequestBytes = 8 << 20

const (
	transportHTTP = "http"
	transportLive = "live"
)

// Request is the body of a conversion request.
type Request struct {
	JSON string `json:"json"`
}

// Response is the reply to a conversion request. Error is set on failure;
// otherwise Success, Code and Warnings are.
type Response struct {
	Success  bool     `json:"success,omitempty"`
	Code     string   `json:"code,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Server is the explorer API: one-shot conversion over HTTP, a websocket
// channel converting every message it receives, and Prometheus metrics.
type Server struct {
	opts     codegen.Options
	log      *zap.Logger
	reg      *prometheus.Registry
	metrics  *Metrics
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New creates a server generating with opts. A nil logger selects a no-op
// logger.
func New(opts codegen.Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		opts:    opts,
		log:     log,
		reg:     reg,
		metrics: NewMetrics(reg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/convert", s.handleConvert)
	s.mux.HandleFunc("OPTIONS /api/convert", s.handlePreflight)
	s.mux.HandleFunc("GET /api/live", s.handleLive)
	s.mux.Handle("GET /metrics", metricsHandler(reg))
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("explorer listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// convert runs one generation and shapes the reply. The status is the HTTP
// status the reply is sent with.
func (s *Server) convert(transport string, req Request) (Response, int) {
	if req.JSON == "" {
		s.metrics.observe(transport, "rejected", 0, 0)
		return Response{Error: "JSON data is required"}, http.StatusBadRequest
	}

	start := time.Now()
	res, err := codegen.GenerateJSON([]byte(req.JSON), s.opts)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.observe(transport, "error", 0, elapsed)
		s.log.Debug("conversion failed", zap.String("transport", transport), zap.Error(err))
		return Response{Error: err.Error()}, http.StatusInternalServerError
	}

	warnings := make([]string, len(res.Warnings))
	for i, w := range res.Warnings {
		warnings[i] = w.Error()
	}
	s.metrics.observe(transport, "ok", len(warnings), elapsed)
	s.log.Debug("converted",
		zap.String("transport", transport),
		zap.Int("bytes", len(res.Code)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("elapsed", elapsed),
	)
	return Response{Success: true, Code: res.Code, Warnings: warnings}, http.StatusOK
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	allowOrigin(w)

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes)).Decode(&req); err != nil {
		s.metrics.observe(transportHTTP, "error", 0, 0)
		writeJSON(w, http.StatusInternalServerError, Response{Error: "invalid request body: " + err.Error()})
		return
	}
	resp, status := s.convert(transportHTTP, req)
	writeJSON(w, status, resp)
}

func (s *Server) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	allowOrigin(w)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusNoContent)
}

// handleLive converts each text message it receives. A message is either a
// Request object or a bare ABI document.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("live upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxRequestBytes)

	s.metrics.liveConns.Inc()
	defer s.metrics.liveConns.Dec()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("live connection closed", zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		resp, _ := s.convert(transportLive, liveRequest(msg))
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Debug("live write failed", zap.Error(err))
			return
		}
	}
}

func liveRequest(msg []byte) Request {
	var req Request
	if err := json.Unmarshal(msg, &req); err == nil && req.JSON != "" {
		return req
	}
	return Request{JSON: string(msg)}
}

func allowOrigin(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
