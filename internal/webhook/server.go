package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Hara602/kioskSentry/internal/pihole"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Disabler 由 pihole.Client 实现
type Disabler interface {
	Disable(ctx context.Context, seconds int) (string, error)
}

type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8888,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second, // 要比 docker exec 的 5 秒超时长
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}

type Server struct {
	httpServer      *http.Server
	addr            string
	shutdownTimeout time.Duration

	disabler Disabler
	log      *zap.Logger
}

func New(cfg Config, disabler Disabler, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s := &Server{
		addr:            addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		disabler:        disabler,
		log:             log,
	}
	// net/http 每个连接一个 goroutine，一个慢请求不会卡住别的请求
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", s.handleDisable)
	r.Get("/health", s.handleHealth)

	// 任意路径的 GET 都按暂停请求处理，书签里写成 /pause?duration=5 也能用
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			s.handleDisable(w, r)
			return
		}
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})
	return r
}

// Start 阻塞直到 ctx 取消或监听失败
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.log.Info("🌐 Pi-hole webhook listening", zap.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Shutting down webhook server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		// 正在执行的请求可以直接丢掉，再次请求即可
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.httpServer.Close()
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
}

func (s *Server) handleDisable(w http.ResponseWriter, r *http.Request) {
	// 查询串有格式错误时不能退回默认时长
	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrInvalidDuration.Error()})
		return
	}
	req, err := ParseDuration(query.Get("duration"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// 客户端断开也要把命令执行完
	output, err := s.disabler.Disable(context.WithoutCancel(r.Context()), req.Duration)
	if err != nil {
		if errors.Is(err, pihole.ErrCommandTimeout) {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Command timeout"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, DisableResponse{
		Status:  "success",
		Message: fmt.Sprintf("Pi-hole disabled for %d seconds", req.Duration),
		Output:  output,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
