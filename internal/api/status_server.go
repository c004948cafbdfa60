// Package api предоставляет HTTP-интерфейс наблюдения за движком мира:
// проверка живости, сводка состояния и метрики Prometheus.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/world"
)

// StatusServer — HTTP-сервер статуса движка
type StatusServer struct {
	router     *gin.Engine
	world      *world.World
	httpServer *http.Server
	startTime  time.Time
	log        *logging.Logger
}

// NewStatusServer создаёт сервер статуса поверх запущенного мира
func NewStatusServer(w *world.World, port int) *StatusServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New() // без стандартного logger/recovery
	router.Use(gin.Recovery())

	server := &StatusServer{
		router:    router,
		world:     w,
		startTime: time.Now(),
		log:       logging.GetServerLogger(),
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты сервера статуса
func (s *StatusServer) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/status", s.handleStatus)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleHealth — проверка живости
func (s *StatusServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleStatus — сводка состояния мира
func (s *StatusServer) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"world":    s.world.Title(),
		"seed":     s.world.Seed(),
		"state":    s.world.State().String(),
		"time":     s.world.TimeOfDay(),
		"daylight": s.world.Daylight(),
		"chunks": gin.H{
			"cached":  s.world.Cache().Size(),
			"pending": s.world.Updates().PendingCount(),
		},
		"mean_update": s.world.Updates().MeanServiceDuration().String(),
		"uptime":      time.Since(s.startTime).String(),
		"info":        s.world.Info(),
	})
}

// Start запускает HTTP-сервер в фоновой горутине
func (s *StatusServer) Start() {
	go func() {
		s.log.Info("HTTP-сервер статуса запущен на %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("Ошибка HTTP-сервера статуса: %v", err)
		}
	}()
}

// Stop останавливает HTTP-сервер с таймаутом
func (s *StatusServer) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
