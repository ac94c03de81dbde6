package web

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	app "sentry-bot/internal/application"
	"sentry-bot/internal/container"
	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

const wsWriteTimeout = 5 * time.Second

// Server HTTP-пульт: статус, последний кадр, старт/стоп, push по WebSocket
type Server struct {
	controller  *app.ModeController
	board       *app.ResultBoard
	encoder     port.FrameEncoder
	watchConfig entity.ControllerConfig
	upgrader    websocket.Upgrader
	engine      *gin.Engine
}

// StatusResponse снимок доски в JSON
type StatusResponse struct {
	Status    string    `json:"status"`
	Mode      string    `json:"mode"`
	Alert     bool      `json:"alert"`
	Running   bool      `json:"running"`
	Cycle     uint64    `json:"cycle"`
	RunID     string    `json:"run_id,omitempty"`
	HasFrame  bool      `json:"has_frame"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartRequest необязательные поправки к конфигурации запуска
type StartRequest struct {
	MotionThreshold      *int     `json:"motion_threshold"`
	PersonClassID        *int     `json:"person_class_id"`
	MinConfidence        *float32 `json:"min_confidence"`
	CycleIntervalSeconds *float64 `json:"cycle_interval_seconds"`
}

// NewServer создаёт сервер. metrics может быть nil.
func NewServer(services *container.Container, encoder port.FrameEncoder, watchConfig entity.ControllerConfig, metrics http.Handler) *Server {
	s := &Server{
		controller:  services.Controller,
		board:       services.Board,
		encoder:     encoder,
		watchConfig: watchConfig,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	api := engine.Group("/api")
	api.GET("/status", s.getStatus)
	api.GET("/frame.jpg", s.getFrame)
	api.POST("/start", s.postStart)
	api.POST("/stop", s.postStop)
	api.GET("/ws", s.streamStatus)
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics))
	}

	s.engine = engine
	return s
}

// Handler возвращает http.Handler для http.Server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// getStatus handles GET /api/status
func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, toStatusResponse(s.controller.Status()))
}

// getFrame handles GET /api/frame.jpg
func (s *Server) getFrame(c *gin.Context) {
	snap := s.controller.Status()
	if !snap.HasFrame() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no frame yet"})
		return
	}

	data, err := s.encoder.Encode(snap.Frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode frame"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/jpeg", data)
}

// postStart handles POST /api/start
func (s *Server) postStart(c *gin.Context) {
	cfg := s.watchConfig
	if c.Request.ContentLength > 0 {
		var req StartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cfg = req.apply(cfg)
	}

	err := s.controller.Start(c.Request.Context(), cfg)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, toStatusResponse(s.controller.Status()))
	case errors.Is(err, app.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrCaptureFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("Error starting watch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start"})
	}
}

// postStop handles POST /api/stop
func (s *Server) postStop(c *gin.Context) {
	if err := s.controller.Stop(); err != nil {
		log.Printf("Error stopping watch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop"})
		return
	}
	c.JSON(http.StatusOK, toStatusResponse(s.controller.Status()))
}

// streamStatus handles GET /api/ws: каждый новый снимок уходит клиенту
func (s *Server) streamStatus(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	updates, err := s.board.Subscribe(id)
	if err != nil {
		log.Printf("Error subscribing websocket %s: %v", id, err)
		return
	}
	defer s.board.Unsubscribe(id)

	// Читаем только чтобы заметить закрытие со стороны клиента
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(toStatusResponse(snap)); err != nil {
				return
			}
		}
	}
}

func (r StartRequest) apply(cfg entity.ControllerConfig) entity.ControllerConfig {
	if r.MotionThreshold != nil {
		cfg.MotionPixelThreshold = *r.MotionThreshold
	}
	if r.PersonClassID != nil {
		cfg.PersonClassID = *r.PersonClassID
	}
	if r.MinConfidence != nil {
		cfg.MinConfidence = *r.MinConfidence
	}
	if r.CycleIntervalSeconds != nil {
		cfg.CycleInterval = time.Duration(*r.CycleIntervalSeconds * float64(time.Second))
	}
	return cfg
}

func toStatusResponse(s entity.Snapshot) StatusResponse {
	return StatusResponse{
		Status:    s.Status,
		Mode:      string(s.Mode),
		Alert:     s.Alert,
		Running:   s.Running,
		Cycle:     s.Cycle,
		RunID:     s.RunID,
		HasFrame:  s.HasFrame(),
		UpdatedAt: s.UpdatedAt,
	}
}
