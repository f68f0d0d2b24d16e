package httpadapter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"svw.info/sudoku-board/internal/domain"
	"svw.info/sudoku-board/internal/loader"
	"svw.info/sudoku-board/internal/ports"
	"svw.info/sudoku-board/internal/report"
	"svw.info/sudoku-board/internal/usecase"
)

type Handler struct {
	uc       *usecase.Service
	renderer ports.Renderer
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func New(uc *usecase.Service, r ports.Renderer, log zerolog.Logger) *Handler {
	return &Handler{
		uc:       uc,
		renderer: r,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) Register(e *gin.Engine) {
	v1 := e.Group("/api").Group("/v1")
	v1.POST("/sessions", h.create)
	v1.GET("/sessions", h.list)
	v1.GET("/sessions/:id", h.get)
	v1.POST("/sessions/:id/moves", h.play)
	v1.GET("/sessions/:id/moves", h.moves)
	v1.GET("/sessions/:id/render", h.render)
	v1.GET("/sessions/:id/watch", h.watch)
	v1.POST("/validate", h.validate)
	e.GET("/healthz", h.health)
}

// statusFor translates rule errors into HTTP statuses. Conflicts are 409;
// range and fixed-cell violations are the client's fault but the request
// was well-formed, so 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValueRange), errors.Is(err, domain.ErrFixedCell):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOutOfBounds), errors.Is(err, domain.ErrIllegalGrid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error":   report.Code(err),
		"message": report.Message(err),
	})
}

type createReq struct {
	Board [][]int `json:"board" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	g, err := loader.FromRows(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	sn, err := h.uc.Start(c.Request.Context(), g)
	if err != nil {
		h.log.Err(err).Msg("start session")
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sn)
}

func (h *Handler) list(c *gin.Context) {
	metas, err := h.uc.Sessions(c.Request.Context())
	if err != nil {
		h.log.Err(err).Msg("list sessions")
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": metas})
}

func (h *Handler) get(c *gin.Context) {
	sn, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sn)
}

type playReq struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

func (h *Handler) play(c *gin.Context) {
	var req playReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	sn, err := h.uc.Play(c.Request.Context(), c.Param("id"), req.Row, req.Col, req.Value)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sn)
}

func (h *Handler) moves(c *gin.Context) {
	moves, err := h.uc.Moves(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moves": moves})
}

func (h *Handler) render(c *gin.Context) {
	sn, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.renderer.Render(c.Writer, sn.Grid); err != nil {
		h.log.Err(err).Str("session", sn.ID).Msg("render board")
	}
}

type validateReq struct {
	Board [][]int `json:"board" binding:"required"`
}

func (h *Handler) validate(c *gin.Context) {
	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	g, err := loader.FromRows(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	ok, conflicts, err := h.uc.CheckGrid(c.Request.Context(), g)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok, "conflicts": conflicts})
}

// watch upgrades to a WebSocket and pushes the session state after every
// committed move until the client disconnects.
func (h *Handler) watch(c *gin.Context) {
	id := c.Param("id")
	ch, cancel, err := h.uc.Watch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		h.log.Err(err).Str("session", id).Msg("websocket upgrade")
		return
	}
	h.log.Info().Str("session", id).Msg("watcher connected")

	// Read pump exists only to observe the close; watchers never send.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for sn := range ch {
		if err := conn.WriteJSON(sn); err != nil {
			cancel()
			break
		}
	}
	conn.Close()
	h.log.Info().Str("session", id).Msg("watcher disconnected")
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
