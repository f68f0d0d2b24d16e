package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpadapter "svw.info/sudoku-board/internal/adapters/http"
	"svw.info/sudoku-board/internal/infrastructure/storage"
	"svw.info/sudoku-board/internal/loader"
	"svw.info/sudoku-board/internal/ports"
	"svw.info/sudoku-board/internal/render"
	"svw.info/sudoku-board/internal/usecase"
	"svw.info/sudoku-board/internal/validator"
)

// requestLogger logs method, path, status, and duration for every request.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("dur", time.Since(start).Round(time.Millisecond)).
			Msg("http")
	}
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "./sudoku.db", "SQLite database path (empty = in-memory sessions only)")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	puzzle := flag.String("puzzle", "", "optional puzzle JSON file to start a session from at boot")
	flag.Parse()

	lvl := zerolog.InfoLevel
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(lvl)
	logger := log.Logger

	var store ports.SessionStore
	if *dbPath != "" {
		st, err := storage.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("open session store")
		}
		defer st.Close()
		store = st
	} else {
		logger.Warn().Msg("no database configured, sessions are in-memory only")
	}

	uc := usecase.NewService(store, validator.New(), logger)
	h := httpadapter.New(uc, render.New(), logger)

	if *puzzle != "" {
		g, err := loader.FromFile(*puzzle)
		if err != nil {
			log.Fatal().Err(err).Str("path", *puzzle).Msg("load puzzle")
		}
		sn, err := uc.Start(context.Background(), g)
		if err != nil {
			log.Fatal().Err(err).Msg("start puzzle session")
		}
		logger.Info().Str("session", sn.ID).Msg("puzzle session ready")
		_ = render.Text(os.Stdout, sn.Grid)
	}

	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger(logger))
	h.Register(e)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info().Str("addr", *addr).Str("db", *dbPath).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("run server")
	}
}
