// Package main implements a mock offer catalog API for local development.
// It serves canned offers and categories from a JSON fixture and issues
// throwaway user tokens, so the offers CLI can run without real credentials.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/offer-catalog/pkg/logger"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-catalog/testdata/catalog.json", "path to catalog fixture")
	logLevel := flag.String("log-level", "debug", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(*logLevel, "text")

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		log.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	log.Info("loaded fixture", "offers", len(fx.offers), "categories", len(fx.categories))

	e := newServer(log, fx)
	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock catalog server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutting down server", "error", err)
	}
}

func newServer(log *slog.Logger, fx *fixture) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = goccySerializer{}

	e.Use(recovery(log))
	e.Use(requestLog(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h := &handlers{fx: fx, log: log}
	e.POST("/user/register", h.register)
	e.GET("/offers/find", h.find)
	e.GET("/offers/recommended", h.recommended)
	e.GET("/offers/related", h.related)
	e.GET("/offers/get", h.get)
	e.GET("/offers/:id/code", h.code)
	e.GET("/categories", h.categoryList)
	e.GET("/search", h.search)

	return e
}
