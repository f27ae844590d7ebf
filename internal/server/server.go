// Package server exposes the parsed menus and the image pipeline over REST.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/elcappfet/menuapi/internal/imagegen"
	"github.com/elcappfet/menuapi/internal/parse"
)

const serviceName = "eldora-menu-api"
const serviceVersion = "1.0.0"

// Fetcher obtains the raw menu page. Satisfied by fetch.Client; tests
// substitute a stub.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Server wires the fetcher, the parser and the image generator behind the
// HTTP routes. No week-level caching exists here: every request re-fetches
// and re-parses.
type Server struct {
	fetcher Fetcher
	parser  *parse.Parser
	menuURL string
	// images is nil when no API key is configured; the image routes then
	// answer 503.
	images *imagegen.Generator
	engine *gin.Engine
}

// New assembles the router. images may be nil.
func New(fetcher Fetcher, parser *parse.Parser, menuURL string, images *imagegen.Generator) *Server {
	s := &Server{
		fetcher: fetcher,
		parser:  parser,
		menuURL: menuURL,
		images:  images,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(prometheusMiddleware())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	menus := r.Group("/menus")
	{
		menus.GET("", s.getMenus)
		menus.GET("/today", s.getTodayMenu)
		menus.GET("/weekly", s.getWeeklyMenu)
		menus.GET("/weekly/pdf", s.getWeeklyMenuPDF)
		menus.GET("/:jour", s.getDayMenu)
	}

	img := r.Group("/images")
	{
		img.GET("/menu/:type/:description", s.getMenuImage)
		img.GET("/cache/stats", s.getImageCacheStats)
		img.DELETE("/cache", s.clearImageCache)
	}

	s.engine = r
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("serveur démarré")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
