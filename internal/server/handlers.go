package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/elcappfet/menuapi/internal/menu"
	"github.com/elcappfet/menuapi/internal/parse"
)

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API Menus Eldora",
		"version": serviceVersion,
		"endpoints": gin.H{
			"/menus":                            "Récupérer tous les menus de la semaine (legacy)",
			"/menus/today":                      "Récupérer le menu du jour",
			"/menus/weekly":                     "Récupérer le menu complet de la semaine",
			"/menus/weekly/pdf":                 "Exporter le menu de la semaine en PDF",
			"/menus/{jour}":                     "Récupérer le menu d'un jour spécifique",
			"/images/menu/{type}/{description}": "Générer une image pour un menu",
			"/images/cache/stats":               "Statistiques du cache d'images",
			"/images/cache":                     "Vider le cache d'images (DELETE)",
			"/metrics":                          "Métriques Prometheus",
			"/health":                           "État de santé du service",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// loadWeek fetches the page and runs the extraction, writing the error
// response itself on failure. Connection problems map to 503, parse
// problems to 500, matching the upstream contract.
func (s *Server) loadWeek(c *gin.Context) (*menu.WeekMenu, bool) {
	html, err := s.fetcher.Get(c.Request.Context(), s.menuURL)
	if err != nil {
		log.Error().Err(err).Msg("erreur de requête HTTP")
		menuParsesTotal.WithLabelValues("fetch_error").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Erreur de connexion: " + err.Error()})
		return nil, false
	}
	week, err := s.parser.ExtractWeek(html)
	if err != nil {
		log.Error().Err(err).Msg("erreur lors du parsing")
		menuParsesTotal.WithLabelValues("parse_error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur de traitement: " + err.Error()})
		return nil, false
	}
	menuParsesTotal.WithLabelValues("ok").Inc()
	return week, true
}

// itemJSON renders an item as-is, or JSON null when absent.
func itemJSON(item *menu.MenuItem) any {
	if item == nil {
		return nil
	}
	return item
}

// itemAvail renders an item with an explicit availability flag.
func itemAvail(item *menu.MenuItem) gin.H {
	if item == nil {
		return gin.H{"disponible": false}
	}
	return gin.H{
		"type":       item.Type,
		"contenu":    item.Contenu,
		"prix":       item.Prix,
		"disponible": true,
	}
}

// getMenus is the legacy full-week endpoint without availability flags.
func (s *Server) getMenus(c *gin.Context) {
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	jours := gin.H{}
	for i := range week.Jours {
		j := &week.Jours[i]
		jours[j.Jour] = gin.H{
			"bistro":   itemJSON(j.Bistro),
			"vitality": itemJSON(j.Vitality),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     gin.H{"semaine": week.Semaine, "jours": jours},
		"metadata": week.Metadata,
	})
}

func (s *Server) getTodayMenu(c *gin.Context) {
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	day := week.Today(time.Now())
	if day == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Aucun menu trouvé pour aujourd'hui"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"jour":     day.Jour,
			"semaine":  week.Semaine,
			"bistro":   itemAvail(day.Bistro),
			"vitality": itemAvail(day.Vitality),
		},
		"metadata": gin.H{
			"source_url":        week.Metadata.SourceURL,
			"parsed_at":         week.Metadata.ParsedAt,
			"jours_disponibles": week.Metadata.JoursDisponibles,
			"total_jours":       week.Metadata.TotalJours,
			"served_at":         time.Now().Format(time.RFC3339),
			"endpoint":          "today",
		},
	})
}

func (s *Server) getWeeklyMenu(c *gin.Context) {
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	jours := gin.H{}
	for i := range week.Jours {
		j := &week.Jours[i]
		jours[j.Jour] = gin.H{
			"bistro":   itemAvail(j.Bistro),
			"vitality": itemAvail(j.Vitality),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"semaine": week.Semaine, "jours": jours},
		"metadata": gin.H{
			"source_url":        week.Metadata.SourceURL,
			"parsed_at":         week.Metadata.ParsedAt,
			"jours_disponibles": week.Metadata.JoursDisponibles,
			"total_jours":       week.Metadata.TotalJours,
			"served_at":         time.Now().Format(time.RFC3339),
			"endpoint":          "weekly",
		},
	})
}

func (s *Server) getWeeklyMenuPDF(c *gin.Context) {
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	b, err := renderWeekPDF(week)
	if err != nil {
		log.Error().Err(err).Msg("erreur de rendu PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur de traitement: " + err.Error()})
		return
	}
	c.Header("Content-Disposition", `inline; filename="menu-semaine.pdf"`)
	c.Data(http.StatusOK, "application/pdf", b)
}

func (s *Server) getDayMenu(c *gin.Context) {
	jour := c.Param("jour")
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	day := week.FindDay(jour)
	if day == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"detail":            "Jour '" + jour + "' non trouvé",
			"jours_disponibles": week.DayNames(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"jour":     day.Jour,
			"semaine":  week.Semaine,
			"bistro":   itemJSON(day.Bistro),
			"vitality": itemJSON(day.Vitality),
		},
		"metadata": week.Metadata,
	})
}

func (s *Server) getMenuImage(c *gin.Context) {
	if s.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service de génération d'images non disponible"})
		return
	}
	menuType := c.Param("type")
	description := c.Param("description")

	// The description may embed the price; split it off so equal dishes
	// hash to the same key regardless of formatting.
	prix, found := parse.ExtractPrice(description)
	if found {
		description = parse.StripPrice(description)
	}
	item := menu.MenuItem{
		Type:    menuType,
		Contenu: strings.TrimSpace(description),
		Prix:    prix,
	}

	b, fromCache, err := s.images.Generate(c.Request.Context(), item)
	if err != nil {
		log.Error().Err(err).Str("contenu", item.Contenu).Msg("erreur génération image")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur génération image: " + err.Error()})
		return
	}
	source := "generated"
	if fromCache {
		source = "cache"
	}
	menuImagesServedTotal.WithLabelValues(source).Inc()

	c.Header("Cache-Control", "public, max-age=7200")
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) getImageCacheStats(c *gin.Context) {
	if s.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service de génération d'images non disponible"})
		return
	}
	c.JSON(http.StatusOK, s.images.Cache.Stats())
}

func (s *Server) clearImageCache(c *gin.Context) {
	if s.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service de génération d'images non disponible"})
		return
	}
	removed := s.images.Cache.Clear()
	c.JSON(http.StatusOK, gin.H{
		"message":         "Cache vidé avec succès",
		"entries_removed": removed,
	})
}
