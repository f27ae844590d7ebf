// Package parse turns the weekly cafeteria menu page into structured
// day/menu records. The extractor tolerates partial day rows and missing
// panels; only a document without any recognizable day structure is fatal.
package parse

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/elcappfet/menuapi/internal/menu"
)

// StructureError reports a document whose global shape cannot be
// recognized: either no day rows at all, or rows that yield no usable day.
// Partial damage (missing panels, titles, prices) never raises it.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string { return e.Reason }

// The two failure messages kept verbatim from the service's API contract.
const (
	reasonNoRows = "Structure HTML non reconnue"
	reasonNoDays = "Aucun menu trouvé dans la page"
)

// Parser extracts a WeekMenu from the menu page HTML. The zero value is not
// usable; construct with New. A Parser is stateless and safe for concurrent
// use.
type Parser struct {
	Markers Markers
	// SourceURL is recorded in the result metadata as provenance.
	SourceURL string
}

// New returns a Parser wired to the upstream page's markers.
func New(sourceURL string) *Parser {
	return &Parser{Markers: DefaultMarkers(), SourceURL: sourceURL}
}

// ExtractWeek parses htmlText and assembles the full-week aggregate.
// Each call is an independent, side-effect-free transformation.
func (p *Parser) ExtractWeek(htmlText string) (*menu.WeekMenu, error) {
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil || root == nil {
		return nil, &StructureError{Reason: reasonNoRows}
	}

	semaine := "Semaine inconnue"
	if title := findByClass(root, "h1", p.Markers.WeekTitle); title != nil {
		if span := findFirst(title, "span"); span != nil {
			if s := Normalize(nodeText(span)); s != "" {
				semaine = s
			}
		}
	}
	log.Debug().Str("semaine", semaine).Msg("période détectée")

	rows := findAllByClass(root, "div", p.Markers.DayRow)
	if len(rows) == 0 {
		log.Error().Msg("aucune ligne de jour trouvée dans le HTML")
		return nil, &StructureError{Reason: reasonNoRows}
	}

	jours := make([]menu.DayMenu, 0, len(rows))
	for _, row := range rows {
		if d := p.extractDay(row); d != nil {
			jours = append(jours, *d)
		}
	}
	if len(jours) == 0 {
		log.Error().Msg("aucun menu extrait")
		return nil, &StructureError{Reason: reasonNoDays}
	}
	log.Debug().Int("jours", len(jours)).Msg("menus extraits")

	week := &menu.WeekMenu{
		Semaine: semaine,
		Jours:   jours,
		Metadata: menu.Metadata{
			SourceURL:  p.SourceURL,
			ParsedAt:   time.Now(),
			TotalJours: len(jours),
		},
	}
	week.Metadata.JoursDisponibles = week.DayNames()
	return week, nil
}

// extractDay reads one day row. A row without a day-name element is dropped
// by returning nil; everything else degrades to empty slots.
func (p *Parser) extractDay(row *html.Node) *menu.DayMenu {
	nameNode := findByClass(row, "div", p.Markers.DayName)
	if nameNode == nil {
		return nil
	}
	jour := strings.ToLower(Normalize(nodeText(nameNode)))
	log.Debug().Str("jour", jour).Msg("extraction du jour")

	day := &menu.DayMenu{Jour: jour}

	panels := findAllByClass(row, "div", p.Markers.Panel)
	if len(panels) < 2 {
		log.Warn().Str("jour", jour).Int("panels", len(panels)).Msg("nombre insuffisant de panels")
		return day
	}

	for _, panel := range panels {
		titleNode := findByClass(panel, "div", p.Markers.PanelTitle)
		if titleNode == nil {
			continue
		}
		typeMenu := Normalize(nodeText(titleNode))

		contentNode := findByClass(panel, "div", p.Markers.PanelContent)
		if contentNode == nil {
			continue
		}
		span := findFirst(contentNode, "span")
		if span == nil {
			continue
		}
		contenu := Normalize(nodeText(span))

		prix := PriceUnknown
		if priceNode := findByClass(panel, "div", p.Markers.PanelPrice); priceNode != nil {
			prix, _ = ExtractPrice(nodeText(priceNode))
		}

		item := &menu.MenuItem{Type: typeMenu, Contenu: contenu, Prix: prix}
		lower := strings.ToLower(typeMenu)
		switch {
		case strings.Contains(lower, p.Markers.PrimaryCategory):
			day.Bistro = item
		case strings.Contains(lower, p.Markers.SecondaryCategory):
			day.Vitality = item
		}
	}
	return day
}
