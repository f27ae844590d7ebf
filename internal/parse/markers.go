package parse

// Markers names the structural hooks (CSS class tokens) used to locate menu
// content in the page. The extractor itself is marker-agnostic; keeping the
// class names in one table makes the coupling to the upstream markup explicit
// and lets tests feed synthetic documents through the same code path.
type Markers struct {
	// WeekTitle is the class of the <h1> whose nested <span> carries the
	// week period label, e.g. "Du 6 au 10 Octobre".
	WeekTitle string
	// DayRow is the class of the container holding one day's section.
	DayRow string
	// DayName is the class of the element carrying the day label.
	DayName string
	// Panel is the class of one category's offering inside a day row.
	Panel string
	// PanelTitle, PanelContent and PanelPrice are the classes of the
	// title, description and price blocks inside a panel. The description
	// text lives in a <span> nested under PanelContent.
	PanelTitle   string
	PanelContent string
	PanelPrice   string

	// PrimaryCategory and SecondaryCategory are lowercase substrings that
	// classify a panel title into the bistro or vitality slot. Titles
	// matching neither are discarded.
	PrimaryCategory   string
	SecondaryCategory string
}

// DefaultMarkers matches the markup served by the Eldora totem page.
func DefaultMarkers() Markers {
	return Markers{
		WeekTitle:         "titreMenu",
		DayRow:            "ligneSemaine",
		DayName:           "dayName",
		Panel:             "panelMenu",
		PanelTitle:        "menu-titre",
		PanelContent:      "containMenu",
		PanelPrice:        "menu-prix",
		PrimaryCategory:   "bistro",
		SecondaryCategory: "vitality",
	}
}
