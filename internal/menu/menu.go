package menu

import (
	"time"
)

// MenuItem is one offered dish for one category on one day.
// JSON field names follow the upstream API contract and stay French.
type MenuItem struct {
	Type    string `json:"type"`
	Contenu string `json:"contenu"`
	Prix    string `json:"prix"`
}

// DayMenu holds the offerings of a single day. Either slot may be nil when
// the source page carries no panel for that category.
type DayMenu struct {
	Jour     string    `json:"jour"`
	Bistro   *MenuItem `json:"bistro"`
	Vitality *MenuItem `json:"vitality"`
}

// Metadata records where and when a WeekMenu was extracted.
type Metadata struct {
	SourceURL        string    `json:"source_url"`
	ParsedAt         time.Time `json:"parsed_at"`
	JoursDisponibles []string  `json:"jours_disponibles"`
	TotalJours       int       `json:"total_jours"`
}

// WeekMenu is the full-week aggregate produced by one extraction pass.
// It is built fresh on every parse and never mutated afterwards.
type WeekMenu struct {
	Semaine  string    `json:"semaine"`
	Jours    []DayMenu `json:"jours"`
	Metadata Metadata  `json:"metadata"`
}

// DayNames returns the day labels in document order.
func (w *WeekMenu) DayNames() []string {
	names := make([]string, 0, len(w.Jours))
	for _, j := range w.Jours {
		names = append(names, j.Jour)
	}
	return names
}

// FindDay looks up a day by name, ignoring case and accents. The source
// labels its days in French, so "Lundi" and "lundi" must both resolve.
func (w *WeekMenu) FindDay(name string) *DayMenu {
	want := FoldDayName(name)
	for i := range w.Jours {
		if FoldDayName(w.Jours[i].Jour) == want {
			return &w.Jours[i]
		}
	}
	return nil
}

// Today resolves the day matching now's weekday, falling back to the first
// available day when the page does not carry today (weekends, holidays).
// Returns nil only when the week has no days at all.
func (w *WeekMenu) Today(now time.Time) *DayMenu {
	if d := w.FindDay(TodayName(now)); d != nil {
		return d
	}
	if len(w.Jours) > 0 {
		return &w.Jours[0]
	}
	return nil
}
