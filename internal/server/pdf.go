package server

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/elcappfet/menuapi/internal/menu"
)

// renderWeekPDF lays out the week menu as a simple printable A4 page:
// the period as a heading, then per day the two category blocks with
// description and price.
func renderWeekPDF(week *menu.WeekMenu) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(week.Semaine), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeItem := func(item *menu.MenuItem) {
		if item == nil {
			return
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, tr(item.Type), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, tr(item.Contenu), "", "L", false)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 5, tr(item.Prix), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.Ln(1)
	}

	for i := range week.Jours {
		j := &week.Jours[i]
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(j.Jour), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		if j.Bistro == nil && j.Vitality == nil {
			pdf.CellFormat(0, 5, tr("Pas de menu disponible"), "", 1, "L", false, 0, "")
		}
		writeItem(j.Bistro)
		writeItem(j.Vitality)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
