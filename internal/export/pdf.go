// Package export renders a session transcript to a printable PDF so a
// player can keep or share the story of a session.
package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/tatianab/tabletop-dm/internal/game"
)

const (
	margin    = 40.0
	titleSize = 16.0
	bodySize  = 10.0
	labelSize = 8.0
	lineH     = 14.0
)

// Transcript renders the session's dialogue to PDF bytes. recap, when
// non-empty, is printed as a summary block under the title.
func Transcript(s *game.Session, recap string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	title := s.Stats.Name
	if title == "" {
		title = "Adventure"
	}
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.CellFormat(0, titleSize+6, title, "", 1, "L", false, 0, "")

	if s.Stats.Class != "" {
		pdf.SetFont("Helvetica", "I", labelSize)
		pdf.CellFormat(0, labelSize+4, s.Stats.Class, "", 1, "L", false, 0, "")
	}
	pdf.Ln(lineH / 2)

	if recap != "" {
		pdf.SetFont("Helvetica", "B", bodySize)
		pdf.CellFormat(0, lineH, "Session Recap", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", bodySize)
		pdf.MultiCell(0, lineH, recap, "", "L", false)
		pdf.Ln(lineH)
	}

	for _, m := range s.Dialogue {
		pdf.SetFont("Helvetica", "B", labelSize)
		pdf.CellFormat(0, lineH, string(m.Speaker), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", bodySize)
		pdf.MultiCell(0, lineH, m.Text, "", "L", false)
		pdf.Ln(lineH / 2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
