package infra

// pdf.go — Corte summary PDF using go-pdf/fpdf. A4 portrait with:
//   - Period header and date range
//   - Totals block (ventas, comisión, marcas, tienda, egresos)
//   - Per-brand table in first-seen order
// The output file is saved to storagePath/corte_{periodo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"galeriapos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCortePDF renders the settlement summary for a persisted corte.
// Returns the absolute path to the generated file.
func GenerateCortePDF(corte *model.Corte, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("corte_%s.pdf", corte.Periodo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Corte de Caja", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Periodo %s  —  %s a %s",
		corte.Periodo,
		corte.FechaInicio.Format("02/01/2006"),
		corte.FechaFin.Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals ────────────────────────────────────────────────────────────────
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW*0.6, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 7, value, "", 1, "R", false, 0, "")
	}

	row(fmt.Sprintf("Ventas (%d)", corte.CantidadVentas), "$"+corte.TotalVentas.StringFixed(2), false)
	row("Comisión tarjeta (4.6%)", "-$"+corte.TotalComisionTarjeta.StringFixed(2), false)
	row("Total marcas", "$"+corte.TotalMarcas.StringFixed(2), true)
	row("Total tienda", "$"+corte.TotalTiendas.StringFixed(2), true)
	row(fmt.Sprintf("Egresos (%d)", corte.CantidadEgresos), "-$"+corte.TotalEgresos.StringFixed(2), false)

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Per-brand table ───────────────────────────────────────────────────────
	col1 := contentW * 0.38 // marca
	col2 := contentW * 0.22 // contrato
	col3 := contentW * 0.14 // ventas
	col4 := contentW * 0.26 // total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Marca", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Contrato", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Ventas", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 7, "Total marca", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range corte.Detalles {
		nombre := truncarNombre(d.MarcaNombre, 32)
		contrato := string(d.TipoContrato)
		if d.TipoContrato == model.ContratoPorcentaje {
			contrato = fmt.Sprintf("%s %s%%", d.TipoContrato, d.ValorContrato.StringFixed(0))
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, contrato, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", d.CantidadVentas), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+d.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Generado el %s", corte.CreatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// truncarNombre caps a display name at max runes. Cutting by runes keeps
// accented names intact at the boundary.
func truncarNombre(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
