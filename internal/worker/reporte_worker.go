package worker

import (
	"context"
	"errors"
	"fmt"

	"galeriapos/internal/config"
	"galeriapos/internal/infra"
	"galeriapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReporteWorker renders the PDF summary of a corte and emails it to the
// configured report address. SMTP goes through a circuit breaker so a dead
// mail server does not pile up goroutines retrying.
type ReporteWorker struct {
	corteRepo repository.CorteRepository
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	cfg       *config.Config
}

func NewReporteWorker(corteRepo repository.CorteRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, cfg *config.Config) *ReporteWorker {
	return &ReporteWorker{corteRepo: corteRepo, mailer: mailer, cb: cb, cfg: cfg}
}

func (w *ReporteWorker) Process(ctx context.Context, payload ReporteCortePayload) error {
	id, err := uuid.Parse(payload.CorteID)
	if err != nil {
		return fmt.Errorf("corte_id inválido: %w", err)
	}
	corte, err := w.corteRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("corte %s no encontrado: %w", payload.CorteID, err)
	}

	pdfPath, err := infra.GenerateCortePDF(corte, w.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	log.Info().Str("corte_id", payload.CorteID).Str("pdf", pdfPath).Msg("PDF de corte generado")

	if w.cfg.ReporteEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Corte %s (%s a %s)",
		corte.Periodo,
		corte.FechaInicio.Format("02/01/2006"),
		corte.FechaFin.Format("02/01/2006"))
	body := fmt.Sprintf(
		"Se generó el corte del periodo %s.\n\nVentas: $%s\nComisión tarjeta: $%s\nTotal marcas: $%s\nTotal tienda: $%s\nEgresos: $%s\n",
		corte.Periodo,
		corte.TotalVentas.StringFixed(2),
		corte.TotalComisionTarjeta.StringFixed(2),
		corte.TotalMarcas.StringFixed(2),
		corte.TotalTiendas.StringFixed(2),
		corte.TotalEgresos.StringFixed(2))

	err = w.cb.Execute(func() error {
		return w.mailer.SendReporte(w.cfg.ReporteEmail, subject, body, pdfPath)
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		log.Warn().Str("corte_id", payload.CorteID).Msg("SMTP en circuito abierto, reporte no enviado")
		return nil // the PDF is on disk, the email can be re-sent by hand
	}
	return err
}
