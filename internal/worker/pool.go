package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StartPool launches numWorkers goroutines consuming the report queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, numWorkers int, reportes *ReporteWorker) {
	for i := 0; i < numWorkers; i++ {
		go run(ctx, rdb, i, reportes)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool iniciado")
}

func run(ctx context.Context, rdb *redis.Client, id int, reportes *ReporteWorker) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker detenido")
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueReportes).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			process(ctx, result[1], reportes)
		}
	}
}

func process(ctx context.Context, raw string, reportes *ReporteWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("job ilegible, se descarta")
		return
	}

	switch job.Type {
	case "reporte_corte":
		var payload ReporteCortePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("payload de reporte_corte ilegible")
			return
		}
		if err := reportes.Process(ctx, payload); err != nil {
			log.Error().Err(err).Str("corte_id", payload.CorteID).Msg("reporte de corte fallido")
		}
	default:
		log.Warn().Str("type", job.Type).Msg("tipo de job desconocido")
	}
}
