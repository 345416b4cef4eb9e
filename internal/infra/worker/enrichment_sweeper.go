package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// EnrichmentSweeper requeues leads stuck in the enriching state, typically
// after a crash mid-discovery. Flipping them back to pending lets the next
// discovery pass retry them.
type EnrichmentSweeper struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewEnrichmentSweeper(db *sql.DB) *EnrichmentSweeper {
	return &EnrichmentSweeper{
		db:           db,
		staleWindow:  30 * time.Minute,
		tickInterval: 5 * time.Minute,
	}
}

func (w *EnrichmentSweeper) Start(ctx context.Context) {
	log.Println("enrichment sweeper started (30min stale window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("enrichment sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *EnrichmentSweeper) sweep(ctx context.Context) {
	query := `
		UPDATE lead_prospects
		SET enrichment_status = 'pending',
			updated_at = NOW()
		WHERE enrichment_status = 'enriching'
			AND updated_at < NOW() - INTERVAL '30 minutes'
		RETURNING id, email
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("enrichment sweeper: query failed: %v", err)
		return
	}
	defer rows.Close()

	requeued := 0
	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			log.Printf("enrichment sweeper: scan failed: %v", err)
			continue
		}
		log.Printf("enrichment sweeper: requeued stale lead %s (%s)", id, email)
		requeued++
	}

	if requeued > 0 {
		log.Printf("enrichment sweeper: requeued %d leads", requeued)
	}
}
