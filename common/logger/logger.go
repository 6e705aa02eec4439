package logger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coastlabs/coast-crawler/common/crawler"
	"github.com/coastlabs/coast-crawler/common/db"
	"github.com/coastlabs/coast-crawler/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"
)

// LogService persists crawl events to the crawl_logs table so the event
// history survives alongside the frontier it describes.
type LogService struct {
	db *db.DB
}

// NewLogService creates a new log service
func NewLogService(database *db.DB) *LogService {
	return &LogService{db: database}
}

// CrawlEvent implements crawler.EventSink. Persistence is best-effort; a
// failed insert is logged and never propagated to the crawl.
func (s *LogService) CrawlEvent(ctx context.Context, event crawler.Event) {
	detailsJSON := json.RawMessage("{}")
	if event.Details != nil {
		if data, err := json.Marshal(event.Details); err == nil {
			detailsJSON = data
		} else {
			log.Error().Err(err).Msg("Failed to marshal crawl event details")
		}
	}

	params := repository.CreateCrawlLogParams{
		ID:        uuid.New().String(),
		Host:      pgtype.Text{String: event.Host, Valid: event.Host != ""},
		Url:       pgtype.Text{String: event.URL, Valid: event.URL != ""},
		EventType: event.Type,
		Message:   pgtype.Text{String: event.Message, Valid: event.Message != ""},
		Details:   detailsJSON,
		CreatedAt: time.Now(),
	}

	// A bounded context of our own: event persistence must not inherit a
	// cancellation from a crawl that is shutting down mid-write.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.db.Queries.CreateCrawlLog(logCtx, params); err != nil {
		log.Error().Err(err).Str("eventType", event.Type).Msg("Failed to persist crawl event")
	}
}

// CheckDatabaseHealth verifies the database connection is alive
func (s *LogService) CheckDatabaseHealth(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// GetDatabaseStats returns connection pool statistics
func (s *LogService) GetDatabaseStats() map[string]interface{} {
	stat := s.db.Pool.Stat()
	return map[string]interface{}{
		"total_conns":    stat.TotalConns(),
		"idle_conns":     stat.IdleConns(),
		"acquired_conns": stat.AcquiredConns(),
		"max_conns":      stat.MaxConns(),
	}
}
