package jobs

import (
	"context"
	"log"
	"time"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
)

// Syncer runs a full sync pass for one observation kind.
type Syncer interface {
	SyncWeather(ctx context.Context) (entities.SyncReport, error)
	SyncAirQuality(ctx context.Context) (entities.SyncReport, error)
}

// SyncScheduler periodically pulls fresh readings from the external providers
// and pushes the resulting entities to the context broker.
type SyncScheduler struct {
	syncer   Syncer
	interval time.Duration
	stop     chan struct{}
}

func NewSyncScheduler(syncer Syncer, interval time.Duration) *SyncScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SyncScheduler{
		syncer:   syncer,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *SyncScheduler) Start(ctx context.Context) {
	log.Printf("🕐 Starting provider sync scheduler (every %s)...", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Provider sync scheduler stopped (context cancelled)")
			return
		case <-s.stop:
			log.Println("⏹️ Provider sync scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SyncScheduler) Stop() {
	close(s.stop)
}

func (s *SyncScheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Sync pass panicked: %v", r)
		}
	}()

	weather, err := s.syncer.SyncWeather(ctx)
	if err != nil {
		log.Printf("❌ Weather sync failed: %v", err)
	} else if weather.Attempted > 0 {
		log.Printf("✅ Synced %d/%d weather observations (%d failed)", weather.Synced, weather.Attempted, weather.Failed)
	}

	air, err := s.syncer.SyncAirQuality(ctx)
	if err != nil {
		log.Printf("❌ Air quality sync failed: %v", err)
	} else if air.Attempted > 0 {
		log.Printf("✅ Synced %d/%d air quality observations (%d failed)", air.Synced, air.Attempted, air.Failed)
	}
}
