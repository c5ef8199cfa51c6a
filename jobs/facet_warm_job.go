package jobs

import (
	"context"
	"log"
	"time"

	"devmood-server/config"
	"devmood-server/database"
	"devmood-server/services"
)

// FacetWarmJob keeps the technology facet cache warm so filter UI reads
// don't hit the store on every request. It only runs when redis is
// configured.
type FacetWarmJob struct {
	interval time.Duration
	stopChan chan bool
}

// NewFacetWarmJob creates a new facet warm job
func NewFacetWarmJob() *FacetWarmJob {
	return &FacetWarmJob{
		interval: config.AppConfig.Feed.FacetWarmInterval,
		stopChan: make(chan bool),
	}
}

// Start begins the facet warm job
func (j *FacetWarmJob) Start() {
	if database.GetRedis() == nil {
		log.Println("ℹ️ Facet warm job skipped, no cache configured")
		return
	}
	go j.run()
	log.Println("🚀 Facet warm job started")
}

// Stop stops the facet warm job
func (j *FacetWarmJob) Stop() {
	if database.GetRedis() == nil {
		return
	}
	j.stopChan <- true
	log.Println("🛑 Facet warm job stopped")
}

// run executes the facet warm job
func (j *FacetWarmJob) run() {
	// Warm once at startup before the first tick
	j.refresh()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.refresh()
		case <-j.stopChan:
			return
		}
	}
}

func (j *FacetWarmJob) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := services.NewCachedFeedService(database.GetDB(), database.GetRedis(), config.AppConfig.Feed.FacetCacheTTL)
	if err := svc.RefreshTechnologyCache(ctx); err != nil {
		log.Printf("❌ Facet cache refresh failed: %v", err)
	}
}
