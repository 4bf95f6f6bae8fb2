package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

const DefaultAutoRefreshInterval = 5 * time.Minute

type RefreshFunc func(ctx context.Context) error

// RefreshService runs refresh on a fixed interval until its context ends.
// It mirrors the dashboard's periodic auto refresh on the server side.
type RefreshService struct {
	interval time.Duration
	refresh  RefreshFunc
	ticks    atomic.Int64
}

func NewRefreshService(interval time.Duration, refresh RefreshFunc) *RefreshService {
	if interval <= 0 {
		interval = DefaultAutoRefreshInterval
	}
	return &RefreshService{interval: interval, refresh: refresh}
}

func (service *RefreshService) Interval() time.Duration {
	return service.interval
}

func (service *RefreshService) Ticks() int64 {
	return service.ticks.Load()
}

func (service *RefreshService) Start(ctx context.Context) {
	ticker := time.NewTicker(service.interval)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.Tick(ctx)
			}
		}
	}()
}

func (service *RefreshService) Tick(ctx context.Context) {
	tick := service.ticks.Add(1)
	log.Printf("auto refresh: tick %d", tick)
	if service.refresh == nil {
		return
	}
	if err := service.refresh(ctx); err != nil {
		log.Printf("auto refresh: tick %d failed: %v", tick, err)
	}
}
