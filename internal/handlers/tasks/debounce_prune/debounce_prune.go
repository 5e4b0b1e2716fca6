package debounce_prune

import (
	"context"
	"time"
)

type Service interface {
	Prune()
}

// DebouncePrune чистит локальные ведра дребезга, когда Redis не настроен.
type DebouncePrune struct {
	service  Service
	interval time.Duration
}

func NewDebouncePrune(service Service, interval time.Duration) *DebouncePrune {
	return &DebouncePrune{
		service:  service,
		interval: interval,
	}
}

func (d *DebouncePrune) TTL() time.Duration {
	return d.interval
}

func (d *DebouncePrune) Do(context.Context) error {
	d.service.Prune()
	return nil
}

func (d *DebouncePrune) Info() string {
	return "debounce prune"
}
