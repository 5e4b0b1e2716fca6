package reconciler

import "time"

const DefaultOrphanTimeout = 10 * time.Minute

type Config struct {
	OrphanTimeout time.Duration
}
