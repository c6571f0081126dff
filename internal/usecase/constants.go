package usecase

import "time"

const (
	// BalanceCacheTTL bounds how stale a cached balance query may get.
	BalanceCacheTTL = 30 * time.Second

	// balanceCachePrefix namespaces balance entries in the shared cache.
	balanceCachePrefix = "balance:"
)
