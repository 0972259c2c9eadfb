package services

import "time"

// Redis cache keys shared across services. Write paths invalidate; read
// paths repopulate with short TTLs so stale windows stay small.
const (
	cacheKeyProducts    = "products:all"
	cacheKeySalesReport = "dashboard:sales-report"
	cacheKeyDashboard   = "dashboard:metrics"
)

var (
	productsCacheTTL = 30 * time.Second
	reportCacheTTL   = time.Minute
)
