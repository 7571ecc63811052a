// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// AvailabilityCachePrefix keys a doctor's cached weekly windows.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL is the time-to-live for cached availability.
const AvailabilityCacheTTL = 10 * time.Minute

// DBTimeout bounds a single datastore call.
const DBTimeout = 5 * time.Second
