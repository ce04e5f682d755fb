package projection

import "time"

// seedFunc returns a pseudo-random seed (override for deterministic Monte
// Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }
