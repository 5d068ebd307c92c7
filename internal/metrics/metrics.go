// Package metrics provides lightweight in-process counters for
// application events.
package metrics

// Recorder records application metrics. Implementations must be safe
// for concurrent use.
type Recorder interface {
	IncUserRegistered()
	IncUserDeleted()
	IncLoginSuccess()
	IncLoginFailure()
	IncPostCreated()
	IncPostCacheHit()
	IncPostCacheMiss()
}
