package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	UsersDeleted    uint64
	LoginSuccesses  uint64
	LoginFailures   uint64
	PostsCreated    uint64
	PostCacheHits   uint64
	PostCacheMisses uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	usersDeleted    uint64
	loginSuccesses  uint64
	loginFailures   uint64
	postsCreated    uint64
	postCacheHits   uint64
	postCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		UsersDeleted:    atomic.LoadUint64(&m.usersDeleted),
		LoginSuccesses:  atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
		PostsCreated:    atomic.LoadUint64(&m.postsCreated),
		PostCacheHits:   atomic.LoadUint64(&m.postCacheHits),
		PostCacheMisses: atomic.LoadUint64(&m.postCacheMisses),
	}
}

func (m *InMemoryRecorder) IncUserRegistered() { atomic.AddUint64(&m.usersRegistered, 1) }
func (m *InMemoryRecorder) IncUserDeleted()    { atomic.AddUint64(&m.usersDeleted, 1) }
func (m *InMemoryRecorder) IncLoginSuccess()   { atomic.AddUint64(&m.loginSuccesses, 1) }
func (m *InMemoryRecorder) IncLoginFailure()   { atomic.AddUint64(&m.loginFailures, 1) }
func (m *InMemoryRecorder) IncPostCreated()    { atomic.AddUint64(&m.postsCreated, 1) }
func (m *InMemoryRecorder) IncPostCacheHit()   { atomic.AddUint64(&m.postCacheHits, 1) }
func (m *InMemoryRecorder) IncPostCacheMiss()  { atomic.AddUint64(&m.postCacheMisses, 1) }
