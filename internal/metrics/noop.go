package metrics

// NoopRecorder discards all metrics.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncUserRegistered() {}
func (NoopRecorder) IncUserDeleted()    {}
func (NoopRecorder) IncLoginSuccess()   {}
func (NoopRecorder) IncLoginFailure()   {}
func (NoopRecorder) IncPostCreated()    {}
func (NoopRecorder) IncPostCacheHit()   {}
func (NoopRecorder) IncPostCacheMiss()  {}
