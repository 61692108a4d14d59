package app

// Metrics is the sink for domain-level counters. The metrics package
// provides the Prometheus implementation; services default to a no-op.
type Metrics interface {
	PostCreated()
	DailyLimitHit()
	LikeToggled()
	CommentAdded()
	AccountCreated()
}

type noopMetrics struct{}

func (noopMetrics) PostCreated()    {}
func (noopMetrics) DailyLimitHit()  {}
func (noopMetrics) LikeToggled()    {}
func (noopMetrics) CommentAdded()   {}
func (noopMetrics) AccountCreated() {}
