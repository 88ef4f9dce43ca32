package monitor

// FakeNotifier records everything sent through it, for tests.
type FakeNotifier struct {
	Events  []Event
	Metrics []Metric
	Err     error
}

func (f *FakeNotifier) SendEvent(event Event) error {
	f.Events = append(f.Events, event)
	return f.Err
}

func (f *FakeNotifier) SendMetric(metric Metric) error {
	f.Metrics = append(f.Metrics, metric)
	return f.Err
}
