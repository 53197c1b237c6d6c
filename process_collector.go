package metrics

// NewProcessCollector returns a Collector that exposes process_* metrics read
// from the operating system: CPU seconds, open and maximum file descriptors,
// virtual and resident memory, thread count and process start time.
//
// On platforms without process accounting support the collector produces no
// families. Values that cannot be read are skipped rather than reported as
// zero.
func NewProcessCollector() Collector {
	return &processCollector{}
}

type processCollector struct{}

func (pc *processCollector) Collect() []Family {
	return collectProcessFamilies()
}
