package metrics

// Sample is a single rendered data point.
type Sample struct {
	Name        string
	Value       float64
	LabelNames  []string
	LabelValues []string
}

// Family is a named group of samples sharing one metric type. It is the unit
// the serializer consumes.
//
// Type is one of "counter", "gauge", "histogram" or "summary".
type Family struct {
	Name    string
	Help    string
	Type    string
	Samples []Sample
}

// Collector produces a current list of sample families on request.
//
// Metric families implement Collector; so can external data sources such as
// the process metrics provider returned by NewProcessCollector. Collectors
// must be safe for concurrent calls and must be comparable values, since a
// Registry rejects registering the same collector instance twice.
type Collector interface {
	Collect() []Family
}

// counterFamily returns a single-sample unlabeled counter family.
func counterFamily(name, help string, value float64) Family {
	return Family{
		Name:    name,
		Help:    help,
		Type:    "counter",
		Samples: []Sample{{Name: name, Value: value}},
	}
}

// gaugeFamily returns a single-sample unlabeled gauge family.
func gaugeFamily(name, help string, value float64) Family {
	return Family{
		Name:    name,
		Help:    help,
		Type:    "gauge",
		Samples: []Sample{{Name: name, Value: value}},
	}
}
