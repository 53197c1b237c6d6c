package metrics

import "errors"

// ErrConfiguration is reported when instrumentation is declared with an
// invalid schema: bad metric name, bad or reserved label name, bad histogram
// buckets, or a duplicate registration. Configuration errors surface at setup
// time; a production system should refuse to start instead of running with
// malformed instrumentation.
var ErrConfiguration = errors.New("invalid metrics configuration")

// ErrContract is reported when a metric is used in a way that violates its
// caller contract: wrong number of label values passed to With, or a
// non-positive delta passed to Counter.Add. Contract violations are returned
// as recoverable errors, so an instrumentation bug cannot crash request paths.
var ErrContract = errors.New("metrics contract violation")
