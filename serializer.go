package metrics

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// TextContentType is the media type of the exposition format produced by
// WriteText.
const TextContentType = "text/plain; version=0.0.4"

// WriteText renders families to w in Prometheus text exposition format, in
// input order:
//
//	# HELP <name> <help>        (omitted when help is empty)
//	# TYPE <name> <type>
//	<sample-name>{<label>="<value>",...} <numeric>
//	...
//	                            (blank line terminates each family block)
//
// Floating point values render in fixed-point decimal without exponent
// notation, positive infinity as the literal +Inf. Integer counts render as
// plain decimal digits.
//
// Label values are interpolated verbatim into the quoted position; embedded
// quote, backslash and newline characters are NOT escaped. This is a known
// limitation carried forward deliberately, since downstream consumers'
// expectations for escaped values are unspecified.
func WriteText(w io.Writer, families []Family) {
	for _, family := range families {
		if family.Help != "" {
			fmt.Fprintf(w, "# HELP %s %s\n", family.Name, family.Help)
		}
		fmt.Fprintf(w, "# TYPE %s %s\n", family.Name, family.Type)
		for _, sample := range family.Samples {
			writeSample(w, family.Type, sample)
		}
		io.WriteString(w, "\n")
	}
}

func writeSample(w io.Writer, familyType string, sample Sample) {
	io.WriteString(w, sample.Name)
	if len(sample.LabelValues) > 0 {
		io.WriteString(w, "{")
		for i, value := range sample.LabelValues {
			if i > 0 {
				io.WriteString(w, ",")
			}
			io.WriteString(w, sample.LabelNames[i])
			io.WriteString(w, `="`)
			io.WriteString(w, value)
			io.WriteString(w, `"`)
		}
		io.WriteString(w, "}")
	}
	io.WriteString(w, " ")
	io.WriteString(w, formatSampleValue(familyType, sample))
	io.WriteString(w, "\n")
}

// formatSampleValue selects the rendering for a sample value by family type.
// Histogram bucket and count samples and summary count samples carry integer
// counts; everything else is a float.
func formatSampleValue(familyType string, sample Sample) string {
	switch familyType {
	case "histogram":
		if strings.HasSuffix(sample.Name, "_bucket") || strings.HasSuffix(sample.Name, "_count") {
			return strconv.FormatUint(uint64(sample.Value), 10)
		}
	case "summary":
		if strings.HasSuffix(sample.Name, "_count") {
			return strconv.FormatUint(uint64(sample.Value), 10)
		}
	}
	if math.IsInf(sample.Value, 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(sample.Value, 'f', 6, 64)
}
