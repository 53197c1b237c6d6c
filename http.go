package metrics

import (
	"io"
	"net/http"
	"strconv"
)

// Handler returns an http.Handler that responds with the registry's current
// samples in Prometheus text exposition format.
//
// The body is rendered up front so the response carries an exact
// Content-Length header alongside the exposition content type.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body := r.Serialize()
		h := w.Header()
		h.Set("Content-Type", TextContentType)
		h.Set("Content-Length", strconv.Itoa(len(body)))
		io.WriteString(w, body)
	})
}
