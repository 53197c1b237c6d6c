//go:build !linux

package metrics

// Process accounting is only implemented for Linux.
func collectProcessFamilies() []Family {
	return nil
}
