package surreal

import "strings"

// isNoRecord reports whether an error from Select just means the record
// does not exist. The client surfaces missing records as unmarshal
// failures rather than a typed error, so this is a string match on the
// two shapes it produces.
func isNoRecord(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Expected a single or multiple results but got 0") ||
		strings.Contains(msg, "cannot unmarshal array into Go value")
}
