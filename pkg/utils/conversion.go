package utils

import "strconv"

// StringToUint parses a numeric URL parameter; 0 means unparseable and
// is never a valid generated id.
func StringToUint(str string) uint {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return uint(val)
}
