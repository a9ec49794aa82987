package utils

import (
	"strconv"
)

// StringToInt parses s as an int, falling back to 0. Form fields use this
// so a missing or garbled value reads as "not provided".
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// StringToUint parses s as an id-shaped value; anything unparsable or
// negative reads as 0.
func StringToUint(s string) uint {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0
	}
	return uint(i)
}
