package utils

import (
	// Go Internal Packages
	"strconv"
	"strings"
)

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// JoinInts renders vals separated by sep, e.g. partitions for a log line.
func JoinInts[T Integer](vals []T, sep string) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(strs, sep)
}
