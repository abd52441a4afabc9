package utils

import (
	// Go Internal Packages
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
)

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "0,1,7", JoinInts([]int32{0, 1, 7}, ","))
	assert.Equal(t, "3", JoinInts([]int{3}, ","))
	assert.Equal(t, "", JoinInts([]int64(nil), ","))
}
