package main

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate(t *testing.T) {
	tables := []struct {
		v    int
		want int32
	}{
		{0, 0},
		{-320, -320},
		{math.MaxInt32, math.MaxInt32},
		{math.MinInt32, math.MinInt32},
	}

	for _, table := range tables {
		v, err := coordinate("left", table.v)
		require.NoError(t, err)
		assert.Equal(t, table.want, v)
	}

	for _, v := range []int{math.MaxInt32 + 1, math.MinInt32 - 1, 3000000000, -3000000000} {
		_, err := coordinate("right", v)
		assert.EqualError(t, err, "right coordinate "+strconv.Itoa(v)+" is out of range")
	}
}
