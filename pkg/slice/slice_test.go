// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sixcities/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"4", "2"}, slice.Map([]int{4, 2}, strconv.Itoa))
}

func TestReduce(t *testing.T) {
	sum := slice.Reduce([]int{4, 2}, 0, func(acc, current int) int { return acc + current })
	assert.Equal(t, 6, sum)
	assert.Equal(t, 7, slice.Reduce([]int{}, 7, func(acc, current int) int { return acc + current }))
}
