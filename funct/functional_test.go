package funct

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	result, err := Map([]string{"1", "2", "3"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result)

	result, err = Map([]string{}, strconv.Atoi)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	result, err := Map([]int{1, 2}, func(x int) (int, error) {
		if x == 2 {
			return 0, boom
		}
		return x, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result)
}

func TestFilter(t *testing.T) {
	result := Filter([]*int{nil, new(int), nil}, func(x *int) bool {
		return x != nil
	})
	assert.Len(t, result, 1)
}
