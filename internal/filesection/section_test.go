package filesection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	sizes := []int64{3, 5}
	cases := []struct {
		off   int64
		index int
		pos   int64
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 0, 3},
		{4, 1, 1},
		{8, 1, 5},
	}
	for _, c := range cases {
		index, pos, err := Locate(sizes, c.off)
		require.NoError(t, err, "offset %d", c.off)
		require.Equal(t, c.index, index, "offset %d", c.off)
		require.Equal(t, c.pos, pos, "offset %d", c.off)
	}
}

func TestLocateOutOfRange(t *testing.T) {
	sizes := []int64{3, 5}
	_, _, err := Locate(sizes, 9)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = Locate(sizes, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = Locate(nil, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestLocateEmptyFiles(t *testing.T) {
	sizes := []int64{0, 4, 0, 2}
	index, pos, err := Locate(sizes, 0)
	require.NoError(t, err)
	require.Equal(t, 0, index)
	require.Zero(t, pos)

	index, pos, err = Locate(sizes, 5)
	require.NoError(t, err)
	require.Equal(t, 3, index)
	require.Equal(t, int64(1), pos)

	require.Equal(t, int64(6), Total(sizes))
}
