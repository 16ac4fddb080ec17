package sizetracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type table struct {
	files []*os.File
	sizes []int64
}

func (t *table) File(i int) *os.File       { return t.files[i] }
func (t *table) Size(i int) int64          { return t.sizes[i] }
func (t *table) SetSize(i int, size int64) { t.sizes[i] = size }

func TestTick(t *testing.T) {
	tr := New(3)
	var checks []int
	for i := 1; i <= 9; i++ {
		if tr.Tick() {
			checks = append(checks, i)
		}
	}
	require.Equal(t, []int{3, 6, 9}, checks)
	require.Equal(t, 9, tr.Reads())

	tr = New(0)
	for i := 0; i < 5; i++ {
		require.False(t, tr.Tick())
	}
}

func TestReconcile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "growing.log")
	require.NoError(t, os.WriteFile(name, []byte("abc"), 0600))
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	tbl := &table{files: []*os.File{f}, sizes: []int64{3}}

	delta, err := Reconcile(tbl, 0)
	require.NoError(t, err)
	require.Zero(t, delta)

	w, err := os.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	_, err = w.Write([]byte("defg"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	delta, err = Reconcile(tbl, 0)
	require.NoError(t, err)
	require.Equal(t, int64(4), delta)
	require.Equal(t, int64(7), tbl.sizes[0])

	require.NoError(t, os.Truncate(name, 2))
	delta, err = Reconcile(tbl, 0)
	require.NoError(t, err)
	require.Equal(t, int64(-5), delta)
	require.Equal(t, int64(2), tbl.sizes[0])
}
