package storage

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
)

func TestFileStore_SaveDetectOpenRemove(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(afero.NewMemMapFs())

	n, err := store.Save(ctx, "ticket_1_20250101-120000.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, int64(len(pngHeader)), n)

	ct, err := store.DetectContentType(ctx, "ticket_1_20250101-120000.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	rc, err := store.Open(ctx, "ticket_1_20250101-120000.png")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, pngHeader, got)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "ticket_1_20250101-120000.png", listed[0].Name)
	assert.False(t, listed[0].ModTime.IsZero())

	require.NoError(t, store.Remove(ctx, "ticket_1_20250101-120000.png"))
	require.NoError(t, store.Remove(ctx, "ticket_1_20250101-120000.png"), "missing file is not an error")

	_, err = store.Open(ctx, "ticket_1_20250101-120000.png")
	assert.Error(t, err)
}

func TestFileStore_DetectPDF(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(afero.NewMemMapFs())

	_, err := store.Save(ctx, "a.pdf", bytes.NewReader(pdfHeader))
	require.NoError(t, err)

	ct, err := store.DetectContentType(ctx, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
}

func TestFileStore_RejectsExistingAndUnsafeNames(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(afero.NewMemMapFs())

	_, err := store.Save(ctx, "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	_, err = store.Save(ctx, "a.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, fs.ErrExist, "stored names are never overwritten")

	for _, name := range []string{"", "../etc/passwd", "sub/a.png", `..\a.png`, ".hidden"} {
		_, err := store.Save(ctx, name, bytes.NewReader(pngHeader))
		assert.Error(t, err, name)
	}
}
