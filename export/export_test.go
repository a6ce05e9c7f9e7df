package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/inventory"
)

func sampleItems() []inventory.Item {
	a := inventory.Item{PartNum: "CAP-0042", Manufacturer: "Kemet", Description: "100uF", StockB750: 5, StockB757: 2, Minimum: 1}
	a.Recompute()
	b := inventory.Item{PartNum: "RES-0007", Manufacturer: "Vishay", Description: "1k, 1%", StockB750: 0, StockB757: 0}
	b.Recompute()
	return []inventory.Item{a, b}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "csv_export", "csv")
	assert.Equal(t, filepath.Join(dir, "csv_export.csv"), first)

	require.NoError(t, os.WriteFile(first, nil, 0o644))
	second := UniquePath(dir, "csv_export", "csv")
	assert.Equal(t, filepath.Join(dir, "csv_export2.csv"), second)

	require.NoError(t, os.WriteFile(second, nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "csv_export3.csv"), UniquePath(dir, "csv_export", "csv"))
}

func TestWriteSV(t *testing.T) {
	t.Run("csv contains header and rows", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteSV("csv", dir, sampleItems())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "Part #,Manufacturer"))
		assert.True(t, strings.HasPrefix(lines[1], "CAP-0042,Kemet"))
	})

	t.Run("psv uses pipe delimiter and quotes commas only in csv", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteSV("psv", dir, sampleItems())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "RES-0007|Vishay|1k, 1%")
	})

	t.Run("tsv delimiter", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteSV("tsv", dir, sampleItems())
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, ".tsv"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "CAP-0042\tKemet")
	})

	t.Run("unknown format fails", func(t *testing.T) {
		_, err := WriteSV("xlsx", t.TempDir(), nil)
		assert.Error(t, err)
	})

	t.Run("repeated export does not clobber", func(t *testing.T) {
		dir := t.TempDir()
		first, err := WriteSV("csv", dir, sampleItems())
		require.NoError(t, err)
		second, err := WriteSV("csv", dir, sampleItems())
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	path, err := WritePDF(dir, sampleItems())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.True(t, strings.HasSuffix(path, ".pdf"))
}

func TestWriteQR(t *testing.T) {
	t.Run("writes png", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteQR(dir, "CAP-0042")
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		assert.Equal(t, "CAP-0042_qr.png", filepath.Base(path))
	})

	t.Run("empty part number fails", func(t *testing.T) {
		_, err := WriteQR(t.TempDir(), "")
		assert.Error(t, err)
	})
}
