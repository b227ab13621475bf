package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func xlsxBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "quarterly revenue"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "12000"))
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "A1", "client renewed contract"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestFromFileNotFound(t *testing.T) {
	_, err := FromFile("/no/such/file.pdf")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFromBytesUnsupportedExtension(t *testing.T) {
	_, err := FromBytes([]byte("plain text"), "notes.txt")
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestFromBytesMalformedPDF(t *testing.T) {
	_, err := FromBytes([]byte("definitely not a pdf"), "broken.pdf")
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestFromBytesXLSX(t *testing.T) {
	res, err := FromBytes(xlsxBytes(t), "finance.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "quarterly revenue 12000")
	assert.Contains(t, res.Text, "client renewed contract")
}

func TestFromBytesEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = FromBytes(buf.Bytes(), "empty.xlsx")
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestFromFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.xlsx")
	require.NoError(t, os.WriteFile(path, xlsxBytes(t), 0o644))

	res, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "quarterly revenue")
}
