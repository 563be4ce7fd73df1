package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBinaryColumns(t *testing.T) {
	header := []string{"Partner", "Contract", "SeniorCitizen", "Churn"}
	rows := [][]string{
		{"Yes", "Month-to-month", "0", "No"},
		{"no", "Two year", "1", "Yes"},
		{" yes ", "One year", "0", "No"},
	}

	cols := normalizeBinaryColumns(header, rows)

	require.Equal(t, []int{0}, cols)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "1", rows[2][0], "нижний регистр и пробелы не мешают приведению")

	// Метка, категориальные и уже числовые колонки не тронуты
	assert.Equal(t, "No", rows[0][3])
	assert.Equal(t, "Month-to-month", rows[0][1])
	assert.Equal(t, "0", rows[0][2])
}

func TestNormalizeBinaryColumns_MixedValuesNotBinary(t *testing.T) {
	header := []string{"MultipleLines"}
	rows := [][]string{
		{"Yes"},
		{"No phone service"},
		{"No"},
	}

	cols := normalizeBinaryColumns(header, rows)

	assert.Empty(t, cols)
	assert.Equal(t, "No phone service", rows[1][0])
}

func TestNormalizeBinaryColumns_EmptyDataset(t *testing.T) {
	assert.Empty(t, normalizeBinaryColumns([]string{"Partner"}, nil))
}

func TestWriteSheetCSV_RestoresBinariesAndDropsLabel(t *testing.T) {
	header := []string{"Partner", "tenure", "Churn"}
	rows := [][]string{
		{"1", "5", "No"},
		{"0", "12", "Yes"},
	}

	path := filepath.Join(t.TempDir(), "sheet_data.csv")
	require.NoError(t, writeSheetCSV(path, header, rows, []int{0, 1}, "Churn", []int{0}))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	all, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, []string{"Partner", "tenure"}, all[0])
	assert.Equal(t, []string{"Yes", "5"}, all[1])
	assert.Equal(t, []string{"No", "12"}, all[2])

	// Исходные строки остаются в числовом виде для train/val/test файлов
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "0", rows[1][0])
}

func TestBinaryRoundTrip(t *testing.T) {
	header := []string{"Partner", "Churn"}
	rows := [][]string{
		{"Yes", "No"},
		{"No", "Yes"},
	}

	cols := normalizeBinaryColumns(header, rows)
	require.Equal(t, []int{0}, cols)

	path := filepath.Join(t.TempDir(), "sheet_data.csv")
	require.NoError(t, writeSheetCSV(path, header, rows, []int{0, 1}, "Churn", cols))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	all, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Yes"}, all[1])
	assert.Equal(t, []string{"No"}, all[2])
}
