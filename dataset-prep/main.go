package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/dataset-prep/internal/split"
)

func main() {
	input := flag.String("input", "WA_Fn-UseC_-Telco-Customer-Churn.csv", "входной CSV с данными клиентов")
	outdir := flag.String("outdir", ".", "каталог для результатов")
	seed := flag.Int64("seed", 42, "seed разбиения")
	flag.Parse()

	log.Println("=== DATASET PREPARATION ===")

	header, rows, err := readCSV(*input)
	if err != nil {
		log.Fatalf("Ошибка чтения датасета: %v", err)
	}
	log.Printf("Загружено записей: %d, колонок: %d", len(rows), len(header))

	preprocess(header, rows)
	binaryCols := normalizeBinaryColumns(header, rows)

	labels := extractLabels(header, rows, "Churn")

	opt := split.DefaultOptions()
	opt.Seed = *seed
	train, val, test, err := split.StratifiedThreeWay(labels, opt)
	if err != nil {
		log.Fatalf("Ошибка разбиения: %v", err)
	}

	log.Printf("Разбиение: train=%d (%.1f%%), validation=%d (%.1f%%), test=%d (%.1f%%)",
		len(train), pct(len(train), len(rows)),
		len(val), pct(len(val), len(rows)),
		len(test), pct(len(test), len(rows)))
	log.Printf("Распределение Churn: train=%v, validation=%v, test=%v",
		split.LabelCounts(labels, train),
		split.LabelCounts(labels, val),
		split.LabelCounts(labels, test))

	outputs := map[string][]int{
		"train_data.csv":      train,
		"validation_data.csv": val,
		"test_data.csv":       test,
	}
	for name, indices := range outputs {
		path := filepath.Join(*outdir, name)
		if err := writeCSV(path, header, rows, indices); err != nil {
			log.Fatalf("Ошибка записи %s: %v", name, err)
		}
		log.Printf("Сохранено: %s (%d записей)", path, len(indices))
	}

	// Копия тестовой части для загрузки в таблицу: без метки Churn,
	// бинарные колонки снова в Yes/No
	sheetPath := filepath.Join(*outdir, "sheet_data.csv")
	if err := writeSheetCSV(sheetPath, header, rows, test, "Churn", binaryCols); err != nil {
		log.Fatalf("Ошибка записи %s: %v", sheetPath, err)
	}
	log.Printf("Сохранено для таблицы: %s", sheetPath)
}

// readCSV читает заголовок и строки датасета
func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка открытия файла %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка разбора CSV: %w", err)
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("датасет пуст")
	}

	return all[0], all[1:], nil
}

// preprocess нормализует известные проблемные колонки на месте:
// пустой TotalCharges становится нулем, как в исходном датасете
func preprocess(header []string, rows [][]string) {
	chargesIdx := columnIndex(header, "TotalCharges")
	if chargesIdx < 0 {
		return
	}

	fixed := 0
	for _, row := range rows {
		value := strings.TrimSpace(row[chargesIdx])
		if value == "" {
			row[chargesIdx] = "0"
			fixed++
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			row[chargesIdx] = "0"
			fixed++
		}
	}
	if fixed > 0 {
		log.Printf("Исправлено значений TotalCharges: %d", fixed)
	}
}

var yesNoToBit = map[string]string{"Yes": "1", "yes": "1", "No": "0", "no": "0"}

// normalizeBinaryColumns приводит бинарные колонки к 1/0 на месте и
// возвращает индексы приведенных колонок. Метка Churn остается как есть.
func normalizeBinaryColumns(header []string, rows [][]string) []int {
	var converted []int
	for col, name := range header {
		if name == "Churn" {
			continue
		}
		if !isYesNoColumn(rows, col) {
			continue
		}
		for _, row := range rows {
			row[col] = yesNoToBit[strings.TrimSpace(row[col])]
		}
		converted = append(converted, col)
		log.Printf("Колонка %s приведена к 1/0", name)
	}
	return converted
}

// isYesNoColumn проверяет, что все значения колонки лежат в {Yes, No}
func isYesNoColumn(rows [][]string, col int) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if _, ok := yesNoToBit[strings.TrimSpace(row[col])]; !ok {
			return false
		}
	}
	return true
}

// extractLabels возвращает колонку метки; при ее отсутствии все строки
// получают одну метку (разбиение без стратификации)
func extractLabels(header []string, rows [][]string, labelColumn string) []string {
	idx := columnIndex(header, labelColumn)
	labels := make([]string, len(rows))
	for i, row := range rows {
		if idx >= 0 && idx < len(row) {
			labels[i] = row[idx]
		} else {
			labels[i] = ""
		}
	}
	return labels
}

func writeCSV(path string, header []string, rows [][]string, indices []int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, i := range indices {
		if err := writer.Write(rows[i]); err != nil {
			return err
		}
	}
	return writer.Error()
}

// writeSheetCSV пишет срез датасета без указанной колонки, возвращая
// бинарным колонкам читаемые значения Yes/No
func writeSheetCSV(path string, header []string, rows [][]string, indices []int, dropColumn string, binaryCols []int) error {
	dropIdx := columnIndex(header, dropColumn)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(withoutColumn(header, dropIdx)); err != nil {
		return err
	}
	for _, i := range indices {
		row := make([]string, len(rows[i]))
		copy(row, rows[i])
		for _, col := range binaryCols {
			switch row[col] {
			case "1":
				row[col] = "Yes"
			case "0":
				row[col] = "No"
			}
		}
		if err := writer.Write(withoutColumn(row, dropIdx)); err != nil {
			return err
		}
	}
	return writer.Error()
}

func withoutColumn(row []string, drop int) []string {
	if drop < 0 {
		return row
	}
	out := make([]string, 0, len(row)-1)
	for i, v := range row {
		if i != drop {
			out = append(out, v)
		}
	}
	return out
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
