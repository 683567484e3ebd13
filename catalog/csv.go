package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSV 元数据文件的列名（与离线导出任务的产物一致）。
const (
	columnID           = "ID"
	columnTitleRomaji  = "Title_Romaji"
	columnTitleEnglish = "Title_English"
	columnGenres       = "Genres"
)

// LoadCSV 从 CSV 文件加载元数据并构建 MemoryCatalog。
//
// 文件需包含表头，且至少含 ID / Title_Romaji / Title_English / Genres 四列；
// ID 无法解析的行被跳过，重复 ID 保留首条。
func LoadCSV(path string) (*MemoryCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV 从任意 Reader 读取 CSV 元数据。
func ReadCSV(r io.Reader) (*MemoryCatalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 列数允许不齐，逐行按表头取值

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnID, columnTitleRomaji, columnTitleEnglish, columnGenres} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("metadata csv missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx := col[name]
		if idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		id, err := strconv.ParseInt(strings.TrimSpace(field(record, columnID)), 10, 64)
		if err != nil {
			continue // ID 无法解析的脏数据行直接跳过
		}

		rows = append(rows, Row{
			ID:           id,
			TitleEnglish: field(record, columnTitleEnglish),
			TitleRomaji:  field(record, columnTitleRomaji),
			Genre:        field(record, columnGenres),
		})
	}

	return New(rows), nil
}
