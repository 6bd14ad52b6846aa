package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

type factorColumn struct {
	index    int
	category harvest.Category
	level    string
}

type tableLayout struct {
	name, yield, costs, salesPrice int
	factors                        []factorColumn
}

func normalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func parseLayout(header []string) (tableLayout, error) {
	layout := tableLayout{name: -1, yield: -1, costs: -1, salesPrice: -1}
	for i, raw := range header {
		if category, level, ok := strings.Cut(raw, ":"); ok {
			c := harvest.Category(normalizeHeader(category))
			if !c.Valid() {
				return layout, fmt.Errorf("column %q: unknown factor category", raw)
			}
			layout.factors = append(layout.factors, factorColumn{index: i, category: c, level: strings.TrimSpace(level)})
			continue
		}

		switch normalizeHeader(raw) {
		case "name", "crop":
			layout.name = i
		case "yield", "yieldkg":
			layout.yield = i
		case "costs", "cost":
			layout.costs = i
		case "salesprice", "price":
			layout.salesPrice = i
		}
	}

	if layout.name == -1 || layout.yield == -1 {
		return layout, fmt.Errorf("missing required columns; found headers: %v, need at least: name, yield", header)
	}
	return layout, nil
}

func parseRows(rows [][]string) ([]harvest.Crop, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty table")
	}
	layout, err := parseLayout(rows[0])
	if err != nil {
		return nil, err
	}

	crops := make([]harvest.Crop, 0, len(rows)-1)
	for n, rec := range rows[1:] {
		line := n + 2
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		name := get(layout.name)
		if name == "" {
			continue
		}

		yield, err := strconv.ParseFloat(get(layout.yield), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: yield must be numeric", line)
		}
		crop := harvest.Crop{Name: name, Yield: yield}

		if crop.Costs, err = parseOptional(get(layout.costs)); err != nil {
			return nil, fmt.Errorf("row %d: costs must be numeric", line)
		}
		if crop.SalesPrice, err = parseOptional(get(layout.salesPrice)); err != nil {
			return nil, fmt.Errorf("row %d: sales_price must be numeric", line)
		}

		for _, col := range layout.factors {
			cell := get(col.index)
			if cell == "" {
				continue
			}
			percent, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s:%s must be an integer percentage", line, col.category, col.level)
			}
			if crop.Factors == nil {
				crop.Factors = harvest.Factors{}
			}
			if crop.Factors[col.category] == nil {
				crop.Factors[col.category] = harvest.Levels{}
			}
			crop.Factors[col.category][col.level] = percent
		}

		crops = append(crops, crop)
	}
	return crops, nil
}

func parseOptional(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return harvest.Amount(v), nil
}

func loadCSV(path string) ([]harvest.Crop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func loadXLSX(path string) ([]harvest.Crop, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}
