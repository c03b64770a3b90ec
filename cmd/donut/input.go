package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"chitieu/internal/core"
)

var errNegativeAmount = errors.New("amount must not be negative")

// categoryRecord is one input row, shared by the CSV and YAML readers.
type categoryRecord struct {
	ID     string `csv:"id" yaml:"id"`
	Name   string `csv:"name" yaml:"name"`
	Amount int64  `csv:"amount" yaml:"amount"`
	Color  string `csv:"color" yaml:"color"`
	Icon   string `csv:"icon,omitempty" yaml:"icon,omitempty"`
}

type categoryFile struct {
	Categories []categoryRecord `yaml:"categories"`
}

// readCategories loads a .csv or .yaml/.yml category list, keeping file order.
func readCategories(path string) ([]core.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var records []categoryRecord
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		if err := gocsv.UnmarshalFile(f, &records); err != nil {
			return nil, fmt.Errorf("parse CSV %s: %w", path, err)
		}
	case ".yaml", ".yml":
		var doc categoryFile
		if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse YAML %s: %w", path, err)
		}
		records = doc.Categories
	default:
		return nil, fmt.Errorf("unsupported input format %q: use .csv, .yaml or .yml", ext)
	}
	return toCategories(records)
}

func toCategories(records []categoryRecord) ([]core.Category, error) {
	seen := make(map[string]bool, len(records))
	cats := make([]core.Category, 0, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("row %d: %w", i+1, core.ErrEmptyCategory)
		}
		if seen[id] {
			return nil, fmt.Errorf("row %d: duplicate id %q", i+1, id)
		}
		if r.Amount < 0 {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, id, errNegativeAmount)
		}
		seen[id] = true
		cats = append(cats, core.Category{
			ID:     id,
			Name:   r.Name,
			Amount: core.Money{Minor: r.Amount},
			Color:  r.Color,
			Icon:   r.Icon,
		})
	}
	return cats, nil
}
