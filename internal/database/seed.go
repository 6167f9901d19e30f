package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"smoothies/internal/model"
)

type seedFile struct {
	Fruits []model.FruitOption `yaml:"fruits"`
}

// LoadSeedFile reads fruit options from a YAML document of the form
//
//	fruits:
//	  - name: Apple
//	    search_on: apple
func LoadSeedFile(path string) ([]model.FruitOption, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]model.FruitOption, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, f := range file.Fruits {
		if strings.TrimSpace(f.Name) == "" {
			return nil, fmt.Errorf("seed entry %d: name is required", i)
		}
	}
	return file.Fruits, nil
}

// Seed upserts the reference rows in one transaction. It is admin tooling;
// the order workflow only ever reads fruit_options.
func Seed(ctx context.Context, db *sql.DB, options []model.FruitOption) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, opt := range options {
		var searchOn sql.NullString
		if key := strings.TrimSpace(opt.SearchKey); key != "" {
			searchOn = sql.NullString{String: key, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fruit_options (fruit_name, search_on) VALUES ($1, $2)
			ON CONFLICT (fruit_name) DO UPDATE SET search_on = EXCLUDED.search_on
		`, strings.TrimSpace(opt.Name), searchOn)
		if err != nil {
			return 0, fmt.Errorf("upsert fruit %q: %w", opt.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return len(options), nil
}
