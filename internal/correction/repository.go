package correction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/instabot/internal/database"
)

// Repository defines operations for managing stored corrections.
type Repository interface {
	FindAll(ctx context.Context) ([]Correction, error)
	// Save stores the corrections, replacing the answer of words already stored.
	Save(ctx context.Context, corrections []Correction) error
}

// NopRepository stores nothing.
type NopRepository struct{}

func (NopRepository) FindAll(context.Context) ([]Correction, error) {
	return nil, nil
}

func (NopRepository) Save(context.Context, []Correction) error {
	return nil
}

// YAMLRepository keeps corrections in a single YAML file.
type YAMLRepository struct {
	path string
}

type yamlFile struct {
	Corrections []Correction `yaml:"corrections"`
}

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

// FindAll returns the stored corrections, or nothing when the file does not exist yet.
func (r *YAMLRepository) FindAll(_ context.Context) ([]Correction, error) {
	contents, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	return file.Corrections, nil
}

func (r *YAMLRepository) Save(ctx context.Context, corrections []Correction) error {
	stored, err := r.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("r.FindAll > %w", err)
	}
	merged := FromWords(ToWords(append(stored, corrections...)))

	return r.write(merged)
}

// write replaces the file by renaming a fully written temporary file over it,
// so readers never observe a truncated file.
func (r *YAMLRepository) write(corrections []Correction) (err error) {
	file, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", r.path, err)
	}
	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(file.Name())
		}
	}()

	if err := file.Chmod(0644); err != nil {
		return fmt.Errorf("file.Chmod(%s) > %w", file.Name(), err)
	}
	if err := yaml.NewEncoder(file).Encode(yamlFile{Corrections: corrections}); err != nil {
		return fmt.Errorf("yaml.Encode(%s) > %w", file.Name(), err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("file.Sync(%s) > %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", file.Name(), err)
	}
	if err := os.Rename(file.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", r.path, err)
	}
	return nil
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) FindAll(ctx context.Context) ([]Correction, error) {
	var corrections []Correction
	if err := r.db.SelectContext(ctx, &corrections, "SELECT word_id, answer, created_at, updated_at FROM corrections ORDER BY created_at, word_id"); err != nil {
		return nil, fmt.Errorf("load all corrections: %w", err)
	}
	return corrections, nil
}

func (r *DBRepository) Save(ctx context.Context, corrections []Correction) error {
	if len(corrections) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, c := range corrections {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO corrections (word_id, answer) VALUES (?, ?) ON DUPLICATE KEY UPDATE answer = VALUES(answer)",
				c.WordID, c.Answer,
			); err != nil {
				return fmt.Errorf("upsert correction %s: %w", c.WordID, err)
			}
		}
		return nil
	})
}
