package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationManager applies embedded schema files at boot. Schemas are executed
// in lexical order; statements are expected to be idempotent (CREATE ... IF NOT
// EXISTS).
type MigrationManager interface {
	RegisterSchema(schema *embed.FS)
	Apply(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(schema *embed.FS) {
	m.schemas = append(m.schemas, schema)
}

func (m *migrationManager) Apply(ctx context.Context) error {
	for _, schema := range m.schemas {
		files, err := listSQLFiles(schema)
		if err != nil {
			return err
		}
		for _, file := range files {
			contents, err := schema.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "failed to read schema file %s", file)
			}
			if _, err := m.pool.Exec(ctx, string(contents)); err != nil {
				return errors.Wrapf(err, "failed to apply schema file %s", file)
			}
		}
	}
	return nil
}

func listSQLFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list schema files")
	}
	sort.Strings(files)
	return files, nil
}
