package database

import (
	"context"
	"embed"
	"strings"

	"nexus/internal/errors"

	"gorm.io/gorm"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Tables lists every table in dependency order, dependents first.
var Tables = []string{"sale", "product", "client", "proprietor", "person", "address"}

// EnsureSchema creates any missing table of the store. It is idempotent and never alters
// an existing table.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	statements, err := schemaStatements(db.Dialector.Name())
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return errors.Wrapf(err, "failed to apply schema statement %q", firstLine(stmt))
			}
		}

		return nil
	})
}

func schemaStatements(dialect string) ([]string, error) {
	raw, err := schemaFS.ReadFile("schema/" + dialect + ".sql")
	if err != nil {
		return nil, errors.Wrapf(err, "no schema for dialect %q", dialect)
	}

	var statements []string
	for _, stmt := range strings.Split(string(raw), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}

	return statements, nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}

	return stmt
}
