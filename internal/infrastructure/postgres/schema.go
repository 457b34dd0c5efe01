package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema crea las tablas goods e history si no existen. Los ids son
// columnas identity: la secuencia nativa garantiza ids monotónicos que nunca
// se reutilizan tras un DELETE.
func EnsureSchema(ctx context.Context, q Querier) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS goods (
			id           BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name         TEXT NOT NULL,
			price        NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			location     TEXT NOT NULL,
			quantity     INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			min_quantity INTEGER NOT NULL DEFAULT 0 CHECK (min_quantity >= 0),
			description  TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id             BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			goods_name     TEXT NOT NULL,
			operation_type TEXT NOT NULL,
			quantity       INTEGER NOT NULL,
			notes          TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}
