// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/migration"
)

func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://admin:pw@127.0.0.1:5432/sixcities", "pgx5://admin:pw@127.0.0.1:5432/sixcities"},
		{"postgresql://db/sixcities?sslmode=disable", "pgx5://db/sixcities?sslmode=disable"},
		{"pgx5://db/sixcities", "pgx5://db/sixcities"},
		{"host=db dbname=sixcities", "host=db dbname=sixcities"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5URL(tt.in))
		})
	}
}

/*
TestMigrationFiles checks that every up file in data/migrations has its down
counterpart and follows the golang-migrate naming scheme.
*/
func TestMigrationFiles(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "data", "migrations")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^\d{6}_[a-z0-9_]+\.(up|down)\.sql$`)
	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		require.Regexp(t, pattern, entry.Name())
		names[entry.Name()] = true
	}
	require.NotEmpty(t, names)

	for name := range names {
		if base, ok := strings.CutSuffix(name, ".up.sql"); ok {
			assert.True(t, names[base+".down.sql"], "missing down migration for %s", name)
		}
	}
}
