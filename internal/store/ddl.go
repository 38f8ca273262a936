package store

import (
	_ "embed"
	"strings"
)

//go:embed schema_postgres.sql
var postgresDDL string

//go:embed schema_sqlite.sql
var sqliteDDL string

// PostgresDDLStatements returns the CREATE TABLE / INDEX statements for
// the postgres schema, split on semicolons with comments stripped.
func PostgresDDLStatements() []string { return splitDDL(postgresDDL) }

// SQLiteDDLStatements returns the statements for the sqlite schema.
func SQLiteDDLStatements() []string { return splitDDL(sqliteDDL) }

func splitDDL(ddl string) []string {
	var clean []string
	for _, line := range strings.Split(ddl, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		clean = append(clean, line)
	}
	var out []string
	for _, p := range strings.Split(strings.Join(clean, "\n"), ";") {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
