package migrations

func migration003CompanyLogoKey() Migration {
	stmts := []string{
		`ALTER TABLE companies ADD COLUMN logo_key TEXT`,
	}

	return Migration{
		Version:     3,
		Description: "Add storage key for uploaded company logos",
		Up: map[string][]string{
			SQLite:   stmts,
			Postgres: stmts,
		},
	}
}
