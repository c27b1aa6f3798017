package migrations

func migration002Applications() Migration {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS applications (
			username VARCHAR(25) NOT NULL
				REFERENCES users ON DELETE CASCADE,
			job_id INTEGER NOT NULL
				REFERENCES jobs ON DELETE CASCADE,
			PRIMARY KEY (username, job_id)
		)`,
	}

	return Migration{
		Version:     2,
		Description: "Track job applications per user",
		Up: map[string][]string{
			SQLite:   stmts,
			Postgres: stmts,
		},
	}
}
