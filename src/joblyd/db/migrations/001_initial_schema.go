package migrations

func migration001InitialSchema() Migration {
	return Migration{
		Version:     1,
		Description: "Initial schema with settings, companies, jobs and users",
		Up: map[string][]string{
			SQLite: {
				`CREATE TABLE IF NOT EXISTS settings (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS companies (
					handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
					name TEXT UNIQUE NOT NULL,
					num_employees INTEGER CHECK (num_employees >= 0),
					description TEXT NOT NULL,
					logo_url TEXT
				)`,
				// equity is TEXT so the decimal form survives unchanged
				`CREATE TABLE IF NOT EXISTS jobs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					salary INTEGER CHECK (salary >= 0),
					equity TEXT CHECK (equity IS NULL OR CAST(equity AS REAL) BETWEEN 0 AND 1.0),
					company_handle VARCHAR(25) NOT NULL
						REFERENCES companies (handle) ON DELETE CASCADE
				)`,
				`CREATE INDEX IF NOT EXISTS idx_jobs_company_handle ON jobs(company_handle)`,
				`CREATE TABLE IF NOT EXISTS users (
					username VARCHAR(25) PRIMARY KEY,
					password TEXT NOT NULL,
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					email TEXT NOT NULL CHECK (instr(email, '@') > 0),
					is_admin BOOLEAN NOT NULL DEFAULT 0
				)`,
			},
			Postgres: {
				`CREATE TABLE IF NOT EXISTS settings (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS companies (
					handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
					name TEXT UNIQUE NOT NULL,
					num_employees INTEGER CHECK (num_employees >= 0),
					description TEXT NOT NULL,
					logo_url TEXT
				)`,
				`CREATE TABLE IF NOT EXISTS jobs (
					id SERIAL PRIMARY KEY,
					title TEXT NOT NULL,
					salary INTEGER CHECK (salary >= 0),
					equity NUMERIC CHECK (equity <= 1.0),
					company_handle VARCHAR(25) NOT NULL
						REFERENCES companies ON DELETE CASCADE
				)`,
				`CREATE INDEX IF NOT EXISTS idx_jobs_company_handle ON jobs(company_handle)`,
				`CREATE TABLE IF NOT EXISTS users (
					username VARCHAR(25) PRIMARY KEY,
					password TEXT NOT NULL,
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					email TEXT NOT NULL CHECK (position('@' IN email) > 1),
					is_admin BOOLEAN NOT NULL DEFAULT FALSE
				)`,
			},
		},
	}
}
