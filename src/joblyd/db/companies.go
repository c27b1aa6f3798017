package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bitswalk/jobly/src/common/errors"
)

const companyColumns = `handle, name, description, num_employees, logo_url, logo_key`

// maxCompanies caps FindAll
const maxCompanies = 100

// companyFields maps API field names to company columns
var companyFields = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyUpdatable lists the fields a partial company update may carry
var CompanyUpdatable = []string{"name", "description", "numEmployees", "logoUrl"}

// CompanyFilterKeys lists the query keys Filter accepts
var CompanyFilterKeys = []string{"name", "minEmployees", "maxEmployees"}

// Query is a set of filter keys and their raw values
type Query map[string]string

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db *Database
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *Database) *CompanyRepository {
	return &CompanyRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(row rowScanner) (*Company, error) {
	var c Company
	var numEmployees sql.NullInt64
	var logoURL, logoKey sql.NullString

	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &numEmployees, &logoURL, &logoKey); err != nil {
		return nil, err
	}
	if numEmployees.Valid {
		n := int(numEmployees.Int64)
		c.NumEmployees = &n
	}
	if logoURL.Valid {
		c.LogoURL = &logoURL.String
	}
	c.LogoKey = logoKey.String

	return &c, nil
}

func (r *CompanyRepository) scanList(rows *sql.Rows) ([]Company, error) {
	defer rows.Close()

	companies := []Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// Create inserts a company. A handle that is already taken is reported as
// ErrDuplicateCompany, both from the pre-check and from the store's
// unique constraint when two creates race. A taken name is reported under
// the same error with the name in the message.
func (r *CompanyRepository) Create(ctx context.Context, nc NewCompany) (*Company, error) {
	duplicate := errors.ErrDuplicateCompany.WithMessagef("Duplicate company: %s", nc.Handle)

	var existing string
	err := r.db.DB().QueryRowContext(ctx, `SELECT handle FROM companies WHERE handle = $1`, nc.Handle).Scan(&existing)
	if err == nil {
		return nil, duplicate
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check company handle: %w", classify(err, nil, nil))
	}

	row := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		nc.Handle, nc.Name, nc.Description, intOrNil(nc.NumEmployees), stringOrNil(nc.LogoURL))

	company, err := scanCompany(row)
	if violatesUnique(err, "companies", "name") {
		return nil, fmt.Errorf("failed to create company: %w",
			errors.ErrDuplicateCompany.WithMessagef("Duplicate company name: %s", nc.Name).WithCause(err))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", classify(err, duplicate, nil))
	}

	return company, nil
}

// FindAll returns the first companies ordered by name
func (r *CompanyRepository) FindAll(ctx context.Context) ([]Company, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		ORDER BY name
		LIMIT $1
	`, maxCompanies)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", classify(err, nil, nil))
	}

	return r.scanList(rows)
}

// Filter returns the companies matching every given criterion:
// name is a case-insensitive substring, minEmployees and maxEmployees are
// inclusive bounds.
func (r *CompanyRepository) Filter(ctx context.Context, q Query) ([]Company, error) {
	if err := checkFilterKeys(q, CompanyFilterKeys); err != nil {
		return nil, err
	}

	minEmployees, hasMin, err := intFilter(q, "minEmployees")
	if err != nil {
		return nil, err
	}
	maxEmployees, hasMax, err := intFilter(q, "maxEmployees")
	if err != nil {
		return nil, err
	}
	if hasMin && hasMax && minEmployees > maxEmployees {
		return nil, errors.ErrInvalidFilter.WithMessage("minEmployees cannot be greater than maxEmployees")
	}

	var where []string
	var args []interface{}
	if name, ok := q["name"]; ok {
		args = append(args, "%"+name+"%")
		where = append(where, fmt.Sprintf("name %s $%d", r.db.Dialect().ILike, len(args)))
	}
	if hasMin {
		args = append(args, minEmployees)
		where = append(where, fmt.Sprintf("num_employees >= $%d", len(args)))
	}
	if hasMax {
		args = append(args, maxEmployees)
		where = append(where, fmt.Sprintf("num_employees <= $%d", len(args)))
	}
	if len(where) == 0 {
		return nil, errors.ErrInvalidFilter.WithMessage("No filter given")
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter companies: %w", classify(err, nil, nil))
	}

	return r.scanList(rows)
}

// Get returns a company with all of its jobs ordered by id
func (r *CompanyRepository) Get(ctx context.Context, handle string) (*CompanyWithJobs, error) {
	company, err := getCompany(ctx, r.db, handle)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE company_handle = $1
		ORDER BY id
	`, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", classify(err, nil, nil))
	}

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}

	return &CompanyWithJobs{Company: *company, Jobs: jobs}, nil
}

// getCompany reads one company row without its jobs
func getCompany(ctx context.Context, d *Database, handle string) (*Company, error) {
	row := d.DB().QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	company, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrCompanyNotFound.WithMessagef("No company: %s", handle)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", classify(err, nil, nil))
	}
	return company, nil
}

// Update applies a partial update to a company. The handle never changes.
func (r *CompanyRepository) Update(ctx context.Context, handle string, data Fields) (*Company, error) {
	update, err := SQLForPartialUpdate(data, companyFields)
	if err != nil {
		return nil, err
	}

	row := r.db.DB().QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE handle = $%d
		RETURNING %s
	`, update.SetCols, update.Next(), companyColumns), append(update.Values, handle)...)

	company, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrCompanyNotFound.WithMessagef("No company: %s", handle)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update company: %w",
			classify(err, errors.ErrDuplicateCompany.WithMessage("Duplicate company name"), nil))
	}

	return company, nil
}

// SetLogo records the storage key and public URL of an uploaded logo
func (r *CompanyRepository) SetLogo(ctx context.Context, handle, key, url string) (*Company, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		UPDATE companies
		SET logo_key = $1, logo_url = $2
		WHERE handle = $3
		RETURNING `+companyColumns, key, url, handle)

	company, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrCompanyNotFound.WithMessagef("No company: %s", handle)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set company logo: %w", classify(err, nil, nil))
	}

	return company, nil
}

// LogoKey returns the storage key of a company's uploaded logo, or an empty
// string when none was uploaded.
func (r *CompanyRepository) LogoKey(ctx context.Context, handle string) (string, error) {
	company, err := getCompany(ctx, r.db, handle)
	if err != nil {
		return "", err
	}
	return company.LogoKey, nil
}

// Remove deletes a company by handle. Jobs are left to the schema's
// foreign key action.
func (r *CompanyRepository) Remove(ctx context.Context, handle string) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", classify(err, nil, nil))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrCompanyNotFound.WithMessagef("No company: %s", handle)
	}

	return nil
}

// checkFilterKeys rejects any key outside allowed, reporting the first in
// sorted order.
func checkFilterKeys(q Query, allowed []string) error {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			return errors.ErrInvalidFilter.WithMessagef("Invalid filter: %s", k)
		}
	}
	return nil
}

func intFilter(q Query, key string) (int, bool, error) {
	raw, ok := q[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, errors.ErrInvalidFilter.WithMessagef("%s must be an integer", key)
	}
	return n, true, nil
}

func intOrNil(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

func stringOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
