package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bitswalk/jobly/src/common/errors"
)

const jobColumns = `id, title, salary, equity, company_handle`

// JobUpdatable lists the fields a partial job update may carry
var JobUpdatable = []string{"title", "salary", "equity"}

// JobFilterKeys lists the query keys Filter accepts
var JobFilterKeys = []string{"title", "minSalary", "hasEquity"}

// JobRepository handles job database operations
type JobRepository struct {
	db *Database
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *Database) *JobRepository {
	return &JobRepository{db: db}
}

func scanJob(row rowScanner) (*Job, error) {
	var j Job
	var salary sql.NullInt64
	var equity sql.NullString

	if err := row.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	if salary.Valid {
		n := int(salary.Int64)
		j.Salary = &n
	}
	if equity.Valid {
		e := Equity(equity.String)
		j.Equity = &e
	}

	return &j, nil
}

func scanJobs(rows *sql.Rows) ([]Job, error) {
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// Create inserts a job. There is no duplicate check; a company handle that
// does not exist is rejected by the store's foreign key.
func (r *JobRepository) Create(ctx context.Context, nj NewJob) (*Job, error) {
	if err := checkEquity(nj.Equity); err != nil {
		return nil, err
	}

	row := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		nj.Title, intOrNil(nj.Salary), nj.Equity, nj.CompanyHandle)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", classify(err, nil,
			errors.ErrUnknownCompany.WithMessagef("No company: %s", nj.CompanyHandle)))
	}

	return job, nil
}

// FindAll returns every job ordered by company handle
func (r *JobRepository) FindAll(ctx context.Context) ([]Job, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY company_handle, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", classify(err, nil, nil))
	}

	return scanJobs(rows)
}

// Filter returns the jobs matching every given criterion: title is a
// case-insensitive substring and minSalary an inclusive bound. hasEquity
// only filters when it is exactly "true"; any other value is ignored.
func (r *JobRepository) Filter(ctx context.Context, q Query) ([]Job, error) {
	if err := checkFilterKeys(q, JobFilterKeys); err != nil {
		return nil, err
	}

	minSalary, hasMin, err := intFilter(q, "minSalary")
	if err != nil {
		return nil, err
	}

	var where []string
	var args []interface{}
	if title, ok := q["title"]; ok {
		args = append(args, "%"+title+"%")
		where = append(where, fmt.Sprintf("title %s $%d", r.db.Dialect().ILike, len(args)))
	}
	if hasMin {
		args = append(args, minSalary)
		where = append(where, fmt.Sprintf("salary >= $%d", len(args)))
	}
	if q["hasEquity"] == "true" {
		where = append(where, r.db.Dialect().Positive("equity"))
	}
	if len(where) == 0 {
		return r.FindAll(ctx)
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY company_handle, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter jobs: %w", classify(err, nil, nil))
	}

	return scanJobs(rows)
}

// Get looks a job up by title and attaches its owning company. When
// several jobs share a title the oldest one wins.
func (r *JobRepository) Get(ctx context.Context, title string) (*JobWithCompany, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE title = $1
		ORDER BY id
		LIMIT 1
	`, title)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrJobNotFound.WithMessagef("No job: %s", title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", classify(err, nil, nil))
	}

	company, err := getCompany(ctx, r.db, job.CompanyHandle)
	if err != nil && !errors.Is(err, errors.ErrCompanyNotFound) {
		return nil, err
	}

	return &JobWithCompany{
		ID:      job.ID,
		Title:   job.Title,
		Salary:  job.Salary,
		Equity:  job.Equity,
		Company: company,
	}, nil
}

// Update applies a partial update to a job. The company handle never changes.
func (r *JobRepository) Update(ctx context.Context, id int64, data Fields) (*Job, error) {
	update, err := SQLForPartialUpdate(data, nil)
	if err != nil {
		return nil, err
	}
	if v, ok := data.Get("equity"); ok {
		if err := checkEquity(v); err != nil {
			return nil, err
		}
	}

	row := r.db.DB().QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, update.SetCols, update.Next(), jobColumns), append(update.Values, id)...)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrJobNotFound.WithMessagef("No job: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", classify(err, nil, nil))
	}

	return job, nil
}

// checkEquity rejects equity that is not a plain decimal in [0, 1]. The
// SQLite CHECK casts text leniently, so it cannot be relied on alone.
func checkEquity(v interface{}) error {
	var e Equity
	switch t := v.(type) {
	case nil:
		return nil
	case Equity:
		e = t
	case *Equity:
		if t == nil {
			return nil
		}
		e = *t
	case string:
		e = Equity(t)
	default:
		return errors.ErrInvalidJobData.WithMessagef("equity must be a decimal string, got %T", v)
	}
	if err := e.Validate(); err != nil {
		return errors.ErrInvalidJobData.WithMessage(err.Error())
	}
	return nil
}

// Exists reports whether a job with the given id exists
func (r *JobRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.db.DB().QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check job: %w", classify(err, nil, nil))
	}
	return true, nil
}

// Remove deletes a job by id
func (r *JobRepository) Remove(ctx context.Context, id int64) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", classify(err, nil, nil))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrJobNotFound.WithMessagef("No job: %d", id)
	}

	return nil
}
