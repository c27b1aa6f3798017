package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bitswalk/jobly/src/common/errors"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `username, first_name, last_name, email, is_admin`

var userFields = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// UserUpdatable lists the fields a partial user update may carry
var UserUpdatable = []string{"firstName", "lastName", "password", "email", "isAdmin"}

// UserRepository handles user and application database operations
type UserRepository struct {
	db         *Database
	bcryptCost int
}

// NewUserRepository creates a new UserRepository. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewUserRepository(db *Database, bcryptCost int) *UserRepository {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserRepository{db: db, bcryptCost: bcryptCost}
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a user with a hashed password
func (r *UserRepository) Register(ctx context.Context, nu NewUser) (*User, error) {
	duplicate := errors.ErrDuplicateUsername.WithMessagef("Duplicate username: %s", nu.Username)

	var existing string
	err := r.db.DB().QueryRowContext(ctx, `SELECT username FROM users WHERE username = $1`, nu.Username).Scan(&existing)
	if err == nil {
		return nil, duplicate
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check username: %w", classify(err, nil, nil))
	}

	hashed, err := r.hash(nu.Password)
	if err != nil {
		return nil, err
	}

	row := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		nu.Username, hashed, nu.FirstName, nu.LastName, nu.Email, nu.IsAdmin)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", classify(err, duplicate, nil))
	}

	return user, nil
}

// Authenticate checks a username and password. Both an unknown user and a
// wrong password yield the same ErrInvalidCredentials.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var u User
	var hashed string
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT `+userColumns+`, password
		FROM users
		WHERE username = $1
	`, username).Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin, &hashed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", classify(err, nil, nil))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	return &u, nil
}

// FindAll returns every user ordered by username
func (r *UserRepository) FindAll(ctx context.Context) ([]User, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", classify(err, nil, nil))
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// Get returns a user with the ids of the jobs they applied to
func (r *UserRepository) Get(ctx context.Context, username string) (*UserWithJobs, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound.WithMessagef("No user: %s", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", classify(err, nil, nil))
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", classify(err, nil, nil))
	}
	defer rows.Close()

	jobs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		jobs = append(jobs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &UserWithJobs{User: *user, Jobs: jobs}, nil
}

// Update applies a partial update to a user. A new password is hashed
// before it is stored.
func (r *UserRepository) Update(ctx context.Context, username string, data Fields) (*User, error) {
	if v, ok := data.Get("password"); ok {
		password, _ := v.(string)
		hashed, err := r.hash(password)
		if err != nil {
			return nil, err
		}
		data = data.Set("password", hashed)
	}

	update, err := SQLForPartialUpdate(data, userFields)
	if err != nil {
		return nil, err
	}

	row := r.db.DB().QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE username = $%d
		RETURNING %s
	`, update.SetCols, update.Next(), userColumns), append(update.Values, username)...)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound.WithMessagef("No user: %s", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", classify(err, nil, nil))
	}

	return user, nil
}

// Remove deletes a user by username
func (r *UserRepository) Remove(ctx context.Context, username string) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", classify(err, nil, nil))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrUserNotFound.WithMessagef("No user: %s", username)
	}

	return nil
}

// ApplyToJob records that a user applied to a job
func (r *UserRepository) ApplyToJob(ctx context.Context, username string, jobID int64) error {
	exists, err := NewJobRepository(r.db).Exists(ctx, jobID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrJobNotFound.WithMessagef("No job: %d", jobID)
	}

	var found string
	err = r.db.DB().QueryRowContext(ctx, `SELECT username FROM users WHERE username = $1`, username).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.ErrUserNotFound.WithMessagef("No user: %s", username)
	}
	if err != nil {
		return fmt.Errorf("failed to check user: %w", classify(err, nil, nil))
	}

	_, err = r.db.DB().ExecContext(ctx, `
		INSERT INTO applications (username, job_id) VALUES ($1, $2)
	`, username, jobID)
	if err != nil {
		return fmt.Errorf("failed to apply to job: %w", classify(err,
			errors.ErrDuplicateApplication.WithMessagef("Already applied to job: %d", jobID), nil))
	}

	return nil
}
