package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bibliotech-auth/internal/auth"
	"bibliotech-auth/internal/db"

	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// Postgres stores the directory in the accounts table.
type Postgres struct {
	db *db.DB
}

func NewPostgres(db *db.DB) *Postgres {
	return &Postgres{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row scanner) (auth.Identity, error) {
	var (
		id      auth.Identity
		role    string
		profile []byte
	)

	if err := row.Scan(&id.ID, &id.Email, &id.FirstName, &id.LastName, &role, &profile); err != nil {
		return auth.Identity{}, err
	}
	id.Role = auth.Role(role)

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &id.Profile); err != nil {
			return auth.Identity{}, fmt.Errorf("directory: decode profile for %s: %w", id.ID, err)
		}
	}

	return id, nil
}

func (p *Postgres) Authenticate(ctx context.Context, email, password string) (auth.Identity, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, role, profile
		FROM accounts
		WHERE email = $1 AND password = $2
	`, email, password)

	id, err := scanIdentity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("directory: authenticate: %w", err)
	}
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (auth.Identity, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, role, profile
		FROM accounts
		WHERE id = $1
	`, id)

	out, err := scanIdentity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("directory: get: %w", err)
	}
	return out, nil
}

func (p *Postgres) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts WHERE email = $1
		)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("directory: email lookup: %w", err)
	}
	return exists, nil
}

func (p *Postgres) Create(ctx context.Context, acct auth.Account) error {
	profile, err := json.Marshal(acct.Profile)
	if err != nil {
		return fmt.Errorf("directory: encode profile: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password, first_name, last_name, role, profile)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		acct.ID,
		acct.Email,
		acct.Password,
		acct.FirstName,
		acct.LastName,
		string(acct.Role),
		profile,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return auth.ErrEmailAlreadyRegistered
	}
	if err != nil {
		return fmt.Errorf("directory: create: %w", err)
	}
	return nil
}

func (p *Postgres) Update(ctx context.Context, id auth.Identity) error {
	profile, err := json.Marshal(id.Profile)
	if err != nil {
		return fmt.Errorf("directory: encode profile: %w", err)
	}

	res, err := p.db.ExecContext(ctx, `
		UPDATE accounts
		SET first_name = $2, last_name = $3, profile = $4, updated_at = NOW()
		WHERE id = $1
	`,
		id.ID,
		id.FirstName,
		id.LastName,
		profile,
	)
	return affectedOne(res, err, "update")
}

func (p *Postgres) SetRole(ctx context.Context, id string, role auth.Role) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE accounts
		SET role = $2, updated_at = NOW()
		WHERE id = $1
	`, id, string(role))
	return affectedOne(res, err, "set role")
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM accounts WHERE id = $1
	`, id)
	return affectedOne(res, err, "delete")
}

func (p *Postgres) List(ctx context.Context) ([]auth.Identity, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, email, first_name, last_name, role, profile
		FROM accounts
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	defer rows.Close()

	var out []auth.Identity
	for rows.Next() {
		id, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("directory: list: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	return out, nil
}

func affectedOne(res sql.Result, err error, op string) error {
	if err != nil {
		return fmt.Errorf("directory: %s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("directory: %s: %w", op, err)
	}
	if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}
