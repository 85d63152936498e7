package directory

import (
	"context"
	"errors"
	"fmt"

	"bibliotech-auth/internal/auth"
)

const (
	BootstrapAdminEmail    = "admin@bibliotech.com"
	BootstrapAdminPassword = "admin123"
)

// BootstrapAdmin is the account that guarantees a first run always has an
// administrator.
func BootstrapAdmin() auth.Account {
	return auth.Account{
		Identity: auth.Identity{
			ID:        "1",
			Email:     BootstrapAdminEmail,
			FirstName: "Admin",
			LastName:  "System",
			Role:      auth.RoleAdmin,
		},
		Password: BootstrapAdminPassword,
	}
}

// DemoReader is the sample reader shipped with the demo data set.
func DemoReader() auth.Account {
	progress := 35
	return auth.Account{
		Identity: auth.Identity{
			ID:        "2",
			Email:     "john.doe@email.com",
			FirstName: "John",
			LastName:  "Doe",
			Role:      auth.RoleUser,
			Profile: auth.Profile{
				ReadingProgress: &progress,
				Books:           []string{"book1", "book3"},
			},
		},
		Password: "user123",
	}
}

// Seed creates each account whose email is not yet in the directory and
// returns how many were written. Existing entries are never overwritten,
// so seeding on every start is safe.
func Seed(ctx context.Context, dir Directory, accounts ...auth.Account) (int, error) {
	created := 0

	for _, acct := range accounts {
		exists, err := dir.EmailExists(ctx, acct.Email)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		err = dir.Create(ctx, acct)
		if errors.Is(err, auth.ErrEmailAlreadyRegistered) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("directory: seed %s: %w", acct.Email, err)
		}
		created++
	}

	return created, nil
}
