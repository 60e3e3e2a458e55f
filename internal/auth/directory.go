// Package auth holds the fixed credential directory and the session tokens
// issued to users who log in through the HTTP front end.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"mini-inventory/internal/model"
)

// Credential is a seed entry for the directory.
type Credential struct {
	Username string
	Password string
	Role     model.Role
}

// DefaultSeeds returns the built-in user list.
func DefaultSeeds() []Credential {
	return []Credential{
		{Username: "admin", Password: "admin123", Role: model.RoleAdmin},
		{Username: "Iheb", Password: "javajava", Role: model.RoleAdmin},
		{Username: "Dorra", Password: "poyo", Role: model.RoleAdmin},
		{Username: "Tbs", Password: "2023", Role: model.RoleAdmin},
	}
}

type entry struct {
	user model.User
	hash []byte
}

// Directory is an immutable, ordered list of users. Safe for concurrent use.
type Directory struct {
	entries []entry
}

// NewDirectory hashes every seed password with the given bcrypt cost.
// User ids are assigned from 1 in seed order.
func NewDirectory(seeds []Credential, cost int) (*Directory, error) {
	d := &Directory{entries: make([]entry, 0, len(seeds))}
	for i, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", seed.Username, err)
		}
		d.entries = append(d.entries, entry{
			user: model.User{ID: i + 1, Username: seed.Username, Role: seed.Role},
			hash: hash,
		})
	}
	return d, nil
}

// Authenticate reports whether any user matches both username (exact,
// case-sensitive) and password.
func (d *Directory) Authenticate(username, password string) bool {
	_, ok := d.Login(username, password)
	return ok
}

// Login returns the first user matching both username and password.
func (d *Directory) Login(username, password string) (model.User, bool) {
	for _, e := range d.entries {
		if e.user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(e.hash, []byte(password)) == nil {
			return e.user, true
		}
	}
	return model.User{}, false
}

// Users lists the directory's users in seed order.
func (d *Directory) Users() []model.User {
	users := make([]model.User, len(d.entries))
	for i, e := range d.entries {
		users[i] = e.user
	}
	return users
}
