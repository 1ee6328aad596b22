package commerce

import (
	"context"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the credential store plus the account CRUD the admin surface
// needs. The session flow only ever reads from it.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, record *User) (*User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*User, error)
	DeleteAll(ctx context.Context) ([]*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

// NewUsersRepository wires the generic repository with user handlers.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", strings.TrimSpace(strings.ToLower(email))).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

// ListAll avoids the generic repository's criteria-driven List so callers get
// a plain slice ordered by creation time.
func (a *users) ListAll(ctx context.Context) ([]*User, error) {
	records := []*User{}
	if err := a.db.NewSelect().Model(&records).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// Save writes every column of record back. Callers load the record, mutate
// it, and hand it here; partial-patch semantics live in the controller.
func (a *users) Save(ctx context.Context, record *User) (*User, error) {
	if _, err := a.db.NewUpdate().Model(record).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (a *users) DeleteByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record, err := a.Repository.GetByID(ctx, id.String())
	if err != nil {
		return nil, err
	}

	if _, err := a.db.NewDelete().Model((*User)(nil)).Where("?TableAlias.id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func (a *users) DeleteAll(ctx context.Context) ([]*User, error) {
	records, err := a.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := a.db.NewDelete().Model((*User)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return nil, err
	}

	return records, nil
}
