package commerce

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Categories is the catalog grouping repository.
type Categories interface {
	repository.Repository[*Category]

	ListAll(ctx context.Context) ([]*Category, error)
	GetOrCreateByNameTx(ctx context.Context, tx bun.IDB, name, description string) (*Category, error)
}

type categories struct {
	repository.Repository[*Category]
	db *bun.DB
}

var _ Categories = (*categories)(nil)

// NewCategoriesRepository wires the generic repository with category
// handlers, keyed by the unique category name.
func NewCategoriesRepository(db *bun.DB) Categories {
	repo := repository.NewRepository[*Category](db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "category_name"
		},
	})

	return &categories{
		Repository: repo,
		db:         db,
	}
}

// ListAll avoids the generic repository's criteria-driven List; categories
// come back ordered by name.
func (a *categories) ListAll(ctx context.Context) ([]*Category, error) {
	records := []*Category{}
	if err := a.db.NewSelect().Model(&records).Order("category_name ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// GetOrCreateByNameTx resolves a category by name, inserting it when absent.
// The name carries the lookup key, unlike the generic repository's
// record-driven get-or-create.
func (a *categories) GetOrCreateByNameTx(ctx context.Context, tx bun.IDB, name, description string) (*Category, error) {
	record := &Category{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.category_name = ?", name).
		Limit(1).
		Scan(ctx)

	if err == nil {
		return record, nil
	}
	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	record = &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	return a.Repository.CreateTx(ctx, tx, record)
}
