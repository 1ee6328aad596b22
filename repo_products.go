package commerce

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Products is the catalog repository. Reads eager-load the category relation
// the way the storefront consumes them.
type Products interface {
	repository.Repository[*Product]

	CreateWithCategory(ctx context.Context, record *Product, categoryName, categoryDescription string) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	GetOne(ctx context.Context, id uuid.UUID) (*Product, error)
	ListByRestaurant(ctx context.Context, kind RestaurantKind) ([]*Product, error)
	Save(ctx context.Context, record *Product) (*Product, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*Product, error)
	DeleteAll(ctx context.Context) ([]*Product, error)
}

type products struct {
	repository.Repository[*Product]
	db         *bun.DB
	categories Categories
}

var _ Products = (*products)(nil)

// NewProductsRepository wires the generic repository with product handlers.
// It keeps a handle on the categories repository for connect-or-create.
func NewProductsRepository(db *bun.DB, categories Categories) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &products{
		Repository: repo,
		db:         db,
		categories: categories,
	}
}

// CreateWithCategory inserts record, connecting it to the named category and
// creating the category on the fly when it does not exist yet. Mirrors the
// previous implementation's connect-or-create insert.
func (a *products) CreateWithCategory(ctx context.Context, record *Product, categoryName, categoryDescription string) (*Product, error) {
	err := a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if categoryName != "" {
			category, err := a.categories.GetOrCreateByNameTx(ctx, tx, categoryName, categoryDescription)
			if err != nil {
				return err
			}
			record.CategoryID = category.ID
		}

		created, err := a.Repository.CreateTx(ctx, tx, record)
		if err != nil {
			return err
		}
		*record = *created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListAll avoids the generic repository's criteria-driven List; catalog reads
// always eager-load the category relation.
func (a *products) ListAll(ctx context.Context) ([]*Product, error) {
	records := []*Product{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("Category").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *products) GetOne(ctx context.Context, id uuid.UUID) (*Product, error) {
	record := &Product{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Category").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}
	return record, nil
}

func (a *products) ListByRestaurant(ctx context.Context, kind RestaurantKind) ([]*Product, error) {
	records := []*Product{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("Category").
		Where("?TableAlias.restaurant_kind = ?", kind).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *products) Save(ctx context.Context, record *Product) (*Product, error) {
	if _, err := a.db.NewUpdate().Model(record).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (a *products) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*Product, error) {
	record, err := a.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}

	record.Quantity = quantity
	_, err = a.db.NewUpdate().
		Model(record).
		Column("quantity").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (a *products) DeleteByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	record, err := a.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := a.db.NewDelete().Model((*Product)(nil)).Where("?TableAlias.id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func (a *products) DeleteAll(ctx context.Context) ([]*Product, error) {
	records, err := a.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := a.db.NewDelete().Model((*Product)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return nil, err
	}

	return records, nil
}
