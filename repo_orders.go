package commerce

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Orders persists the checkout aggregate. Creation writes the order row and
// its items in one transaction; a failed item insert rolls back the order
// rather than leaving a half-written checkout behind.
type Orders interface {
	repository.Repository[*Order]

	CreateWithItems(ctx context.Context, record *Order, items []*OrderItem) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	GetOne(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*Order, error)
	DeleteAll(ctx context.Context) ([]*Order, error)
}

type orders struct {
	repository.Repository[*Order]
	db *bun.DB
}

var _ Orders = (*orders)(nil)

// NewOrdersRepository wires the generic repository with order handlers.
func NewOrdersRepository(db *bun.DB) Orders {
	repo := repository.NewRepository[*Order](db, repository.ModelHandlers[*Order]{
		NewRecord: func() *Order { return &Order{} },
		GetID: func(o *Order) uuid.UUID {
			if o == nil {
				return uuid.Nil
			}
			return o.ID
		},
		SetID: func(o *Order, id uuid.UUID) {
			if o != nil {
				o.ID = id
			}
		},
	})

	return &orders{
		Repository: repo,
		db:         db,
	}
}

// CreateWithItems inserts the order then each item, binding items to the
// order id. Runs inside a single transaction.
func (a *orders) CreateWithItems(ctx context.Context, record *Order, items []*OrderItem) (*Order, error) {
	err := a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := a.Repository.CreateTx(ctx, tx, record)
		if err != nil {
			return err
		}
		*record = *created

		for _, item := range items {
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.OrderID = record.ID
			if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record.Items = items
	return record, nil
}

// ListAll avoids the generic repository's criteria-driven List; order reads
// always carry the buyer and the item lines.
func (a *orders) ListAll(ctx context.Context) ([]*Order, error) {
	records := []*Order{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("User").
		Relation("Items").
		Relation("Items.Product").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *orders) GetOne(ctx context.Context, id uuid.UUID) (*Order, error) {
	record := &Order{}
	err := a.db.NewSelect().
		Model(record).
		Relation("User").
		Relation("Items").
		Relation("Items.Product").
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

func (a *orders) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	records := []*Order{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("Items").
		Relation("Items.Product").
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *orders) UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error) {
	_, err := a.db.NewUpdate().
		Model((*Order)(nil)).
		Set("status = ?", status).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return a.GetOne(ctx, id)
}

func (a *orders) DeleteByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	record, err := a.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}

	err = a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*OrderItem)(nil)).Where("?TableAlias.order_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*Order)(nil)).Where("?TableAlias.id = ?", id).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (a *orders) DeleteAll(ctx context.Context) ([]*Order, error) {
	records, err := a.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	err = a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*OrderItem)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*Order)(nil)).Where("1 = 1").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
