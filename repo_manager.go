package commerce

import (
	"context"
	"database/sql"
	"errors"
	"log"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Products() Products
	Categories() Categories
	Orders() Orders
}

type mngr struct {
	db         *bun.DB
	users      Users
	products   Products
	categories Categories
	orders     Orders
}

// NewRepositoryManager builds every repository over db.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	cats := NewCategoriesRepository(db)
	return &mngr{
		db:         db,
		users:      NewUsersRepository(db),
		categories: cats,
		products:   NewProductsRepository(db, cats),
		orders:     NewOrdersRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.products == nil {
		return errors.New("repository products should be initialized")
	}

	if m.categories == nil {
		return errors.New("repository categories should be initialized")
	}

	if m.orders == nil {
		return errors.New("repository orders should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Products() Products {
	return m.products
}

func (m mngr) Categories() Categories {
	return m.categories
}

func (m mngr) Orders() Orders {
	return m.orders
}
