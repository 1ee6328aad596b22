package commerce

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// OrderController is the checkout surface. The buyer is never taken from the
// payload; it always comes from the gate's validated claims.
type OrderController struct {
	Logger Logger
	Repo   RepositoryManager
	// ContextKey is where the auth gate left the claims.
	ContextKey string
}

// NewOrderController builds the controller.
func NewOrderController(repo RepositoryManager, contextKey string, logger Logger) *OrderController {
	if logger == nil {
		logger = defLogger{}
	}
	if contextKey == "" {
		contextKey = DefaultContextKey
	}
	return &OrderController{Repo: repo, ContextKey: contextKey, Logger: logger}
}

// RegisterOrderRoutes mounts the order endpoints on app.
func RegisterOrderRoutes(app fiber.Router, repo RepositoryManager, contextKey string, logger Logger) *OrderController {
	controller := NewOrderController(repo, contextKey, logger)

	app.Post("/", controller.Create).Name("orders.create")
	app.Get("/", controller.List).Name("orders.list")
	app.Get("/userOrders/:userId", controller.ListByUser).Name("orders.by-user")
	app.Get("/:orderId", controller.Get).Name("orders.get")
	app.Put("/:orderId", controller.UpdateStatus).Name("orders.update-status")
	app.Delete("/:orderId", controller.Delete).Name("orders.delete")
	app.Delete("/", controller.DeleteAll).Name("orders.delete-all")

	return controller
}

// OrderItemRequest is one product line in the checkout payload.
type OrderItemRequest struct {
	ProductID string `form:"product_id" json:"product_id"`
	Quantity  int    `form:"quantity" json:"quantity"`
}

// Validate will run validation rules
func (r OrderItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, is.UUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// OrderRequest is the checkout payload. Totals and unit prices are computed
// server side from the catalog, never trusted from the client.
type OrderRequest struct {
	Provider     PaymentProvider    `form:"payment_provider" json:"payment_provider"`
	ShipCounty   string             `form:"ship_county" json:"ship_county"`
	ShipTown     string             `form:"ship_town" json:"ship_town"`
	ShipStreet   string             `form:"ship_street" json:"ship_street"`
	ShipLocation string             `form:"ship_location_desc" json:"ship_location_desc"`
	Items        []OrderItemRequest `form:"items" json:"items"`
}

// Validate will run validation rules
func (r OrderRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return err
	}

	for _, item := range r.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (a *OrderController) Create(c *fiber.Ctx) error {
	claims, ok := c.Locals(a.ContextKey).(AuthClaims)
	if !ok {
		return RespondError(c, ErrNoIdentityClaim)
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(c, ErrNoIdentityClaim)
	}

	payload := new(OrderRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("order create parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("order create validate payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
	}

	items := make([]*OrderItem, 0, len(payload.Items))
	stock := make(map[uuid.UUID]int, len(payload.Items))
	var total int64

	for _, line := range payload.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "invalid product_id").
				WithCode(errors.CodeBadRequest))
		}

		product, err := a.Repo.Products().GetOne(c.Context(), productID)
		if err != nil {
			a.Logger.Error("order create product lookup: ", "error", err)
			return RespondError(c, err)
		}

		if product.Quantity < line.Quantity {
			return RespondError(c, errors.New("insufficient stock for "+product.Name, errors.CategoryConflict).
				WithCode(errors.CodeBadRequest))
		}

		items = append(items, &OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.SellingPrice,
		})
		stock[product.ID] = product.Quantity - line.Quantity
		total += product.SellingPrice * int64(line.Quantity)
	}

	record := &Order{
		ID:           uuid.New(),
		UserID:       userID,
		Total:        total,
		Status:       OrderPending,
		Provider:     payload.Provider,
		ShipCounty:   payload.ShipCounty,
		ShipTown:     payload.ShipTown,
		ShipStreet:   payload.ShipStreet,
		ShipLocation: payload.ShipLocation,
	}

	record, err = a.Repo.Orders().CreateWithItems(c.Context(), record, items)
	if err != nil {
		a.Logger.Error("order create error: ", "error", err)
		return RespondError(c, err)
	}

	// inventory decrement happens after the order is committed; a failure
	// here leaves the order standing and only logs the drift
	for productID, remaining := range stock {
		if _, err := a.Repo.Products().UpdateQuantity(c.Context(), productID, remaining); err != nil {
			a.Logger.Error("order create stock update: ", "product", productID.String(), "error", err)
		}
	}

	return RespondCreated(c, record)
}

func (a *OrderController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Orders().ListAll(c.Context())
	if err != nil {
		a.Logger.Error("order list error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}

func (a *OrderController) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := a.Repo.Orders().GetOne(c.Context(), id)
	if err != nil {
		a.Logger.Error("order get error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

func (a *OrderController) ListByUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return RespondError(c, err)
	}

	records, err := a.Repo.Orders().ListByUser(c.Context(), id)
	if err != nil {
		a.Logger.Error("order by user error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}

// OrderStatusRequest carries the fulfilment transition.
type OrderStatusRequest struct {
	Status OrderStatus `form:"status" json:"status"`
}

func (a *OrderController) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return RespondError(c, err)
	}

	payload := new(OrderStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("order status parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	if !ValidOrderStatus(payload.Status) {
		return RespondError(c, errors.New("invalid order status", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest))
	}

	record, err := a.Repo.Orders().UpdateStatus(c.Context(), id, payload.Status)
	if err != nil {
		a.Logger.Error("order status update error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

func (a *OrderController) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := a.Repo.Orders().DeleteByID(c.Context(), id)
	if err != nil {
		a.Logger.Error("order delete error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

func (a *OrderController) DeleteAll(c *fiber.Ctx) error {
	records, err := a.Repo.Orders().DeleteAll(c.Context())
	if err != nil {
		a.Logger.Error("order delete all error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}
