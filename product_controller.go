package commerce

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// ProductController is the catalog surface. Reads are public; every mutation
// sits behind the auth gate.
type ProductController struct {
	Logger Logger
	Repo   RepositoryManager
}

// NewProductController builds the controller.
func NewProductController(repo RepositoryManager, logger Logger) *ProductController {
	if logger == nil {
		logger = defLogger{}
	}
	return &ProductController{Repo: repo, Logger: logger}
}

// RegisterProductReadRoutes mounts the public catalog reads on app.
func RegisterProductReadRoutes(app fiber.Router, controller *ProductController) {
	app.Get("/", controller.List).Name("products.list")
	app.Get("/restaurant/:type", controller.ListByRestaurant).Name("products.by-restaurant")
	app.Get("/:productId", controller.Get).Name("products.get")
}

// RegisterProductWriteRoutes mounts the catalog mutations on app. The caller
// is expected to have attached the auth gate to app already.
func RegisterProductWriteRoutes(app fiber.Router, controller *ProductController) {
	app.Post("/", controller.Create).Name("products.create")
	app.Post("/batch", controller.CreateBatch).Name("products.create-batch")
	app.Put("/:productId", controller.Update).Name("products.update")
	app.Delete("/:productId", controller.Delete).Name("products.delete")
	app.Delete("/", controller.DeleteAll).Name("products.delete-all")
}

// ProductRequest is the create/update payload. Category travels by name and
// is connected or created on the fly.
type ProductRequest struct {
	Name                string         `form:"product_name" json:"product_name"`
	Description         string         `form:"product_description" json:"product_description"`
	SellingPrice        int64          `form:"selling_price" json:"selling_price"`
	BuyingPrice         int64          `form:"buying_price" json:"buying_price"`
	Quantity            int            `form:"quantity" json:"quantity"`
	LowLevelAlert       int            `form:"low_level_alert" json:"low_level_alert"`
	Restaurant          RestaurantKind `form:"restaurant_kind" json:"restaurant_kind"`
	Images              []string       `form:"images" json:"images"`
	CategoryName        string         `form:"category_name" json:"category_name"`
	CategoryDescription string         `form:"category_description" json:"category_description"`
}

// Validate will run validation rules
func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.SellingPrice, validation.Required, validation.Min(1)),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
}

func (r ProductRequest) toModel() *Product {
	return &Product{
		Name:          r.Name,
		Description:   r.Description,
		SellingPrice:  r.SellingPrice,
		BuyingPrice:   r.BuyingPrice,
		Quantity:      r.Quantity,
		LowLevelAlert: r.LowLevelAlert,
		Restaurant:    r.Restaurant,
		Images:        r.Images,
	}
}

func (a *ProductController) Create(c *fiber.Ctx) error {
	payload := new(ProductRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("product create parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("product create validate payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
	}

	record, err := a.Repo.Products().CreateWithCategory(
		c.Context(),
		payload.toModel(),
		payload.CategoryName,
		payload.CategoryDescription,
	)
	if err != nil {
		a.Logger.Error("product create error: ", "error", err)
		return RespondError(c, err)
	}

	return RespondCreated(c, record)
}

// CreateBatch inserts each payload entry in order. The batch is not atomic;
// the response carries whatever was created before the first failure.
func (a *ProductController) CreateBatch(c *fiber.Ctx) error {
	payload := []ProductRequest{}
	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Error("product batch parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	records := make([]*Product, 0, len(payload))
	for _, item := range payload {
		if err := item.Validate(); err != nil {
			return RespondError(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
		}

		record, err := a.Repo.Products().CreateWithCategory(
			c.Context(),
			item.toModel(),
			item.CategoryName,
			item.CategoryDescription,
		)
		if err != nil {
			a.Logger.Error("product batch create error: ", "error", err)
			return RespondError(c, err)
		}
		records = append(records, record)
	}

	return RespondCreated(c, records)
}

func (a *ProductController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Products().ListAll(c.Context())
	if err != nil {
		a.Logger.Error("product list error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}

func (a *ProductController) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := a.Repo.Products().GetOne(c.Context(), id)
	if err != nil {
		a.Logger.Error("product get error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

func (a *ProductController) ListByRestaurant(c *fiber.Ctx) error {
	kind := c.Params("type")

	records, err := a.Repo.Products().ListByRestaurant(c.Context(), kind)
	if err != nil {
		a.Logger.Error("product by restaurant error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}

func (a *ProductController) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return RespondError(c, err)
	}

	payload := new(ProductRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("product update parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	record, err := a.Repo.Products().GetOne(c.Context(), id)
	if err != nil {
		return RespondError(c, err)
	}

	if payload.Name != "" {
		record.Name = payload.Name
	}
	if payload.Description != "" {
		record.Description = payload.Description
	}
	if payload.SellingPrice > 0 {
		record.SellingPrice = payload.SellingPrice
	}
	if payload.BuyingPrice > 0 {
		record.BuyingPrice = payload.BuyingPrice
	}
	if payload.Quantity > 0 {
		record.Quantity = payload.Quantity
	}
	if payload.LowLevelAlert > 0 {
		record.LowLevelAlert = payload.LowLevelAlert
	}
	if payload.Restaurant != "" {
		record.Restaurant = payload.Restaurant
	}
	if len(payload.Images) > 0 {
		record.Images = payload.Images
	}

	record, err = a.Repo.Products().Save(c.Context(), record)
	if err != nil {
		a.Logger.Error("product update error: ", "error", err)
		return RespondError(c, err)
	}

	return RespondOK(c, record)
}

func (a *ProductController) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := a.Repo.Products().DeleteByID(c.Context(), id)
	if err != nil {
		a.Logger.Error("product delete error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

func (a *ProductController) DeleteAll(c *fiber.Ctx) error {
	records, err := a.Repo.Products().DeleteAll(c.Context())
	if err != nil {
		a.Logger.Error("product delete all error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}
