package commerce

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CategoryController is the catalog grouping surface.
type CategoryController struct {
	Logger Logger
	Repo   RepositoryManager
}

// NewCategoryController builds the controller.
func NewCategoryController(repo RepositoryManager, logger Logger) *CategoryController {
	if logger == nil {
		logger = defLogger{}
	}
	return &CategoryController{Repo: repo, Logger: logger}
}

// RegisterCategoryRoutes mounts the category endpoints on app.
func RegisterCategoryRoutes(app fiber.Router, repo RepositoryManager, logger Logger) *CategoryController {
	controller := NewCategoryController(repo, logger)

	app.Post("/", controller.Create).Name("categories.create")
	app.Get("/", controller.List).Name("categories.list")

	return controller
}

// CategoryRequest is the create payload.
type CategoryRequest struct {
	Name        string `form:"category_name" json:"category_name"`
	Description string `form:"category_description" json:"category_description"`
}

// Validate will run validation rules
func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

func (a *CategoryController) Create(c *fiber.Ctx) error {
	payload := new(CategoryRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("category create parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("category create validate payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
	}

	record := &Category{
		ID:          uuid.New(),
		Name:        payload.Name,
		Description: payload.Description,
	}

	record, err := a.Repo.Categories().Create(c.Context(), record)
	if err != nil {
		a.Logger.Error("category create error: ", "error", err)
		return RespondError(c, err)
	}

	return RespondCreated(c, record)
}

func (a *CategoryController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Categories().ListAll(c.Context())
	if err != nil {
		a.Logger.Error("category list error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}
