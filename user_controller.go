package commerce

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserController is the account admin surface. Every route behind it sits
// behind the auth gate.
type UserController struct {
	Logger Logger
	Repo   RepositoryManager
}

// NewUserController builds the controller.
func NewUserController(repo RepositoryManager, logger Logger) *UserController {
	if logger == nil {
		logger = defLogger{}
	}
	return &UserController{Repo: repo, Logger: logger}
}

// RegisterUserRoutes mounts the account endpoints on app.
func RegisterUserRoutes(app fiber.Router, repo RepositoryManager, logger Logger) *UserController {
	controller := NewUserController(repo, logger)

	app.Get("/", controller.List).Name("users.list")
	app.Get("/:userId", controller.Get).Name("users.get")
	app.Put("/:userId", controller.Update).Name("users.update")
	app.Delete("/:userId", controller.Delete).Name("users.delete")
	app.Delete("/", controller.DeleteAll).Name("users.delete-all")

	return controller
}

func (a *UserController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Users().ListAll(c.Context())
	if err != nil {
		a.Logger.Error("user list error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}

func (a *UserController) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := a.Repo.Users().GetByID(c.Context(), id.String())
	if err != nil {
		a.Logger.Error("user get error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

// UserUpdateRequest carries the mutable profile fields. Zero values mean
// "leave as is"; a non-empty password replaces the stored hash.
type UserUpdateRequest struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Phone     string `form:"phone_number" json:"phone_number"`
	AvatarURL string `form:"avatar_url" json:"avatar_url"`
	Password  string `form:"password" json:"password"`
}

func (a *UserController) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return RespondError(c, err)
	}

	payload := new(UserUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("user update parse payload: ", "error", err)
		return RespondError(c, fiber.NewError(fiber.StatusBadRequest, "Error parsing body"))
	}

	record, err := a.Repo.Users().GetByID(c.Context(), id.String())
	if err != nil {
		return RespondError(c, err)
	}

	if payload.FirstName != "" {
		record.FirstName = payload.FirstName
	}
	if payload.LastName != "" {
		record.LastName = payload.LastName
	}
	if payload.AvatarURL != "" {
		record.AvatarURL = payload.AvatarURL
	}
	if payload.Phone != "" {
		phone, err := normalizePhone(payload.Phone)
		if err != nil {
			return RespondError(c, err)
		}
		record.Phone = phone
	}
	if payload.Password != "" {
		hash, err := HashPassword(payload.Password)
		if err != nil {
			return RespondError(c, err)
		}
		record.PasswordHash = hash
	}

	record, err = a.Repo.Users().Save(c.Context(), record)
	if err != nil {
		a.Logger.Error("user update error: ", "error", err)
		return RespondError(c, err)
	}

	return RespondOK(c, record)
}

func (a *UserController) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return RespondError(c, err)
	}

	record, err := a.Repo.Users().DeleteByID(c.Context(), id)
	if err != nil {
		a.Logger.Error("user delete error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, record)
}

func (a *UserController) DeleteAll(c *fiber.Ctx) error {
	records, err := a.Repo.Users().DeleteAll(c.Context())
	if err != nil {
		a.Logger.Error("user delete all error: ", "error", err)
		return RespondError(c, err)
	}
	return RespondOK(c, records)
}

// paramUUID parses the named route param as a UUID.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryBadInput, "invalid "+name).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}
