package commerce

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// SuccessResponse is the body shape every happy path returns.
type SuccessResponse struct {
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// ErrorResponse is the body shape every failure returns.
type ErrorResponse struct {
	Err string `json:"err"`
}

// RespondSuccess writes the standard success envelope with the given status.
func RespondSuccess(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(SuccessResponse{
		Msg:  "Success",
		Data: data,
	})
}

// RespondCreated is RespondSuccess with a 201.
func RespondCreated(c *fiber.Ctx, data any) error {
	return RespondSuccess(c, fiber.StatusCreated, data)
}

// RespondOK is RespondSuccess with a 200.
func RespondOK(c *fiber.Ctx, data any) error {
	return RespondSuccess(c, fiber.StatusOK, data)
}

// RespondError maps err to the error envelope. Rich errors carry their own
// HTTP status; repository misses map to 404; anything else is a 500.
func RespondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()

	var richErr *errors.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &richErr):
		if richErr.Code > 0 {
			status = richErr.Code
		}
		if richErr.Message != "" {
			message = richErr.Message
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	case repository.IsRecordNotFound(err):
		status = fiber.StatusNotFound
	}

	return c.Status(status).JSON(ErrorResponse{
		Err: message,
	})
}
