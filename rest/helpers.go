package rest

import (
	"github.com/gofiber/fiber/v2"
)

func ReturnBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func ReturnValidationError(c *fiber.Ctx, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   "Validation error",
		Details: details,
	})
}

func ReturnUnauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func ReturnAccessDenied(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func ReturnNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func ReturnInternalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// ReturnUpstreamError reports an upstream failure. The error text is
// included for operator debuggability but carries no provider stack
// traces, only the wrapped message chain.
func ReturnUpstreamError(c *fiber.Ctx, summary string, err error) error {
	resp := ErrorResponse{
		Success: false,
		Error:   summary,
	}
	if err != nil {
		resp.Message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
