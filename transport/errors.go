package transport

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-ledger/core"
)

type errorBody struct {
	Message   string                 `json:"message"`
	TextCode  string                 `json:"text_code"`
	Category  string                 `json:"category,omitempty"`
	Fields    []goerrors.FieldError  `json:"fields,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func renderError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorEnvelope{Error: errorBody{
				Message:  fiberErr.Message,
				TextCode: core.LedgerErrorInternal,
			}})
		}
		return c.Status(http.StatusInternalServerError).JSON(errorEnvelope{Error: errorBody{
			Message:  err.Error(),
			TextCode: core.LedgerErrorInternal,
		}})
	}

	status := rich.Code
	if status <= 0 {
		status = categoryHTTPStatus(rich.Category)
	}
	textCode := rich.TextCode
	if textCode == "" {
		textCode = core.LedgerErrorInternal
	}

	body := errorBody{
		Message:  rich.Message,
		TextCode: textCode,
		Category: string(rich.Category),
		Fields:   rich.AllValidationErrors(),
	}
	return c.Status(status).JSON(errorEnvelope{Error: body})
}

func renderFiberError(c *fiber.Ctx, err error) error {
	return renderError(c, err)
}

func categoryHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	case goerrors.CategoryOperation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func badRequestError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.LedgerErrorValidation)
}
