package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type apiEnvelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func success(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, apiEnvelope{Success: true, Data: data})
}

func fail(c echo.Context, status int, message string, fields map[string]string) error {
	return c.JSON(status, apiEnvelope{Success: false, Error: message, Fields: fields})
}

func failValidation(c echo.Context, fields map[string]string) error {
	return fail(c, http.StatusBadRequest, "Validation failed", fields)
}

func failUnprocessable(c echo.Context, message string) error {
	return fail(c, http.StatusUnprocessableEntity, message, nil)
}

func internalError(c echo.Context, message string) error {
	return fail(c, http.StatusInternalServerError, message, nil)
}
