// Package respond implements the uniform JSON envelope used by every API
// response: {success, message?, data?, error?}.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a 200 envelope with the given payload.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope with the given payload.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Message writes a 200 envelope with a message and optional payload.
func Message(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes an error envelope with the given status. The driver-level error
// is carried in the error field; message stays operator-facing.
func Fail(c echo.Context, status int, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	return c.JSON(status, env)
}
