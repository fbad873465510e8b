package serviceutils

import (
	"github.com/labstack/echo/v4"
)

type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListResponse is the paginated read envelope; maxPage always reflects the
// filtered total, even when the requested page is past the end.
type ListResponse struct {
	Success bool        `json:"success"`
	MaxPage int         `json:"maxPage"`
	Data    interface{} `json:"data"`
}

func ResponseSuccess(c echo.Context, code int, msg string, data interface{}) error {
	return c.JSON(code, GenericResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func ResponseList(c echo.Context, code int, maxPage int, data interface{}) error {
	return c.JSON(code, ListResponse{
		Success: true,
		MaxPage: maxPage,
		Data:    data,
	})
}

func ResponseError(c echo.Context, code int, msg string, err error) error {
	resp := GenericResponse{
		Success: false,
		Message: msg,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.JSON(code, resp)
}
