package httpserver

import (
	"smdb/errs"
	"smdb/result"

	"github.com/labstack/echo/v4"
)

const defaultErrorCode = "100500"

// APIError is the body of every failed response.
type APIError struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// PagedResponse is the body of a successful listing.
type PagedResponse[T any] struct {
	result.Paged[T]
	TotalPages int `json:"total_pages"`
}

// writeResult sets the status from r and writes its value or failure.
func writeResult[T any](c echo.Context, r result.Result[T]) error {
	if failure, ok := r.Failure(); ok {
		return writeError(c, failure)
	}
	value, _ := r.Value()
	return c.JSON(r.Status(), value)
}

// writePaged is writeResult for listings, adding page metadata.
func writePaged[T any](c echo.Context, r result.Result[result.Paged[T]]) error {
	if failure, ok := r.Failure(); ok {
		return writeError(c, failure)
	}
	paged, _ := r.Value()
	return c.JSON(r.Status(), PagedResponse[T]{
		Paged:      paged,
		TotalPages: totalPages(paged.Total, paged.Size),
	})
}

func writeError(c echo.Context, f result.Failure) error {
	return c.JSON(f.Status, APIError{
		Code:    errorCode(f.Code()),
		Status:  f.Status,
		Message: f.Message,
	})
}

func errorCode(code string) string {
	switch code {
	case errs.EINVALID:
		return "100010"
	case errs.ENOTFOUND:
		return "100404"
	case errs.ECONFLICT:
		return "100409"
	case errs.EUNAUTHORIZED:
		return "100401"
	case errs.ENOTIMPLEMENTED:
		return "100501"
	}
	return defaultErrorCode
}

func totalPages(total int64, size int) int {
	if size < 1 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
