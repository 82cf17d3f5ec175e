package validation

import (
	"github.com/labstack/echo/v4"
)

// Binder is echo's DefaultBinder, except that a body sent without a
// Content-Type is decoded as JSON. Clients such as `curl -d` often leave
// the header out.
type Binder struct {
	echo.DefaultBinder
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength != 0 && req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return b.DefaultBinder.Bind(i, c)
}
