package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushare/campushare-backend/internal/pkg/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Error maps the error taxonomy onto HTTP statuses. Store failures hide their
// cause behind a generic message.
func Error(c *gin.Context, err error) {
	kind := apierr.KindOf(err)
	status := http.StatusInternalServerError
	msg := "internal error"

	switch kind {
	case apierr.KindValidation:
		status = http.StatusBadRequest
		msg = err.Error()
	case apierr.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case apierr.KindConflict:
		status = http.StatusConflict
		msg = err.Error()
	}

	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(kind),
		},
	})
}
