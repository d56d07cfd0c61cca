package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/logger"
)

// Fixed client-facing messages. Causes are logged, never returned.
const (
	MsgMissingCredential = "missing API key"
	MsgServerError       = "server error"
	MsgAnalysisError     = "error while analyzing the file"
	MsgInvalidBody       = "invalid request body"
	MsgFileRequired      = "file is required"
)

// errorResponse maps err to a status code and client message.
func errorResponse(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg
	}

	var e *entities.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, MsgServerError
	}

	switch e.Kind {
	case entities.KindConfiguration:
		return http.StatusInternalServerError, MsgMissingCredential
	case entities.KindValidation:
		if errors.Is(err, entities.ErrMissingFile) {
			return http.StatusBadRequest, MsgFileRequired
		}
		return http.StatusBadRequest, MsgInvalidBody
	case entities.KindUpstream, entities.KindParsing:
		if e.Op == "summarize" {
			return http.StatusInternalServerError, MsgAnalysisError
		}
		return http.StatusInternalServerError, MsgServerError
	default:
		return http.StatusInternalServerError, MsgServerError
	}
}

// errorHandler renders every error as {"error": msg} and logs the cause.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := errorResponse(err)
	req := c.Request()
	if code >= http.StatusInternalServerError {
		logger.Error("%d %s %s: %v", code, req.Method, req.URL.Path, err)
	} else {
		logger.Warn("%d %s %s: %v", code, req.Method, req.URL.Path, err)
	}

	if req.Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}
