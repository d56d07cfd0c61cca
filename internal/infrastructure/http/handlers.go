package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
)

// handleChat forwards a JSON {message} to the model.
func (s *Server) handleChat(c echo.Context) error {
	var req entities.ChatRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return entities.NewError(entities.KindValidation, "chat", fmt.Errorf("decoding body: %w", err))
	}

	resp, err := s.chatUseCase.Chat(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// handleUpload summarizes the PDF sent in the multipart "file" field.
func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return entities.NewError(entities.KindValidation, "summarize", fmt.Errorf("%w: %v", entities.ErrMissingFile, err))
	}

	f, err := fh.Open()
	if err != nil {
		return entities.NewError(entities.KindParsing, "summarize", fmt.Errorf("opening upload: %w", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return entities.NewError(entities.KindParsing, "summarize", fmt.Errorf("reading upload: %w", err))
	}

	doc := &entities.Document{Name: fh.Filename, Data: data}
	resp, err := s.summarizeUseCase.Summarize(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// handleExport renders the repeated "messages" form field as a PDF
// attachment.
func (s *Server) handleExport(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return entities.NewError(entities.KindValidation, "export", fmt.Errorf("parsing form: %w", err))
	}

	conv := &entities.Conversation{Lines: params["messages"]}
	data, err := s.exportUseCase.Export(c.Request().Context(), conv)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+s.opts.ExportFilename)
	return c.Blob(http.StatusOK, s.exportUseCase.ContentType(), data)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
