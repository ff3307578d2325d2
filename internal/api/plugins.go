package api

import (
	"bytes"
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wprescue/wp-rescue/internal/service"
)

type pageRow struct {
	Key         string
	Name        string
	Version     string
	Author      string
	Description string
	Network     bool
	Active      bool
}

type pageData struct {
	Rows        []pageRow
	Degraded    bool
	Message     string
	Total       int
	ActiveCount int
}

// ShowPlugins renders the current plugin list.
func (s *Server) ShowPlugins(c echo.Context) error {
	state := s.svc.Process(c.Request().Context(), nil)
	return s.render(c, state)
}

// ApplyAction applies one activate/deactivate submission, then renders the
// resulting state the same way a plain GET would.
func (s *Server) ApplyAction(c echo.Context) error {
	state := s.svc.Process(c.Request().Context(), s.parseSubmission(c))
	return s.render(c, state)
}

// parseSubmission reads the form fields: submit (presence flag), action, and
// plugins[] (repeated keys). Anything malformed degrades to a plain render.
func (s *Server) parseSubmission(c echo.Context) *service.Submission {
	if c.FormValue("submit") == "" {
		return nil
	}
	action, err := service.ParseAction(c.FormValue("action"))
	if err != nil {
		s.logger.WithError(err).Warn("ignoring submission with unknown action")
		return nil
	}
	params, err := c.FormParams()
	if err != nil {
		s.logger.WithError(err).Warn("ignoring unparsable form submission")
		return nil
	}
	return &service.Submission{
		Action: action,
		Keys:   params["plugins[]"],
	}
}

func (s *Server) render(c echo.Context, state *service.State) error {
	data := pageData{Degraded: state.Degraded}
	for _, entry := range state.Plugins {
		h := entry.Header
		row := pageRow{
			Key:         entry.Key,
			Name:        s.text(h.Name),
			Version:     s.text(h.Version),
			Author:      s.text(h.Author),
			Description: s.text(h.Description),
			Network:     h.Network,
			Active:      state.IsActive(entry.Key),
		}
		if row.Active {
			data.ActiveCount++
		}
		data.Rows = append(data.Rows, row)
	}
	data.Total = len(data.Rows)

	if state.Submitted {
		if state.Changed {
			data.Message = MsgChangesSaved
		} else {
			data.Message = MsgNoChanges
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// text strips markup from file-sourced metadata and decodes entities so the
// template escapes the result exactly once. Plugin headers come from files
// the operator controls, but they are still treated as untrusted.
func (s *Server) text(v string) string {
	return html.UnescapeString(s.sanitizer.Sanitize(v))
}
