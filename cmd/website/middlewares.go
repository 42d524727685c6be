package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/classalbum/pkg/models"
	"github.com/google/uuid"
)

/*
newVisitorMiddleware makes sure every request carries a visitor. New
browsers get a fresh anonymous visitor stored in the session cookie.
*/
func newVisitorMiddleware(sessionService sessions.Session[*models.Visitor], excludedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				err     error
				visitor *models.Visitor
			)

			path := r.URL.Path

			/*
			 * If this path is excluded, keep going.
			 */
			for _, excludedPath := range excludedPaths {
				if strings.HasPrefix(path, excludedPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if visitor, err = sessionService.Get(r); err != nil || visitor == nil || visitor.ID == "" {
				visitor = &models.Visitor{ID: uuid.NewString()}

				if err = sessionService.Set(r, visitor); err != nil {
					slog.Error("error setting visitor session", "error", err)
				}

				if err = sessionService.Save(w, r); err != nil {
					slog.Error("error saving session", "error", err)
				}

				slog.Debug("new visitor", "visitorID", visitor.ID)
			}

			ctx := context.WithValue(r.Context(), "visitor", visitor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
