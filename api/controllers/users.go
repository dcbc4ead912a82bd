package controllers

import (
	"net/http"

	"github.com/sathwikreddyb/aqua-farms-backend/api/responses"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/identity"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

// ListUsers returns every account for the back office. Password hashes are
// excluded by the model's JSON tags.
func ListUsers(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}
