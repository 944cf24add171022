package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oversightlabs/approval-service/catalog"
	"github.com/oversightlabs/approval-service/types"
)

// ListUsersHandler returns the built-in user roster, optionally
// filtered by the role query parameter.
func ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if role := r.URL.Query().Get("role"); role != "" {
			writeJSON(w, http.StatusOK, catalog.UsersByRole(types.UserRole(role)))
			return
		}
		writeJSON(w, http.StatusOK, catalog.Users())
	}
}

// GetUserHandler returns a single roster user by id.
func GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := catalog.UserByID(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
