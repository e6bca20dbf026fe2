package controllers

import (
	"net/http"

	"github.com/luisrojasb/doorline-backend/api/middleware"
	"github.com/luisrojasb/doorline-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func DealerPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "dealer", "status": "ok"}
		if dealerID := middleware.DealerIDFromContext(r.Context()); dealerID != "" {
			payload["dealer_id"] = dealerID
		}
		responses.WriteSuccess(w, payload)
	}
}
