package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/api/responses"
	"github.com/luisrojasb/doorline-backend/api/validators"
	"github.com/luisrojasb/doorline-backend/internal/announcements"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/logger"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

type createAnnouncementRequest struct {
	DistributorID string `json:"distributor_id" validate:"required,uuid"`
	Title         string `json:"title" validate:"required,max=200"`
	Body          string `json:"body" validate:"required"`
}

func AnnouncementsCreate(svc announcements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createAnnouncementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distributorID, err := uuid.Parse(payload.DistributorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "distributor_id must be a uuid"))
			return
		}

		announcement, err := svc.Create(
			r.Context(),
			distributorID,
			validators.SanitizeString(payload.Title, 200),
			validators.SanitizeString(payload.Body, 8000),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, announcement)
	}
}

func AnnouncementsList(svc announcements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
