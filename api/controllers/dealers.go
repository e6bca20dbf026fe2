package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/api/responses"
	"github.com/luisrojasb/doorline-backend/api/validators"
	"github.com/luisrojasb/doorline-backend/internal/dealers"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/logger"
)

type createDealerRequest struct {
	DistributorID string  `json:"distributor_id" validate:"required,uuid"`
	Name          string  `json:"name" validate:"required,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	City          *string `json:"city" validate:"omitempty,max=120"`
}

func DealersCreate(svc dealers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createDealerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distributorID, err := uuid.Parse(payload.DistributorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "distributor_id must be a uuid"))
			return
		}

		dealer, err := svc.Create(r.Context(), dealers.CreateInput{
			DistributorID: distributorID,
			Name:          validators.SanitizeString(payload.Name, 120),
			Phone:         payload.Phone,
			City:          payload.City,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dealer)
	}
}

func DealersList(svc dealers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		distributorID, err := validators.ParseQueryUUID(r, "distributor_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if distributorID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "distributor_id is required"))
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active_only", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), distributorID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func DealersGet(svc dealers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealerID, err := validators.ParsePathUUID(chi.URLParam(r, "dealerId"), "dealerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dealer, err := svc.Get(r.Context(), dealerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dealer)
	}
}

// DealersDeactivate retires a dealer account without deleting its order history.
func DealersDeactivate(svc dealers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealerID, err := validators.ParsePathUUID(chi.URLParam(r, "dealerId"), "dealerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), dealerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"active": false})
	}
}
