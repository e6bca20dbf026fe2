package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/api/responses"
	"github.com/luisrojasb/doorline-backend/api/validators"
	catalogsvc "github.com/luisrojasb/doorline-backend/internal/catalog"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/logger"
)

// CatalogList serves the door type/design/color picker payload.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		listing, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

type createDoorTypeRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func CatalogCreateDoorType(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createDoorTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doorType, err := svc.CreateDoorType(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, doorType)
	}
}

type createDesignRequest struct {
	DoorTypeID uuid.UUID `json:"door_type_id" validate:"required"`
	Name       string    `json:"name" validate:"required,max=120"`
	ImageURL   string    `json:"image_url" validate:"omitempty,max=500"`
}

func CatalogCreateDesign(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createDesignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		design, err := svc.CreateDesign(r.Context(), payload.DoorTypeID, payload.Name, payload.ImageURL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, design)
	}
}

type createColorRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func CatalogCreateColor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createColorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		color, err := svc.CreateColor(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, color)
	}
}

type renameDesignRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CatalogRenameDesign renames a design. Order item snapshots keep the name
// they were placed with.
func CatalogRenameDesign(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		designID, err := validators.ParsePathUUID(chi.URLParam(r, "designId"), "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload renameDesignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RenameDesign(r.Context(), designID, payload.Name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "renamed"})
	}
}
