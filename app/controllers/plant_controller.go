package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/response"
	"github.com/shashiranjanraj/plantnet/pkg/storage"
)

// maxImageBytes caps plant image uploads at 8 MB.
const maxImageBytes = 8 << 20

// PlantController serves the catalog and stock endpoints.
type PlantController struct {
	service *services.PlantService
}

func NewPlantController(service *services.PlantService) *PlantController {
	return &PlantController{service: service}
}

// Create handles POST /plants (guarded).
func (c *PlantController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PlantRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.service.Create(r.Context(), req, middleware.EmailFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Success(w, response.InsertResult{Acknowledged: true, InsertedID: id})
}

// List handles GET /plants (public).
func (c *PlantController) List(w http.ResponseWriter, r *http.Request) {
	plants, err := c.service.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, plants)
}

// Show handles GET /plants/{id} (public).
func (c *PlantController) Show(w http.ResponseWriter, r *http.Request) {
	plant, err := c.service.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, plant)
}

// AdjustQuantity handles PATCH /plants/quantity/{id} (guarded): a relative
// stock delta, direction selected by the payload's status flag.
func (c *PlantController) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req models.StockAdjustmentRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	matched, modified, err := c.service.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Success(w, response.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  matched,
		ModifiedCount: modified,
	})
}

// UploadImage handles POST /plants/image (guarded): stores the multipart
// "image" field on the configured disk and returns the public URL to place
// in the plant payload.
func (c *PlantController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		response.Error(w, http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	path := fmt.Sprintf("plants/%s%s", uuid.NewString(), ext)
	if err := storage.PutStream(path, file); err != nil {
		logger.WithCtx(r.Context()).Error("image upload failed", "path", path, "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, map[string]string{"url": storage.URL(path)})
}
