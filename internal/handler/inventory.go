package handler

import (
	"encoding/json"
	"net/http"

	"storefront-sync-api/internal/model"
	"storefront-sync-api/internal/service"
	"storefront-sync-api/pkg/apierror"
	"storefront-sync-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// InventoryHandler handles inventory-related HTTP requests. Bodies on the
// /inventory routes are raw JSON (no envelope): the sync client decodes
// products and nulls directly off the wire.
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ListProducts handles GET /inventory
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.ListProducts(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	response.Raw(w, http.StatusOK, products)
}

// GetProduct handles GET /inventory/{id}
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	product, err := h.inventoryService.GetProduct(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, product)
}

// ConditionalGet handles POST /inventory/{id}
// Body: {"lastUpdated": "..."}. Replies null when unchanged, else the product.
func (h *InventoryHandler) ConditionalGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	var req model.ConditionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	product, err := h.inventoryService.ConditionalGet(r.Context(), id, req.LastUpdated)
	if err != nil {
		response.Error(w, err)
		return
	}

	// product == nil encodes to a raw JSON null: the "unchanged" signal.
	response.Raw(w, http.StatusOK, product)
}

// UpdateMaxQuantity handles PATCH /inventory/{id}
func (h *InventoryHandler) UpdateMaxQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	var req model.PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if req.MaxQuantity < 0 {
		response.Error(w, apierror.ValidationError("maxQuantity must not be negative",
			apierror.FieldError{Field: "maxQuantity", Message: "must be >= 0"}))
		return
	}

	result, err := h.inventoryService.UpdateMaxQuantity(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, result)
}

// Timestamp handles GET /inventory/{id}/timestamp
func (h *InventoryHandler) Timestamp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	ts, err := h.inventoryService.Timestamp(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, ts)
}

// CreateProduct handles POST /inventory
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input model.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if input.Name == "" {
		response.Error(w, apierror.ValidationError("name is required",
			apierror.FieldError{Field: "name", Message: "must not be empty"}))
		return
	}

	product, err := h.inventoryService.CreateProduct(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, product)
}
