package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
	"github.com/Mynor454-s/iccsa-admin/pkg/utils"
)

// CatalogHandler proxies the CRUD surfaces for clients, materials, products,
// and services. No business logic lives here; the backend validates.
type CatalogHandler struct {
	Catalog *upstream.CatalogClient
}

func NewCatalogHandler(catalog *upstream.CatalogClient) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

func (h *CatalogHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Catalog.ListClients(r.Context())
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, clients)
}

func (h *CatalogHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}
	client, err := h.Catalog.GetClient(r.Context(), id)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

func (h *CatalogHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if client.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Name is required")
		return
	}
	created, err := h.Catalog.CreateClient(r.Context(), &client)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.Catalog.UpdateClient(r.Context(), id, &client)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}
	if err := h.Catalog.DeleteClient(r.Context(), id); err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Client deleted"})
}

func (h *CatalogHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Catalog.ListMaterials(r.Context())
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, materials)
}

func (h *CatalogHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var material models.Material
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if material.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Name is required")
		return
	}
	created, err := h.Catalog.CreateMaterial(r.Context(), &material)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	var material models.Material
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.Catalog.UpdateMaterial(r.Context(), id, &material)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	if err := h.Catalog.DeleteMaterial(r.Context(), id); err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Material deleted"})
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if product.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Name is required")
		return
	}
	created, err := h.Catalog.CreateProduct(r.Context(), &product)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.Catalog.UpdateProduct(r.Context(), id, &product)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	if err := h.Catalog.DeleteProduct(r.Context(), id); err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Catalog.ListServices(r.Context())
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var service models.Service
	if err := json.NewDecoder(r.Body).Decode(&service); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if service.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Name is required")
		return
	}
	created, err := h.Catalog.CreateService(r.Context(), &service)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	var service models.Service
	if err := json.NewDecoder(r.Body).Decode(&service); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.Catalog.UpdateService(r.Context(), id, &service)
	if err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	if err := h.Catalog.DeleteService(r.Context(), id); err != nil {
		writeReconcileError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Service deleted"})
}
