package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// CatalogClient wraps the uniform CRUD endpoints for clients, materials,
// products, and services.
type CatalogClient struct {
	c *Client
}

func (cc *CatalogClient) ListClients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	if err := cc.c.do(ctx, "clients", http.MethodGet, "/clients", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var out models.Client
	if err := cc.c.do(ctx, "clients", http.MethodGet, fmt.Sprintf("/clients/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	var out models.Client
	if err := cc.c.do(ctx, "clients", http.MethodPost, "/clients", nil, client, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateClient(ctx context.Context, id int64, client *models.Client) (*models.Client, error) {
	var out models.Client
	if err := cc.c.do(ctx, "clients", http.MethodPut, fmt.Sprintf("/clients/%d", id), nil, client, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteClient(ctx context.Context, id int64) error {
	return cc.c.do(ctx, "clients", http.MethodDelete, fmt.Sprintf("/clients/%d", id), nil, nil, nil)
}

func (cc *CatalogClient) ListMaterials(ctx context.Context) ([]models.Material, error) {
	var out []models.Material
	if err := cc.c.do(ctx, "materials", http.MethodGet, "/materials", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) CreateMaterial(ctx context.Context, material *models.Material) (*models.Material, error) {
	var out models.Material
	if err := cc.c.do(ctx, "materials", http.MethodPost, "/materials", nil, material, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateMaterial(ctx context.Context, id int64, material *models.Material) (*models.Material, error) {
	var out models.Material
	if err := cc.c.do(ctx, "materials", http.MethodPut, fmt.Sprintf("/materials/%d", id), nil, material, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteMaterial(ctx context.Context, id int64) error {
	return cc.c.do(ctx, "materials", http.MethodDelete, fmt.Sprintf("/materials/%d", id), nil, nil, nil)
}

func (cc *CatalogClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := cc.c.do(ctx, "products", http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var out models.Product
	if err := cc.c.do(ctx, "products", http.MethodPost, "/products", nil, product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	var out models.Product
	if err := cc.c.do(ctx, "products", http.MethodPut, fmt.Sprintf("/products/%d", id), nil, product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteProduct(ctx context.Context, id int64) error {
	return cc.c.do(ctx, "products", http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

func (cc *CatalogClient) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := cc.c.do(ctx, "services", http.MethodGet, "/services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) CreateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	var out models.Service
	if err := cc.c.do(ctx, "services", http.MethodPost, "/services", nil, service, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateService(ctx context.Context, id int64, service *models.Service) (*models.Service, error) {
	var out models.Service
	if err := cc.c.do(ctx, "services", http.MethodPut, fmt.Sprintf("/services/%d", id), nil, service, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteService(ctx context.Context, id int64) error {
	return cc.c.do(ctx, "services", http.MethodDelete, fmt.Sprintf("/services/%d", id), nil, nil, nil)
}
