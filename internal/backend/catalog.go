package backend

import (
	"context"
	"net/http"
	"strconv"

	"shopdesk/internal/models"
)

type ProductFields struct {
	Name        string
	Description string
	Type        models.ProductType
}

type ServiceFields struct {
	Name        string
	Description string
	Price       string
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductsByType(ctx context.Context, t models.ProductType) ([]models.Product, error) {
	var out []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "products/"+segment(string(t)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, f ProductFields, image Upload) error {
	fields := []formField{
		{name: "name", value: f.Name},
		{name: "description", value: f.Description},
		{name: "type", value: string(f.Type)},
	}
	return c.doMultipart(ctx, http.MethodPost, "products", fields, image, "product_image.jpg", nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, f ProductFields, image Upload) error {
	fields := []formField{
		{name: "name", value: f.Name},
		{name: "description", value: f.Description},
	}
	if f.Type != "" {
		fields = append(fields, formField{name: "type", value: string(f.Type)})
	}
	return c.doMultipart(ctx, http.MethodPut, "products/"+segment(id), fields, image, "product_image.jpg", nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "products/"+segment(id), nil, nil)
}

func (c *Client) Services(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := c.doJSON(ctx, http.MethodGet, "services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateService(ctx context.Context, f ServiceFields, image Upload) error {
	return c.doMultipart(ctx, http.MethodPost, "services", serviceFields(f), image, "service_image.jpg", nil)
}

func (c *Client) UpdateService(ctx context.Context, id string, f ServiceFields, image Upload) error {
	return c.doMultipart(ctx, http.MethodPut, "services/"+segment(id), serviceFields(f), image, "service_image.jpg", nil)
}

func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "services/"+segment(id), nil, nil)
}

func serviceFields(f ServiceFields) []formField {
	return []formField{
		{name: "name", value: f.Name},
		{name: "description", value: f.Description},
		{name: "price", value: f.Price},
	}
}

func (c *Client) Images(ctx context.Context) ([]models.Image, error) {
	var out []models.Image
	if err := c.doJSON(ctx, http.MethodGet, "images", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadImage adds a gallery image. New images are never featured.
func (c *Client) UploadImage(ctx context.Context, image Upload) error {
	fields := []formField{{name: "featured", value: strconv.FormatBool(false)}}
	return c.doMultipart(ctx, http.MethodPost, "images", fields, image, "photo.jpg", nil)
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "images/"+segment(id), nil, nil)
}

func (c *Client) ToggleFeatured(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "tagimages/"+segment(id), nil, nil)
}
