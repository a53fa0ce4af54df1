package controllers

import (
	"context"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/pkg/bind"
	"github.com/shashiranjanraj/nexus/pkg/ctx"
)

// Catalog is what ProductController needs from the catalog service.
type Catalog interface {
	Create(ctx context.Context, in models.ProductInput) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

// CreateProductRequest is the body of POST /products. Pointer fields tell a
// missing value apart from a zero one.
type CreateProductRequest struct {
	Title       *string           `json:"title"       validate:"required"`
	Description *string           `json:"description" validate:"required"`
	Price       *float64          `json:"price"       validate:"required"`
	Stock       int               `json:"stock"`
	Category    *string           `json:"category"    validate:"required"`
	Attributes  models.Attributes `json:"attributes"`
}

func (r CreateProductRequest) input() models.ProductInput {
	return models.ProductInput{
		Title:       *r.Title,
		Description: *r.Description,
		Price:       *r.Price,
		Stock:       r.Stock,
		Category:    *r.Category,
		Attributes:  r.Attributes,
	}
}

type ProductController struct {
	catalog Catalog
	binder  *bind.Binder
}

func NewProductController(catalog Catalog, binder *bind.Binder) *ProductController {
	return &ProductController{catalog: catalog, binder: binder}
}

// Store handles POST /products.
func (pc *ProductController) Store(c *ctx.Context) {
	var in CreateProductRequest
	if !c.Bind(pc.binder, &in) {
		return
	}

	product, err := pc.catalog.Create(c.Context(), in.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Index handles GET /products.
func (pc *ProductController) Index(c *ctx.Context) {
	products, err := pc.catalog.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

// Show handles GET /products/{id}.
func (pc *ProductController) Show(c *ctx.Context) {
	product, err := pc.catalog.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}
