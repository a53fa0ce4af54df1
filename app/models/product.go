package models

// ProductInput is a catalog entry before the document store assigns an id.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Stock       int
	Category    string
	Attributes  Attributes
}

// Product is a catalog document.
type Product struct {
	ID          ProductID  `json:"_id"         bson:"_id,omitempty"`
	Title       string     `json:"title"       bson:"title"`
	Description string     `json:"description" bson:"description"`
	Price       float64    `json:"price"       bson:"price"`
	Stock       int        `json:"stock"       bson:"stock"`
	Category    string     `json:"category"    bson:"category"`
	Attributes  Attributes `json:"attributes"  bson:"attributes"`
}

// NewProduct builds an unsaved document from in. A nil attribute bag becomes
// an empty one.
func NewProduct(in ProductInput) Product {
	attrs := in.Attributes
	if attrs == nil {
		attrs = Attributes{}
	}
	return Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Attributes:  attrs,
	}
}

// Normalize fills in what documents written by older or foreign writers may
// lack. A missing attributes field decodes to a nil bag and is served as {}.
func (p *Product) Normalize() {
	if p.Attributes == nil {
		p.Attributes = Attributes{}
	}
}
