package sokoserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	productdomain "github.com/sokoyetu/soko-api/internal/domains/products/domain"
	productports "github.com/sokoyetu/soko-api/internal/domains/products/ports"
	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
	"github.com/sokoyetu/soko-api/internal/validation"
)

// ProductsAPI wires HTTP transport with the catalog service.
type ProductsAPI struct {
	service   productports.Service
	validator *validatorv10.Validate
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service productports.Service) ProductsAPI {
	return ProductsAPI{service: service, validator: validation.New()}
}

// CreateProductRequest is the listing creation payload.
type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"required"`
	Subcategory string     `json:"subcategory"`
	Price       float64    `json:"price" validate:"gt=0"`
	Unit        string     `json:"unit"`
	Quantity    int32      `json:"quantity" validate:"gte=0"`
	MinOrder    int32      `json:"minOrder" validate:"gte=0"`
	County      string     `json:"county"`
	SubCounty   string     `json:"subCounty"`
	IsOrganic   bool       `json:"isOrganic"`
	IsFresh     bool       `json:"isFresh"`
	Tags        []string   `json:"tags"`
	HarvestDate *time.Time `json:"harvestDate"`
	ExpiryDate  *time.Time `json:"expiryDate"`
}

// Product is the transport-level listing payload.
type Product struct {
	ID           string     `json:"id"`
	FarmerID     string     `json:"farmerId"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category"`
	Subcategory  string     `json:"subcategory,omitempty"`
	Price        float64    `json:"price"`
	Unit         string     `json:"unit"`
	Quantity     int32      `json:"quantity"`
	MinOrder     int32      `json:"minOrder"`
	County       string     `json:"county,omitempty"`
	SubCounty    string     `json:"subCounty,omitempty"`
	IsOrganic    bool       `json:"isOrganic"`
	IsFresh      bool       `json:"isFresh"`
	Tags         []string   `json:"tags,omitempty"`
	Rating       float64    `json:"rating"`
	TotalReviews int32      `json:"totalReviews"`
	IsAvailable  bool       `json:"isAvailable"`
	Views        int64      `json:"views"`
	HarvestDate  *time.Time `json:"harvestDate,omitempty"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func fromDomainProduct(product *productdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:           product.ID,
		FarmerID:     product.FarmerID,
		Name:         product.Name,
		Description:  product.Description,
		Category:     string(product.Category),
		Subcategory:  product.Subcategory,
		Price:        product.Price,
		Unit:         product.Unit,
		Quantity:     product.Quantity,
		MinOrder:     product.MinOrder,
		County:       product.Location.County,
		SubCounty:    product.Location.SubCounty,
		IsOrganic:    product.IsOrganic,
		IsFresh:      product.IsFresh,
		Tags:         product.Tags,
		Rating:       product.Rating,
		TotalReviews: product.TotalReviews,
		IsAvailable:  product.IsAvailable,
		Views:        product.Views,
		HarvestDate:  product.HarvestDate,
		ExpiryDate:   product.ExpiryDate,
		CreatedAt:    product.CreatedAt,
	}
}

// Post /v1/products
// Publish a new listing. Farmers only.
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	if !user.IsSeller() {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("only farmers can publish listings"))
		return
	}
	var payload CreateProductRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	product, err := api.service.Create(c.Request.Context(), productports.CreateProductInput{
		FarmerID:    user.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		Subcategory: payload.Subcategory,
		Price:       payload.Price,
		Unit:        payload.Unit,
		Quantity:    payload.Quantity,
		MinOrder:    payload.MinOrder,
		County:      payload.County,
		SubCounty:   payload.SubCounty,
		IsOrganic:   payload.IsOrganic,
		IsFresh:     payload.IsFresh,
		Tags:        payload.Tags,
		HarvestDate: payload.HarvestDate,
		ExpiryDate:  payload.ExpiryDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainProduct(product))
}

// Get /v1/products
// Browse the catalog under optional filters
func (api *ProductsAPI) Search(c *gin.Context) {
	query := productports.SearchQuery{
		Category:      productdomain.Category(c.Query("category")),
		County:        c.Query("county"),
		FarmerID:      c.Query("farmerId"),
		Text:          c.Query("q"),
		OnlyAvailable: c.Query("available") == "true",
	}
	products, err := api.service.Search(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, fromDomainProduct(product))
	}
	c.JSON(http.StatusOK, result)
}

// Get /v1/products/:productId
// Fetch a single listing
func (api *ProductsAPI) GetProductById(c *gin.Context) {
	product, err := api.service.GetByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(product))
}
