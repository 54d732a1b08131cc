package catalog

import (
	"context"
	"log/slog"

	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/internal/storeapi"
	apperrors "github.com/tiffanyadora/storefront/pkg/errors"
	"github.com/tiffanyadora/storefront/pkg/slug"
	"github.com/tiffanyadora/storefront/pkg/validator"
)

// Shipping estimate messages derived from the weather at a product's
// location.
const (
	MsgSevereWeather = "Shipping delays possible due to severe weather conditions."
	MsgRainDelay     = "Minor shipping delays possible due to rain."
	MsgNormal        = "Normal shipping times expected."
)

// severeConditions are the weather conditions that trigger the severe
// shipping warning.
var severeConditions = map[string]bool{
	"Thunderstorm": true,
	"Snow":         true,
	"Tornado":      true,
	"Hurricane":    true,
	"Blizzard":     true,
}

// API is the slice of the store API the catalog service needs.
type API interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, input storeapi.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input storeapi.ProductInput) error
	DeleteProduct(ctx context.Context, id string) error
	AddReview(ctx context.Context, input storeapi.ReviewInput) (domain.Review, error)
	UpdateReview(ctx context.Context, reviewID string, input storeapi.ReviewInput) error
	DeleteReview(ctx context.Context, reviewID, username string) error
	FetchPokemon(ctx context.Context, name string) (domain.PokemonInfo, error)
	FetchWeather(ctx context.Context, city string) (domain.WeatherInfo, error)
}

// ProductDetail is a product with its best-effort enrichments. Pokemon and
// Weather are nil when the corresponding fetch failed or does not apply;
// the product page renders without them.
type ProductDetail struct {
	Product         domain.Product      `json:"product"`
	Pokemon         *domain.PokemonInfo `json:"pokemon,omitempty"`
	Weather         *domain.WeatherInfo `json:"weather,omitempty"`
	ShippingMessage string              `json:"shipping_message"`
}

// Service provides catalog browsing, enrichment, and administration on top
// of the store API.
type Service struct {
	api    API
	logger *slog.Logger
}

// NewService creates the catalog service.
func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// ListProducts returns the catalog with display slugs filled in.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Slug = slug.Generate(products[i].Name)
	}
	return products, nil
}

// GetProductDetail fetches a product and enriches it with Pokemon data and
// a weather-based shipping estimate. Enrichment failures degrade silently:
// the product is returned without the failed enrichment.
func (s *Service) GetProductDetail(ctx context.Context, id string) (ProductDetail, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return ProductDetail{}, err
	}
	product.Slug = slug.Generate(product.Name)

	detail := ProductDetail{
		Product:         product,
		ShippingMessage: MsgNormal,
	}

	if product.Pokemon != "" {
		info, err := s.api.FetchPokemon(ctx, product.Pokemon)
		if err != nil {
			s.logger.WarnContext(ctx, "pokemon enrichment unavailable",
				slog.String("product_id", id),
				slog.String("pokemon", product.Pokemon),
				slog.String("error", err.Error()),
			)
		} else {
			detail.Pokemon = &info
		}
	}

	if product.Location != "" {
		weather, err := s.api.FetchWeather(ctx, product.Location)
		if err != nil {
			s.logger.WarnContext(ctx, "weather enrichment unavailable",
				slog.String("product_id", id),
				slog.String("city", product.Location),
				slog.String("error", err.Error()),
			)
		} else {
			detail.Weather = &weather
			detail.ShippingMessage = ShippingMessage(weather.Condition)
		}
	}

	return detail, nil
}

// ShippingMessage maps a weather condition to the shipping estimate shown on
// the product page.
func ShippingMessage(condition string) string {
	switch {
	case severeConditions[condition]:
		return MsgSevereWeather
	case condition == "Rain" || condition == "Drizzle":
		return MsgRainDelay
	default:
		return MsgNormal
	}
}

// ProductForm is the admin input for creating or updating a product.
type ProductForm struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Feature     string  `json:"feature"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Pokemon     string  `json:"pokemon"`
	Location    string  `json:"location"`
}

func (f ProductForm) toInput() storeapi.ProductInput {
	return storeapi.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		Feature:     f.Feature,
		Price:       f.Price,
		Category:    f.Category,
		Pokemon:     f.Pokemon,
		Location:    f.Location,
	}
}

// CreateProduct validates the form and creates the product upstream.
func (s *Service) CreateProduct(ctx context.Context, form ProductForm) (domain.Product, error) {
	if err := validator.Validate(form); err != nil {
		return domain.Product{}, err
	}
	product, err := s.api.CreateProduct(ctx, form.toInput())
	if err != nil {
		return domain.Product{}, err
	}
	product.Slug = slug.Generate(product.Name)

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)
	return product, nil
}

// UpdateProduct validates the form and updates the product upstream.
func (s *Service) UpdateProduct(ctx context.Context, id string, form ProductForm) error {
	if err := validator.Validate(form); err != nil {
		return err
	}
	return s.api.UpdateProduct(ctx, id, form.toInput())
}

// DeleteProduct removes the product upstream.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.api.DeleteProduct(ctx, id)
}

// ReviewForm is the input for creating or editing a review.
type ReviewForm struct {
	ProductID string `json:"product_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required"`
}

func (f ReviewForm) toInput() storeapi.ReviewInput {
	return storeapi.ReviewInput{
		ProductID: f.ProductID,
		Username:  f.Username,
		Rating:    f.Rating,
		Comment:   f.Comment,
	}
}

// AddReview validates and submits a review.
func (s *Service) AddReview(ctx context.Context, form ReviewForm) (domain.Review, error) {
	if err := validator.Validate(form); err != nil {
		return domain.Review{}, err
	}
	return s.api.AddReview(ctx, form.toInput())
}

// UpdateReview validates and edits a review. The store enforces that the
// username matches the review's author.
func (s *Service) UpdateReview(ctx context.Context, reviewID string, form ReviewForm) error {
	if err := validator.Validate(form); err != nil {
		return err
	}
	return s.api.UpdateReview(ctx, reviewID, form.toInput())
}

// DeleteReview removes a review on behalf of its author.
func (s *Service) DeleteReview(ctx context.Context, reviewID, username string) error {
	if username == "" {
		return apperrors.InvalidInput("username is required")
	}
	return s.api.DeleteReview(ctx, reviewID, username)
}
