package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/internal/storeapi"
	"github.com/tiffanyadora/storefront/pkg/validator"
)

type mockStoreAPI struct {
	mock.Mock
}

func (m *mockStoreAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockStoreAPI) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockStoreAPI) CreateProduct(ctx context.Context, input storeapi.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockStoreAPI) UpdateProduct(ctx context.Context, id string, input storeapi.ProductInput) error {
	return m.Called(ctx, id, input).Error(0)
}

func (m *mockStoreAPI) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStoreAPI) AddReview(ctx context.Context, input storeapi.ReviewInput) (domain.Review, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *mockStoreAPI) UpdateReview(ctx context.Context, reviewID string, input storeapi.ReviewInput) error {
	return m.Called(ctx, reviewID, input).Error(0)
}

func (m *mockStoreAPI) DeleteReview(ctx context.Context, reviewID, username string) error {
	return m.Called(ctx, reviewID, username).Error(0)
}

func (m *mockStoreAPI) FetchPokemon(ctx context.Context, name string) (domain.PokemonInfo, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.PokemonInfo), args.Error(1)
}

func (m *mockStoreAPI) FetchWeather(ctx context.Context, city string) (domain.WeatherInfo, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(domain.WeatherInfo), args.Error(1)
}

func newTestService(api API) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(api, logger)
}

func TestShippingMessage(t *testing.T) {
	for _, condition := range []string{"Thunderstorm", "Snow", "Tornado", "Hurricane", "Blizzard"} {
		assert.Equal(t, MsgSevereWeather, ShippingMessage(condition), condition)
	}
	assert.Equal(t, MsgRainDelay, ShippingMessage("Rain"))
	assert.Equal(t, MsgRainDelay, ShippingMessage("Drizzle"))
	assert.Equal(t, MsgNormal, ShippingMessage("Clear"))
	assert.Equal(t, MsgNormal, ShippingMessage(""))
}

func TestListProducts_AddsSlugs(t *testing.T) {
	api := &mockStoreAPI{}
	api.On("ListProducts", mock.Anything).Return([]domain.Product{{ID: "1", Name: "Pikachu Plush Toy"}}, nil)

	products, err := newTestService(api).ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pikachu-plush-toy", products[0].Slug)
}

func TestGetProductDetail_FullEnrichment(t *testing.T) {
	api := &mockStoreAPI{}
	api.On("GetProduct", mock.Anything, "1").Return(domain.Product{
		ID: "1", Name: "Flygon T-Shirt", Pokemon: "flygon", Location: "Tucson",
	}, nil)
	api.On("FetchPokemon", mock.Anything, "flygon").Return(domain.PokemonInfo{Name: "flygon", Types: []string{"ground", "dragon"}}, nil)
	api.On("FetchWeather", mock.Anything, "Tucson").Return(domain.WeatherInfo{City: "Tucson", Condition: "Thunderstorm"}, nil)

	detail, err := newTestService(api).GetProductDetail(context.Background(), "1")
	require.NoError(t, err)

	require.NotNil(t, detail.Pokemon)
	assert.Equal(t, []string{"ground", "dragon"}, detail.Pokemon.Types)
	require.NotNil(t, detail.Weather)
	assert.Equal(t, MsgSevereWeather, detail.ShippingMessage)
}

func TestGetProductDetail_EnrichmentFailuresDegrade(t *testing.T) {
	api := &mockStoreAPI{}
	api.On("GetProduct", mock.Anything, "1").Return(domain.Product{
		ID: "1", Name: "Flygon T-Shirt", Pokemon: "flygon", Location: "Tucson",
	}, nil)
	api.On("FetchPokemon", mock.Anything, "flygon").Return(domain.PokemonInfo{}, errors.New("timeout"))
	api.On("FetchWeather", mock.Anything, "Tucson").Return(domain.WeatherInfo{}, errors.New("timeout"))

	detail, err := newTestService(api).GetProductDetail(context.Background(), "1")
	require.NoError(t, err)

	assert.Nil(t, detail.Pokemon)
	assert.Nil(t, detail.Weather)
	assert.Equal(t, MsgNormal, detail.ShippingMessage)
}

func TestGetProductDetail_NoEnrichmentFields(t *testing.T) {
	api := &mockStoreAPI{}
	api.On("GetProduct", mock.Anything, "1").Return(domain.Product{ID: "1", Name: "Plain Mug"}, nil)

	detail, err := newTestService(api).GetProductDetail(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, MsgNormal, detail.ShippingMessage)
	api.AssertNotCalled(t, "FetchPokemon", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "FetchWeather", mock.Anything, mock.Anything)
}

func TestCreateProduct_Validation(t *testing.T) {
	api := &mockStoreAPI{}
	svc := newTestService(api)

	_, err := svc.CreateProduct(context.Background(), ProductForm{Name: "x"})
	require.Error(t, err)

	var valErr *validator.ValidationError
	assert.ErrorAs(t, err, &valErr)
	api.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct(t *testing.T) {
	api := &mockStoreAPI{}
	form := ProductForm{Name: "Pikachu Plush", Description: "Soft", Price: 9.99, Category: "plush"}
	api.On("CreateProduct", mock.Anything, form.toInput()).Return(domain.Product{ID: "42", Name: "Pikachu Plush"}, nil)

	product, err := newTestService(api).CreateProduct(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "42", product.ID)
	assert.Equal(t, "pikachu-plush", product.Slug)
}

func TestAddReview_RatingBounds(t *testing.T) {
	api := &mockStoreAPI{}
	svc := newTestService(api)

	_, err := svc.AddReview(context.Background(), ReviewForm{ProductID: "1", Username: "tiff", Rating: 6, Comment: "great"})
	require.Error(t, err)
	api.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything)
}

func TestDeleteReview_RequiresUsername(t *testing.T) {
	api := &mockStoreAPI{}
	svc := newTestService(api)

	assert.Error(t, svc.DeleteReview(context.Background(), "9", ""))
	api.AssertNotCalled(t, "DeleteReview", mock.Anything, mock.Anything, mock.Anything)

	api.On("DeleteReview", mock.Anything, "9", "tiff").Return(nil)
	assert.NoError(t, svc.DeleteReview(context.Background(), "9", "tiff"))
}
