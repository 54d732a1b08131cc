package storeapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tiffanyadora/storefront/internal/domain"
)

// Enrichment fetch tuning. The Pokemon endpoint proxies a slow third-party
// API, so it gets its own retry budget on top of the transport retries.
const (
	pokemonMaxRetries   = 3
	pokemonRetryBackoff = time.Second
	pokemonFetchTimeout = 5 * time.Second
)

// FetchPokemon retrieves Pokemon details for product enrichment. The whole
// attempt, retries included, is bounded by a 5 second deadline.
func (c *Client) FetchPokemon(ctx context.Context, name string) (domain.PokemonInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, pokemonFetchTimeout)
	defer cancel()

	path := fmt.Sprintf("/api/pokemon/%s/", url.PathEscape(strings.ToLower(name)))

	var lastErr error
	for attempt := 0; attempt <= pokemonMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(pokemonRetryBackoff):
			case <-ctx.Done():
				return domain.PokemonInfo{}, fmt.Errorf("fetch pokemon %s: %w", name, ctx.Err())
			}
		}

		info, err := c.fetchPokemonOnce(ctx, path)
		if err == nil {
			return info, nil
		}
		lastErr = err

		// Server-reported rejections (unknown Pokemon) will not heal on retry.
		if _, ok := AsServerError(err); ok {
			return domain.PokemonInfo{}, err
		}

		c.logger.WarnContext(ctx, "pokemon fetch attempt failed",
			slog.String("pokemon", name),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}

	return domain.PokemonInfo{}, fmt.Errorf("fetch pokemon %s after %d attempts: %w", name, pokemonMaxRetries+1, lastErr)
}

func (c *Client) fetchPokemonOnce(ctx context.Context, path string) (domain.PokemonInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return domain.PokemonInfo{}, err
	}

	resp, err := c.do(ctx, req, "fetch pokemon")
	if err != nil {
		return domain.PokemonInfo{}, err
	}

	var dto struct {
		Name      string   `json:"name"`
		Types     []string `json:"types"`
		Abilities []string `json:"abilities"`
		Height    float64  `json:"height"`
		Weight    float64  `json:"weight"`
		ImageURL  string   `json:"image_url"`
	}
	if err := decode(resp, &dto); err != nil {
		return domain.PokemonInfo{}, err
	}

	return domain.PokemonInfo{
		Name:      dto.Name,
		Types:     dto.Types,
		Abilities: dto.Abilities,
		Height:    dto.Height,
		Weight:    dto.Weight,
		ImageURL:  dto.ImageURL,
	}, nil
}

// FetchWeather retrieves current weather for a product's location.
func (c *Client) FetchWeather(ctx context.Context, city string) (domain.WeatherInfo, error) {
	path := fmt.Sprintf("/api/weather/%s/", url.PathEscape(city))
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return domain.WeatherInfo{}, err
	}

	resp, err := c.do(ctx, req, "fetch weather")
	if err != nil {
		return domain.WeatherInfo{}, err
	}

	var dto struct {
		City        string  `json:"city"`
		Condition   string  `json:"condition"`
		Description string  `json:"description"`
		Temperature float64 `json:"temperature"`
	}
	if err := decode(resp, &dto); err != nil {
		return domain.WeatherInfo{}, err
	}

	return domain.WeatherInfo{
		City:        dto.City,
		Condition:   dto.Condition,
		Description: dto.Description,
		Temperature: dto.Temperature,
	}, nil
}
