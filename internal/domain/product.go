package domain

// Product is a catalog entry as served by the store API.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description"`
	Feature       string   `json:"feature,omitempty"`
	AverageRating float64  `json:"average_rating"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	Pokemon       string   `json:"pokemon,omitempty"`
	Location      string   `json:"location,omitempty"`
	Visuals       []Visual `json:"visuals,omitempty"`
}

// Visual is a display asset attached to a product.
type Visual struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ShortName   string `json:"short_name,omitempty"`
	FileType    string `json:"file_type,omitempty"`
	CSSClass    string `json:"css_class,omitempty"`
}

// PokemonInfo is the enrichment payload shown next to products that have an
// associated Pokemon.
type PokemonInfo struct {
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	Abilities []string `json:"abilities"`
	Height    float64  `json:"height"`
	Weight    float64  `json:"weight"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// WeatherInfo is the current weather at a product's location, used to derive
// the shipping estimate message.
type WeatherInfo struct {
	City        string  `json:"city"`
	Condition   string  `json:"condition"`
	Description string  `json:"description,omitempty"`
	Temperature float64 `json:"temperature"`
}
