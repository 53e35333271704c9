package model

// LatLng is a plain coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry wraps a result's location.
type Geometry struct {
	Location LatLng `json:"location"`
}

// Photo references an upstream place photo.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

// OpeningHours holds the subset of hours data the UI shows.
type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// SearchResult is the canonical, normalized place returned by a search.
type SearchResult struct {
	PlaceID              string        `json:"place_id"`
	Name                 string        `json:"name"`
	Vicinity             string        `json:"vicinity"`
	Geometry             Geometry      `json:"geometry"`
	Photos               []Photo       `json:"photos"`
	Rating               *float64      `json:"rating,omitempty"`
	UserRatingsTotal     *int          `json:"user_ratings_total,omitempty"`
	PriceLevel           *int          `json:"price_level,omitempty"`
	Types                []string      `json:"types"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
	URL                  string        `json:"url,omitempty"`
}

// SearchCenter is where a map view should focus.
type SearchCenter = LatLng

// Prediction is one autocomplete suggestion.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// Category is a one-tap search shortcut.
type Category struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
}

// Categories is the fixed category bar, in display order.
var Categories = []Category{
	{ID: 1, Name: "Restaurants", Keyword: "restaurant"},
	{ID: 2, Name: "Gas Stations", Keyword: "gas_station"},
	{ID: 3, Name: "Grocery Stores", Keyword: "supermarket"},
	{ID: 4, Name: "Bed and Breakfast", Keyword: "lodging"},
	{ID: 5, Name: "Night Club", Keyword: "bar"},
	{ID: 6, Name: "Hotels", Keyword: "hotel"},
	{ID: 7, Name: "Banks", Keyword: "bank"},
}

// LookupCategory finds a category by keyword or display name.
func LookupCategory(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Keyword == key || c.Name == key {
			return c, true
		}
	}
	return Category{}, false
}

// Activity is a things-to-do entry for a city.
type Activity struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	OpenNow *bool  `json:"openNow,omitempty"`
	Hours   string `json:"hours"`
}

// Weather is the current conditions summary.
type Weather struct {
	TempC       int    `json:"temp"`
	City        string `json:"city"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
