package model

// LocationData is a resolved geographic position. Coordinates arrive before
// city/country, so any field may be nil for a while after a fix.
type LocationData struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	City    *string  `json:"city"`
	Country *string  `json:"country"`
}

// NewLocation builds a LocationData with coordinates and no place names.
func NewLocation(lat, lng float64) LocationData {
	return LocationData{Lat: &lat, Lng: &lng}
}

// WithPlace returns a copy of l carrying the given city and country. Empty
// strings are stored as nil.
func (l LocationData) WithPlace(city, country string) LocationData {
	out := LocationData{Lat: l.Lat, Lng: l.Lng}
	if city != "" {
		out.City = &city
	}
	if country != "" {
		out.Country = &country
	}
	return out
}

// HasCoordinates reports whether both lat and lng are set.
func (l *LocationData) HasCoordinates() bool {
	return l != nil && l.Lat != nil && l.Lng != nil
}

// HasPlace reports whether both city and country are resolved.
func (l *LocationData) HasPlace() bool {
	return l != nil && l.City != nil && l.Country != nil
}

// Coordinates returns lat/lng. Callers check HasCoordinates first.
func (l LocationData) Coordinates() (float64, float64) {
	var lat, lng float64
	if l.Lat != nil {
		lat = *l.Lat
	}
	if l.Lng != nil {
		lng = *l.Lng
	}
	return lat, lng
}

// CityName returns the city or "".
func (l LocationData) CityName() string {
	if l.City == nil {
		return ""
	}
	return *l.City
}

// CountryName returns the country or "".
func (l LocationData) CountryName() string {
	if l.Country == nil {
		return ""
	}
	return *l.Country
}

// Clone returns a deep copy so consumers never share pointers with the owner.
func (l LocationData) Clone() LocationData {
	var out LocationData
	if l.Lat != nil {
		v := *l.Lat
		out.Lat = &v
	}
	if l.Lng != nil {
		v := *l.Lng
		out.Lng = &v
	}
	if l.City != nil {
		v := *l.City
		out.City = &v
	}
	if l.Country != nil {
		v := *l.Country
		out.Country = &v
	}
	return out
}

// Equal compares two locations field by field.
func (l LocationData) Equal(o LocationData) bool {
	return eqFloat(l.Lat, o.Lat) && eqFloat(l.Lng, o.Lng) &&
		eqString(l.City, o.City) && eqString(l.Country, o.Country)
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
