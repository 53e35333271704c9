// Package location resolves the user's position with a fallback and a
// detected/default toggle.
package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/internal/model"
)

// Advisory messages surfaced to the UI. None of them are hard errors.
const (
	AdvisoryLocateFailed  = "Could not retrieve your location. Using a default location."
	AdvisoryUnsupported   = "Geolocation is not supported. Using a default location."
	AdvisoryUsingDefault  = "Using default location. Toggle to use your current location if detected."
	AdvisoryReverseFailed = "Could not resolve city and country for your location."
)

const defaultTimeout = 10 * time.Second

// DefaultFallback is Johannesburg, South Africa.
func DefaultFallback() model.LocationData {
	return model.NewLocation(-26.2041, 28.0473).WithPlace("Johannesburg", "South Africa")
}

// Config configures a Resolver.
type Config struct {
	// Fallback is used whenever no detected fix is available.
	Fallback model.LocationData
	// Timeout bounds each geolocation attempt. Zero means 10s.
	Timeout time.Duration
}

// Resolver owns the current location. Values handed out are deep copies and
// every change replaces the location wholesale.
type Resolver struct {
	geo Geolocator
	rev ReverseGeocoder
	cfg Config

	mu             sync.Mutex
	current        *model.LocationData
	detected       *model.LocationData
	preferDetected bool
	advisory       string
	loading        bool
	gen            uint64
	subs           map[int]func(model.LocationData)
	nextSub        int
}

// NewResolver creates a Resolver. A zero Fallback uses DefaultFallback.
func NewResolver(geo Geolocator, rev ReverseGeocoder, cfg Config) *Resolver {
	if !cfg.Fallback.HasCoordinates() {
		cfg.Fallback = DefaultFallback()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if geo == nil {
		geo = NoGeolocator{}
	}
	return &Resolver{
		geo:            geo,
		rev:            rev,
		cfg:            cfg,
		preferDetected: true,
		subs:           make(map[int]func(model.LocationData)),
	}
}

// Resolve asks the geolocator for a fresh fix, publishes it, then fills in
// city and country. On failure the fallback location is published instead.
func (r *Resolver) Resolve(ctx context.Context) model.LocationData {
	r.mu.Lock()
	r.loading = true
	r.advisory = ""
	r.mu.Unlock()

	locCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	fix, err := r.geo.Locate(locCtx)
	cancel()

	if err != nil {
		advisory := AdvisoryLocateFailed
		if errors.Is(err, ErrUnsupported) {
			advisory = AdvisoryUnsupported
		}
		zap.L().Warn("location: geolocation failed, using fallback", zap.Error(err))

		r.mu.Lock()
		r.detected = nil
		r.preferDetected = false
		r.advisory = advisory
		r.loading = false
		gen := r.setLocked(r.cfg.Fallback.Clone())
		r.mu.Unlock()

		r.notify(gen)
		return r.cfg.Fallback.Clone()
	}

	loc := model.NewLocation(fix.Lat, fix.Lng)

	r.mu.Lock()
	captured := loc.Clone()
	r.detected = &captured
	r.preferDetected = true
	gen := r.setLocked(loc.Clone())
	r.mu.Unlock()

	r.notify(gen)
	return r.fillPlace(ctx, gen, loc)
}

// Toggle flips between the detected and the fallback location. Switching
// back to a detected fix reuses it, reverse geocoding only when its city
// and country were never resolved.
func (r *Resolver) Toggle(ctx context.Context) model.LocationData {
	r.mu.Lock()
	r.preferDetected = !r.preferDetected

	if !r.preferDetected || r.detected == nil {
		r.advisory = AdvisoryUsingDefault
		r.loading = false
		gen := r.setLocked(r.cfg.Fallback.Clone())
		r.mu.Unlock()

		r.notify(gen)
		return r.cfg.Fallback.Clone()
	}

	loc := r.detected.Clone()
	r.advisory = ""
	r.loading = false
	gen := r.setLocked(loc.Clone())
	r.mu.Unlock()

	r.notify(gen)
	if loc.HasPlace() {
		return loc
	}
	return r.fillPlace(ctx, gen, loc)
}

// fillPlace reverse geocodes loc and publishes the result if nothing newer
// has replaced the location meanwhile. Failures keep lat/lng and leave city
// and country nil.
func (r *Resolver) fillPlace(ctx context.Context, gen uint64, loc model.LocationData) model.LocationData {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()

	var (
		city, country string
		err           = ErrNoCountry
	)
	if r.rev != nil {
		lat, lng := loc.Coordinates()
		city, country, err = r.rev.Reverse(ctx, lat, lng)
	}

	filled := loc.WithPlace("", "")
	if err != nil {
		zap.L().Debug("location: reverse geocode failed", zap.Error(err))
	} else {
		filled = loc.WithPlace(city, country)
	}

	r.mu.Lock()
	if r.gen != gen {
		r.mu.Unlock()
		return filled
	}
	r.loading = false
	if err != nil {
		r.advisory = AdvisoryReverseFailed
	} else if r.detected != nil && r.detected.Equal(loc) {
		captured := filled.Clone()
		r.detected = &captured
	}
	newGen := r.setLocked(filled.Clone())
	r.mu.Unlock()

	r.notify(newGen)
	return filled
}

// setLocked replaces the current location and returns the new generation.
func (r *Resolver) setLocked(loc model.LocationData) uint64 {
	r.current = &loc
	r.gen++
	return r.gen
}

// notify delivers the current location to subscribers if gen is still the
// latest. Callbacks run without the lock held.
func (r *Resolver) notify(gen uint64) {
	r.mu.Lock()
	if r.gen != gen || r.current == nil {
		r.mu.Unlock()
		return
	}
	loc := r.current.Clone()
	subs := make([]func(model.LocationData), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(loc.Clone())
	}
}

// Subscribe registers fn for every location change and returns a function
// that removes it.
func (r *Resolver) Subscribe(fn func(model.LocationData)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Current returns a copy of the current location, or nil before the first
// Resolve.
func (r *Resolver) Current() *model.LocationData {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	loc := r.current.Clone()
	return &loc
}

// UsingDetected reports whether the current location is the detected fix.
func (r *Resolver) UsingDetected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.preferDetected && r.detected != nil
}

// Advisory returns the latest location advisory, or "".
func (r *Resolver) Advisory() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advisory
}

// Loading reports whether a geolocation or reverse geocode is in flight.
func (r *Resolver) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}
