// Package places is the stateful search controller behind the UI: it picks
// search coordinates, owns the autocomplete session token, normalizes
// results and tracks the map's search center.
package places

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/internal/model"
	"github.com/sells-group/zittyzoom/pkg/gatewayclient"
)

// Status is the lifecycle of the latest search.
type Status string

// Search statuses.
const (
	StatusIdle      Status = "idle"
	StatusSearching Status = "searching"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// User-visible messages.
const (
	MsgNoLocation         = "Cannot perform search: location not available."
	MsgCategoryNoLocation = "Location not available to fetch categories. Please allow location access."
	MsgSearchFailed       = "Failed to search places. Please try again."
	MsgUnexpected         = "An unexpected error occurred during search."
)

// DefaultQuery runs when the active category is toggled off.
const DefaultQuery = "Restaurants"

// State is a snapshot of the orchestrator. Slices and pointers are copies.
type State struct {
	Status         Status               `json:"status"`
	Loading        bool                 `json:"loading"`
	Results        []model.SearchResult `json:"results"`
	Selected       *model.SearchResult  `json:"selected,omitempty"`
	Center         *model.SearchCenter  `json:"center,omitempty"`
	Query          string               `json:"query,omitempty"`
	ActiveCategory string               `json:"activeCategory,omitempty"`
	SessionToken   string               `json:"sessionToken,omitempty"`
	Message        string               `json:"message,omitempty"`
}

// Config configures an Orchestrator.
type Config struct {
	// DefaultQuery replaces DefaultQuery when set.
	DefaultQuery string
}

// Orchestrator serializes search intent into gateway calls. The latest
// initiated search always wins: responses to older searches are dropped.
// The mutex is never held across gateway calls.
type Orchestrator struct {
	gw           gatewayclient.Client
	defaultQuery string

	mu             sync.Mutex
	gen            uint64
	status         Status
	loading        bool
	results        []model.SearchResult
	selected       *model.SearchResult
	center         *model.SearchCenter
	query          string
	activeCategory string
	sessionToken   string
	message        string
}

// New creates an Orchestrator over a gateway client.
func New(gw gatewayclient.Client, cfg Config) *Orchestrator {
	dq := cfg.DefaultQuery
	if strings.TrimSpace(dq) == "" {
		dq = DefaultQuery
	}
	return &Orchestrator{
		gw:           gw,
		defaultQuery: dq,
		status:       StatusIdle,
	}
}

// SearchOption adjusts a single SearchByQuery call.
type SearchOption func(*searchRequest)

// WithSessionToken forwards an autocomplete session token with the search.
func WithSessionToken(token string) SearchOption {
	return func(r *searchRequest) {
		r.token = token
	}
}

// WithCoordinates searches at an explicit location instead of the last
// search center.
func WithCoordinates(lat, lng float64) SearchOption {
	return func(r *searchRequest) {
		r.lat = &lat
		r.lng = &lng
	}
}

type searchRequest struct {
	query    string
	category string
	token    string
	lat      *float64
	lng      *float64
}

// SearchByQuery runs a free-text search and clears any active category.
// A blank query resets to the empty state without any network call. The
// returned State is the snapshot after this search was applied or dropped.
func (o *Orchestrator) SearchByQuery(ctx context.Context, query string, opts ...SearchOption) State {
	req := searchRequest{query: query}
	for _, opt := range opts {
		opt(&req)
	}

	if strings.TrimSpace(query) == "" {
		o.reset()
		return o.State()
	}
	return o.search(ctx, req)
}

func (o *Orchestrator) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.gen++
	o.status = StatusIdle
	o.loading = false
	o.results = nil
	o.selected = nil
	o.message = ""
	o.sessionToken = ""
	o.query = ""
	o.activeCategory = ""
	o.center = nil
}

func (o *Orchestrator) search(ctx context.Context, req searchRequest) State {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.results = nil
	o.selected = nil
	o.message = ""
	o.sessionToken = ""
	if req.category != "" {
		o.activeCategory = req.category
		o.query = ""
	} else {
		o.activeCategory = ""
		o.query = req.query
	}

	lat, lng := req.lat, req.lng
	if (lat == nil || lng == nil) && o.center != nil {
		cLat, cLng := o.center.Lat, o.center.Lng
		lat, lng = &cLat, &cLng
	}
	if lat == nil || lng == nil {
		o.status = StatusError
		o.loading = false
		o.message = MsgNoLocation
		o.mu.Unlock()
		zap.L().Warn("places: no effective location for search", zap.String("query", req.query))
		return o.State()
	}
	o.status = StatusSearching
	o.loading = true
	o.mu.Unlock()

	raw, err := o.gw.Search(ctx, gatewayclient.SearchRequest{
		Keyword:      req.query,
		Mode:         gatewayclient.ModeTextSearch,
		Lat:          lat,
		Lng:          lng,
		SessionToken: req.token,
	})
	var results []model.SearchResult
	if err == nil {
		results, err = NormalizeResults(raw)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen {
		zap.L().Debug("places: dropping stale search response",
			zap.String("query", req.query),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", o.gen),
		)
		return o.stateLocked()
	}

	// A selection made while this search was in flight refers to the old
	// result list.
	o.loading = false
	o.selected = nil
	if err != nil {
		zap.L().Warn("places: search failed", zap.String("query", req.query), zap.Error(err))
		o.status = StatusError
		o.results = nil
		o.message = errorMessage(err)
		return o.stateLocked()
	}

	o.status = StatusSuccess
	o.results = results
	if len(results) == 0 {
		o.message = fmt.Sprintf("No places found for '%s'.", req.query)
		o.center = &model.SearchCenter{Lat: *lat, Lng: *lng}
		return o.stateLocked()
	}
	first := results[0].Geometry.Location
	o.center = &first
	return o.stateLocked()
}

func errorMessage(err error) string {
	var gwErr *gatewayclient.Error
	switch {
	case errors.As(err, &gwErr):
		return "Error: " + gwErr.Message
	case errors.Is(err, ErrMalformed):
		return MsgSearchFailed
	default:
		return MsgUnexpected
	}
}

// SelectPlace sets the selected result and ends any autocomplete session.
// A non-nil place recentres the search center on it without searching. A
// search still in flight supersedes the selection when its response lands.
func (o *Orchestrator) SelectPlace(place *model.SearchResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.sessionToken = ""
	if place == nil {
		o.selected = nil
		return
	}
	p := *place
	o.selected = &p
	loc := p.Geometry.Location
	o.center = &loc
}

// SelectCategory toggles a category search at loc. Choosing the active
// category again clears it and runs the default query instead.
func (o *Orchestrator) SelectCategory(ctx context.Context, keyword string, loc *model.LocationData) State {
	o.mu.Lock()
	o.query = ""
	if !loc.HasCoordinates() {
		o.gen++
		o.status = StatusError
		o.loading = false
		o.message = MsgCategoryNoLocation
		o.mu.Unlock()
		return o.State()
	}
	toggleOff := o.activeCategory == keyword
	o.mu.Unlock()

	lat, lng := loc.Coordinates()
	if toggleOff {
		return o.search(ctx, searchRequest{query: o.defaultQuery, lat: &lat, lng: &lng})
	}
	return o.search(ctx, searchRequest{query: keyword, category: keyword, lat: &lat, lng: &lng})
}

// Suggest returns autocomplete predictions for input. The session token is
// created on the first non-blank input, reused while input stays non-blank
// and discarded when input is cleared.
func (o *Orchestrator) Suggest(ctx context.Context, input string, lat, lng *float64) ([]model.Prediction, error) {
	o.mu.Lock()
	if strings.TrimSpace(input) == "" {
		o.sessionToken = ""
		o.mu.Unlock()
		return []model.Prediction{}, nil
	}
	if o.sessionToken == "" {
		o.sessionToken = uuid.NewString()
	}
	token := o.sessionToken
	o.mu.Unlock()

	raw, err := o.gw.Search(ctx, gatewayclient.SearchRequest{
		Keyword:      input,
		Mode:         gatewayclient.ModeAutocomplete,
		Lat:          lat,
		Lng:          lng,
		SessionToken: token,
	})
	if err != nil {
		return nil, err
	}
	return DecodePredictions(raw)
}

// ChooseSuggestion ends the typing session and searches for the chosen
// prediction, forwarding the session token.
func (o *Orchestrator) ChooseSuggestion(ctx context.Context, p model.Prediction, opts ...SearchOption) State {
	o.mu.Lock()
	token := o.sessionToken
	o.sessionToken = ""
	o.mu.Unlock()

	return o.SearchByQuery(ctx, p.Description, append([]SearchOption{WithSessionToken(token)}, opts...)...)
}

// DefaultQuery returns the query run when a category is toggled off.
func (o *Orchestrator) DefaultQuery() string {
	return o.defaultQuery
}

// ActiveCategory returns the toggled category keyword, or "".
func (o *Orchestrator) ActiveCategory() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeCategory
}

// CurrentQuery returns the active free-text query, or "".
func (o *Orchestrator) CurrentQuery() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.query
}

// SessionToken returns the live autocomplete session token, or "".
func (o *Orchestrator) SessionToken() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sessionToken
}

// State returns a snapshot of the orchestrator.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

func (o *Orchestrator) stateLocked() State {
	s := State{
		Status:         o.status,
		Loading:        o.loading,
		Results:        append([]model.SearchResult(nil), o.results...),
		Query:          o.query,
		ActiveCategory: o.activeCategory,
		SessionToken:   o.sessionToken,
		Message:        o.message,
	}
	if s.Results == nil {
		s.Results = []model.SearchResult{}
	}
	if o.selected != nil {
		p := *o.selected
		s.Selected = &p
	}
	if o.center != nil {
		c := *o.center
		s.Center = &c
	}
	return s
}
