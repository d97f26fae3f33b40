package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type Place struct {
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	Type        string  `json:"type"`
}

// Geocoder resolves addresses to places and back.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
	Reverse(ctx context.Context, lat, lng float64) (*Place, error)
}

type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     Cache
	cacheTTL  time.Duration
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration, cache Cache, cacheTTL time.Duration) *Nominatim {
	if cache == nil {
		cache = NopCache{}
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Error       string `json:"error"`
}

func (p nominatimPlace) place() (Place, bool) {
	lat, err1 := strconv.ParseFloat(p.Lat, 64)
	lng, err2 := strconv.ParseFloat(p.Lon, 64)
	if err1 != nil || err2 != nil {
		return Place{}, false
	}
	return Place{DisplayName: p.DisplayName, Latitude: lat, Longitude: lng, Type: p.Type}, true
}

func (n *Nominatim) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	cacheKey := path + "?" + params.Encode()
	if raw, ok := n.cache.Get(ctx, cacheKey); ok {
		return raw, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoder request: %v", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geocoder: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoder returned status %d", models.ErrUpstream, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: geocoder: %v", models.ErrUpstream, err)
	}
	if n.cacheTTL > 0 {
		n.cache.Set(ctx, cacheKey, raw, n.cacheTTL)
	}
	return raw, nil
}

func (n *Nominatim) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(query))
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("countrycodes", "ng")

	raw, err := n.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var rows []nominatimPlace
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: geocoder: %v", models.ErrUpstream, err)
	}
	places := make([]Place, 0, len(rows))
	for _, r := range rows {
		if p, ok := r.place(); ok {
			places = append(places, p)
		}
	}
	return places, nil
}

// Reverse returns nil without error when nothing is at the point.
func (n *Nominatim) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	params.Set("format", "json")

	raw, err := n.get(ctx, "/reverse", params)
	if err != nil {
		return nil, err
	}

	var row nominatimPlace
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("%w: geocoder: %v", models.ErrUpstream, err)
	}
	if row.Error != "" {
		return nil, nil
	}
	p, ok := row.place()
	if !ok {
		return nil, nil
	}
	return &p, nil
}
