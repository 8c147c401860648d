// Package content fetches third-party flavor material: coffee images,
// quotes, weather and short links. All calls ride one shared rate limiter
// so a chatty guild cannot hammer the upstream APIs.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrNoAPIKey means the call needs a key that was not configured.
	ErrNoAPIKey = errors.New("content: API key not configured")
	// ErrCityNotFound means the weather upstream did not know the city.
	ErrCityNotFound = errors.New("content: city not found")
	// ErrUpstream wraps any other upstream failure.
	ErrUpstream = errors.New("content: upstream request failed")
)

// Client talks to the flavor APIs. Base URLs are fields so tests can point
// them at a local httptest server.
type Client struct {
	HTTP    *http.Client
	Limiter *rate.Limiter

	CoffeeImageURL string
	QuoteURL       string
	WeatherURL     string
	ShortenURL     string

	WeatherAPIKey string
}

// New returns a client with production endpoints, a 10 second request
// timeout and a limiter of 3 burst, one request per second sustained.
func New(weatherAPIKey string) *Client {
	return &Client{
		HTTP:           &http.Client{Timeout: 10 * time.Second},
		Limiter:        rate.NewLimiter(rate.Every(time.Second), 3),
		CoffeeImageURL: "https://coffee.alexflipnote.dev/random.json",
		QuoteURL:       "https://api.quotable.io/random",
		WeatherURL:     "https://api.openweathermap.org/data/2.5/weather",
		ShortenURL:     "https://tinyurl.com/api-create.php",
		WeatherAPIKey:  weatherAPIKey,
	}
}

// CoffeeImage returns the URL of a random coffee photo.
func (c *Client) CoffeeImage(ctx context.Context) (string, error) {
	var body struct {
		File string `json:"file"`
	}
	if err := c.getJSON(ctx, c.CoffeeImageURL, &body); err != nil {
		return "", err
	}
	if body.File == "" {
		return "", fmt.Errorf("%w: empty image payload", ErrUpstream)
	}
	return body.File, nil
}

// Quote is an attributed quotation.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// RandomQuote fetches a quote from the upstream API.
func (c *Client) RandomQuote(ctx context.Context) (Quote, error) {
	var q Quote
	if err := c.getJSON(ctx, c.QuoteURL, &q); err != nil {
		return Quote{}, err
	}
	if q.Content == "" {
		return Quote{}, fmt.Errorf("%w: empty quote payload", ErrUpstream)
	}
	return q, nil
}

// Weather is a condensed current-conditions report.
type Weather struct {
	City        string
	Description string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int
	WindSpeed   float64
}

// CurrentWeather fetches conditions for a city by name.
func (c *Client) CurrentWeather(ctx context.Context, city string) (Weather, error) {
	if c.WeatherAPIKey == "" {
		return Weather{}, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.WeatherAPIKey)
	q.Set("units", "metric")

	resp, err := c.get(ctx, c.WeatherURL+"?"+q.Encode())
	if err != nil {
		return Weather{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Weather{}, ErrCityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("%w: weather status %d", ErrUpstream, resp.StatusCode)
	}

	var body struct {
		Name    string `json:"name"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Weather{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	w := Weather{
		City:       body.Name,
		TempC:      body.Main.Temp,
		FeelsLikeC: body.Main.FeelsLike,
		Humidity:   body.Main.Humidity,
		WindSpeed:  body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		w.Description = body.Weather[0].Description
	}
	return w, nil
}

// Shorten returns a short link for target.
func (c *Client) Shorten(ctx context.Context, target string) (string, error) {
	resp, err := c.get(ctx, c.ShortenURL+"?url="+url.QueryEscape(target))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: shortener status %d", ErrUpstream, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	short := strings.TrimSpace(string(raw))
	if short == "" {
		return "", fmt.Errorf("%w: empty shortener payload", ErrUpstream)
	}
	return short, nil
}

// QRImageURL builds a QR render URL for the payload. No request is made;
// the chat client fetches the image itself.
func QRImageURL(payload string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + url.QueryEscape(payload)
}

// ColorImageURL builds a solid-swatch render URL for a hex color like
// "8B4513" (no leading #).
func ColorImageURL(hex string) string {
	return "https://singlecolorimage.com/get/" + strings.TrimPrefix(hex, "#") + "/200x200"
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", ErrUpstream, resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
