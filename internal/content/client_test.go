package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(weatherKey string) *Client {
	return &Client{
		HTTP:          &http.Client{Timeout: time.Second},
		Limiter:       rate.NewLimiter(rate.Inf, 1),
		WeatherAPIKey: weatherKey,
	}
}

func TestCoffeeImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"file":"https://coffee.example/cup.png"}`))
	}))
	defer srv.Close()

	c := testClient("")
	c.CoffeeImageURL = srv.URL

	got, err := c.CoffeeImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://coffee.example/cup.png", got)
}

func TestCoffeeImageEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient("")
	c.CoffeeImageURL = srv.URL

	_, err := c.CoffeeImage(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRandomQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"Coffee first.","author":"Anonymous"}`))
	}))
	defer srv.Close()

	c := testClient("")
	c.QuoteURL = srv.URL

	q, err := c.RandomQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Coffee first.", q.Content)
	assert.Equal(t, "Anonymous", q.Author)
}

func TestCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{
			"name": "London",
			"weather": [{"description": "light rain"}],
			"main": {"temp": 14.2, "feels_like": 13.1, "humidity": 82},
			"wind": {"speed": 4.6}
		}`))
	}))
	defer srv.Close()

	c := testClient("test-key")
	c.WeatherURL = srv.URL

	w, err := c.CurrentWeather(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, "London", w.City)
	assert.Equal(t, "light rain", w.Description)
	assert.InDelta(t, 14.2, w.TempC, 0.001)
	assert.InDelta(t, 13.1, w.FeelsLikeC, 0.001)
	assert.Equal(t, 82, w.Humidity)
	assert.InDelta(t, 4.6, w.WindSpeed, 0.001)
}

func TestCurrentWeatherCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient("test-key")
	c.WeatherURL = srv.URL

	_, err := c.CurrentWeather(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestCurrentWeatherWithoutKey(t *testing.T) {
	c := testClient("")
	_, err := c.CurrentWeather(context.Background(), "London")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestShorten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://example.com/very/long", r.URL.Query().Get("url"))
		w.Write([]byte("https://tiny.example/abc\n"))
	}))
	defer srv.Close()

	c := testClient("")
	c.ShortenURL = srv.URL

	short, err := c.Shorten(context.Background(), "https://example.com/very/long")
	require.NoError(t, err)
	assert.Equal(t, "https://tiny.example/abc", short)
}

func TestShortenUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient("")
	c.ShortenURL = srv.URL

	_, err := c.Shorten(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestQRImageURLEscapesPayload(t *testing.T) {
	got := QRImageURL("hello world & more")
	assert.Contains(t, got, "api.qrserver.com")
	assert.Contains(t, got, "hello+world+%26+more")
}

func TestColorImageURLStripsHash(t *testing.T) {
	assert.Equal(t, "https://singlecolorimage.com/get/8B4513/200x200", ColorImageURL("#8B4513"))
	assert.Equal(t, "https://singlecolorimage.com/get/8B4513/200x200", ColorImageURL("8B4513"))
}
