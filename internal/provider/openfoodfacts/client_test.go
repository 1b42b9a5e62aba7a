package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newClient(t *testing.T, h http.HandlerFunc, opts Options) (*Client, *observer.ObservedLogs) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	core, logs := observer.New(zapcore.DebugLevel)
	opts.BaseURL = ts.URL
	return New(opts, zap.New(core)), logs
}

func TestLookupByBarcode_Normalizes(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003.json", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "  Nutella  ",
    "brands": "Ferrero",
    "serving_quantity": "15",
    "nutriments": {
      "energy-kcal_100g": 539,
      "fat_100g": "30.9",
      "saturated-fat_100g": -4,
      "carbohydrates_100g": 250,
      "sugars_100g": "lots",
      "proteins_100g": 6.3,
      "salt_100g": 0.107
    }
  }
}`))
	}, Options{})

	f, ok := c.LookupByBarcode(context.Background(), "3017620422003")
	require.True(t, ok)
	require.Equal(t, "3017620422003", f.Barcode)
	require.Equal(t, "Nutella", f.Name)
	require.Equal(t, "Ferrero", *f.Brand)
	require.Equal(t, 15.0, f.ServingSizeG)
	require.Equal(t, 539.0, f.CaloriesPer100g)
	require.Equal(t, 30.9, f.FatPer100g)
	require.Zero(t, f.SaturatedFatPer100g)
	require.Equal(t, 100.0, f.CarbsPer100g)
	require.Zero(t, f.SugarsPer100g)
	require.Zero(t, f.FiberPer100g)
	require.Nil(t, f.CaffeinePer100g)
}

func TestLookupByBarcode_NotFound(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"status 0": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
		},
		"http 404": func(w http.ResponseWriter, _ *http.Request) {
			http.NotFound(w, nil)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			c, logs := newClient(t, h, Options{})
			f, ok := c.LookupByBarcode(context.Background(), "0000")
			require.False(t, ok)
			require.Nil(t, f)
			require.Zero(t, logs.Len())
		})
	}
}

func TestLookupByBarcode_FailuresAreAbsorbed(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		c, logs := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, Options{})
		_, ok := c.LookupByBarcode(context.Background(), "1234")
		require.False(t, ok)
		require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	})

	t.Run("malformed json", func(t *testing.T) {
		c, logs := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":1,"product":`))
		}, Options{})
		_, ok := c.LookupByBarcode(context.Background(), "1234")
		require.False(t, ok)
		require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		c, logs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, Options{Timeout: 50 * time.Millisecond})
		defer close(release)

		start := time.Now()
		_, ok := c.LookupByBarcode(context.Background(), "1234")
		require.False(t, ok)
		require.Less(t, time.Since(start), 2*time.Second)
		require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})
}

func TestSearch_RedirectCap(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c, logs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, r.URL.String(), http.StatusFound)
	}, Options{MaxRedirects: 3})

	got := c.Search(context.Background(), "loop", 10)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.EqualValues(t, 4, hits.Load(), "original request plus three redirects")
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSearch_FollowsShortRedirectChain(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/moved") {
			http.Redirect(w, r, "/moved"+r.URL.Path+"?"+r.URL.RawQuery, http.StatusMovedPermanently)
			return
		}
		assert.Equal(t, "oat milk", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "2", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"products":[
  {"code":"111","product_name":"Oat Milk","nutriments":{"energy-kcal_100g":46}},
  {"code":"222","product_name":"","nutriments":{}},
  {"code":"333","product_name":"Oat Milk Barista","brands":"","nutriments":{"caffeine_100g":"x"}},
  {"code":"444","product_name":"Third"}
]}`))
	}, Options{})

	got := c.Search(context.Background(), " oat milk ", 2)
	require.Len(t, got, 2)
	require.Equal(t, "111", got[0].Barcode)
	require.Equal(t, 46.0, got[0].CaloriesPer100g)
	require.Equal(t, 100.0, got[0].ServingSizeG)
	require.Equal(t, "Oat Milk Barista", got[1].Name)
	require.Nil(t, got[1].Brand)
	require.NotNil(t, got[1].CaffeinePer100g)
	require.Zero(t, *got[1].CaffeinePer100g)
}
