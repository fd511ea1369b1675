package plantid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suggestionsBody = `{
	"suggestions": [
		{
			"plant_name": "Monstera deliciosa",
			"probability": 0.92,
			"plant_details": {
				"common_names": ["Swiss cheese plant", "Split-leaf philodendron"],
				"wiki_description": {
					"climate_and_habitat": {
						"light_requirements": "bright indirect",
						"water_requirements": "weekly",
						"humidity": "high"
					}
				}
			}
		}
	]
}`

func TestIdentify(t *testing.T) {
	var gotKey string
	var gotBody identifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/identify", r.URL.Path)
		gotKey = r.Header.Get("Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(suggestionsBody))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	res, err := c.Identify(context.Background(), "https://example.com/monstera.jpg")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Images, 1)
	assert.Equal(t, "https://example.com/monstera.jpg", gotBody.Images[0])
	assert.Contains(t, gotBody.PlantDetails, "wiki_description")

	assert.Equal(t, "Monstera deliciosa", res.SpeciesName)
	assert.Equal(t, "Swiss cheese plant", res.CommonName)
	assert.Equal(t, "bright indirect", res.NeedsLight)
	assert.Equal(t, "weekly", res.NeedsWater)
	assert.Equal(t, "high", res.NeedsHumidity)
	assert.JSONEq(t, suggestionsBody, string(res.Raw))
}

func TestIdentifyNoSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"suggestions": []}`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	res, err := c.Identify(context.Background(), "https://example.com/blurry.jpg")
	require.NoError(t, err)
	assert.Empty(t, res.SpeciesName)
	assert.Empty(t, res.CommonName)
	assert.NotEmpty(t, res.Raw)
}

func TestIdentifyProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer srv.Close()

	c := New("bad-key", srv.URL)
	_, err := c.Identify(context.Background(), "https://example.com/monstera.jpg")
	assert.ErrorContains(t, err, "plant.id http 401")
}

func TestIdentifyEmptyAPIKey(t *testing.T) {
	c := New("", "")

	_, err := c.Identify(context.Background(), "https://example.com/monstera.jpg")
	assert.Error(t, err)
}
