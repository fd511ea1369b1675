package plantid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/daunku/daunku/pkg/identify"
)

// Client calls the Plant.id v2 identification API.
type Client struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.plant.id/v2"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type identifyRequest struct {
	Images       []string `json:"images"`
	PlantDetails []string `json:"plant_details"`
}

type plantDetails struct {
	CommonNames     []string `json:"common_names"`
	WikiDescription struct {
		ClimateAndHabitat struct {
			LightRequirements string `json:"light_requirements"`
			WaterRequirements string `json:"water_requirements"`
			Humidity          string `json:"humidity"`
		} `json:"climate_and_habitat"`
	} `json:"wiki_description"`
}

type suggestion struct {
	PlantName    string       `json:"plant_name"`
	Probability  float64      `json:"probability"`
	PlantDetails plantDetails `json:"plant_details"`
}

type identifyResponse struct {
	Suggestions []suggestion `json:"suggestions"`
}

// Identify submits the image URL and maps the top suggestion.
func (c *Client) Identify(ctx context.Context, imageURL string) (identify.Result, error) {
	if c.APIKey == "" {
		return identify.Result{}, errors.New("plant.id api key is empty")
	}
	reqBody := identifyRequest{
		Images: []string{imageURL},
		PlantDetails: []string{
			"common_names",
			"url",
			"wiki_description",
			"taxonomy",
			"gbif_id",
			"inaturalist_id",
			"image",
			"rank",
		},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return identify.Result{}, err
	}

	endpoint := fmt.Sprintf("%s/identify", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return identify.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return identify.Result{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return identify.Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return identify.Result{}, fmt.Errorf("plant.id http %d: %s", resp.StatusCode, raw)
	}

	var out identifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return identify.Result{}, err
	}
	result := identify.Result{Raw: raw}
	if len(out.Suggestions) == 0 {
		return result, nil
	}
	top := out.Suggestions[0]
	result.SpeciesName = top.PlantName
	if len(top.PlantDetails.CommonNames) > 0 {
		result.CommonName = top.PlantDetails.CommonNames[0]
	}
	habitat := top.PlantDetails.WikiDescription.ClimateAndHabitat
	result.NeedsLight = habitat.LightRequirements
	result.NeedsWater = habitat.WaterRequirements
	result.NeedsHumidity = habitat.Humidity
	return result, nil
}
