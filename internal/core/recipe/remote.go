package recipe

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-plan-generator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	remoteMealsPath = "/meals.json"
	remoteFoodsPath = "/foods.json"
)

// RemoteSource 從 HTTP 端點下載目錄快照
type RemoteSource struct {
	client *resty.Client
}

// NewRemoteSource 創建遠端目錄來源
func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")

	return &RemoteSource{client: client}
}

// Fetch 下載食譜與食材並建立目錄
func (s *RemoteSource) Fetch(ctx context.Context) (*Catalog, error) {
	mealsBody, err := s.get(ctx, remoteMealsPath)
	if err != nil {
		return nil, err
	}
	recipes, err := ParseMeals(bytes.NewReader(mealsBody))
	if err != nil {
		return nil, err
	}

	foodsBody, err := s.get(ctx, remoteFoodsPath)
	if err != nil {
		return nil, err
	}
	foods, err := ParseFoods(bytes.NewReader(foodsBody))
	if err != nil {
		return nil, err
	}

	common.LogInfo("Remote catalog fetched",
		zap.Int("recipes", len(recipes)),
		zap.Int("ingredients", len(foods)),
	)

	return NewCatalog(recipes, foods)
}

func (s *RemoteSource) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint %s returned status %d", path, resp.StatusCode())
	}
	return resp.Body(), nil
}
