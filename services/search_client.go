package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"profile_finder/logger"
	"profile_finder/metrics"
	"profile_finder/models"
)

// maxErrorBody 错误信息中保留的响应体长度
const maxErrorBody = 512

// Searcher 按条件检索候选人档案
type Searcher interface {
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.ProfileResult, error)
}

// WebhookError 远端返回非2xx状态
type WebhookError struct {
	StatusCode int
	Body       string
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("webhook请求失败: %d - %s", e.StatusCode, e.Body)
}

// WebhookClient 把搜索条件POST到自动化webhook
type WebhookClient struct {
	url        string
	httpClient *http.Client
	sem        *semaphore.Weighted
}

// NewWebhookClient timeout为0表示不设置超时；maxConcurrent<=0表示不限制并发请求数
func NewWebhookClient(url string, timeout time.Duration, maxConcurrent int64) *WebhookClient {
	c := &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
	if maxConcurrent > 0 {
		c.sem = semaphore.NewWeighted(maxConcurrent)
	}
	return c
}

// Search 发送一次请求，不重试
func (c *WebhookClient) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.ProfileResult, error) {
	if c.sem != nil {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			metrics.SearchesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			return nil, fmt.Errorf("等待请求配额失败: %w", err)
		}
		defer c.sem.Release(1)
	}

	start := time.Now()
	metrics.SearchesInFlight.Inc()
	defer func() {
		metrics.SearchesInFlight.Dec()
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()

	results, err := c.do(ctx, criteria)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, err
	}
	metrics.SearchesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.SearchResults.Observe(float64(len(results)))
	return results, nil
}

func (c *WebhookClient) do(ctx context.Context, criteria models.SearchCriteria) ([]models.ProfileResult, error) {
	reqJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug("发送搜索请求", "request_id", requestID, "url", c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("搜索请求失败", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("webhook返回错误状态", "request_id", requestID, "status", resp.StatusCode)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &WebhookError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	results, err := NormalizeResults(body)
	if err != nil {
		logger.Warn("解析搜索响应失败", "request_id", requestID, "error", err)
		return nil, err
	}
	logger.Info("搜索完成", "request_id", requestID, "count", len(results))
	return results, nil
}

// NormalizeResults 解析响应体：数组原样返回，单个值包装成单元素数组，null视为空
func NormalizeResults(body []byte) ([]models.ProfileResult, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return []models.ProfileResult{}, nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var results []models.ProfileResult
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, fmt.Errorf("解析响应失败: %w", err)
		}
		if results == nil {
			results = []models.ProfileResult{}
		}
		return results, nil
	default:
		var single models.ProfileResult
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("解析响应失败: %w", err)
		}
		return []models.ProfileResult{single}, nil
	}
}
