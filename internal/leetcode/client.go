//go:generate mockery --name Client --output ./mocks --outpkg mocks --case=underscore

// Package leetcode はLeetCodeのGraphQL APIを呼び出す薄いクライアントです。
// リトライやレート制限はここでは行わず、失敗は単一のエラーとして呼び出し元に返します。
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leetcode_srs/internal/config"
	"leetcode_srs/internal/middleware"
	"leetcode_srs/internal/model"
)

// Submission は提出フィードの1件分。Lang はスケジューリングでは使わないが保持する
type Submission struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	Timestamp string `json:"timestamp"` // epoch秒の文字列
	Lang      string `json:"lang"`
}

// QuestionDetail は問題カタログのメタデータ
type QuestionDetail struct {
	QuestionID string `json:"questionId"`
	Title      string `json:"title"`
	TitleSlug  string `json:"titleSlug"`
	Difficulty string `json:"difficulty"`
}

type Client interface {
	// GetRecentSubmissions は直近のAccepted提出を返す。結果は空スライスになりうるが nil にはならない
	GetRecentSubmissions(ctx context.Context, username string) ([]Submission, error)
	// GetQuestionDetails は問題メタデータを返す。該当なしは (nil, nil)
	GetQuestionDetails(ctx context.Context, titleSlug string) (*QuestionDetail, error)
}

const recentSubmissionsQuery = `query recentAcSubmissions($username: String!, $limit: Int!) {
  recentAcSubmissionList(username: $username, limit: $limit) {
    id
    title
    titleSlug
    timestamp
    lang
  }
}`

const questionDetailsQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    title
    titleSlug
    difficulty
  }
}`

type httpClient struct {
	baseURL         string
	submissionLimit int
	hc              *http.Client
}

func NewHTTPClient(cfg *config.Config) Client {
	return &httpClient{
		baseURL:         cfg.LeetCode.BaseURL,
		submissionLimit: cfg.LeetCode.SubmissionLimit,
		hc: &http.Client{
			Timeout: time.Duration(cfg.LeetCode.TimeoutSeconds) * time.Second,
		},
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func (c *httpClient) post(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	logger := middleware.GetLogger(ctx)

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("leetcode: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leetcode: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		logger.Warn("LeetCode API request failed", "error", err)
		return fmt.Errorf("leetcode: request failed: %w: %w", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("LeetCode API returned non-OK status", "status", resp.StatusCode)
		return fmt.Errorf("leetcode: unexpected status %d: %w", resp.StatusCode, model.ErrUpstreamUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leetcode: decode response: %w: %w", model.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (c *httpClient) GetRecentSubmissions(ctx context.Context, username string) ([]Submission, error) {
	var wrapper struct {
		Data struct {
			RecentAcSubmissionList []Submission `json:"recentAcSubmissionList"`
		} `json:"data"`
	}

	variables := map[string]interface{}{
		"username": username,
		"limit":    c.submissionLimit,
	}
	if err := c.post(ctx, recentSubmissionsQuery, variables, &wrapper); err != nil {
		return nil, err
	}

	if wrapper.Data.RecentAcSubmissionList == nil {
		return []Submission{}, nil
	}
	return wrapper.Data.RecentAcSubmissionList, nil
}

func (c *httpClient) GetQuestionDetails(ctx context.Context, titleSlug string) (*QuestionDetail, error) {
	var wrapper struct {
		Data struct {
			Question *QuestionDetail `json:"question"`
		} `json:"data"`
	}

	variables := map[string]interface{}{
		"titleSlug": titleSlug,
	}
	if err := c.post(ctx, questionDetailsQuery, variables, &wrapper); err != nil {
		return nil, err
	}

	// question が null の場合は「存在しない」扱い
	return wrapper.Data.Question, nil
}
