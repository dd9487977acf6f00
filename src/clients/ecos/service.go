package ecos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"investmanager/src/config"
	"investmanager/src/utils"
	"investmanager/src/utils/requests"

	"github.com/PaesslerAG/jsonpath"
)

// NoDataCode is the envelope code the service uses when a period has no observation.
const NoDataCode = "INFO-200"

// ErrNoData means the query was valid but nothing was published for the period.
var ErrNoData = errors.New("ecos: no data for the requested period")

// APIError is any other error envelope returned by the service.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ecos: %s %s", e.Code, e.Message)
}

// The error envelope shows up either at the top level or nested in the service block.
var resultCodePaths = []string{"$.RESULT.CODE", "$.StatisticSearch.RESULT.CODE"}
var resultMessagePaths = []string{"$.RESULT.MESSAGE", "$.StatisticSearch.RESULT.MESSAGE"}

type ECOSServiceClientI interface {
	GetStatisticSearch(ctx context.Context, query StatisticQuery) (*GetStatisticSearchResponse, error)
}

type ECOSServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	apiKey  string
}

// NewClient creates a new instance of ECOSServiceClient. The API key is part of the
// request path, so it is held by the client rather than sent as a token.
func NewClient(cfg config.ECOSConfig) *ECOSServiceClient {
	return &ECOSServiceClient{
		API:     requests.NewExternalAPIService(cfg.Timeout),
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// GetStatisticSearch fetches the first row of a statistic series for the given period.
func (c *ECOSServiceClient) GetStatisticSearch(ctx context.Context, query StatisticQuery) (*GetStatisticSearchResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/json/kr/1/1/%s/%s/%s/%s/%s",
		c.BaseURL,
		url.PathEscape(c.apiKey),
		url.PathEscape(query.StatCode),
		url.PathEscape(query.Frequency),
		url.PathEscape(query.Start),
		url.PathEscape(query.End),
		url.PathEscape(query.ItemCode),
	)

	resp, err := c.API.Get(ctx, endpoint, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ParseStatisticSearch(responseBody)
}

// ParseStatisticSearch decodes a response body and turns error envelopes into errors.
func ParseStatisticSearch(body []byte) (*GetStatisticSearchResponse, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("ecos: invalid response: %w", err)
	}

	if code := firstString(raw, resultCodePaths); code != "" {
		if code == NoDataCode {
			return nil, ErrNoData
		}
		return nil, &APIError{Code: code, Message: firstString(raw, resultMessagePaths)}
	}

	var statisticResponse GetStatisticSearchResponse
	if err := json.Unmarshal(body, &statisticResponse); err != nil {
		return nil, fmt.Errorf("ecos: invalid response: %w", err)
	}
	if statisticResponse.StatisticSearch == nil || len(statisticResponse.StatisticSearch.Rows) == 0 {
		return nil, ErrNoData
	}
	return &statisticResponse, nil
}

func firstString(obj interface{}, paths []string) string {
	for _, path := range paths {
		value, err := jsonpath.Get(path, obj)
		if err != nil {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
