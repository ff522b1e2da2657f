package priorityFee

import (
	"context"
	"time"

	"github.com/go-errors/errors"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type HeliusPriorityLevel string

const (
	HeliusPriorityLevelMin       HeliusPriorityLevel = "min"
	HeliusPriorityLevelLow       HeliusPriorityLevel = "low"
	HeliusPriorityLevelMedium    HeliusPriorityLevel = "medium"
	HeliusPriorityLevelHigh      HeliusPriorityLevel = "high"
	HeliusPriorityLevelVeryHigh  HeliusPriorityLevel = "veryHigh"
	HeliusPriorityLevelUnsafeMax HeliusPriorityLevel = "unsafeMax"
)

type HeliusPriorityFeeLevels map[HeliusPriorityLevel]float64

type HeliusPriorityFeeResult struct {
	PriorityFeeEstimate float64                 `json:"priorityFeeEstimate"`
	PriorityFeeLevels   HeliusPriorityFeeLevels `json:"priorityFeeLevels"`
}

type HeliusPriorityFeeResponse struct {
	Jsonrpc string                  `json:"jsonrpc"`
	Result  HeliusPriorityFeeResult `json:"result"`
	Id      string                  `json:"id"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type heliusRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	Id      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

func CreateHttpClient() *resty.Client {
	return resty.New().SetTimeout(5 * time.Second)
}

// FetchHeliusPriorityFee calls getPriorityFeeEstimate for the write locked
// accounts, asking for every level.
func FetchHeliusPriorityFee(ctx context.Context, client *resty.Client, url string, accountKeys []string) (*HeliusPriorityFeeResult, error) {
	request := heliusRequest{
		Jsonrpc: "2.0",
		Id:      uuid.NewString(),
		Method:  "getPriorityFeeEstimate",
		Params: []interface{}{map[string]interface{}{
			"accountKeys": accountKeys,
			"options":     map[string]interface{}{"includeAllPriorityFeeLevels": true},
		}},
	}
	var response HeliusPriorityFeeResponse
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&response).
		Post(url)
	if err != nil {
		return nil, errors.WrapPrefix(err, "getPriorityFeeEstimate", 0)
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("getPriorityFeeEstimate: http %d", resp.StatusCode())
	}
	if response.Error != nil {
		return nil, errors.Errorf("getPriorityFeeEstimate: %d %s", response.Error.Code, response.Error.Message)
	}
	return &response.Result, nil
}
