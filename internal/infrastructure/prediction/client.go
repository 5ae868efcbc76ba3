package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Request is the input to the external forecasting service.
type Request struct {
	StudentID         string  `json:"studentId"`
	CurrentAttendance float64 `json:"currentAttendance"`
}

// Response carries the collaborator's opaque forecast. Fields beyond these
// are passed through in Raw without interpretation.
type Response struct {
	StudentID           string          `json:"studentId"`
	PredictedAttendance float64         `json:"predictedAttendance"`
	Confidence          float64         `json:"confidence"`
	RiskLevel           string          `json:"riskLevel"`
	Message             string          `json:"message,omitempty"`
	Raw                 json.RawMessage `json:"-"`
}

// Forecaster is the attendance prediction collaborator boundary.
type Forecaster interface {
	Predict(ctx context.Context, req Request) (*Response, error)
}

// HTTPClient talks to the forecasting service over HTTP. The contract is
// request/response only; nothing about the model behind it is assumed.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Predict(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("prediction service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prediction service: status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("prediction service: decode: %w", err)
	}
	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("prediction service: decode: %w", err)
	}
	out.Raw = raw
	return &out, nil
}
