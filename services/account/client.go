package account

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/onboarding"
	"github.com/trezcool/elevate/core/profile"
)

const authPath = "/v1/auth"

// ErrRejected is returned when the API refuses the profile.
var ErrRejected = errors.New("profile rejected")

// HTTPClient creates accounts through the Elevate API.
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

var _ onboarding.AccountCreator = (*HTTPClient)(nil)

func NewHTTP(base string) *HTTPClient {
	return &HTTPClient{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: 15 * time.Second},
	}
}

type createResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func (c *HTTPClient) CreateAccount(ctx context.Context, np profile.NewProfile) (string, error) {
	b, err := json.Marshal(np)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+authPath, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "creating account")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		var out createResponse
		if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", errors.Wrap(err, "decoding response")
		}
		if out.UserID == "" {
			return "", errors.New("create account: missing user_id in response")
		}
		return out.UserID, nil
	case resp.StatusCode == http.StatusBadRequest:
		return "", decodeRejection(resp)
	default:
		return "", errors.Errorf("create account failed: %s", resp.Status)
	}
}

// decodeRejection reads either {"field": "message", ...} or {"error": "message"}.
func decodeRejection(resp *http.Response) error {
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return core.NewValidationError(ErrRejected)
	}
	if msg, ok := body["error"]; ok && len(body) == 1 {
		return core.NewValidationError(ErrRejected, core.FieldError{Field: "", Error: msg})
	}

	fields := make([]core.FieldError, 0, len(body))
	for f, msg := range body {
		fields = append(fields, core.FieldError{Field: f, Error: msg})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return core.NewValidationError(ErrRejected, fields...)
}
