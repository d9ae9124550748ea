package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scrollgraph/calgrid"
)

const DefaultJogruberURL = "https://github-contributions-api.jogruber.de"

const defaultTimeout = 30 * time.Second

// Jogruber reads the public contributions API at
// {BaseURL}/v4/{username}?y={year}.
type Jogruber struct {
	BaseURL string
	Client  *http.Client
}

func NewJogruber(baseURL string) *Jogruber {
	if baseURL == "" {
		baseURL = DefaultJogruberURL
	}
	return &Jogruber{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (j *Jogruber) Name() string { return "jogruber" }

type jogruberResponse struct {
	Contributions []calgrid.Sample `json:"contributions"`
}

func (j *Jogruber) Fetch(ctx context.Context, username string, year int) ([]calgrid.Sample, error) {
	fail := func(status int, err error) error {
		return &FetchError{Source: j.Name(), Year: year, Status: status, Err: err}
	}

	endpoint := fmt.Sprintf("%s/v4/%s?y=%d", j.BaseURL, url.PathEscape(username), year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fail(0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := j.Client.Do(req)
	if err != nil {
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fail(resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	var body jogruberResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("malformed body: %w", err))
	}
	if body.Contributions == nil {
		return nil, fail(resp.StatusCode, errors.New("malformed body: no contributions field"))
	}
	return body.Contributions, nil
}
