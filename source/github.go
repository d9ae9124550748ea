package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"scrollgraph/calgrid"
)

const DefaultGitHubGraphQL = "https://api.github.com/graphql"

const contributionsQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        weeks { contributionDays { date contributionCount } }
      }
    }
  }
}`

// GitHub reads the contribution calendar through the GraphQL API. It needs
// a token with read:user scope.
type GitHub struct {
	Endpoint string
	Client   *http.Client
}

func NewGitHub(ctx context.Context, token, endpoint string) *GitHub {
	if endpoint == "" {
		endpoint = DefaultGitHubGraphQL
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = defaultTimeout
	return &GitHub{Endpoint: endpoint, Client: client}
}

func (g *GitHub) Name() string { return "github" }

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (g *GitHub) Fetch(ctx context.Context, login string, year int) ([]calgrid.Sample, error) {
	fail := func(status int, err error) error {
		return &FetchError{Source: g.Name(), Year: year, Status: status, Err: err}
	}

	payload, err := json.Marshal(graphQLRequest{
		Query: contributionsQuery,
		Variables: map[string]any{
			"login": login,
			"from":  fmt.Sprintf("%04d-01-01T00:00:00Z", year),
			"to":    fmt.Sprintf("%04d-12-31T23:59:59Z", year),
		},
	})
	if err != nil {
		return nil, fail(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fail(0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fail(resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	var body graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("malformed body: %w", err))
	}
	if len(body.Errors) > 0 {
		msgs := make([]string, len(body.Errors))
		for i, e := range body.Errors {
			msgs[i] = e.Message
		}
		return nil, fail(resp.StatusCode, errors.New(strings.Join(msgs, "; ")))
	}
	if body.Data.User == nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("user %q not found", login))
	}

	var samples []calgrid.Sample
	for _, w := range body.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, d := range w.ContributionDays {
			samples = append(samples, calgrid.Sample{Date: d.Date, Count: d.ContributionCount})
		}
	}
	return samples, nil
}
