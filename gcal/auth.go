// Package gcal reads daily activity from Google Calendar.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"scrollgraph/config"
)

const (
	tokenFile       = "gcal_token.json"
	credentialsFile = "credentials.json"
)

func getTokenPath() (string, error) {
	configDir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, tokenFile), nil
}

func getCredentialsPath() (string, error) {
	configDir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, credentialsFile), nil
}

// GetToken returns the cached token, or walks the user through the consent
// flow and caches the result.
func GetToken(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	tokPath, err := getTokenPath()
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(tokPath)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokPath, tok); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to cache oauth token: %v\n", err)
		}
	}
	return tok, nil
}

func getTokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Go to the following link in your browser:\n%v\n\n", authURL)
	fmt.Fprint(os.Stderr, "Enter authorization code: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func GetClient(ctx context.Context) (*http.Client, error) {
	credPath, err := getCredentialsPath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w\nPlease create %s in %s", err, credentialsFile, filepath.Dir(credPath))
	}

	cfg, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	token, err := GetToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return cfg.Client(ctx, token), nil
}

func NewService(ctx context.Context) (*calendar.Service, error) {
	client, err := GetClient(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	return srv, nil
}
