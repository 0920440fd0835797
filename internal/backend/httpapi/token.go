package httpapi

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// ReadToken loads a stored bearer token.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("invalid token.json: missing access_token")
	}
	return &token, nil
}

// WriteToken saves a bearer token to a file with mode 0600.
func WriteToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
