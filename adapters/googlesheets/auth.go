package googlesheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ideamans/go-sheetgrid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
)

// ServiceAccountKey represents the structure of a service account JSON key file
type ServiceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// ParseServiceAccountJSON parses a service account JSON file or data
func ParseServiceAccountJSON(jsonData []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(jsonData, &key); err != nil {
		return nil, fmt.Errorf("failed to parse service account JSON: %w", err)
	}

	if key.Type != "service_account" {
		return nil, fmt.Errorf("invalid key type: %s (expected: service_account)", key.Type)
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("missing required fields in service account key")
	}

	return &key, nil
}

// CredentialsOption turns sheetgrid credentials into a client option. A
// file may hold any Google credential JSON; a map must be a service account key.
func CredentialsOption(ctx context.Context, creds sheetgrid.Credentials, scopes []string) (option.ClientOption, error) {
	switch c := creds.(type) {
	case sheetgrid.CredentialsFile:
		jsonData, err := os.ReadFile(string(c))
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		gcreds, err := google.CredentialsFromJSON(ctx, jsonData, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials: %w", err)
		}
		return option.WithCredentials(gcreds), nil

	case sheetgrid.CredentialsMap:
		jsonData, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to encode credentials: %w", err)
		}
		key, err := ParseServiceAccountJSON(jsonData)
		if err != nil {
			return nil, err
		}
		return option.WithTokenSource(tokenSourceFromKey(ctx, key, scopes)), nil

	default:
		return nil, fmt.Errorf("unsupported credential type: %T", creds)
	}
}

func tokenSourceFromKey(ctx context.Context, key *ServiceAccountKey, scopes []string) oauth2.TokenSource {
	tokenURL := key.TokenURI
	if tokenURL == "" {
		tokenURL = google.JWTTokenURL
	}
	jwtConfig := &jwt.Config{
		Email:        key.ClientEmail,
		PrivateKey:   []byte(key.PrivateKey),
		PrivateKeyID: key.PrivateKeyID,
		Scopes:       scopes,
		TokenURL:     tokenURL,
	}
	return jwtConfig.TokenSource(ctx)
}

// NewWithDefaultCredentials creates a Service using Application Default Credentials
func NewWithDefaultCredentials(ctx context.Context, config Config) (*Service, error) {
	// This will use:
	// 1. GOOGLE_APPLICATION_CREDENTIALS environment variable if set
	// 2. gcloud auth application-default credentials if available
	// 3. GCE metadata service if running on Google Cloud
	config = config.withDefaults()
	tokenSource, err := google.DefaultTokenSource(ctx, config.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to get default token source: %w", err)
	}

	return NewService(ctx, config, option.WithTokenSource(tokenSource))
}
