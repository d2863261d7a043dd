package identity

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// serviceAccount is the subset of the provider's service-account JSON the
// verifier needs. Deployments pass the full JSON, raw or base64-encoded.
type serviceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

func parseServiceAccount(raw string) (*serviceAccount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("service-account credential is empty")
	}

	data := []byte(raw)
	if !strings.HasPrefix(raw, "{") {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, errors.New("service-account credential is neither JSON nor base64")
		}
		data = decoded
	}

	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, err
	}
	if sa.ProjectID == "" {
		return nil, errors.New("service-account credential has no project_id")
	}
	return &sa, nil
}
