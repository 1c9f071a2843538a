package types

import "time"

// SpecRecord records one imported OpenAPI document.
type SpecRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Version       string    `json:"version"`
	Source        string    `json:"source"`
	EndpointCount int       `json:"endpoint_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EndpointConfig is the complete playground configuration for one endpoint:
// what the form layer renders, what the code panel shows, and the worked
// examples a user can apply.
type EndpointConfig struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	URLField    *URLField `json:"url_field,omitempty"`
	Auth        *Auth     `json:"auth,omitempty"`
	Fields      []Field   `json:"fields"`
	Samples     []Sample  `json:"samples,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
}

// URLField describes the path parameter surfaced as the URL input.
type URLField struct {
	Name         string `json:"name"`
	Placeholder  string `json:"placeholder,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
}

// Auth describes the authentication mechanism detected for an endpoint.
// Placeholder holds a masked credential, never a real secret.
type Auth struct {
	Scheme      string `json:"scheme"`
	Kind        string `json:"kind"` // apiKey, bearer, basic
	Name        string `json:"name,omitempty"`
	In          string `json:"in,omitempty"` // header or query, apiKey only
	Placeholder string `json:"placeholder"`
}

// Sample is one generated or spec-embedded code sample.
type Sample struct {
	Lang   string `json:"lang"`
	Label  string `json:"label,omitempty"`
	Source string `json:"source"`
}

// Example is one worked example: the form values it represents plus the
// samples regenerated from them.
type Example struct {
	Name    string         `json:"name"`
	Values  map[string]any `json:"values,omitempty"`
	Samples []Sample       `json:"samples,omitempty"`
}
