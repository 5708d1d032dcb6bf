package skillsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"competency-assessment-be/pkg/competency"
)

var (
	// ErrNotFound is returned when a search yields no occupations
	ErrNotFound = errors.New("no occupations found")
	// ErrFetch covers network, status and decode failures of the remote service
	ErrFetch = errors.New("skill source fetch failed")
)

// DefaultBaseURL is the public O*NET web services root
const DefaultBaseURL = "https://services.onetcenter.org/ws/online/"

// Client talks to the O*NET web services with HTTP basic auth
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default 15s-timeout client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL, username, password string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchOccupations runs a keyword search. ErrNotFound is returned when the
// service answers but lists nothing.
func (c *Client) SearchOccupations(ctx context.Context, term string) ([]Occupation, error) {
	body, err := c.get(ctx, "search?keyword="+url.QueryEscape(term))
	if err != nil {
		return nil, err
	}

	occs, err := ParseOccupations(body)
	if err != nil {
		return nil, err
	}
	if len(occs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, term)
	}
	return occs, nil
}

// FetchSkills loads the skills of occ and maps them to role-specific categories
func (c *Client) FetchSkills(ctx context.Context, occ Occupation) ([]competency.Skill, error) {
	body, err := c.get(ctx, "occupations/"+url.PathEscape(occ.Code)+"/skills")
	if err != nil {
		return nil, err
	}
	return ParseSkills(body, occ)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: O*NET returned status %d", ErrFetch, resp.StatusCode)
	}
	return body, nil
}

type rawOccupation struct {
	Code            string `json:"code"`
	OnetSocCode     string `json:"onetsoc_code"`
	Title           string `json:"title"`
	OccupationTitle string `json:"occupation_title"`
}

func (r rawOccupation) toOccupation() Occupation {
	occ := Occupation{Code: r.Code, Title: r.Title}
	if occ.Code == "" {
		occ.Code = r.OnetSocCode
	}
	if occ.Title == "" {
		occ.Title = r.OccupationTitle
	}
	return occ
}

// ParseOccupations accepts every search payload shape the service has used:
// {"occupation": {...}|[...]}, {"occupations": [...]} or a bare array.
// Entries without a code or title are skipped.
func ParseOccupations(body []byte) ([]Occupation, error) {
	var raws []rawOccupation

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
	} else {
		var envelope struct {
			Occupation  json.RawMessage `json:"occupation"`
			Occupations []rawOccupation `json:"occupations"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}

		switch {
		case len(envelope.Occupation) > 0 && envelope.Occupation[0] == '[':
			if err := json.Unmarshal(envelope.Occupation, &raws); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrFetch, err)
			}
		case len(envelope.Occupation) > 0 && envelope.Occupation[0] == '{':
			var one rawOccupation
			if err := json.Unmarshal(envelope.Occupation, &one); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrFetch, err)
			}
			raws = []rawOccupation{one}
		default:
			raws = envelope.Occupations
		}
	}

	occs := make([]Occupation, 0, len(raws))
	for _, r := range raws {
		occ := r.toOccupation()
		if occ.Code == "" || occ.Title == "" {
			continue
		}
		occs = append(occs, occ)
	}
	return dedupe(occs), nil
}

type rawSkill struct {
	ElementName        string  `json:"element_name"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Importance         float64 `json:"importance"`
	ElementDescription string  `json:"element_description"`
	Description        string  `json:"description"`
}

// ParseSkills decodes {"occupation":{"skills":[...]}} or {"skills":[...]}.
// Missing importance defaults to 3 and every skill is tagged with SourceONET.
func ParseSkills(body []byte, occ Occupation) ([]competency.Skill, error) {
	var payload struct {
		Occupation *struct {
			Skills []rawSkill `json:"skills"`
		} `json:"occupation"`
		Skills []rawSkill `json:"skills"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	raws := payload.Skills
	if payload.Occupation != nil && len(payload.Occupation.Skills) > 0 {
		raws = payload.Occupation.Skills
	}

	skills := make([]competency.Skill, 0, len(raws))
	for _, r := range raws {
		name := r.ElementName
		if name == "" {
			name = r.Name
		}
		if name == "" {
			continue
		}

		importance := r.Importance
		if importance == 0 {
			importance = 3
		}
		description := r.ElementDescription
		if description == "" {
			description = r.Description
		}

		skills = append(skills, competency.Skill{
			Name:        name,
			Category:    MapCategory(name, r.Category, occ),
			Importance:  importance,
			Description: description,
			Sources:     []string{SourceONET},
		})
	}
	return skills, nil
}
