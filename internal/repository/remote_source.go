package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

const remoteEntriesPath = "/rest/v1/disease_entries"

// RemoteRecordSource fetches disease entries from a PostgREST style
// endpoint such as a Supabase project
type RemoteRecordSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRemoteRecordSource creates a client for baseURL authenticated with apiKey
func NewRemoteRecordSource(baseURL, apiKey string, timeout time.Duration) *RemoteRecordSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteRecordSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name identifies the source in logs
func (s *RemoteRecordSource) Name() string {
	return "remote"
}

// remoteEntry is one row as returned by the REST endpoint
type remoteEntry struct {
	ID             int64    `json:"id"`
	DiseaseName    string   `json:"disease_name"`
	PatientAge     float64  `json:"patient_age"`
	Address        *string  `json:"address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AdditionalInfo *string  `json:"additional_info"`
	OccurrenceDate string   `json:"occurrence_date"`
	CreatedAt      string   `json:"created_at"`
}

// ListAll returns every remote entry that has coordinates and a readable date
func (s *RemoteRecordSource) ListAll(ctx context.Context) ([]models.OccurrenceRecord, error) {
	var rows []remoteEntry
	if err := s.get(ctx, "select=*&order=id.asc", &rows); err != nil {
		return nil, err
	}

	records := make([]models.OccurrenceRecord, 0, len(rows))
	for _, row := range rows {
		if row.Latitude == nil || row.Longitude == nil {
			continue
		}
		occurred, err := parseRemoteTime(row.OccurrenceDate)
		if err != nil {
			continue
		}
		created, _ := parseRemoteTime(row.CreatedAt)

		records = append(records, models.OccurrenceRecord{
			ID:             row.ID,
			DiseaseName:    row.DiseaseName,
			PatientAge:     row.PatientAge,
			Address:        deref(row.Address),
			Latitude:       *row.Latitude,
			Longitude:      *row.Longitude,
			AdditionalInfo: deref(row.AdditionalInfo),
			OccurrenceDate: occurred,
			CreatedAt:      created,
		})
	}

	return records, nil
}

// Ping requests a single id to check reachability and credentials
func (s *RemoteRecordSource) Ping(ctx context.Context) error {
	var rows []struct {
		ID int64 `json:"id"`
	}
	return s.get(ctx, "select=id&limit=1", &rows)
}

func (s *RemoteRecordSource) get(ctx context.Context, rawQuery string, out interface{}) error {
	url := fmt.Sprintf("%s%s?%s", s.baseURL, remoteEntriesPath, rawQuery)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error requesting remote records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

var remoteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseRemoteTime(v string) (time.Time, error) {
	for _, layout := range remoteTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
