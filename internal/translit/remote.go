package translit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultRemoteURL = "https://inputtools.google.com/request"

// RemoteSource asks the Google Input Tools transliteration service for
// suggestions. Any failure — network, timeout, unexpected payload — is
// swallowed and returns no candidates: the editor must keep working
// offline on the local sources alone.
type RemoteSource struct {
	URL        string
	HTTPClient *http.Client
}

// NewRemoteSource creates a remote source with the given timeout.
func NewRemoteSource(endpoint string, timeout time.Duration) *RemoteSource {
	if endpoint == "" {
		endpoint = defaultRemoteURL
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &RemoteSource{
		URL:        endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (s *RemoteSource) Suggest(ctx context.Context, word string) []string {
	form := url.Values{
		"text": {word},
		"itc":  {"or-t-i0-und"},
		"ime":  {"transliteration_en_or"},
		"num":  {"5"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil
	}

	// The payload is ["SUCCESS", [[input, [candidates...], ...], ...]].
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) < 2 {
		return nil
	}
	var status string
	if err := json.Unmarshal(raw[0], &status); err != nil || status != "SUCCESS" {
		return nil
	}
	var entries [][]json.RawMessage
	if err := json.Unmarshal(raw[1], &entries); err != nil || len(entries) == 0 || len(entries[0]) < 2 {
		return nil
	}
	var candidates []string
	if err := json.Unmarshal(entries[0][1], &candidates); err != nil {
		return nil
	}
	return candidates
}

var _ Source = (*RemoteSource)(nil)
