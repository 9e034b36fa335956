// logo.go resolves the header-band logo: a local file first, then a remote
// URL with a short timeout. Failure is never fatal; the caller gets ok=false
// and renders the header without an image.
package render

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultLogoURL is the remote fallback for the header logo.
const DefaultLogoURL = "https://datamaticstechnologies.com/wp-content/uploads/2025/09/Default-Logo-Final-for-Black-Background-2-scaled-150x45.png"

// maxLogoBytes caps how much of a remote response is read.
const maxLogoBytes = 5 << 20

// LogoProvider supplies optional logo bytes for the header band.
type LogoProvider interface {
	Logo(ctx context.Context) ([]byte, bool)
}

// LogoSource reads the logo from Path, falling back to URL.
type LogoSource struct {
	Path       string
	URL        string
	httpClient *http.Client
}

// NewLogoSource creates a LogoSource. Either path or url may be empty.
func NewLogoSource(path, url string, timeout time.Duration) *LogoSource {
	return &LogoSource{
		Path: path,
		URL:  url,
		// Go Pattern: a client-level timeout bounds the whole fetch,
		// including reading the body.
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Logo returns the logo bytes and true, or nil and false when neither
// source produced an image. Failures are logged as warnings only.
func (s *LogoSource) Logo(ctx context.Context) ([]byte, bool) {
	if s.Path != "" {
		data, err := os.ReadFile(s.Path)
		switch {
		case err == nil && len(data) > 0:
			return data, true
		case err != nil && !os.IsNotExist(err):
			log.Warn().Err(err).Str("source", s.Path).Msg("failed to read local logo")
		}
	}

	if s.URL == "" {
		return nil, false
	}
	data, err := s.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Str("source", s.URL).Msg("logo unavailable, rendering header without it")
		return nil, false
	}
	return data, true
}

func (s *LogoSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build logo request")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download logo")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("logo download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read logo body")
	}
	if len(data) == 0 {
		return nil, errors.New("logo download returned an empty body")
	}
	return data, nil
}
