// Package reports builds the ad-hoc report download endpoint URLs and
// decorates download requests with the same identity and auth fields the
// SOAP header carries. Report downloads bypass the SOAP services entirely.
package reports

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-adwords/core"
	"github.com/goliatone/go-adwords/headers"
)

const (
	downloadPath           = "/api/adwords/reportdownload"
	defaultDownloadTimeout = 5 * time.Minute
	maxErrorBodyBytes      = 1 << 16
)

// DownloadURL resolves the report download endpoint for a version and
// environment through the service directory.
func DownloadURL(dir core.ServiceDirectory, version string, env core.Environment) (string, error) {
	if dir == nil {
		return "", core.NewConfigurationError("reports: service directory is required")
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = dir.DefaultVersion()
	}
	host, ok := dir.EnvironmentConfig(env, core.EnvKeyReportHost)
	if !ok {
		return "", core.NewConfigurationError(fmt.Sprintf("reports: unknown environment %q", env))
	}
	return fmt.Sprintf("%s%s/%s", host, downloadPath, version), nil
}

// Downloader posts report definitions to the download endpoint. It reuses
// the credential store and auth strategy of the owning facade; it never
// mutates either.
type Downloader struct {
	creds      *core.Credentials
	strategy   core.AuthStrategy
	httpClient core.HTTPDoer
}

func NewDownloader(creds *core.Credentials, strategy core.AuthStrategy, httpClient core.HTTPDoer) (*Downloader, error) {
	if creds == nil {
		return nil, core.NewConfigurationError("reports: credentials are required")
	}
	if strategy == nil {
		return nil, core.NewConfigurationError("reports: auth strategy is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultDownloadTimeout}
	}
	return &Downloader{
		creds:      creds,
		strategy:   strategy,
		httpClient: httpClient,
	}, nil
}

// Decorate stamps auth material and identity fields onto a download
// request. Exposed so callers driving their own HTTP flow can reuse it.
func (d *Downloader) Decorate(ctx context.Context, req *http.Request) error {
	if req == nil {
		return core.NewConfigurationError("reports: request is required")
	}
	material, err := d.strategy.Material(ctx)
	if err != nil {
		return err
	}
	req.Header.Set(headers.FieldAuthorization, fmt.Sprintf("%s %s", material.TokenType, material.Token))
	req.Header.Set(headers.FieldDeveloperToken, d.creds.DeveloperToken())
	if id := d.creds.ClientCustomerID(); id != "" {
		req.Header.Set(headers.FieldClientCustomerID, id)
	}
	return nil
}

// Download posts a report definition document and streams back the report
// body. The caller owns closing the returned reader.
func (d *Downloader) Download(ctx context.Context, downloadURL string, definition string) (io.ReadCloser, error) {
	form := url.Values{}
	form.Set("__rdxml", definition)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, downloadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, core.WrapConfiguration(err, "reports: download request build failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := d.Decorate(ctx, req); err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, core.WrapAuthentication(err, "reports: download request failed")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		detail := strings.TrimSpace(string(body))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, core.NewAuthenticationError(
				fmt.Sprintf("reports: download rejected with status %d: %s", resp.StatusCode, detail),
			)
		}
		return nil, fmt.Errorf("reports: download failed with status %d: %s", resp.StatusCode, detail)
	}
	return resp.Body, nil
}
