package cloudflare

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/customdomain"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	APIURL     string
	APIKey     string
	ZoneID     string
	HTTPClient *http.Client
}

// Client queries the Cloudflare custom hostnames API and maps the response to
// domain validation details.
type Client struct {
	baseURL string
	apiKey  string
	zoneID  string
	http    *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: cfg.APIURL,
		apiKey:  cfg.APIKey,
		zoneID:  cfg.ZoneID,
		http:    httpClient,
	}
}

type customHostnameResponse struct {
	Success bool `json:"success"`
	Result  []struct {
		Hostname              string `json:"hostname"`
		OwnershipVerification struct {
			Name   string `json:"name"`
			Value  string `json:"value"`
			Status string `json:"status"`
		} `json:"ownership_verification"`
		SSL struct {
			Status            string `json:"status"`
			ValidationRecords []struct {
				TxtName  string `json:"txt_name"`
				TxtValue string `json:"txt_value"`
				Status   string `json:"status"`
			} `json:"validation_records"`
		} `json:"ssl"`
	} `json:"result"`
}

// GetCustomDomainDetails returns validation details for the hostname, or nil
// when the hostname is not registered in the zone anymore.
func (c *Client) GetCustomDomainDetails(ctx context.Context, hostname string) (*customdomain.Details, error) {
	endpoint, err := url.Parse(c.baseURL + "/zones/" + c.zoneID + "/custom_hostnames")
	if err != nil {
		return nil, errors.Wrap(err, "invalid cloudflare api url")
	}
	q := endpoint.Query()
	q.Set("hostname", hostname)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build cloudflare request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "cloudflare request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("cloudflare custom hostname lookup returned status %d", resp.StatusCode)
	}

	var payload customHostnameResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode cloudflare response")
	}
	if !payload.Success {
		return nil, errors.New("cloudflare custom hostname lookup unsuccessful")
	}

	for _, result := range payload.Result {
		if result.Hostname != hostname {
			continue
		}
		details := &customdomain.Details{Hostname: hostname}
		details.Records = append(details.Records, customdomain.Record{
			Name:   result.OwnershipVerification.Name,
			Value:  result.OwnershipVerification.Value,
			Status: normalizeStatus(result.OwnershipVerification.Status),
		})
		if len(result.SSL.ValidationRecords) == 0 {
			details.Records = append(details.Records, customdomain.Record{
				Status: normalizeStatus(result.SSL.Status),
			})
		}
		for _, record := range result.SSL.ValidationRecords {
			details.Records = append(details.Records, customdomain.Record{
				Name:   record.TxtName,
				Value:  record.TxtValue,
				Status: normalizeStatus(record.Status),
			})
		}
		return details, nil
	}

	// Hostname no longer claimed in the zone.
	return nil, nil
}

// Cloudflare reports finished checks as "active"; validation records use
// "success". Both map to the domain's success sentinel.
func normalizeStatus(status string) string {
	if status == "active" || status == customdomain.RecordStatusSuccess {
		return customdomain.RecordStatusSuccess
	}
	return status
}
