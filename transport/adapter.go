// Package transport holds the adapter seam between this library and the
// external SOAP client collaborator. Envelope marshaling, the HTTP stack,
// and retry policy all live on the far side of core.TransportAdapter.
package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-adwords/core"
)

const KindSOAP = "soap"

// UnsupportedAdapter is the default adapter: it fails every call with an
// explicit error instead of silently dropping requests, so a facade wired
// without a SOAP client collaborator is loud about it.
type UnsupportedAdapter struct {
	kind   string
	reason string
}

func NewUnsupportedAdapter(kind string, reason string) *UnsupportedAdapter {
	return &UnsupportedAdapter{
		kind:   strings.TrimSpace(strings.ToLower(kind)),
		reason: strings.TrimSpace(reason),
	}
}

func (a *UnsupportedAdapter) Kind() string {
	if a == nil {
		return ""
	}
	return a.kind
}

func (a *UnsupportedAdapter) Do(context.Context, core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, fmt.Errorf("transport: adapter is nil")
	}
	if a.reason != "" {
		return core.TransportResponse{}, fmt.Errorf(
			"transport: %s adapter is not configured: %s",
			a.kind,
			a.reason,
		)
	}
	return core.TransportResponse{}, fmt.Errorf("transport: %s adapter is not configured", a.kind)
}

// RecordingAdapter captures every request and replies with a canned
// response. Test double for exercising the facade's call path.
type RecordingAdapter struct {
	Response core.TransportResponse
	Err      error
	Requests []core.TransportRequest
}

func (a *RecordingAdapter) Kind() string {
	return KindSOAP
}

func (a *RecordingAdapter) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	a.Requests = append(a.Requests, req)
	if a.Err != nil {
		return core.TransportResponse{}, a.Err
	}
	return a.Response, nil
}

var (
	_ core.TransportAdapter = (*UnsupportedAdapter)(nil)
	_ core.TransportAdapter = (*RecordingAdapter)(nil)
)
