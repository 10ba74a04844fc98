package server

/**
 * transport.go - backend transport measuring the upstream leg
 */

import (
	"net"
	"net/http"
	"time"

	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/utils"
)

const (
	defaultBackendConnectionTimeout = 5 * time.Second
	defaultBackendIdleTimeout       = 90 * time.Second
)

/**
 * RoundTripper recording timing, status and sizes into the exchange
 */
type transport struct {
	base http.RoundTripper
}

func newTransport(opts config.ConnectionOptions) *transport {
	dialer := &net.Dialer{
		Timeout: utils.ParseDurationOrDefault(deref(opts.BackendConnectionTimeout), defaultBackendConnectionTimeout),
	}
	return &transport{
		base: &http.Transport{
			Proxy:               nil,
			DialContext:         dialer.DialContext,
			IdleConnTimeout:     utils.ParseDurationOrDefault(deref(opts.BackendIdleTimeout), defaultBackendIdleTimeout),
			MaxIdleConnsPerHost: 32,
		},
	}
}

func (this *transport) RoundTrip(req *http.Request) (*http.Response, error) {

	ex := exchangeFrom(req.Context())
	if ex == nil {
		return this.base.RoundTrip(req)
	}

	ex.begin()
	ex.sent = requestLength(req)

	resp, err := this.base.RoundTrip(req)
	if err != nil {
		ex.fail()
		return nil, err
	}

	ex.status = resp.StatusCode
	ex.received = responseLength(resp)
	resp.Body = &upstreamBody{ReadCloser: resp.Body, ex: ex}

	return resp, nil
}
