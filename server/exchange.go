package server

/**
 * exchange.go - per request accounting
 */

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/vtsd/vtsd/core"
)

/**
 * Upstream side of one proxied request. Touched only by the
 * goroutine serving that request
 */
type exchange struct {
	backend *core.Backend

	/* Status received from backend, 0 if none */
	status int

	/* Bytes of upstream request headers and received response */
	sent     uint64
	received uint64

	start time.Time
	end   time.Time
}

func (this *exchange) begin() {
	this.start = time.Now()
}

func (this *exchange) finish() {
	if !this.start.IsZero() && this.end.IsZero() {
		this.end = time.Now()
	}
}

func (this *exchange) fail() {
	if this.status == 0 {
		this.status = http.StatusBadGateway
	}
	this.finish()
}

/**
 * Time spent on the upstream leg
 */
func (this *exchange) duration() time.Duration {
	if this.start.IsZero() {
		return 0
	}
	this.finish()
	return this.end.Sub(this.start)
}

type exchangeKey struct{}

func withExchange(ctx context.Context, ex *exchange) context.Context {
	return context.WithValue(ctx, exchangeKey{}, ex)
}

func exchangeFrom(ctx context.Context) *exchange {
	ex, _ := ctx.Value(exchangeKey{}).(*exchange)
	return ex
}

/**
 * Request body reader counting consumed bytes. The transport may
 * read it from its own goroutine
 */
type countingBody struct {
	io.ReadCloser
	n atomic.Uint64
}

func (this *countingBody) Read(p []byte) (int, error) {
	n, err := this.ReadCloser.Read(p)
	this.n.Add(uint64(n))
	return n, err
}

/**
 * Backend response body counting received bytes,
 * the upstream leg ends when it is drained or closed
 */
type upstreamBody struct {
	io.ReadCloser
	ex *exchange
}

func (this *upstreamBody) Read(p []byte) (int, error) {
	n, err := this.ReadCloser.Read(p)
	this.ex.received += uint64(n)
	if err == io.EOF {
		this.ex.finish()
	}
	return n, err
}

func (this *upstreamBody) Close() error {
	this.ex.finish()
	return this.ReadCloser.Close()
}

/**
 * Response writer remembering status and written bytes
 */
type responseWriter struct {
	http.ResponseWriter
	status      int
	headerBytes uint64
	n           uint64
}

func (this *responseWriter) WriteHeader(code int) {
	if this.status == 0 {
		this.status = code
		this.headerBytes = headerLength(this.ResponseWriter.Header()) + uint64(len("HTTP/1.1 000 \r\n")+len(http.StatusText(code)))
	}
	this.ResponseWriter.WriteHeader(code)
}

func (this *responseWriter) Write(p []byte) (int, error) {
	if this.status == 0 {
		this.WriteHeader(http.StatusOK)
	}
	n, err := this.ResponseWriter.Write(p)
	this.n += uint64(n)
	return n, err
}

func (this *responseWriter) Unwrap() http.ResponseWriter {
	return this.ResponseWriter
}

/**
 * Approximate size of request line and headers
 */
func requestLength(r *http.Request) uint64 {
	n := len(r.Method) + 1 + len(r.URL.RequestURI()) + 1 + len(r.Proto) + 2
	if r.Host != "" {
		n += len("Host: ") + len(r.Host) + 2
	}
	return uint64(n) + headerLength(r.Header)
}

/**
 * Approximate size of response status line and headers
 */
func responseLength(resp *http.Response) uint64 {
	n := len(resp.Proto) + 1 + len(strconv.Itoa(resp.StatusCode)) + 1 + len(http.StatusText(resp.StatusCode)) + 2
	return uint64(n) + headerLength(resp.Header)
}

func headerLength(h http.Header) uint64 {
	var n int
	for k, vv := range h {
		for _, v := range vv {
			n += len(k) + 2 + len(v) + 2
		}
	}
	return uint64(n + 2)
}

/**
 * Balancing context of a client address
 */
type clientContext string

func (this clientContext) String() string {
	return string(this)
}

func (this clientContext) Ip() net.IP {
	host, _, err := net.SplitHostPort(string(this))
	if err != nil {
		host = string(this)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return net.IP{}
	}
	return ip
}

func (this clientContext) Port() int {
	_, port, err := net.SplitHostPort(string(this))
	if err != nil {
		return 0
	}
	p, _ := strconv.Atoi(port)
	return p
}
