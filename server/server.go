package server

/**
 * server.go - http reverse proxy feeding traffic statistics
 */

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"time"

	"github.com/pires/go-proxyproto"
	"github.com/sirupsen/logrus"
	"github.com/vtsd/vtsd/balance"
	"github.com/vtsd/vtsd/collector"
	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/logging"
	"github.com/vtsd/vtsd/stats/counters"
	"github.com/vtsd/vtsd/utils"
	"github.com/vtsd/vtsd/utils/parsers"
)

/**
 * Server listens for client requests, proxies them to
 * backends and records every finished request
 */
type Server struct {

	/* Server friendly name */
	name string

	/* Name recorded in the server zone */
	serverName string

	/* Configuration */
	cfg config.Server

	/* Backends, sorted by address */
	backends []*core.Backend

	/* Backend election strategy */
	balancer core.Balancer

	/* Statistics sink */
	collector *collector.Collector

	/* Client connection accounting, nil when not tracked */
	conns *connTracker

	proxy      *httputil.ReverseProxy
	httpServer *http.Server
	listener   net.Listener

	log *logrus.Entry
}

/**
 * Creates new server instance. Connection counters
 * may be shared between servers or be nil
 */
func New(name string, cfg config.Server, c *collector.Collector, conns *counters.Connections) (*Server, error) {

	log := logging.For("server").WithField("server", name)

	if c == nil {
		return nil, errors.New("No collector specified")
	}

	balancer, err := balance.New(cfg.Balance)
	if err != nil {
		return nil, err
	}

	backends := make([]*core.Backend, 0, len(cfg.Backends))
	for _, line := range cfg.Backends {
		b, err := parsers.ParseBackendDefault(line)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}

	sort.SliceStable(backends, func(i, j int) bool {
		return backends[i].Address() < backends[j].Address()
	})

	serverName := cfg.ServerName
	if serverName == "" {
		serverName = name
	}

	server := &Server{
		name:       name,
		serverName: serverName,
		cfg:        cfg,
		backends:   backends,
		balancer:   balancer,
		collector:  c,
		log:        log,
	}

	if conns != nil {
		server.conns = newConnTracker(conns)
	}

	server.proxy = &httputil.ReverseProxy{
		Rewrite:      server.rewrite,
		Transport:    newTransport(cfg.ConnectionOptions),
		ErrorHandler: server.proxyError,
	}

	log.Info("Creating '", name, "': ", cfg.Bind, " ", cfg.Balance, " upstream=", cfg.Upstream, " backends=", len(backends))

	return server, nil
}

/**
 * Returns current server configuration
 */
func (this *Server) Cfg() config.Server {
	return this.cfg
}

/**
 * Start listening and serving
 */
func (this *Server) Start() error {

	listener, err := net.Listen("tcp", this.cfg.Bind)
	if err != nil {
		return err
	}

	if this.cfg.AcceptProxy {
		listener = &proxyproto.Listener{Listener: listener}
	}

	this.listener = listener
	this.httpServer = &http.Server{
		Handler:     this,
		IdleTimeout: utils.ParseDurationOrDefault(deref(this.cfg.ClientIdleTimeout), 0),
	}

	if this.conns != nil {
		this.httpServer.ConnState = this.conns.track
	}

	go func() {
		if err := this.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			this.log.Error(err)
		}
	}()

	return nil
}

/**
 * Stop server, closing active connections
 */
func (this *Server) Stop() {
	if this.httpServer != nil {
		this.httpServer.Close()
	}
}

/**
 * Listener address, nil before Start
 */
func (this *Server) Addr() net.Addr {
	if this.listener == nil {
		return nil
	}
	return this.listener.Addr()
}

/**
 * Proxies one request and records it
 */
func (this *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	start := time.Now()

	body := &countingBody{ReadCloser: r.Body}
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = body
	}

	rw := &responseWriter{ResponseWriter: w}
	ex := &exchange{}

	backend, err := this.balancer.Elect(clientContext(r.RemoteAddr), this.backends)
	if err != nil {
		this.log.Debug(err)
		http.Error(rw, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	} else {
		ex.backend = backend
		this.proxy.ServeHTTP(rw, r.WithContext(withExchange(r.Context(), ex)))
	}

	req := collector.Request{
		Server:      this.serverName,
		Status:      rw.status,
		BytesIn:     requestLength(r) + body.n.Load(),
		BytesOut:    rw.headerBytes + rw.n,
		RequestTime: time.Since(start),
	}

	if ex.backend != nil {
		req.Upstream = this.cfg.Upstream
		req.Peer = ex.backend.Address()
		req.UpstreamStatus = ex.status
		req.UpstreamBytesSent = ex.sent + body.n.Load()
		req.UpstreamBytesReceived = ex.received
		req.UpstreamResponseTime = ex.duration()
	}

	this.collector.Request(req)
}

/**
 * Points outgoing request to the elected backend
 */
func (this *Server) rewrite(pr *httputil.ProxyRequest) {
	ex := exchangeFrom(pr.In.Context())
	pr.SetURL(&url.URL{Scheme: "http", Host: ex.backend.Address()})
	pr.SetXForwarded()
	pr.Out.Host = pr.In.Host
}

/**
 * Backend failed: answer 502 and remember it as upstream status
 */
func (this *Server) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	if ex := exchangeFrom(r.Context()); ex != nil {
		ex.fail()
	}
	this.log.Debug("Backend error: ", err)
	w.WriteHeader(http.StatusBadGateway)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
