package stream

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	chunkSize = 64 * 1024

	// defaultUserAgent is what we present to origins when the client
	// sent no User-Agent of its own. Many providers reject unknown
	// agents but whitelist players.
	defaultUserAgent = "VLC/3.0.18 LibVLC/3.0.18"
)

// forwardedHeaders is the allow-list of origin response headers passed
// back to the client. Everything else the origin sends is dropped.
var forwardedHeaders = []string{"Content-Type", "Content-Length", "Accept-Ranges"}

// Proxy relays upstream media streams to subscribers. The transport
// bounds connect and response-header time but never the transfer
// itself; streams are open-ended.
type Proxy struct {
	client *http.Client
}

func NewProxy() *Proxy {
	return &Proxy{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: 15 * time.Second,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Serve fetches originURL and streams its body to w. The origin request
// inherits r's context, so a client disconnect tears down the upstream
// fetch as well. Failures before the first byte produce a gateway
// error; failures mid-stream just end the stream.
func (p *Proxy) Serve(w http.ResponseWriter, r *http.Request, originURL string) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, originURL, nil)
	if err != nil {
		zap.L().Error("failed to build origin request", zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	ua := r.Header.Get("User-Agent")
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	if rng := r.Header.Get("Range"); rng != "" {
		req.Header.Set("Range", rng)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			return
		}
		zap.L().Warn("origin fetch failed", zap.String("url", originURL), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for _, h := range forwardedHeaders {
		if v := resp.Header.Get(h); v != "" {
			w.Header().Set(h, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	p.copyStream(w, resp.Body)
}

func (p *Proxy) copyStream(w http.ResponseWriter, body io.Reader) {
	flusher, _ := w.(http.Flusher)

	buf := make([]byte, chunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				zap.L().Debug("stream ended", zap.Error(err))
			}
			return
		}
	}
}
