package proxy

import (
	"bytes"         // Request body buffering
	"encoding/json" // Upstream body validation
	"io"            // Body reading
	"net/http"      // HTTP client and status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// MsgBadGateway is returned when the Ledger Service cannot be reached
const MsgBadGateway = "Proxy failed to reach backend"

// Forwarder relays API calls to the Ledger Service without altering them
type Forwarder struct {
	backendURL string       // Ledger Service base URL, never exposed to clients
	client     *http.Client // Outbound HTTP client
}

// NewForwarder creates a forwarder for backendURL. A nil client means http.DefaultClient.
func NewForwarder(backendURL string, client *http.Client) *Forwarder {
	if client == nil {
		client = http.DefaultClient
	}
	return &Forwarder{backendURL: backendURL, client: client}
}

// Handler forwards method, path, query and body, then relays the upstream
// status and JSON body as received. Only a failure to complete the call
// itself turns into 502.
func (f *Forwarder) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.Request.URL.Path // Route for logging
		var body io.Reader
		if c.Request.Body != nil && c.Request.Method != http.MethodGet {
			raw, err := io.ReadAll(c.Request.Body) // Forward the client's bytes verbatim
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			body = bytes.NewReader(raw)
		}
		target := f.backendURL + c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			target += "?" + c.Request.URL.RawQuery
		}
		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, body)
		if err != nil {
			f.badGateway(c, route, err)
			return
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := f.client.Do(req)
		if err != nil {
			f.badGateway(c, route, err)
			return
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			f.badGateway(c, route, err)
			return
		}
		if !json.Valid(data) {
			f.badGateway(c, route, &invalidBodyError{status: resp.StatusCode})
			return
		}
		c.Data(resp.StatusCode, "application/json; charset=utf-8", data) // Relay status and body unchanged
	}
}

func (f *Forwarder) badGateway(c *gin.Context, route string, err error) {
	logrus.WithFields(logrus.Fields{
		"route": route,       // Proxied endpoint
		"error": err.Error(), // Error message
	}).Error("Proxy request failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": MsgBadGateway})
}

type invalidBodyError struct {
	status int
}

func (e *invalidBodyError) Error() string {
	return "upstream returned a non-JSON body with status " + http.StatusText(e.status)
}
