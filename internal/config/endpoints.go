package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iamasit07/4-in-a-row/client/internal/domain"
)

const ErrUnsupportedHost domain.Error = "unsupported host"

// Endpoints maps the host a client was served from to the websocket
// server it must talk to.
type Endpoints map[string]string

func DefaultEndpoints() Endpoints {
	return Endpoints{
		"fgervasi-cell.github.io": "wss://websockets-tut.herokuapp.com/",
		"localhost:8000":          "ws://localhost:8001/",
	}
}

// Resolve returns the endpoint for host. An unknown host is an error,
// never a fallback.
func (e Endpoints) Resolve(host string) (string, error) {
	endpoint, ok := e[strings.ToLower(host)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedHost, host)
	}
	return endpoint, nil
}

func (e Endpoints) Merge(other Endpoints) {
	for host, endpoint := range other {
		e[host] = endpoint
	}
}

// ParseEndpointList reads "host=uri" pairs separated by commas.
// Malformed pairs are skipped.
func ParseEndpointList(raw string) Endpoints {
	endpoints := Endpoints{}
	for _, pair := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(pair)
		if trimmed == "" {
			continue
		}
		host, endpoint, found := strings.Cut(trimmed, "=")
		if !found {
			log.Printf("[CONFIG] Ignoring endpoint entry without '=': %q", trimmed)
			continue
		}
		host, endpoint = strings.TrimSpace(host), strings.TrimSpace(endpoint)
		if err := validateEndpoint(host, endpoint); err != nil {
			log.Printf("[CONFIG] Ignoring endpoint entry %q: %v", trimmed, err)
			continue
		}
		endpoints[strings.ToLower(host)] = endpoint
	}
	return endpoints
}

type endpointsFile struct {
	Endpoints map[string]string `yaml:"endpoints"`
}

// LoadEndpointsFile reads a YAML document of the form
//
//	endpoints:
//	  play.example.com: wss://ws.example.com/
func LoadEndpointsFile(path string) (Endpoints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEndpointsYAML(data)
}

func ParseEndpointsYAML(data []byte) (Endpoints, error) {
	var doc endpointsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse endpoints: %w", err)
	}

	endpoints := Endpoints{}
	for host, endpoint := range doc.Endpoints {
		if err := validateEndpoint(host, endpoint); err != nil {
			log.Printf("[CONFIG] Ignoring endpoint %q: %v", host, err)
			continue
		}
		endpoints[strings.ToLower(strings.TrimSpace(host))] = strings.TrimSpace(endpoint)
	}
	return endpoints, nil
}

func validateEndpoint(host, endpoint string) error {
	if strings.TrimSpace(host) == "" {
		return fmt.Errorf("empty host")
	}
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("scheme must be ws or wss, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", endpoint)
	}
	return nil
}
