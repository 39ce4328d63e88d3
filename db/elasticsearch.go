package db

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
)

type EsConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
}

func (c EsConfig) Address() string {
	protocol := "http"
	if c.Secure {
		protocol += "s"
	}
	return fmt.Sprintf("%s://%s:%d", protocol, c.Host, c.Port)
}

// RetryBackoff is shared by concurrent requests and keeps no state
func RetryBackoff(attempt int) time.Duration {
	retryBackoff := backoff.NewExponentialBackOff()

	var next time.Duration
	for i := 0; i < attempt; i++ {
		next = retryBackoff.NextBackOff()
	}
	return next
}

// Client Connection
func NewConnectionEs(config EsConfig) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.Address()},
		Username:  config.Username,
		Password:  config.Password,
		Transport: &http.Transport{
			MaxIdleConns:          10,
			ResponseHeaderTimeout: time.Second * 2,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},
		// Configure the backoff function
		RetryBackoff: RetryBackoff,
		MaxRetries: 5,
	}

	return elasticsearch.NewClient(cfg)
}

// Construct Query
func ConstructQuery(q string) *strings.Reader {
	var query = `{"query": {`

	query += fmt.Sprintf("%s}}", q)

	var b strings.Builder
	b.WriteString(query)
	read := strings.NewReader(b.String())
	return read
}
