// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package funfact fetches a random trivia line for the idle screen. It is
// decorative: every failure degrades to a fixed fallback fact.
package funfact

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/pdiddy/bsearch/internal/httputil"
	"github.com/pdiddy/bsearch/pkg/types"
)

// DefaultFallback is used when the config does not name one.
const DefaultFallback = "Honey never spoils. Archaeologists found 3000-year-old honey in Egyptian tombs that was still edible."

// factEndpoint is used when the client has no Endpoint configured. Declared
// as a var so tests can substitute an httptest server.
var factEndpoint = "https://uselessfacts.jsph.pl/api/v2/facts/random?language=en"

// Client fetches facts.
type Client struct {
	Client    *http.Client
	Endpoint  string
	Fallback  string
	UserAgent string
}

// NewClient builds a client from configuration.
func NewClient(client *http.Client, cfg types.FunFactConfig, userAgent string) *Client {
	return &Client{
		Client:    client,
		Endpoint:  cfg.Endpoint,
		Fallback:  cfg.Fallback,
		UserAgent: userAgent,
	}
}

// Fetch returns a fact. It never fails; problems are logged at debug level
// and the fallback is returned instead.
func (c *Client) Fetch(ctx context.Context) string {
	log := zerolog.Ctx(ctx)

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = factEndpoint
	}

	body, err := httputil.Get(ctx, c.Client, endpoint, c.UserAgent)
	if err != nil {
		log.Debug().Err(err).Msg("fun fact unavailable, using fallback")
		return c.fallback()
	}
	if !gjson.ValidBytes(body) {
		log.Debug().Msg("fun fact body is not JSON, using fallback")
		return c.fallback()
	}

	text := strings.TrimSpace(gjson.GetBytes(body, "text").String())
	if text == "" {
		log.Debug().Msg("fun fact body has no text, using fallback")
		return c.fallback()
	}
	return text
}

func (c *Client) fallback() string {
	if c.Fallback != "" {
		return c.Fallback
	}
	return DefaultFallback
}
