package fares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"route-fare-planner/internal/platform/obs"
	"route-fare-planner/internal/ports"
	"strings"
	"time"
)

const (
	DefaultBaseURL  = "https://test.api.amadeus.com"
	DefaultCurrency = "CNY"

	tokenPath  = "/v1/security/oauth2/token"
	offersPath = "/v2/shopping/flight-offers"

	maxOffers = 20
)

// AmadeusClient implements ports.FareProvider against the Amadeus
// self-service flight-offers API using client-credentials auth.
//
// Calls are single-shot: a failed request is returned to the caller as-is.
type AmadeusClient struct {
	session      *http.Client
	clientID     string
	clientSecret string
	baseURL      string
}

var _ ports.FareProvider = (*AmadeusClient)(nil)

func NewAmadeusClient(clientID, clientSecret, baseURL string, timeout time.Duration) (*AmadeusClient, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, errors.New("amadeus client id and secret must be non-empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &AmadeusClient{
		session:      &http.Client{Timeout: timeout},
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken exchanges the client credentials for a bearer token.
func (c *AmadeusClient) AccessToken(ctx context.Context) (_ string, err error) {
	defer obs.Time(ctx, "amadeus.AccessToken")(&err)

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if strings.TrimSpace(tr.AccessToken) == "" {
		return "", ErrNoAccessToken
	}

	return tr.AccessToken, nil
}

type offersResponse struct {
	Data []struct {
		Price struct {
			// string in the live API, number in some fixtures
			Total    any    `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
}

// LowestOneWayFare searches one-way offers for a single adult and returns the
// cheapest priced one.
func (c *AmadeusClient) LowestOneWayFare(
	ctx context.Context,
	token string,
	origin string,
	destination string,
	departureDate string,
) (_ ports.Fare, err error) {
	defer obs.Time(ctx, "amadeus.LowestOneWayFare")(&err)

	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", departureDate)
	q.Set("adults", "1")
	q.Set("nonStop", "false")
	q.Set("max", fmt.Sprint(maxOffers))
	q.Set("currencyCode", DefaultCurrency)

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+offersPath+"?"+q.Encode(), nil)
	if err != nil {
		return ports.Fare{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req)
	if err != nil {
		return ports.Fare{}, fmt.Errorf("offers request failed: %w", err)
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var or offersResponse
	if err := dec.Decode(&or); err != nil {
		return ports.Fare{}, fmt.Errorf("decode offers response: %w", err)
	}

	if len(or.Data) == 0 {
		return ports.Fare{}, &NoOfferError{Origin: origin, Destination: destination, DepartureDate: departureDate}
	}

	var (
		best  ports.Fare
		found bool
	)
	for _, offer := range or.Data {
		amount, ok := parseTotal(offer.Price.Total)
		if !ok {
			continue
		}
		if found && amount >= best.Amount {
			continue
		}

		cur := offer.Price.Currency
		if cur == "" {
			cur = DefaultCurrency
		}
		best = ports.Fare{Amount: amount, Currency: cur}
		found = true
	}

	if !found {
		return ports.Fare{}, &MalformedOfferError{Origin: origin, Destination: destination, DepartureDate: departureDate}
	}

	return best, nil
}
