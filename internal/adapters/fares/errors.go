package fares

import (
	"errors"
	"fmt"
)

// ErrNoAccessToken is returned when the token endpoint answers without a token.
var ErrNoAccessToken = errors.New("token endpoint returned no access_token")

// StatusError is an HTTP response with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// NoOfferError means the search returned an empty offer list.
type NoOfferError struct {
	Origin, Destination, DepartureDate string
}

func (e *NoOfferError) Error() string {
	return fmt.Sprintf("no offers for %s->%s on %s", e.Origin, e.Destination, e.DepartureDate)
}

// MalformedOfferError means offers came back but none had a parseable price.total.
type MalformedOfferError struct {
	Origin, Destination, DepartureDate string
}

func (e *MalformedOfferError) Error() string {
	return fmt.Sprintf("no offer with a usable price for %s->%s on %s", e.Origin, e.Destination, e.DepartureDate)
}
