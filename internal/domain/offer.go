// Package domain contains the core business entities and rules for the flight offer explorer.
// The entities mirror the flight-offer shape returned by the upstream search API and are
// shared, read-only, by the filter, sort and histogram engines.
package domain

import (
	"math"
	"strconv"
	"strings"
)

// FlightOffer represents a single priced flight offer returned by a provider.
// Only the outbound itinerary (index 0) is consulted by the filter and sort engines.
type FlightOffer struct {
	// ID is an opaque identifier, unique within a search response
	ID string `json:"id"`

	// Type is the upstream record type (e.g., "flight-offer")
	Type string `json:"type,omitempty"`

	// Source is the upstream content source (e.g., "GDS")
	Source string `json:"source,omitempty"`

	// InstantTicketingRequired reports whether the fare must be ticketed immediately
	InstantTicketingRequired bool `json:"instantTicketingRequired,omitempty"`

	// NonStop is the upstream non-stop flag; the engines derive stops from segments instead
	NonStop bool `json:"nonStop,omitempty"`

	// OneWay is true when the offer has no return itinerary
	OneWay bool `json:"oneWay,omitempty"`

	// LastTicketingDate is the last date the fare can be ticketed (YYYY-MM-DD)
	LastTicketingDate string `json:"lastTicketingDate,omitempty"`

	// NumberOfBookableSeats is informational only
	NumberOfBookableSeats int `json:"numberOfBookableSeats"`

	// Itineraries holds the outbound itinerary first, then the return itinerary if any
	Itineraries []Itinerary `json:"itineraries"`

	// Price is the total offer price
	Price Price `json:"price"`

	// PricingOptions carries upstream fare options
	PricingOptions PricingOptions `json:"pricingOptions"`

	// ValidatingAirlineCodes lists carrier codes; the first one is the primary carrier
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`

	// TravelerPricings carries per-traveler fare details
	TravelerPricings []TravelerPricing `json:"travelerPricings,omitempty"`
}

// Itinerary is an ordered sequence of segments flown in one direction.
type Itinerary struct {
	// Duration is an ISO-8601 duration token (e.g., "PT7H35M")
	Duration string `json:"duration"`

	// Segments is the ordered list of legs
	Segments []Segment `json:"segments"`
}

// Segment is a single flight leg.
type Segment struct {
	Departure     Endpoint `json:"departure"`
	Arrival       Endpoint `json:"arrival"`
	CarrierCode   string   `json:"carrierCode"`
	Number        string   `json:"number"`
	Aircraft      Aircraft `json:"aircraft"`
	Duration      string   `json:"duration"`
	NumberOfStops int      `json:"numberOfStops"`
}

// Endpoint is the departure or arrival side of a segment.
type Endpoint struct {
	// IATACode is the airport code (e.g., "JFK")
	IATACode string `json:"iataCode"`

	// Terminal is optional
	Terminal string `json:"terminal,omitempty"`

	// At is the local wall-clock timestamp, ISO-8601, with no offset guaranteed
	At string `json:"at"`
}

// Aircraft identifies the equipment flown on a segment.
type Aircraft struct {
	Code string `json:"code"`
}

// Price holds offer pricing as numeric strings, exactly as received upstream.
type Price struct {
	// Currency is the ISO 4217 currency code
	Currency string `json:"currency"`

	// Total is the decimal total as a numeric string (e.g., "452.10")
	Total string `json:"total"`

	// Base is the fare before taxes and fees
	Base string `json:"base,omitempty"`

	// GrandTotal includes every fee
	GrandTotal string `json:"grandTotal,omitempty"`

	// Fees lists additional fees
	Fees []Fee `json:"fees,omitempty"`
}

// Fee is an itemised price component.
type Fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// PricingOptions carries fare-level options.
type PricingOptions struct {
	FareType                []string `json:"fareType,omitempty"`
	IncludedCheckedBagsOnly bool     `json:"includedCheckedBagsOnly"`
}

// TravelerPricing is the fare breakdown for one traveler.
type TravelerPricing struct {
	TravelerID           string                `json:"travelerId"`
	FareOption           string                `json:"fareOption"`
	TravelerType         string                `json:"travelerType"`
	Price                Price                 `json:"price"`
	FareDetailsBySegment []FareDetailBySegment `json:"fareDetailsBySegment,omitempty"`
}

// FareDetailBySegment describes the fare applied to one segment.
type FareDetailBySegment struct {
	SegmentID           string      `json:"segmentId"`
	Cabin               string      `json:"cabin"`
	FareBasis           string      `json:"fareBasis"`
	Class               string      `json:"class"`
	IncludedCheckedBags CheckedBags `json:"includedCheckedBags"`
}

// CheckedBags is the included checked baggage allowance.
type CheckedBags struct {
	Quantity int `json:"quantity"`
}

// Amount parses Total as a float64.
// A malformed total yields NaN, which fails every numeric comparison.
func (p Price) Amount() float64 {
	return ParseAmount(p.Total)
}

// ParseAmount parses a numeric price string, returning NaN when it is not a number.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Outbound returns itinerary 0 and whether it exists.
func (o FlightOffer) Outbound() (Itinerary, bool) {
	if len(o.Itineraries) == 0 {
		return Itinerary{}, false
	}
	return o.Itineraries[0], true
}

// FirstSegment returns the first segment of the outbound itinerary.
// The zero Segment is returned when the itinerary has no segments.
func (o FlightOffer) FirstSegment() Segment {
	it, ok := o.Outbound()
	if !ok || len(it.Segments) == 0 {
		return Segment{}
	}
	return it.Segments[0]
}

// LastSegment returns the last segment of the outbound itinerary.
func (o FlightOffer) LastSegment() Segment {
	it, ok := o.Outbound()
	if !ok || len(it.Segments) == 0 {
		return Segment{}
	}
	return it.Segments[len(it.Segments)-1]
}

// StopCount returns len(segments) - 1 for the outbound itinerary, never below zero.
func (o FlightOffer) StopCount() int {
	it, _ := o.Outbound()
	if len(it.Segments) == 0 {
		return 0
	}
	return len(it.Segments) - 1
}

// DepartureAt is the outbound first-segment departure timestamp.
func (o FlightOffer) DepartureAt() string {
	return o.FirstSegment().Departure.At
}

// ArrivalAt is the outbound last-segment arrival timestamp.
func (o FlightOffer) ArrivalAt() string {
	return o.LastSegment().Arrival.At
}

// PrimaryCarrier returns the first validating airline code, or "" if none.
func (o FlightOffer) PrimaryCarrier() string {
	if len(o.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return o.ValidatingAirlineCodes[0]
}

// CheckedBags returns the smallest included checked-bag quantity across the
// first traveler's segments, or 0 when no fare detail is present.
func (o FlightOffer) CheckedBags() int {
	if len(o.TravelerPricings) == 0 {
		return 0
	}
	details := o.TravelerPricings[0].FareDetailsBySegment
	if len(details) == 0 {
		return 0
	}
	bags := details[0].IncludedCheckedBags.Quantity
	for _, d := range details[1:] {
		if d.IncludedCheckedBags.Quantity < bags {
			bags = d.IncludedCheckedBags.Quantity
		}
	}
	return bags
}

// StopsLabel renders a stop count for display.
func StopsLabel(count int) string {
	switch {
	case count <= 0:
		return "Non-stop"
	case count == 1:
		return "1 stop"
	default:
		return strconv.Itoa(count) + " stops"
	}
}
