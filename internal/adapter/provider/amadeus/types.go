package amadeus

import "github.com/flight-search/flight-offer-explorer/internal/domain"

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}

// offersResponse is the body of GET /v2/shopping/flight-offers.
// Offers decode straight into domain.FlightOffer, whose tags follow the wire names.
type offersResponse struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Data         []domain.FlightOffer `json:"data"`
	Dictionaries struct {
		Carriers   map[string]string `json:"carriers"`
		Currencies map[string]string `json:"currencies"`
	} `json:"dictionaries"`
}

// locationsResponse is the body of GET /v1/reference-data/locations.
type locationsResponse struct {
	Data []location `json:"data"`
}

type location struct {
	Type         string `json:"type"`
	SubType      string `json:"subType"`
	Name         string `json:"name"`
	DetailedName string `json:"detailedName"`
	IATACode     string `json:"iataCode"`
	Address      struct {
		CityName    string `json:"cityName"`
		CityCode    string `json:"cityCode"`
		CountryName string `json:"countryName"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}

// errorResponse is the error envelope returned with non-2xx statuses.
type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`

	// OAuth failures use a flat shape instead.
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
