package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"strconv"
	"strings"
)

type reverseAddress struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	Town        string `json:"town"`
	City        string `json:"city"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
}

type reverseResponse struct {
	Address *reverseAddress `json:"address"`
	Error   string          `json:"error"`
}

// Reverse resolves coordinates to a short postal-style address.
// It returns "" when Nominatim has no address for the position.
func (n *Nominatim) Reverse(ctx context.Context, pos domain.Position) (_ string, err error) {
	defer obs.Time(ctx, "nominatim.Reverse")(&err)

	if !pos.Valid() {
		return "", fmt.Errorf("nominatim reverse: position %s out of range", pos)
	}

	endpoint := n.baseURL + "/reverse"
	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("format", "json")
		q.Set("lat", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(pos.Lon, 'f', -1, 64))
		q.Set("zoom", "18")
		q.Set("addressdetails", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("nominatim reverse %s: %w", pos, err)
	}
	defer resp.Body.Close()

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("nominatim reverse: decode response: %w", err)
	}

	if decoded.Address == nil {
		return "", nil
	}

	return formatAddress(*decoded.Address), nil
}

// formatAddress renders "<number> <road>, <locality>, <state>, <postcode>",
// trimming separators left dangling by missing parts at either end.
func formatAddress(a reverseAddress) string {
	locality := firstNonEmpty(a.Suburb, a.Town, a.City)
	s := fmt.Sprintf("%s %s, %s, %s, %s", a.HouseNumber, a.Road, locality, a.State, a.Postcode)
	return strings.Trim(s, " ,\t\n")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
