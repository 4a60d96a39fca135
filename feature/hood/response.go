package hood

import (
	"encoding/xml"
	"strings"
)

// apiResponse is the portion of a marketplace response the client inspects.
// The root element name has varied across API versions, so it is deliberately
// left unmatched.
type apiResponse struct {
	Status string    `xml:"status"`
	Error  *apiFault `xml:"error"`
}

// apiFault is the marketplace-reported error element carrying human-readable
// text.
type apiFault struct {
	Text string `xml:",chardata"`
}

func parseResponse(body []byte) (*apiResponse, error) {
	var resp apiResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// indicatesError reports whether the response carries the marketplace's error
// sentinel. The canonical rule: a present <error> element or an explicit
// error status token means failure; anything else on a parsable success
// response means the operation went through.
func (r *apiResponse) indicatesError() bool {
	return r.Error != nil || strings.EqualFold(strings.TrimSpace(r.Status), "error")
}

// errorText returns the marketplace's own error text when available.
func (r *apiResponse) errorText() string {
	if r.Error != nil {
		if t := strings.TrimSpace(r.Error.Text); t != "" {
			return t
		}
	}
	return "marketplace reported an error without detail"
}
