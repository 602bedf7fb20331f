package delivery

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Audience selects which surface a status label is rendered for.
type Audience int

const (
	AudienceUnknown Audience = iota
	AudienceDriver
	AudienceAdmin
	AudienceMerchant
	AudienceBuyer
)

func getAudienceCodes() map[Audience]string {
	//nolint:exhaustive // AudienceUnknown has no wire code
	return map[Audience]string{
		AudienceDriver:   "driver",
		AudienceAdmin:    "admin",
		AudienceMerchant: "merchant",
		AudienceBuyer:    "buyer",
	}
}

func ParseAudience(code string) (Audience, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for a, c := range getAudienceCodes() {
		if c == code {
			return a, nil
		}
	}
	return AudienceUnknown, errs.NewValueIsInvalidErrorWithCause("audience", fmt.Errorf("%q is not an audience", code))
}

func (a Audience) String() string {
	if c, ok := getAudienceCodes()[a]; ok {
		return c
	}
	return "unknown"
}

// LabelCatalog holds the display label of every (status, audience) pair.
// Labels are presentation only: two labels never mean two states.
type LabelCatalog struct {
	labels map[Audience]map[Status]string
}

// DefaultLabelCatalog returns the built-in English labels.
func DefaultLabelCatalog() LabelCatalog {
	common := map[Status]string{
		Assigned:                  "Assigned",
		AwaitingPickup:            "Awaiting pickup",
		InTransit:                 "In transit",
		AwaitingBuyerConfirmation: "Awaiting buyer confirmation",
		Delivered:                 "Delivered",
		Disputed:                  "Dispute",
		Refunded:                  "Refunded",
		Cancelled:                 "Cancelled",
	}

	labels := make(map[Audience]map[Status]string, 4)
	for a := range getAudienceCodes() {
		labels[a] = make(map[Status]string, len(common))
		for s, l := range common {
			labels[a][s] = l
		}
	}
	labels[AudienceAdmin][AwaitingBuyerConfirmation] = "Awaiting confirmation"
	labels[AudienceBuyer][AwaitingBuyerConfirmation] = "Please confirm receipt"
	labels[AudienceMerchant][Disputed] = "Under dispute"

	return LabelCatalog{labels: labels}
}

// WithOverrides returns a copy of c with labels replaced from a nested
// audience -> status code -> label map. Status codes go through ParseStatus,
// so the admin alias is accepted.
func (c LabelCatalog) WithOverrides(overrides map[string]map[string]string) (LabelCatalog, error) {
	out := LabelCatalog{labels: make(map[Audience]map[Status]string, len(c.labels))}
	for a, m := range c.labels {
		out.labels[a] = make(map[Status]string, len(m))
		for s, l := range m {
			out.labels[a][s] = l
		}
	}

	for audienceCode, byStatus := range overrides {
		audience, err := ParseAudience(audienceCode)
		if err != nil {
			return LabelCatalog{}, err
		}
		for statusCode, label := range byStatus {
			status, err := ParseStatus(statusCode)
			if err != nil {
				return LabelCatalog{}, err
			}
			if strings.TrimSpace(label) == "" {
				return LabelCatalog{}, errs.NewValueIsRequiredError("label for " + audienceCode + "/" + statusCode)
			}
			out.labels[audience][status] = label
		}
	}

	return out, nil
}

// Label returns the label of s for audience a, falling back to the wire code.
func (c LabelCatalog) Label(s Status, a Audience) string {
	if l, ok := c.labels[a][s]; ok {
		return l
	}
	return s.String()
}
