package supplier

import (
	"fmt"
	"strconv"
	"strings"
)

const missingValue = "N/A"

// Transform converts a raw match payload into an ordered supplier card.
// Absent scalar fields render as "N/A"; an empty certification list drops
// the Certifications field entirely rather than showing a placeholder.
func Transform(s APIResponse, index int) Supplier {
	fields := []Field{
		{Label: "Location", Value: orMissing(s.Location), Type: FieldLocation},
		{Label: "Rating", Value: ratingValue(s.Rating), Type: FieldRating},
		{Label: "Price Range", Value: orMissing(s.PriceRange), Type: FieldPrice},
		{Label: "Lead Time", Value: orMissing(s.LeadTime), Type: FieldTime},
		{Label: "Response Time", Value: orMissing(s.ResponseTime), Type: FieldTime},
		{Label: "MOQ", Value: orMissing(s.MOQ), Type: FieldText},
		{Label: "Specialties", Value: joinOrMissing(s.Specialties), Type: FieldBadge},
		{Label: "Contact Details", Value: orMissing(s.Contact), Type: FieldText},
	}

	if len(s.Certifications) > 0 {
		certs := Field{Label: "Certifications", Value: strings.Join(s.Certifications, ", "), Type: FieldBadge}
		fields = append(fields[:6], append([]Field{certs}, fields[6:]...)...)
	}

	name := s.CompanyName
	if name == "" {
		name = "Unknown Supplier"
	}

	return Supplier{
		ID:     fmt.Sprintf("supplier_%d", index),
		Name:   name,
		Fields: fields,
	}
}

// TransformAll maps a full response into supplier cards in match order
func TransformAll(resp *Response) []Supplier {
	suppliers := make([]Supplier, 0, len(resp.Suppliers))
	for i, s := range resp.Suppliers {
		suppliers = append(suppliers, Transform(s, i))
	}
	return suppliers
}

func orMissing(value string) string {
	if value == "" {
		return missingValue
	}
	return value
}

func joinOrMissing(values []string) string {
	if len(values) == 0 {
		return missingValue
	}
	return strings.Join(values, ", ")
}

func ratingValue(rating *float64) string {
	if rating == nil {
		return missingValue
	}
	return strconv.FormatFloat(*rating, 'f', -1, 64)
}
