package supplier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformFillsMissingFieldsWithNA(t *testing.T) {
	card := Transform(APIResponse{CompanyName: "Acme"}, 0)

	assert.Equal(t, "Acme", card.Name)
	labels := make([]string, 0, len(card.Fields))
	for _, f := range card.Fields {
		labels = append(labels, f.Label)
		assert.Equal(t, "N/A", f.Value, "field %s", f.Label)
	}
	// Certifications is dropped entirely when absent
	assert.Equal(t, []string{
		"Location", "Rating", "Price Range", "Lead Time",
		"Response Time", "MOQ", "Specialties", "Contact Details",
	}, labels)
}

func TestTransformInsertsCertificationsBeforeSpecialties(t *testing.T) {
	rating := 4.8
	card := Transform(APIResponse{
		CompanyName:    "Acme",
		Location:       "Shenzhen, China",
		Rating:         &rating,
		Certifications: []string{"ISO 9001", "CE"},
		Specialties:    []string{"Electronics"},
	}, 2)

	assert.Equal(t, "supplier_2", card.ID)

	labels := make([]string, 0, len(card.Fields))
	for _, f := range card.Fields {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{
		"Location", "Rating", "Price Range", "Lead Time",
		"Response Time", "MOQ", "Certifications", "Specialties", "Contact Details",
	}, labels)

	byLabel := map[string]Field{}
	for _, f := range card.Fields {
		byLabel[f.Label] = f
	}
	assert.Equal(t, "ISO 9001, CE", byLabel["Certifications"].Value)
	assert.Equal(t, FieldBadge, byLabel["Certifications"].Type)
	assert.Equal(t, "4.8", byLabel["Rating"].Value)
	assert.Equal(t, FieldRating, byLabel["Rating"].Type)
	assert.Equal(t, FieldLocation, byLabel["Location"].Type)
}

func TestTransformUnknownCompanyName(t *testing.T) {
	card := Transform(APIResponse{}, 0)
	assert.Equal(t, "Unknown Supplier", card.Name)
}

func TestTransformAllPreservesMatchOrder(t *testing.T) {
	resp := &Response{Suppliers: []APIResponse{
		{CompanyName: "First"},
		{CompanyName: "Second"},
	}}

	cards := TransformAll(resp)
	require.Len(t, cards, 2)
	assert.Equal(t, "First", cards[0].Name)
	assert.Equal(t, "supplier_0", cards[0].ID)
	assert.Equal(t, "Second", cards[1].Name)
	assert.Equal(t, "supplier_1", cards[1].ID)
}

func TestCannedRecommenderShapesThroughTransform(t *testing.T) {
	resp, err := CannedRecommender{}.Recommend(nil, "electronics", nil)
	require.NoError(t, err)
	require.Len(t, resp.Suppliers, 3)

	cards := TransformAll(resp)
	assert.Equal(t, "Global Manufacturing Co.", cards[0].Name)
	// All canned suppliers carry certifications, so every card has 9 fields
	for _, card := range cards {
		assert.Len(t, card.Fields, 9)
	}
}
