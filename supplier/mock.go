package supplier

import "context"

// CannedReply is the fixed assistant text used when no real matching
// engine is wired up.
const CannedReply = "I found several electronics component suppliers in Asia with ISO certification that match your requirements. Here are the top matches:"

// CannedRecommender returns a fixed supplier list for every query. It backs
// the simulated assistant reply in the client.
type CannedRecommender struct{}

// Recommend returns the canned supplier set regardless of input
func (CannedRecommender) Recommend(_ context.Context, _ string, _ []ChatHistoryItem) (*Response, error) {
	rating := func(v float64) *float64 { return &v }
	return &Response{
		Suppliers: []APIResponse{
			{
				CompanyName:    "Global Manufacturing Co.",
				Location:       "Shenzhen, China",
				Rating:         rating(4.8),
				PriceRange:     "$10-50K",
				LeadTime:       "15-30 days",
				MOQ:            "1,000 units",
				Certifications: []string{"ISO 9001", "CE", "RoHS"},
				Specialties:    []string{"Electronics", "Consumer Goods"},
				ResponseTime:   "2-4 hours",
			},
			{
				CompanyName:    "Precision Parts Ltd.",
				Location:       "Munich, Germany",
				Rating:         rating(4.9),
				PriceRange:     "$25-100K",
				LeadTime:       "10-20 days",
				Certifications: []string{"ISO 9001", "ISO 14001", "REACH"},
				Specialties:    []string{"Automotive", "Precision Engineering"},
			},
			{
				CompanyName:    "EcoSupply Solutions",
				Location:       "Portland, USA",
				Rating:         rating(4.7),
				PriceRange:     "$5-30K",
				LeadTime:       "7-14 days",
				Certifications: []string{"FSC", "Organic", "Fair Trade"},
				Specialties:    []string{"Recycled", "Biodegradable"},
			},
		},
	}, nil
}
