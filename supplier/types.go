// Package supplier talks to the external supplier-matching service and
// shapes its responses for display. The matching engine itself is an
// external collaborator; this package only owns the wire types and the
// display transform.
package supplier

// ChatHistoryItem is one turn of conversation context sent to the matcher
type ChatHistoryItem struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Request is the matching request payload
type Request struct {
	Query       string            `json:"query"`
	ChatHistory []ChatHistoryItem `json:"chat_history"`
}

// APIResponse is the raw match payload for one supplier
type APIResponse struct {
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	PriceRange     string   `json:"price_range,omitempty"`
	LeadTime       string   `json:"lead_time,omitempty"`
	MOQ            string   `json:"moq,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	ResponseTime   string   `json:"response_time,omitempty"`
	Contact        string   `json:"contact,omitempty"`
}

// Response is the matcher's reply to one query
type Response struct {
	Suppliers []APIResponse `json:"suppliers"`
}

// FieldType tags how a display field should be rendered
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldBadge    FieldType = "badge"
	FieldRating   FieldType = "rating"
	FieldPrice    FieldType = "price"
	FieldLocation FieldType = "location"
	FieldTime     FieldType = "time"
)

// Field is one labeled display value on a supplier card
type Field struct {
	Label string    `json:"label"`
	Value string    `json:"value"`
	Type  FieldType `json:"type"`
}

// Supplier is the display shape of one match
type Supplier struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}
