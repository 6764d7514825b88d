package domain

// Description length options accepted by the generator.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// KnownLength reports whether v is one of the recognized length options.
// Unknown values are stored and forwarded as given; this only feeds a
// warning at the call sites.
func KnownLength(v string) bool {
	switch v {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// DescriptionRecord is a saved row in the descriptions table. RecordID is the
// caller-supplied value stored in the table's primary field; LinkedProductID
// is empty when no product link was requested. Rows are write-once.
type DescriptionRecord struct {
	ID                string `json:"id"`
	RecordID          string `json:"record_id"`
	LinkedProductID   string `json:"linked_product_id,omitempty"`
	KeyFeatures       string `json:"key_features"`
	TargetAudience    string `json:"target_audience"`
	DescriptionLength string `json:"description_length"`
	GeneratedText     string `json:"generated_text"`
}
