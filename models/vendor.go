package models

// Vendor represents a partner breeder or supplier
type Vendor struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	AppendixFiles []string `json:"appendixFiles,omitempty"`
	AppendixLabel string   `json:"appendixLabel,omitempty"`
}

// HasAppendix reports whether the vendor carries any appendix content
func (v Vendor) HasAppendix() bool {
	return len(v.AppendixFiles) > 0 || v.AppendixLabel != ""
}
