package models

// RawRecord is one decoded entry from the content store, links already resolved
type RawRecord map[string]any

// Fields returns the record's field map, or nil when absent or mistyped
func (r RawRecord) Fields() map[string]any {
	fields, _ := r["fields"].(map[string]any)
	return fields
}

// Sys returns the record's system metadata, or nil when absent or mistyped
func (r RawRecord) Sys() map[string]any {
	sys, _ := r["sys"].(map[string]any)
	return sys
}
