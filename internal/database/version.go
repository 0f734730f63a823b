package database

import "encoding/json"

// SchemaVersionOf reads the top-level schemaVersion of a save document,
// returning 0 when it is absent or unreadable.
func SchemaVersionOf(document []byte) int {
	var head struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(document, &head); err != nil {
		return 0
	}
	return head.SchemaVersion
}
