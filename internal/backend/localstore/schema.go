package localstore

import (
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var payloadSchema = jsonschema.MustCompileString("tasks.schema.json", schemaJSON)

// validatePayload checks a decrypted payload against the embedded schema
// before it is trusted. A payload that decrypts but does not match the
// schema is treated the same as tampered data.
func validatePayload(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse payload: %v", err)
	}
	if err := payloadSchema.Validate(doc); err != nil {
		return fmt.Errorf("payload schema: %v", err)
	}
	return nil
}
