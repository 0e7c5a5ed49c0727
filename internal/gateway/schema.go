// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package gateway

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaName identifies a boundary request schema.
type SchemaName string

// Request schemas.
const (
	SchemaCheckAccess       SchemaName = "check_access"
	SchemaAccessibleContent SchemaName = "accessible_content"
	SchemaCreateEnrolment   SchemaName = "create_enrolment"
	SchemaUpdateEnrolment   SchemaName = "update_enrolment"
)

// requestShapes maps each schema to the struct it is reflected from.
var requestShapes = map[SchemaName]any{
	SchemaCheckAccess:       &CheckAccessRequest{},
	SchemaAccessibleContent: &AccessibleContentRequest{},
	SchemaCreateEnrolment:   &CreateEnrolmentRequest{},
	SchemaUpdateEnrolment:   &UpdateEnrolmentRequest{},
}

// schemaTitles supplies metadata for generated schema files.
var schemaTitles = map[SchemaName]string{
	SchemaCheckAccess:       "Check Content Access Request",
	SchemaAccessibleContent: "Accessible Content Request",
	SchemaCreateEnrolment:   "Create Enrolment Request",
	SchemaUpdateEnrolment:   "Update Enrolment Request",
}

// schemaCache holds compiled schemas keyed by name; compiled once per
// process since the request shapes are fixed.
var (
	schemaMu    sync.Mutex
	schemaCache = make(map[SchemaName]*jschema.Schema)
)

// SchemaNames returns all request schema names.
func SchemaNames() []SchemaName {
	return []SchemaName{SchemaCheckAccess, SchemaAccessibleContent, SchemaCreateEnrolment, SchemaUpdateEnrolment}
}

// GenerateSchema generates the JSON Schema document for a request shape.
func GenerateSchema(name SchemaName) ([]byte, error) {
	shape, ok := requestShapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown request schema %q", name)
	}

	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(shape)
	schema.ID = jsonschema.ID("https://myedspace.com/schemas/" + string(name) + ".schema.json")
	schema.Title = schemaTitles[name]

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema %q: %w", name, err)
	}
	return data, nil
}

// ValidateRequest validates a raw JSON payload against the named request
// schema. Missing required fields and wrong types are reported here so the
// core never sees malformed input.
func ValidateRequest(name SchemaName, raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("request payload is empty")
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema(name)
	if err != nil {
		return fmt.Errorf("failed to compile schema %q: %w", name, err)
	}

	if err := sch.Validate(payload); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns the cached compiled schema or compiles it.
func compiledSchema(name SchemaName) (*jschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if sch, ok := schemaCache[name]; ok {
		return sch, nil
	}

	schemaBytes, err := GenerateSchema(name)
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	resource := string(name) + ".schema.json"
	c := jschema.NewCompiler()
	if err := c.AddResource(resource, schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	sch, err := c.Compile(resource)
	if err != nil {
		return nil, err
	}

	schemaCache[name] = sch
	return sch, nil
}
