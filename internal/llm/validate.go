package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas by Schema.Name.
var compiled = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

// Conform turns raw model output into a document valid against schema.
// Output that is not JSON gets one ExtractJSON pass, and a bare array
// is wrapped in schema.Envelope. Blank output is *ErrEmptyResponse;
// anything else that cannot be made to validate is *ErrInvalidResponse.
func Conform(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	doc := bytes.TrimSpace(raw)
	if len(doc) == 0 {
		return nil, &ErrEmptyResponse{}
	}
	if schema == nil {
		return raw, nil
	}

	invalid := func(err error) error { return &ErrInvalidResponse{Content: raw, Err: err} }

	if !json.Valid(doc) {
		extracted, ok := ExtractJSON(string(doc))
		if !ok || !json.Valid(extracted) {
			return nil, invalid(fmt.Errorf("invalid JSON: no parseable document in %d bytes of output", len(raw)))
		}
		doc = extracted
	}

	if schema.Envelope != "" && doc[0] == '[' {
		wrapped, err := json.Marshal(map[string]json.RawMessage{schema.Envelope: doc})
		if err != nil {
			return nil, invalid(err)
		}
		doc = wrapped
	}

	if err := validate(schema, doc); err != nil {
		return nil, err
	}
	return json.RawMessage(doc), nil
}

// validate checks doc against schema. A nil schema accepts anything.
func validate(schema *Schema, doc []byte) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, err error) error {
		return &ErrInvalidResponse{Content: doc, Err: fmt.Errorf(format, err)}
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}
	sch, err := compile(schema)
	if err != nil {
		return invalid("compile schema: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	compiled.Lock()
	defer compiled.Unlock()
	if sch, ok := compiled.byName[schema.Name]; ok {
		return sch, nil
	}

	// Round-trip through JSON so Go slices and ints become the decoded
	// values the compiler expects.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}

	url := "mem://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}
	compiled.byName[schema.Name] = sch
	return sch, nil
}
