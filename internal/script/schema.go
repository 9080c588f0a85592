package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"bootterm/internal/typewriter"
)

// Schema returns the JSON Schema of a script document.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&File{})
	sch.Title = "bootterm boot script"
	sch.Description = "Lines of styled segments typed by the bootterm typewriter."
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

// ValidateDocument checks raw script bytes against Schema.
// YAML input is converted to JSON first. Failures wrap ErrInvalidScript.
func ValidateDocument(b []byte, f Format) error {
	doc := b
	if f == YAML {
		var v any
		if err := yaml.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("%w: %v", typewriter.ErrInvalidScript, err)
		}
		j, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", typewriter.ErrInvalidScript, err)
		}
		doc = j
	}
	// gojsonschema understands up to draft-07; refs into $defs still resolve as pointers
	sch := Schema()
	sch.Version = "http://json-schema.org/draft-07/schema#"
	raw, err := MarshalSchema(sch)
	if err != nil {
		return err
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(raw), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", typewriter.ErrInvalidScript, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %w", typewriter.ErrInvalidScript, errors.New(strings.Join(msgs, "; ")))
}
