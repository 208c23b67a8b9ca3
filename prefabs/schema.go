package prefabs

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.json
var SchemasFS embed.FS

const schemaBaseURL = "https://github.com/milk9111/blobcaller/schemas/"

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jsonschema.Schema{}
)

func compileSchema(name string) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[name]; ok {
		return s, nil
	}
	data, err := SchemasFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read schema %s: %w", name, err)
	}
	url := schemaBaseURL + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("prefabs: add schema %s: %w", name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile schema %s: %w", name, err)
	}
	schemaCache[name] = s
	return s, nil
}

// Validate checks YAML data against an embedded schema. The document goes
// through a JSON round trip so the validator sees plain JSON values.
func Validate(schema string, data []byte) error {
	s, err := compileSchema(schema)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("prefabs: parse yaml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("prefabs: convert yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("prefabs: convert yaml: %w", err)
	}
	return s.Validate(v)
}
