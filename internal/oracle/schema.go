package oracle

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// generateSchema reflects T into a JSON schema that OpenAI accepts in strict
// mode: every object closed and every property required.
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	closeObjects(m)
	return m
}

func closeObjects(schema map[string]any) {
	props, _ := schema["properties"].(map[string]any)
	if t, _ := schema["type"].(string); t == "object" {
		schema["additionalProperties"] = false
		required := make([]string, 0, len(props))
		for name := range props {
			required = append(required, name)
		}
		if len(required) > 0 {
			schema["required"] = required
		}
	}
	for _, p := range props {
		if pm, ok := p.(map[string]any); ok {
			closeObjects(pm)
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		closeObjects(items)
	}
}
