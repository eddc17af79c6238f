package mcp

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// argumentGetter is satisfied by mcp.CallToolRequest.
type argumentGetter interface {
	GetArguments() map[string]any
}

// bindArguments decodes tool arguments into target using its json tags.
// Clients often send every parameter as a string, so JSON-encoded arrays,
// booleans and numbers inside strings are unpacked first.
func bindArguments[T any](request argumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			unpackJSONString,
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(request.GetArguments())
}

func unpackJSONString(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Slice:
		if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
			out := reflect.New(to)
			if err := json.Unmarshal([]byte(raw), out.Interface()); err == nil {
				return out.Elem().Interface(), nil
			}
		}
	case reflect.Bool:
		if raw == "true" || raw == "false" {
			return raw == "true", nil
		}
	}
	return data, nil
}
