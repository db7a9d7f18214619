package httpstages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dcshock/gbopcodes/pipeline"
)

// ParseError is returned by the JSON stages when the input does not decode.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse json: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

func rawInput(stage string, input interface{}) ([]byte, error) {
	switch v := input.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%s: input must be []byte or string, got %T", stage, input)
	}
}

// ParseJSONTo returns a stage that unmarshals the input from JSON into a value of type T.
// Input must be []byte or string. Output is *T. A body that is not valid JSON, or does
// not fit T, fails with a *ParseError.
func ParseJSONTo[T any]() pipeline.Stage {
	return func(ctx context.Context, input interface{}) (interface{}, error) {
		raw, err := rawInput("parsejsonto", input)
		if err != nil {
			return nil, err
		}
		var out T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, &ParseError{Err: err}
		}
		return &out, nil
	}
}

// IndentJSON returns a stage that re-renders a JSON value with width spaces per
// nesting level. Object keys keep their document order and number literals are
// left as written. The output is []byte without a trailing newline.
func IndentJSON(width int) pipeline.Stage {
	if width < 0 {
		panic("httpstages.IndentJSON: width must not be negative")
	}
	indent := strings.Repeat(" ", width)
	return func(ctx context.Context, input interface{}) (interface{}, error) {
		raw, err := rawInput("indentjson", input)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", indent); err != nil {
			return nil, &ParseError{Err: err}
		}
		return buf.Bytes(), nil
	}
}
