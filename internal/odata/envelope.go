package odata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEnvelope is returned when a payload lacks the expected "d" wrapper or "results" array.
var ErrMalformedEnvelope = errors.New("malformed odata envelope")

var null = []byte("null")

type collection[T any] struct {
	Results []T `json:"results"`
}

// DecodeEntity decodes the single record wrapped in {"d": {...}}.
func DecodeEntity[T any](data string) (*T, error) {
	raw, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	entity := new(T)
	if err := json.Unmarshal(raw, entity); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}

	return entity, nil
}

// DecodeCollection decodes the records wrapped in {"d": {"results": [...]}}.
func DecodeCollection[T any](data string) ([]T, error) {
	raw, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	return decodeResults[T](raw)
}

// DecodeNestedCollection decodes the records of a navigation property expanded inside a single
// entity, as in {"d": {"<property>": {"results": [...]}}}.
func DecodeNestedCollection[T any](data, property string) ([]T, error) {
	raw, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}

	nested, ok := fields[property]
	if !ok || isNull(nested) {
		return nil, fmt.Errorf("%w: property %q not found", ErrMalformedEnvelope, property)
	}

	return decodeResults[T](nested)
}

func unwrap(data string) (json.RawMessage, error) {
	var envelope struct {
		D json.RawMessage `json:"d"`
	}

	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	if isNull(envelope.D) {
		return nil, fmt.Errorf("%w: \"d\" not found", ErrMalformedEnvelope)
	}

	return envelope.D, nil
}

func decodeResults[T any](raw json.RawMessage) ([]T, error) {
	var c struct {
		Results json.RawMessage `json:"results"`
	}

	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	if isNull(c.Results) {
		return nil, fmt.Errorf("%w: \"results\" not found", ErrMalformedEnvelope)
	}

	var records collection[T]
	records.Results = make([]T, 0)
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	return records.Results, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), null)
}
