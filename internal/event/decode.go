package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process events already carry
// the struct; anything else (a map read back from a dead-letter file) goes
// through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
