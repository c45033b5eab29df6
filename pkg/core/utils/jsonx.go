package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeModelJSON unmarshals an LLM response into target, tolerating the
// usual model-output damage: markdown code fences, single quotes, trailing
// commas, comments, unclosed braces.
//
// Order of attempts:
//  1. plain encoding/json
//  2. json-repair, then encoding/json
//  3. hjson as a last lenient pass
func DecodeModelJSON(raw string, target interface{}) error {
	if err := json.Unmarshal([]byte(raw), target); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("MODEL_JSON_UNPARSEABLE: %v", err)
	}
	return nil
}
