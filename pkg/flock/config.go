package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// LoadParameters loads simulation parameters from a JSON file, validating it
// against the given JSON schema first. Fields absent from the file keep
// their default values, so a partial config is fine as long as the schema
// accepts it.
func LoadParameters(configFile string, schemaFile string) (*SimulationParameters, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	f, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	// 3. Validate
	var v interface{}
	if err := json.NewDecoder(f).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal over the defaults
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	p := DefaultParameters()
	if err := json.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return p, nil
}
