package adjustments

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decodes a JSON preset such as {"exposure": 0.5, "contrast": 20}.
// Missing keys keep their default; unknown keys are an error.
func LoadPreset(r io.Reader) (Settings, error) {
	var s Settings
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("invalid preset: %w", err)
	}
	return s, nil
}

// Reads a JSON preset from disk
func ReadPresetFile(filename string) (Settings, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Settings{}, err
	}
	defer file.Close()

	s, err := LoadPreset(file)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Writes the settings as an indented JSON preset
func (s Settings) WritePreset(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
