// Package dataset supplies the fixed, read-only list of notes recall starts
// from: an embedded default, or a JSON/YAML file chosen in config.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yash-srivastava19/recall/internal/notes"
)

//go:embed notes.json
var embedded []byte

// Default returns the embedded sample dataset.
func Default() []notes.Note {
	ns, err := Parse(embedded, ".json")
	if err != nil {
		panic("dataset: embedded notes.json: " + err.Error())
	}
	return ns
}

// Load reads a dataset file. The extension picks the decoder: .yaml/.yml
// use YAML, anything else JSON. An empty path returns Default().
func Load(path string) ([]notes.Note, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ns, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ns, nil
}

func Parse(data []byte, ext string) ([]notes.Note, error) {
	var ns []notes.Note
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ns); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &ns); err != nil {
			return nil, err
		}
	}
	return ns, nil
}
