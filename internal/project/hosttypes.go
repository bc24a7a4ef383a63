package project

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"asls/internal/typedb"
)

type hostFile struct {
	Types []typedb.HostDecl `yaml:"types"`
}

// LoadHostTypes reads engine type declarations from a YAML file with a
// top-level "types" list. Unknown keys are errors. An empty file declares
// nothing.
func LoadHostTypes(path string) ([]typedb.HostDecl, error) {
	// #nosec G304 -- path comes from the project config
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open host types: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var hf hostFile
	if err := dec.Decode(&hf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return hf.Types, nil
}
