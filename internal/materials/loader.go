package materials

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// libraryFile is the on-disk shape of a material library.
type libraryFile struct {
	Version   string   `yaml:"version"`
	Materials []Record `yaml:"materials"`
}

// LoadFile reads a YAML material library and returns a validated Store.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read material library: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML material library content into a validated Store.
func Parse(data []byte) (*Store, error) {
	var lib libraryFile
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse material library: %w", err)
	}
	if len(lib.Materials) == 0 {
		return nil, fmt.Errorf("material library contains no materials")
	}
	return NewStore(lib.Materials)
}
