package compliance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of a benchmark table set. The worst band
// of every ladder must use the YAML float infinity literal (.inf) as its
// ceiling sentinel.
type tableFile struct {
	Version    string      `yaml:"version"`
	Frameworks []Framework `yaml:"frameworks"`
}

// LoadFile reads a YAML benchmark table file and returns a validated
// TableSet, letting deployments swap thresholds without code changes.
func LoadFile(path string) (*TableSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark tables: %w", err)
	}
	return ParseTables(data)
}

// ParseTables parses YAML benchmark table content.
func ParseTables(data []byte) (*TableSet, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark tables: %w", err)
	}
	if file.Version == "" {
		return nil, fmt.Errorf("benchmark tables missing version")
	}
	if len(file.Frameworks) == 0 {
		return nil, fmt.Errorf("benchmark tables contain no frameworks")
	}
	return NewTableSet(file.Version, file.Frameworks)
}
