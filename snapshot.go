package svcinv

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// SnapshotFileMode is the mode of written snapshot files
const SnapshotFileMode = 0o644

// SaveSnapshot atomically writes s to path as YAML. Snapshot.Err is not
// persisted.
func SaveSnapshot(path string, s Snapshot) error {
	if s.Services == nil {
		s.Services = Collection{}
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := renameio.WriteFile(path, data, SnapshotFileMode); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot. Records that are
// not service units are dropped.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}

	services := make(Collection, 0, len(s.Services))
	for _, r := range s.Services {
		if IsServiceUnit(r.Name) {
			services = append(services, r)
		}
	}
	s.Services = services
	return s, nil
}
