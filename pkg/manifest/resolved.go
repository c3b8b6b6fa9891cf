package manifest

import (
	"encoding/json"

	apperrors "github.com/matzehuels/spmaudit/pkg/errors"
)

// Pin is one lockfile entry: a dependency's resolved version and source
// location. Version is empty for branch- or revision-only pins.
type Pin struct {
	Identity string
	Location string
	Version  string
}

// resolvedFile covers the version 2/3 lockfile layout; resolvedFileV1 the
// legacy layout nested under "object".
type resolvedFile struct {
	Version int           `json:"version"`
	Pins    []resolvedPin `json:"pins"`
	Object  *struct {
		Pins []resolvedPinV1 `json:"pins"`
	} `json:"object"`
}

type resolvedPin struct {
	Identity string `json:"identity"`
	Location string `json:"location"`
	State    struct {
		Version string `json:"version"`
	} `json:"state"`
}

type resolvedPinV1 struct {
	Package       string `json:"package"`
	RepositoryURL string `json:"repositoryURL"`
	State         struct {
		Version string `json:"version"`
	} `json:"state"`
}

// ParsePackageResolved decodes a Package.resolved lockfile into pins.
// Both the current pins-array layout and the legacy object-wrapped layout
// are accepted.
func ParsePackageResolved(content []byte) ([]Pin, error) {
	var file resolvedFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "decode lockfile")
	}

	if file.Object != nil {
		pins := make([]Pin, 0, len(file.Object.Pins))
		for _, p := range file.Object.Pins {
			pins = append(pins, Pin{
				Identity: p.Package,
				Location: p.RepositoryURL,
				Version:  p.State.Version,
			})
		}
		return pins, nil
	}

	pins := make([]Pin, 0, len(file.Pins))
	for _, p := range file.Pins {
		pins = append(pins, Pin{
			Identity: p.Identity,
			Location: p.Location,
			Version:  p.State.Version,
		})
	}
	return pins, nil
}
