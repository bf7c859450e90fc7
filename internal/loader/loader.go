// Package loader reads tracking container files into a TrackingTensor.
//
// A container is a JSON document with two datasets, mirroring the layout of
// common pose-tracking exports:
//
//	{
//	  "tracks": [frame][node][coordinate][instance] numbers, null = missing,
//	  "node_names": ["head", "bodycenter", ...]
//	}
//
// The loader validates the container's presence and shape; the analysis core
// assumes loaded data has already passed these checks.
package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/openbehavior/trackkit/internal/kinematics"
)

// maxContainerSize bounds how much JSON the loader will read (256MB).
const maxContainerSize = 256 * 1024 * 1024

type container struct {
	Tracks    [][][][]*float64 `json:"tracks"`
	NodeNames []string         `json:"node_names"`
}

// Load reads a tracking container file and returns its tensor and ordered
// node-name list. Nulls in the tracks dataset become NaN. Ragged arrays, a
// coordinate axis that is not length 2, or a node axis that disagrees with
// node_names are rejected.
func Load(path string) (*kinematics.TrackingTensor, []string, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, nil, fmt.Errorf("tracking container must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat tracking container: %w", err)
	}
	if fileInfo.Size() > maxContainerSize {
		return nil, nil, fmt.Errorf("tracking container too large: %d bytes (max %d)", fileInfo.Size(), maxContainerSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tracking container: %w", err)
	}

	var c container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("failed to parse tracking container: %w", err)
	}
	if c.Tracks == nil {
		return nil, nil, fmt.Errorf("tracking container %s has no 'tracks' dataset", cleanPath)
	}
	if len(c.NodeNames) == 0 {
		return nil, nil, fmt.Errorf("tracking container %s has no 'node_names' dataset", cleanPath)
	}

	tensor, err := tensorFromNested(c.Tracks)
	if err != nil {
		return nil, nil, fmt.Errorf("tracking container %s: %w", cleanPath, err)
	}
	if tensor.Nodes() != len(c.NodeNames) {
		return nil, nil, fmt.Errorf("tracking container %s: tracks have %d nodes but node_names lists %d",
			cleanPath, tensor.Nodes(), len(c.NodeNames))
	}
	return tensor, c.NodeNames, nil
}

func tensorFromNested(tracks [][][][]*float64) (*kinematics.TrackingTensor, error) {
	frames := len(tracks)
	nodes, instances := 0, 0
	if frames > 0 {
		nodes = len(tracks[0])
		if nodes > 0 && len(tracks[0][0]) > 0 {
			instances = len(tracks[0][0][0])
		}
	}

	flat := make([]float64, 0, frames*nodes*kinematics.NumCoords*instances)
	for f, frame := range tracks {
		if len(frame) != nodes {
			return nil, fmt.Errorf("frame %d has %d nodes, expected %d", f, len(frame), nodes)
		}
		for n, node := range frame {
			if len(node) != kinematics.NumCoords {
				return nil, fmt.Errorf("frame %d node %d has %d coordinates, expected %d",
					f, n, len(node), kinematics.NumCoords)
			}
			for c, coord := range node {
				if len(coord) != instances {
					return nil, fmt.Errorf("frame %d node %d coord %d has %d instances, expected %d",
						f, n, c, len(coord), instances)
				}
				for _, v := range coord {
					if v == nil {
						flat = append(flat, math.NaN())
					} else {
						flat = append(flat, *v)
					}
				}
			}
		}
	}
	return kinematics.NewTrackingTensor(flat, frames, nodes, instances)
}
