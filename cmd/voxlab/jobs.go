package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/attribute"
	"github.com/katalvlaran/voxlab/batch"
	"github.com/katalvlaran/voxlab/boundary"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/extrema"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/logging"
	"github.com/katalvlaran/voxlab/raster"
)

// jobFile is the TOML document read by "voxlab batch".
type jobFile struct {
	Workers int            `toml:"workers"`
	Logging logging.Config `toml:"logging"`
	Jobs    []jobSpec      `toml:"job"`
}

// jobSpec describes one operation. Fields that do not apply to Op are
// ignored.
type jobSpec struct {
	Name         string  `toml:"name"`
	Op           string  `toml:"op"`
	Input        string  `toml:"input"`
	Output       string  `toml:"output"`
	Connectivity int     `toml:"connectivity"` // 0 picks 8 (2D) or 26 (3D)
	Format       int     `toml:"format"`       // label bits; 0 picks 16
	Background   float32 `toml:"background"`   // regions
	Placement    string  `toml:"placement"`    // boundary
	Kind         string  `toml:"kind"`         // extrema or attribute filter kind
	Measure      string  `toml:"measure"`      // attribute
	Threshold    float64 `toml:"threshold"`    // attribute
}

// loadJobs decodes and validates a job file. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func loadJobs(path string) (*jobFile, error) {
	var jf jobFile
	md, err := toml.DecodeFile(path, &jf)
	if err != nil {
		return nil, fmt.Errorf("could not decode TOML job file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", voxlab.ErrConfiguration, path, strings.Join(keys, ", "))
	}
	if len(jf.Jobs) == 0 {
		return nil, fmt.Errorf("%w: %s defines no [[job]]", voxlab.ErrConfiguration, path)
	}
	for i := range jf.Jobs {
		j := &jf.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if j.Input == "" || j.Output == "" {
			return nil, fmt.Errorf("%w: job %q needs input and output", voxlab.ErrConfiguration, j.Name)
		}
	}

	return &jf, nil
}

// task turns the spec into a batch task over in. Every parameter is
// validated here, before any job of the batch starts.
func (j jobSpec) task(in *raster.Raster) (batch.Task, error) {
	conn, err := j.connectivity(in)
	if err != nil {
		return batch.Task{}, err
	}
	format := labeling.DefaultFormat
	if j.Format != 0 {
		if format, err = raster.ParseFormat(j.Format); err != nil {
			return batch.Task{}, err
		}
	}

	switch j.Op {
	case batch.OpLabel:
		return batch.LabelTask(j.Name, in, conn, format), nil
	case batch.OpRegions:
		return batch.RegionsTask(j.Name, in, conn, format, j.Background), nil
	case batch.OpBoundary:
		p, err := boundary.ParsePlacement(j.Placement)
		if err != nil {
			return batch.Task{}, err
		}
		return batch.BoundaryTask(j.Name, in, conn, boundary.WithPlacement(p), boundary.WithFormat(format)), nil
	case batch.OpExtrema:
		kind := extrema.Maxima
		if j.Kind != "" {
			if kind, err = extrema.ParseKind(j.Kind); err != nil {
				return batch.Task{}, err
			}
		}
		return batch.ExtremaTask(j.Name, in, kind, conn), nil
	case batch.OpAttribute:
		kind := attribute.Opening
		if j.Kind != "" {
			if kind, err = attribute.ParseFilterKind(j.Kind); err != nil {
				return batch.Task{}, err
			}
		}
		m := attribute.Area
		if in.Dims() == 3 {
			m = attribute.Volume
		}
		if j.Measure != "" {
			if m, err = attribute.ParseMeasure(j.Measure); err != nil {
				return batch.Task{}, err
			}
		}
		// Validate now; the task rebuilds the filter with its own context.
		if _, err := attribute.New(kind, m, j.Threshold, conn); err != nil {
			return batch.Task{}, err
		}
		return batch.AttributeTask(j.Name, in, kind, m, j.Threshold, conn), nil
	}

	return batch.Task{}, fmt.Errorf("%w: job %q has unknown op %q", voxlab.ErrConfiguration, j.Name, j.Op)
}

func (j jobSpec) connectivity(in *raster.Raster) (connectivity.Connectivity, error) {
	if j.Connectivity == 0 {
		if in.Dims() == 3 {
			return connectivity.C26, nil
		}
		return connectivity.C8, nil
	}

	return connectivity.Parse(j.Connectivity)
}
