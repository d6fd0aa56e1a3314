package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/schedviz/vizsnap/errs"
)

// GPUType describes one resource type of the simulated cluster.
type GPUType struct {
	// Name is the type's display name, e.g. "v100".
	Name string `json:"name"`
	// Count is the number of allocatable units of this type.
	Count int `json:"count"`
	// GPUsPerNode is the optional units-per-physical-node figure used
	// for fragmentation views, 0 when the encoder omitted it.
	GPUsPerNode int `json:"gpus_per_node,omitempty"`
}

// JobType is one entry of the job-type catalog.
type JobType struct {
	ID int `json:"id"`
	// Name is the full display name, e.g. "ResNet-18 (batch size 64)".
	Name string `json:"name"`
	// Category is the coarse label the rendering layer groups by.
	Category string `json:"category"`
}

// MeasurementWindow is the job-id window the simulator's summary metrics
// were measured over.
type MeasurementWindow struct {
	StartJob int `json:"start_job"`
	EndJob   int `json:"end_job"`
}

// Config is the embedded configuration document: cluster topology and the
// job-type catalog. It is parsed once per file and treated as read-only
// reference data for the session.
type Config struct {
	Policy            string            `json:"policy"`
	GPUTypes          []GPUType         `json:"gpu_types"`
	MeasurementWindow MeasurementWindow `json:"measurement_window"`
	JobTypes          []JobType         `json:"job_types"`
}

// TotalUnits returns the total allocatable unit count across all types.
func (c *Config) TotalUnits() int {
	total := 0
	for _, gt := range c.GPUTypes {
		total += gt.Count
	}

	return total
}

// JobTypeByID looks up a catalog entry by its id.
func (c *Config) JobTypeByID(id int) (JobType, bool) {
	for _, jt := range c.JobTypes {
		if jt.ID == id {
			return jt, true
		}
	}

	return JobType{}, false
}

// ParseConfig parses the embedded config document from its byte range,
// which runs from the header's ConfigOffset to the start of the next
// section. The range is NUL padded to the 8-byte boundary; trailing zero
// bytes are trimmed before parsing.
//
// A parse failure is fatal for the file, like a header failure.
func ParseConfig(data []byte) (Config, error) {
	doc := bytes.TrimRight(data, "\x00")

	var cfg Config
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// EncodeConfig serializes the config document exactly as ParseConfig
// expects it back, without padding. The writer pads it to the section
// boundary.
func EncodeConfig(cfg *Config) ([]byte, error) {
	return json.Marshal(cfg)
}
