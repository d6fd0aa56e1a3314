package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedviz/vizsnap/errs"
)

func sampleConfig() Config {
	return Config{
		Policy: "max-min-fairness",
		GPUTypes: []GPUType{
			{Name: "k80", Count: 36, GPUsPerNode: 4},
			{Name: "p100", Count: 36, GPUsPerNode: 4},
			{Name: "v100", Count: 36, GPUsPerNode: 4},
		},
		MeasurementWindow: MeasurementWindow{StartJob: 4000, EndJob: 5000},
		JobTypes: []JobType{
			{ID: 0, Name: "ResNet-18 (batch size 64)", Category: "resnet"},
			{ID: 1, Name: "Transformer (batch size 32)", Category: "transformer"},
		},
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("Roundtrip with NUL padding", func(t *testing.T) {
		original := sampleConfig()
		doc, err := EncodeConfig(&original)
		require.NoError(t, err)

		// As stored on disk: padded to the section boundary.
		padded := append(doc, make([]byte, 8-len(doc)%8)...)

		cfg, err := ParseConfig(padded)
		require.NoError(t, err)
		require.Equal(t, original, cfg)
	})

	t.Run("Invalid document", func(t *testing.T) {
		_, err := ParseConfig([]byte("{not json"))
		require.ErrorIs(t, err, errs.ErrInvalidConfig)
	})

	t.Run("Optional gpus_per_node", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`{"policy":"fifo","gpu_types":[{"name":"v100","count":8}],"job_types":[]}`))
		require.NoError(t, err)
		require.Zero(t, cfg.GPUTypes[0].GPUsPerNode)
		require.Equal(t, 8, cfg.TotalUnits())
	})
}

func TestConfig_TotalUnits(t *testing.T) {
	cfg := sampleConfig()
	require.Equal(t, 108, cfg.TotalUnits())

	empty := Config{}
	require.Zero(t, empty.TotalUnits())
}

func TestConfig_JobTypeByID(t *testing.T) {
	cfg := sampleConfig()

	jt, ok := cfg.JobTypeByID(1)
	require.True(t, ok)
	require.Equal(t, "transformer", jt.Category)

	_, ok = cfg.JobTypeByID(99)
	require.False(t, ok)
}
