package vizsnap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedviz/vizsnap/compress"
	"github.com/schedviz/vizsnap/errs"
	"github.com/schedviz/vizsnap/section"
	"github.com/schedviz/vizsnap/snapshot"
)

// buildSnapshot packs the reference end-to-end scenario: 3 GPU types,
// 12 units, 2 rounds, job id 70000 on unit 8 at round 1.
func buildSnapshot(t *testing.T, withSharing bool) []byte {
	t.Helper()

	sd := &snapshot.SnapshotData{
		Config: snapshot.Config{
			Policy: "max-min-fairness",
			GPUTypes: []snapshot.GPUType{
				{Name: "k80", Count: 4, GPUsPerNode: 4},
				{Name: "p100", Count: 4, GPUsPerNode: 4},
				{Name: "v100", Count: 4, GPUsPerNode: 4},
			},
			JobTypes: []snapshot.JobType{
				{ID: 0, Name: "ResNet-18 (batch size 64)", Category: "resnet"},
			},
		},
		Jobs: []section.JobMeta{
			{JobID: 1, TypeID: 0, ScaleFactor: 1, ArrivalRound: 0},
			{JobID: 70000, TypeID: 0, ScaleFactor: 1, ArrivalRound: 1},
		},
		Rounds: []snapshot.Round{
			{
				Round:       0,
				JobsRunning: 1,
				GPUUsed:     []uint16{1, 0, 0},
				Allocations: []uint32{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			},
			{
				Round:       1,
				SimTime:     30,
				JobsRunning: 2,
				JobsQueued:  0,
				GPUUsed:     []uint16{1, 0, 1},
				Allocations: []uint32{1, 0, 0, 0, 0, 0, 0, 0, 70000, 0, 0, 0},
			},
		},
		Queues: [][]uint32{{70000}, {}},
	}
	if withSharing {
		sd.Sharing = [][]snapshot.SharingEntry{nil, {{Unit: 8, Slots: [4]uint32{70000, 1, 0, 0}}}}
	}

	data, err := snapshot.Encode(sd)
	require.NoError(t, err)

	return data
}

func TestLoad_EndToEnd(t *testing.T) {
	f, err := Load(buildSnapshot(t, false))
	require.NoError(t, err)

	hdr := f.Decoder().Header()
	require.Equal(t, uint8(3), hdr.GPUTypeCount)
	require.Equal(t, uint16(12), hdr.TotalUnits)

	rounds, err := f.Rounds(0, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(70000), rounds[1].Allocations[8])
	require.Equal(t, uint16(2), rounds[1].JobsRunning)

	single, err := f.Rounds(1, 1)
	require.NoError(t, err)
	require.Equal(t, rounds[1], single[0])

	require.Equal(t, []uint32{70000}, f.QueueAt(0))
	require.Empty(t, f.QueueAt(1))
	require.Nil(t, f.QueueAt(5), "out of range round has no queue")

	require.Nil(t, f.SharingAt(1), "v1 file has no sharing")

	_, err = f.Rounds(2, 1)
	require.ErrorIs(t, err, errs.ErrRoundOutOfRange)
}

func TestLoad_Sharing(t *testing.T) {
	f, err := Load(buildSnapshot(t, true))
	require.NoError(t, err)
	require.True(t, f.Decoder().HasSharing())

	require.Nil(t, f.SharingAt(0))
	require.Equal(t, snapshot.SharingMap{8: {70000, 1, 0, 0}}, f.SharingAt(1))
	require.Nil(t, f.SharingAt(9))
}

func TestLoad_Compressed(t *testing.T) {
	raw := buildSnapshot(t, false)

	codec, err := compress.GetCodec(compress.TypeZstd)
	require.NoError(t, err)
	packed, err := codec.Compress(raw)
	require.NoError(t, err)

	f, err := Load(packed)
	require.NoError(t, err)

	rounds, err := f.Rounds(0, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(70000), rounds[1].Allocations[8])
}

func TestLoad_NotASnapshot(t *testing.T) {
	_, err := Load(make([]byte, 512))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestLoadFile(t *testing.T) {
	raw := buildSnapshot(t, false)
	path := filepath.Join(t.TempDir(), "run.viz.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "max-min-fairness", f.Decoder().Config().Policy)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.viz.bin"))
	require.Error(t, err)
}
