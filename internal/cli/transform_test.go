package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanneswan/pcapedit/internal/capture"
	"github.com/hanneswan/pcapedit/internal/pcapio"
	"github.com/hanneswan/pcapedit/internal/testutil"
)

func writeTestPcap(t *testing.T, stream capture.Stream) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.pcap")
	hdr := pcapio.Header{LinkType: layers.LinkTypeEthernet, Snaplen: 65536}
	require.NoError(t, pcapio.Save(path, hdr, stream))
	return path
}

func TestTimeCompressCommand(t *testing.T) {
	in := writeTestPcap(t, testutil.EvenStream(4, 100_000*capture.Microsecond))
	out := filepath.Join(t.TempDir(), "out.pcap")

	buf := &bytes.Buffer{}
	cmd := newTimeCompressCommand(&RootOptions{Format: "text", Out: buf})
	cmd.SetArgs([]string{in, out, "--factor", "2.0"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "4 records in, 4 records out")

	res, err := pcapio.Load(out)
	require.NoError(t, err)
	require.Len(t, res.Stream, 4)
	// 300ms span compressed to 150ms.
	assert.Equal(t, 150_000*capture.Microsecond, res.Stream.Span())
}

func TestTimeStretchCommandJSON(t *testing.T) {
	in := writeTestPcap(t, testutil.EvenStream(3, 1000*capture.Microsecond))
	out := filepath.Join(t.TempDir(), "out.pcap")

	buf := &bytes.Buffer{}
	cmd := newTimeStretchCommand(&RootOptions{Format: "json", Out: buf})
	cmd.SetArgs([]string{in, out, "--factor", "3.0"})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestDiluteCommand(t *testing.T) {
	in := writeTestPcap(t, testutil.EvenStream(10, 10*capture.Microsecond))
	out := filepath.Join(t.TempDir(), "out.pcap")

	buf := &bytes.Buffer{}
	cmd := newDiluteCommand(&RootOptions{Format: "text", Out: buf})
	cmd.SetArgs([]string{in, out, "--factor", "2"})

	require.NoError(t, cmd.Execute())

	res, err := pcapio.Load(out)
	require.NoError(t, err)
	assert.Len(t, res.Stream, 5)
}

func TestAugmentCommand(t *testing.T) {
	in := writeTestPcap(t, testutil.EvenStream(2, 50*capture.Microsecond))
	out := filepath.Join(t.TempDir(), "out.pcap")

	buf := &bytes.Buffer{}
	cmd := newAugmentCommand(&RootOptions{Format: "text", Out: buf})
	cmd.SetArgs([]string{in, out, "--factor", "3"})

	require.NoError(t, cmd.Execute())

	res, err := pcapio.Load(out)
	require.NoError(t, err)
	assert.Len(t, res.Stream, 6)
	assert.Equal(t, 50*capture.Microsecond, res.Stream.Span())
}

func TestInvalidFactorLeavesNoOutputFile(t *testing.T) {
	in := writeTestPcap(t, testutil.EvenStream(3, capture.Second))
	out := filepath.Join(t.TempDir(), "out.pcap")

	cmd := newTimeCompressCommand(&RootOptions{Format: "text", Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{in, out, "--factor", "0.5"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "validation failure must not create the output file")
}

func TestDiluteInsufficientPacketsLeavesNoOutputFile(t *testing.T) {
	in := writeTestPcap(t, testutil.EvenStream(2, capture.Second))
	out := filepath.Join(t.TempDir(), "out.pcap")

	cmd := newDiluteCommand(&RootOptions{Format: "text", Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{in, out, "--factor", "5"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTransformMissingInputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pcap")

	cmd := newTimeStretchCommand(&RootOptions{Format: "text", Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.pcap"), out, "--factor", "2.0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "nope.pcap")
}
