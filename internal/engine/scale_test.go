package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanneswan/pcapedit/internal/capture"
	"github.com/hanneswan/pcapedit/internal/testutil"
)

func TestCompressHalvesOffsets(t *testing.T) {
	// Records at 0ms, 100ms, 400ms from base.
	in := testutil.MakeStream(0, 100*capture.Microsecond*1000, 400*capture.Microsecond*1000)

	out, err := Compress(in, 2.0)
	require.NoError(t, err)
	require.Len(t, out, 3)

	anchor := in.First().Time()
	assert.Equal(t, anchor, out.First().Time(), "anchor must be unchanged")
	assert.Equal(t, anchor+50_000*capture.Microsecond, out[1].Time())
	assert.Equal(t, anchor+200_000*capture.Microsecond, out[2].Time())
}

func TestStretchDoublesOffsets(t *testing.T) {
	in := testutil.MakeStream(0, 250*capture.Microsecond, 1000*capture.Microsecond)

	out, err := Stretch(in, 2.0)
	require.NoError(t, err)

	anchor := in.First().Time()
	assert.Equal(t, anchor, out.First().Time())
	assert.Equal(t, anchor+500*capture.Microsecond, out[1].Time())
	assert.Equal(t, anchor+2000*capture.Microsecond, out[2].Time())
}

func TestScalePreservesContent(t *testing.T) {
	in := testutil.EvenStream(5, 10*capture.Microsecond)

	out, err := Compress(in, 3.0)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].Payload, out[i].Payload, "payload %d", i)
		assert.Equal(t, in[i].CapturedLen, out[i].CapturedLen)
		assert.Equal(t, in[i].OriginalLen, out[i].OriginalLen)
	}
}

func TestScaleDoesNotMutateInput(t *testing.T) {
	in := testutil.EvenStream(3, capture.Second)
	before := in.Clone()

	_, err := Stretch(in, 0.5)
	require.NoError(t, err)

	assert.Equal(t, before, in)
}

func TestCompressRoundsHalfAwayFromZero(t *testing.T) {
	// Offset of 3us compressed by 2 gives 1.5us, which must round to
	// 2us, not 1us.
	in := testutil.MakeStream(0, 3*capture.Microsecond)

	out, err := Compress(in, 2.0)
	require.NoError(t, err)

	anchor := in.First().Time()
	assert.Equal(t, anchor+2*capture.Microsecond, out[1].Time())
}

func TestScaleAppliesToCumulativeOffset(t *testing.T) {
	// Many identical 1us gaps. Incremental scaling by 1/3 would round
	// each gap to zero and collapse the stream; cumulative scaling
	// keeps the last record at round(99/3) = 33us.
	in := testutil.EvenStream(100, capture.Microsecond)

	out, err := Compress(in, 3.0)
	require.NoError(t, err)

	anchor := in.First().Time()
	assert.Equal(t, anchor+33*capture.Microsecond, out.Last().Time())
}

func TestCompressStretchRoundTrip(t *testing.T) {
	in := testutil.MakeStream(
		0,
		7*capture.Microsecond,
		123*capture.Microsecond,
		999*capture.Microsecond,
		5000*capture.Microsecond,
	)

	compressed, err := Compress(in, 2.5)
	require.NoError(t, err)
	back, err := Stretch(compressed, 2.5)
	require.NoError(t, err)

	for i := range in {
		diff := (back[i].Time() - in[i].Time()).Abs()
		assert.LessOrEqual(t, diff, 2*capture.Microsecond,
			"record %d drifted more than one rounding unit per pass", i)
	}
}

func TestCompressRejectsFactorAtOrBelowOne(t *testing.T) {
	in := testutil.EvenStream(2, capture.Second)

	for _, factor := range []float64{1.0, 0.5, 0.0, -2.0} {
		_, err := Compress(in, factor)
		require.Error(t, err)
		assert.True(t, IsInvalidParameter(err), "factor %v", factor)
	}
}

func TestStretchRejectsNonPositiveFactor(t *testing.T) {
	in := testutil.EvenStream(2, capture.Second)

	for _, factor := range []float64{0.0, -1.0} {
		_, err := Stretch(in, factor)
		require.Error(t, err)
		assert.True(t, IsInvalidParameter(err), "factor %v", factor)
	}

	// Shrinking via a factor below 1 is valid for stretch.
	_, err := Stretch(in, 0.25)
	assert.NoError(t, err)
}

func TestScaleRejectsEmptyStream(t *testing.T) {
	_, err := Compress(capture.Stream{}, 2.0)
	require.Error(t, err)
	assert.True(t, IsEmptyStream(err))

	_, err = Stretch(capture.Stream{}, 2.0)
	require.Error(t, err)
	assert.True(t, IsEmptyStream(err))
}

func TestScaleSingleRecord(t *testing.T) {
	in := testutil.MakeStream(0)

	out, err := Compress(in, 10.0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Time(), out[0].Time())
}
