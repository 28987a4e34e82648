package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanneswan/pcapedit/internal/capture"
	"github.com/hanneswan/pcapedit/internal/testutil"
)

func TestAugmentCountAndSpacing(t *testing.T) {
	// Two records 50us apart, tripled: six records over the same 50us
	// span, 10us apart.
	in := testutil.EvenStream(2, 50*capture.Microsecond)

	out, err := Augment(in, 3)
	require.NoError(t, err)
	require.Len(t, out, 6)

	base := in.First().Time()
	for i, rec := range out {
		assert.Equal(t, base+capture.Nanos(i)*10*capture.Microsecond, rec.Time(), "record %d", i)
	}
	assert.Equal(t, in.Span(), out.Span(), "span must be preserved")
}

func TestAugmentCyclesSourceContent(t *testing.T) {
	in := testutil.EvenStream(3, 30*capture.Microsecond)

	out, err := Augment(in, 2)
	require.NoError(t, err)
	require.Len(t, out, 6)

	for i, rec := range out {
		assert.Equal(t, in[i%3].Payload, rec.Payload, "record %d", i)
		assert.Equal(t, in[i%3].CapturedLen, rec.CapturedLen)
		assert.Equal(t, in[i%3].OriginalLen, rec.OriginalLen)
	}
}

func TestAugmentTimestampsNonDecreasing(t *testing.T) {
	// A span that does not divide evenly still yields a monotonic,
	// span-preserving (within one unit) output.
	in := testutil.MakeStream(0, 7*capture.Microsecond, 99*capture.Microsecond)

	out, err := Augment(in, 4)
	require.NoError(t, err)
	require.Len(t, out, 12)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i].Time(), out[i-1].Time(), "record %d", i)
	}
	assert.LessOrEqual(t, (in.Span() - out.Span()).Abs(), capture.Microsecond)
}

func TestAugmentSingleRecord(t *testing.T) {
	in := testutil.MakeStream(0)

	out, err := Augment(in, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Zero span: every copy lands on the original instant.
	for _, rec := range out {
		assert.Equal(t, in[0].Time(), rec.Time())
	}
}

func TestAugmentRejectsSmallMultiplier(t *testing.T) {
	in := testutil.EvenStream(2, capture.Second)

	for _, m := range []int{1, 0, -1} {
		_, err := Augment(in, m)
		require.Error(t, err, "m=%d", m)
		assert.True(t, IsInvalidParameter(err), "m=%d", m)
	}
}

func TestAugmentRejectsEmptyStream(t *testing.T) {
	_, err := Augment(capture.Stream{}, 2)
	require.Error(t, err)
	assert.True(t, IsEmptyStream(err))
}
