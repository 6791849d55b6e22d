package bins

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/catbin/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsAgeRange(t *testing.T) {
	got, err := Labels(17, 85, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"17-24", "25-32", "33-40", "41-48", "49-56", "57-64", "65-72", "73-80", "81-85",
	}, got)
}

func TestLabelsCountMatchesBoundaries(t *testing.T) {
	cases := []struct {
		lower, upper, step float64
		want               int
	}{
		{0, 10, 1, 10},
		{0, 10, 3, 4},
		{0, 10, 10, 1},
		{0, 10, 25, 1},
		{-5, 5, 2, 5},
		{1, 2, 0.25, 4},
	}
	for _, tc := range cases {
		got, err := Labels(tc.lower, tc.upper, tc.step)
		require.NoError(t, err)
		assert.Len(t, got, tc.want, "Labels(%v, %v, %v)", tc.lower, tc.upper, tc.step)
	}
}

func TestLabelsUnevenLastBin(t *testing.T) {
	got, err := Labels(0, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-2", "3-5", "6-8", "9-10"}, got)

	wide, err := Labels(0, 10, 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-10"}, wide)
}

func TestLabelsRealBounds(t *testing.T) {
	got, err := Labels(0.5, 3, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.5-1", "2-3"}, got)
}

func TestLabelsFractionalStepHasNoFloatNoise(t *testing.T) {
	got, err := Labels(0, 1, 0.1)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "0--0.9", got[0])
	assert.Equal(t, "0.3--0.6", got[3])
	assert.Equal(t, "0.9-1", got[9])

	bs, err := New(0.1, 0.5, 0.1)
	require.NoError(t, err)
	starts := make([]float64, len(bs))
	for i, b := range bs {
		starts[i] = b.Start
	}
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, starts)
}

func TestNewAcceptsMaxBins(t *testing.T) {
	bs, err := New(0, MaxBins, 1)
	require.NoError(t, err)
	assert.Len(t, bs, MaxBins)
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	cases := map[string][3]float64{
		"zero step":     {0, 10, 0},
		"negative step": {0, 10, -1},
		"equal bounds":  {5, 5, 1},
		"reversed":      {10, 0, 1},
		"nan":           {math.NaN(), 10, 1},
		"inf":           {0, math.Inf(1), 1},
		"too many bins": {0, 1, 1e-9},
		"huge span":     {-1e308, 1e308, 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Labels(in[0], in[1], in[2])
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValue))
		})
	}
}

func TestAssignBoundaries(t *testing.T) {
	bs, err := New(17, 85, 8)
	require.NoError(t, err)

	cases := []struct {
		v     float64
		label string
		ok    bool
	}{
		{17, "17-24", true},
		{24, "17-24", true},
		{25, "25-32", true},
		{80.9, "73-80", true},
		{81, "81-85", true},
		{85, "81-85", true},
		{86, "", false},
		{16.99, "", false},
		{math.NaN(), "", false},
	}
	for _, tc := range cases {
		idx, ok := Assign(bs, tc.v)
		assert.Equal(t, tc.ok, ok, "Assign(%v)", tc.v)
		if ok {
			assert.Equal(t, tc.label, bs[idx].Label, "Assign(%v)", tc.v)
		}
	}
	_, ok := Assign(nil, 1)
	assert.False(t, ok)
}

func TestBucketAndCounts(t *testing.T) {
	bs, err := New(0, 30, 10)
	require.NoError(t, err)
	values := []float64{1, 9, 10, 29, 30, 31, -1}

	labels, outside := Bucket(bs, values)
	assert.Equal(t, []string{"0-9", "0-9", "10-19", "20-30", "20-30", "", ""}, labels)
	assert.Equal(t, 2, outside)
	assert.Equal(t, []int{2, 1, 2}, Counts(bs, values))
}

func TestAutoCoversColumnRange(t *testing.T) {
	bs, err := Auto([]float64{18.2, 44, 84.5, 23}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, bs)
	assert.Equal(t, 18.0, bs[0].Start)
	assert.Equal(t, 85.0, bs[len(bs)-1].End)
	for _, v := range []float64{18.2, 44, 84.5, 23} {
		_, ok := Assign(bs, v)
		assert.True(t, ok, "value %v should fall in a bin", v)
	}

	single, err := Auto([]float64{7, 7, 7}, 5)
	require.NoError(t, err)
	assert.Equal(t, []Bin{{Start: 7, End: 12, Label: "7-12"}}, single)

	_, err = Auto(nil, 5)
	assert.ErrorIs(t, err, errs.ErrValue)
}
