package bankreport

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/bankreport/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatePeriods(t *testing.T) {
	got := CandidatePeriods(date.New(2025, 8, 14))
	require.Len(t, got, 2)
	assert.Equal(t, "20241231", got[0].Key())
	assert.Equal(t, "20250930", got[1].Key())
}

func TestFirstSuccess(t *testing.T) {
	boom := errors.New("boom")
	testCases := []struct {
		name      string
		answers   map[int]error // candidate -> error, nil means success
		want      int
		wantCalls int
		wantErr   error
	}{
		{name: "first wins", answers: map[int]error{1: nil, 2: nil}, want: 1, wantCalls: 1},
		{name: "error then success", answers: map[int]error{1: boom, 2: nil}, want: 2, wantCalls: 2},
		{name: "empty then success", answers: map[int]error{1: ErrNoData, 2: nil}, want: 2, wantCalls: 2},
		{name: "nothing", answers: map[int]error{1: ErrNoData, 2: boom}, wantCalls: 2, wantErr: boom},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			got, err := FirstSuccess(context.Background(), []int{1, 2}, func(ctx context.Context, c int) (int, error) {
				calls++
				if err := tc.answers[c]; err != nil {
					return 0, err
				}
				return c, nil
			})
			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrNoData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFirstSuccess_NoCandidates(t *testing.T) {
	_, err := FirstSuccess(context.Background(), nil, func(context.Context, string) (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFirstSuccess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FirstSuccess(ctx, []int{1}, func(context.Context, int) (int, error) { return 1, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchFundamentals(t *testing.T) {
	today := date.New(2025, 8, 14)
	p := &fakeProvider{
		indicators: map[string]map[string][]FundamentalRecord{
			"601398.SH": {
				"20241231": {{ROE: dec("9.88"), DebtToAssets: dec("91.9")}},
				"20250930": {{ROE: dec("7.1")}},
			},
		},
		indicatorErrs: map[string]map[string]error{
			"601939.SH": {"20241231": errors.New("rate limited")},
		},
	}
	p.indicators["601939.SH"] = map[string][]FundamentalRecord{"20250930": {{ROE: dec("8.2")}}}
	reg := append(smallRegistry, Instrument{ID: "601288.SH", Name: "农业银行"})

	got := FetchFundamentals(context.Background(), p, reg, today)
	require.Len(t, got, 3)

	assert.True(t, got[0].OK())
	assert.Equal(t, "20241231", got[0].Value.Period.Key(), "first candidate wins when both have data")
	assert.True(t, got[0].Value.ROE.Equal(dec("9.88")))
	assert.Equal(t, "601398.SH", got[0].Value.InstrumentID)

	assert.True(t, got[1].OK())
	assert.Equal(t, "20250930", got[1].Value.Period.Key())

	assert.False(t, got[2].OK())
	assert.ErrorIs(t, got[2].Err, ErrNoData)

	assert.Len(t, Values(got), 2)
}
