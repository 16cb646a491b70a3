package assertions_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/assertions"
	"github.com/oraclelabs/dapi-server/testing/require"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestAssert_Equal(t *testing.T) {
	tests := []struct {
		name        string
		expected    interface{}
		actual      interface{}
		msg         []interface{}
		expectedErr string
	}{
		{
			name:     "equal values",
			expected: 42,
			actual:   42,
		},
		{
			name:        "non-equal values",
			expected:    42,
			actual:      41,
			expectedErr: "Values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message with params",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values (%d) are not equal", 42},
			expectedErr: "Custom values (42) are not equal, want: 42 (int), got: 41 (int)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verify := func(got string) {
				if tt.expectedErr == "" && got != "" {
					t.Errorf("Unexpected error: %v", got)
				} else if !strings.Contains(got, tt.expectedErr) {
					t.Errorf("got: %q, want: %q", got, tt.expectedErr)
				}
			}
			tb := &assertions.TBMock{}
			assert.Equal(tb, tt.expected, tt.actual, tt.msg...)
			verify(tb.ErrorfMsg)
			tb = &assertions.TBMock{}
			require.Equal(tb, tt.expected, tt.actual, tt.msg...)
			verify(tb.FatalfMsg)
		})
	}
}

func TestAssert_DeepEqual(t *testing.T) {
	tb := &assertions.TBMock{}
	assert.DeepEqual(tb, []int{1, 2}, []int{1, 2})
	assert.Equal(t, "", tb.ErrorfMsg)

	assert.DeepEqual(tb, []int{1, 2}, []int{1, 3})
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "Values are not equal"))
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "modified"))
}

func TestAssert_NoError(t *testing.T) {
	tb := &assertions.TBMock{}
	require.NoError(tb, nil)
	assert.Equal(t, "", tb.FatalfMsg)

	require.NoError(tb, errors.New("failed"), "Could not do %s", "thing")
	assert.Equal(t, true, strings.Contains(tb.FatalfMsg, "Could not do thing: failed"))
}

func TestAssert_ErrorContains(t *testing.T) {
	tb := &assertions.TBMock{}
	assert.ErrorContains(tb, "another", errors.New("failed"))
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "Expected error not returned, got: failed, want: another"))

	tb = &assertions.TBMock{}
	assert.ErrorContains(tb, "failed", errors.New("some failed thing"))
	assert.Equal(t, "", tb.ErrorfMsg)

	tb = &assertions.TBMock{}
	assert.ErrorContains(tb, "failed", nil)
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "got: <nil>"))
}

func TestAssert_ErrorIs(t *testing.T) {
	target := errors.New("target")
	wrapped := errors.New("other")

	tb := &assertions.TBMock{}
	assert.ErrorIs(tb, target, target)
	assert.Equal(t, "", tb.ErrorfMsg)

	assert.ErrorIs(tb, wrapped, target)
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "Incorrect error, expected target, got other"))
}

func TestAssert_NotNil(t *testing.T) {
	var nilPtr *int
	tb := &assertions.TBMock{}
	assert.NotNil(tb, nilPtr)
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "Unexpected nil value"))

	tb = &assertions.TBMock{}
	assert.NotNil(tb, 1)
	assert.Equal(t, "", tb.ErrorfMsg)
}

func TestAssert_LogsContain(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.WithField("beaconId", "0xabc").Info("Updated beacon")

	tb := &assertions.TBMock{}
	assert.LogsContain(tb, hook, "Updated beacon")
	assert.Equal(t, "", tb.ErrorfMsg)
	assert.LogsContain(tb, hook, "0xabc")
	assert.Equal(t, "", tb.ErrorfMsg)

	assert.LogsDoNotContain(tb, hook, "Updated beacon")
	assert.Equal(t, true, strings.Contains(tb.ErrorfMsg, "Unexpected log found"))

	tb = &assertions.TBMock{}
	hook.Reset()
	logger.Log(logrus.InfoLevel, "something else")
	require.LogsContain(tb, hook, "Updated beacon")
	assert.Equal(t, true, strings.Contains(tb.FatalfMsg, "Expected log not found"))
}
