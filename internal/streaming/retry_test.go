package streaming_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/streaming"
)

func TestRetryPolicyRetriesUntilSuccess(t *testing.T) {
	policy := streaming.DefaultRetryPolicy()
	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryPolicyGivesUpAfterMaxRetries(t *testing.T) {
	policy := streaming.DefaultRetryPolicy()
	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		return errors.New("always fails")
	})
	require.Error(t, err)
	assert.Equal(t, int(policy.MaxRetries)+1, attempts)
}

func TestRetryPolicyRespectsCancelledContext(t *testing.T) {
	policy := streaming.DefaultRetryPolicy()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := policy.Do(ctx, func() error {
		return errors.New("should not be retried")
	})
	require.Error(t, err)
}
