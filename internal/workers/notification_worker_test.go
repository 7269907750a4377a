package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardswap/internal/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(subject string) NotificationJob {
	return NotificationJob{
		Kind:  KindSubmission,
		Email: &email.Email{To: []string{"ops@example.com"}, Subject: subject},
	}
}

func TestNotificationWorker_Delivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := email.NewMockProvider()
	w := NewNotificationWorker(provider, 4)
	w.Start(ctx)

	require.True(t, w.Enqueue(job("first")))
	require.True(t, w.Enqueue(job("second")))

	assert.Eventually(t, func() bool {
		return len(provider.Sent()) == 2
	}, time.Second, 10*time.Millisecond)

	sent := provider.Sent()
	assert.Equal(t, "first", sent[0].Subject)
	assert.Equal(t, "second", sent[1].Subject)
}

func TestNotificationWorker_ErrorsArePublished(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := email.NewMockProvider()
	provider.SetErr(errors.New("smtp unavailable"))

	w := NewNotificationWorker(provider, 4)
	w.Start(ctx)
	require.True(t, w.Enqueue(job("boom")))

	select {
	case err := <-w.Errors():
		assert.Contains(t, err.Error(), "smtp unavailable")
		assert.Contains(t, err.Error(), KindSubmission)
	case <-time.After(time.Second):
		t.Fatal("expected delivery error")
	}
}

func TestNotificationWorker_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	// Worker не запущен: очередь никто не читает
	w := NewNotificationWorker(email.NewMockProvider(), 1)

	assert.True(t, w.Enqueue(job("queued")))

	done := make(chan bool, 1)
	go func() { done <- w.Enqueue(job("dropped")) }()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestNotificationWorker_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	provider := email.NewMockProvider()
	w := NewNotificationWorker(provider, 4)
	w.Start(ctx)
	w.LogErrors(ctx)
	cancel()

	// после остановки письма остаются в очереди
	time.Sleep(50 * time.Millisecond)
	w.Enqueue(job("late"))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, provider.Sent())
}
