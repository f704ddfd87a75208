package oneshot_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/concurrency/threads/internal/oneshot"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	const msg = "I was created in the child thread, will be sent to main thread"
	tx, rx := oneshot.New[string]()

	go func() {
		defer tx.Close()
		if err := tx.Send(msg); err != nil {
			t.Errorf("send: %v", err)
		}
	}()

	got, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, []byte(msg), []byte(got))
}

func TestSendDoesNotWaitForReceiver(t *testing.T) {
	t.Parallel()

	tx, rx := oneshot.New[int]()
	done := make(chan error, 1)
	go func() { done <- tx.Send(7) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Send blocked with no receiver")
	}

	v, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestRecvBlocksUntilSend(t *testing.T) {
	t.Parallel()

	tx, rx := oneshot.New[string]()
	got := make(chan string, 1)
	go func() {
		v, _ := rx.Recv()
		got <- v
	}()

	select {
	case v := <-got:
		t.Fatalf("Recv returned %q before any send", v)
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, tx.Send("late"))
	assert.Equal(t, "late", <-got)
}

func TestRecvAfterCloseWithoutValue(t *testing.T) {
	t.Parallel()

	tx, rx := oneshot.New[string]()

	// Producer fails before sending; its deferred Close must wake the receiver.
	go func() {
		defer tx.Close()
		defer func() { _ = recover() }()
		panic("producer failed")
	}()

	v, err := rx.Recv()
	assert.ErrorIs(t, err, oneshot.ErrClosed)
	assert.Empty(t, v)
}

func TestDoubleSend(t *testing.T) {
	t.Parallel()

	tx, rx := oneshot.New[int]()
	require.NoError(t, tx.Send(1))
	assert.ErrorIs(t, tx.Send(2), oneshot.ErrSent)

	v, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSendAfterClose(t *testing.T) {
	t.Parallel()

	tx, _ := oneshot.New[int]()
	tx.Close()
	tx.Close()
	assert.ErrorIs(t, tx.Send(1), oneshot.ErrClosed)
}

func TestCloseAfterSendKeepsValue(t *testing.T) {
	t.Parallel()

	tx, rx := oneshot.New[int]()
	require.NoError(t, tx.Send(42))
	tx.Close()

	v, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSecondRecv(t *testing.T) {
	t.Parallel()

	tx, rx := oneshot.New[int]()
	require.NoError(t, tx.Send(1))
	_, err := rx.Recv()
	require.NoError(t, err)

	_, err = rx.Recv()
	assert.ErrorIs(t, err, oneshot.ErrReceived)
}

func Example() {
	tx, rx := oneshot.New[string]()
	go func() {
		defer tx.Close()
		_ = tx.Send("hello")
	}()

	v, err := rx.Recv()
	fmt.Println(v, err)

	// Output:
	// hello <nil>
}
