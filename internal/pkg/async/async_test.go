package async

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitAll(t *testing.T) {
	var ran int32
	ok := func() error {
		atomic.AddInt32(&ran, 1)
		return nil
	}
	assert.NoError(t, WaitAll(Errable(ok), Errable(ok), Errable(ok)))
	assert.EqualValues(t, 3, ran)
	assert.NoError(t, WaitAll())
}

func TestWaitAllReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := WaitAll(
		Errable(func() error { return nil }),
		Errable(func() error {
			time.Sleep(5 * time.Millisecond)
			return boom
		}),
	)
	assert.ErrorIs(t, err, boom)
}
