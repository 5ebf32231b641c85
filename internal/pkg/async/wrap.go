// Package async runs independent checks concurrently.
package async

// Errable runs fn in its own goroutine; the channel yields its error once.
func Errable(fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}
