package async

import "sync"

// WaitAll waits for all the given errables to finish, and returns
// the first error received from them, if any.
func WaitAll(chans ...<-chan error) error {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	wg.Add(len(chans))

	for _, ch := range chans {
		go func(ch <-chan error) {
			defer wg.Done()
			if err := <-ch; err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		}(ch)
	}

	wg.Wait()
	return first
}
