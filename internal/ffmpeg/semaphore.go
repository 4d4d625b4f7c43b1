package ffmpeg

import "context"

// semaphore bounds how many ffmpeg frame grabs run at once
type semaphore chan struct{}

func newSemaphore(workers int) semaphore {
	if workers < 1 {
		workers = 1
	}
	return make(semaphore, workers)
}

// acquire blocks for a worker slot or until ctx is done
func (s semaphore) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s semaphore) release() {
	<-s
}
