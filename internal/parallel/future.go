package parallel

// Future is the pending result of a job running on a Pool.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on p and returns a Future for its result. If p is closed the
// Future resolves immediately with ErrPoolClosed.
func Go[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	err := p.Submit(func() {
		defer close(f.done)
		f.value, f.err = fn()
	})
	if err != nil {
		f.err = err
		close(f.done)
	}
	return f
}

// Resolved returns a Future that is already complete.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the job finishes and returns its result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}
