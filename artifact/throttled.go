package artifact

import (
	"context"
	"io"

	"github.com/hupe1980/fortgo/resource"
)

// ThrottledStore wraps a Store with admission control and bandwidth
// limits from a resource.Controller. All transfers through one
// controller share its budget.
type ThrottledStore struct {
	inner Store
	ctrl  *resource.Controller
}

// NewThrottledStore wraps inner with the controller's limits.
func NewThrottledStore(inner Store, ctrl *resource.Controller) *ThrottledStore {
	return &ThrottledStore{inner: inner, ctrl: ctrl}
}

// Put acquires a transfer slot, then streams r through the bandwidth
// budget into the inner store.
func (s *ThrottledStore) Put(ctx context.Context, name string, r io.Reader) error {
	if err := s.ctrl.AcquireTransfer(ctx); err != nil {
		return err
	}
	defer s.ctrl.ReleaseTransfer()

	return s.inner.Put(ctx, name, resource.NewRateLimitedReader(ctx, r, s.ctrl))
}

// Get acquires a transfer slot for the duration of the download; the
// slot is released when the returned reader is closed.
func (s *ThrottledStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := s.ctrl.AcquireTransfer(ctx); err != nil {
		return nil, err
	}

	rc, err := s.inner.Get(ctx, name)
	if err != nil {
		s.ctrl.ReleaseTransfer()
		return nil, err
	}

	return &throttledReader{
		Reader: resource.NewRateLimitedReader(ctx, rc, s.ctrl),
		rc:     rc,
		ctrl:   s.ctrl,
	}, nil
}

// Exists consults the operation budget, then the inner store.
func (s *ThrottledStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := s.ctrl.AcquireOp(ctx); err != nil {
		return false, err
	}
	return s.inner.Exists(ctx, name)
}

// Delete consults the operation budget, then the inner store.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	if err := s.ctrl.AcquireOp(ctx); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

// List consults the operation budget, then the inner store.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.ctrl.AcquireOp(ctx); err != nil {
		return nil, err
	}
	return s.inner.List(ctx, prefix)
}

// throttledReader releases the transfer slot exactly once on Close.
type throttledReader struct {
	io.Reader
	rc     io.ReadCloser
	ctrl   *resource.Controller
	closed bool
}

func (r *throttledReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.ctrl.ReleaseTransfer()
	return r.rc.Close()
}
