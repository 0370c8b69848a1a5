package viewchange

import (
	"context"
	"errors"
	"sync"
)

// View renders view-change events. Implementations are supplied by the UI layer.
type View interface {
	ShowLoading()
	ShowDialogProgress(message string)
	DismissDialog()
	ShowToast(message string)
	ShowTips(message string)
	ShowEmpty(content string, retry func())
	ShowNetworkError(message string, retry func())
	Restore()
}

// Refresher is an optional pull-to-refresh control finished on Restore.
type Refresher interface {
	FinishRefresh()
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithRefresher attaches a refresh control.
func WithRefresher(r Refresher) ScreenOption {
	return func(s *Screen) {
		s.refresher = r
	}
}

// Screen dispatches events to a View with the bookkeeping a page needs:
// Loading is skipped while restored content is on screen, and Dismiss only
// reaches the view when a progress dialog is showing.
type Screen struct {
	mu          sync.Mutex
	view        View
	refresher   Refresher
	restored    bool
	dialogShown bool
}

// NewScreen binds view.
func NewScreen(view View, opts ...ScreenOption) *Screen {
	s := &Screen{view: view}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch renders e. It is a no-op after Release.
func (s *Screen) Dispatch(e Event) {
	s.mu.Lock()
	view, refresher := s.view, s.refresher
	if view == nil {
		s.mu.Unlock()
		return
	}
	var call func()
	switch e.Kind {
	case KindLoading:
		if !s.restored {
			call = view.ShowLoading
		}
	case KindDialogProgress:
		s.dialogShown = true
		call = func() { view.ShowDialogProgress(e.Message) }
	case KindDismiss:
		if s.dialogShown {
			s.dialogShown = false
			call = view.DismissDialog
		}
	case KindToast:
		call = func() { view.ShowToast(e.Message) }
	case KindTips:
		call = func() { view.ShowTips(e.Message) }
	case KindEmpty:
		s.restored = false
		call = func() { view.ShowEmpty(e.Content, e.Retry) }
	case KindNetworkError:
		s.restored = false
		call = func() { view.ShowNetworkError(e.Message, e.Retry) }
	case KindRestore:
		s.restored = true
		call = func() {
			view.Restore()
			if refresher != nil {
				refresher.FinishRefresh()
			}
		}
	}
	s.mu.Unlock()

	if call != nil {
		call()
	}
}

// Emit lets a Screen be used directly as an Emitter.
func (s *Screen) Emit(e Event) { s.Dispatch(e) }

// Bind dispatches events from sub until it closes or ctx is done. A closed
// subscription ends the loop without error.
func (s *Screen) Bind(ctx context.Context, sub *Subscription) error {
	for {
		e, err := sub.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
		s.Dispatch(e)
	}
}

// Restored reports whether content is currently restored.
func (s *Screen) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

// Release drops the view and refresher so nothing is rendered after teardown.
func (s *Screen) Release() {
	s.mu.Lock()
	s.view = nil
	s.refresher = nil
	s.dialogShown = false
	s.mu.Unlock()
}
