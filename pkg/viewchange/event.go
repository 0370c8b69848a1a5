package viewchange

// Kind tags a view-change event.
type Kind int

const (
	KindLoading Kind = iota + 1
	KindDialogProgress
	KindDismiss
	KindToast
	KindTips
	KindEmpty
	KindNetworkError
	KindRestore
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindDialogProgress:
		return "dialog_progress"
	case KindDismiss:
		return "dismiss"
	case KindToast:
		return "toast"
	case KindTips:
		return "tips"
	case KindEmpty:
		return "empty"
	case KindNetworkError:
		return "network_error"
	case KindRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Transient reports whether events of this kind are notifications that must
// be queued one by one instead of collapsed to the latest value.
func (k Kind) Transient() bool {
	return k == KindToast || k == KindTips
}

// Event is a fire-and-forget presentation change.
type Event struct {
	Kind Kind
	// Message is set for DialogProgress, Toast, Tips and NetworkError.
	Message string
	// Content is set for Empty.
	Content string
	// Retry is set for Empty and NetworkError; it may be nil.
	Retry func()
}

func Loading() Event { return Event{Kind: KindLoading} }
func DialogProgress(msg string) Event { return Event{Kind: KindDialogProgress, Message: msg} }
func Dismiss() Event { return Event{Kind: KindDismiss} }
func Toast(msg string) Event { return Event{Kind: KindToast, Message: msg} }
func Tips(msg string) Event { return Event{Kind: KindTips, Message: msg} }
func Restore() Event { return Event{Kind: KindRestore} }
func Empty(content string, retry func()) Event {
	return Event{Kind: KindEmpty, Content: content, Retry: retry}
}
func NetworkError(msg string, retry func()) Event {
	return Event{Kind: KindNetworkError, Message: msg, Retry: retry}
}

// Emitter receives view-change events.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Emitter = EmitterFunc(func(Event) {})

// OrDiscard returns e, or Discard when e is nil.
func OrDiscard(e Emitter) Emitter {
	if e == nil {
		return Discard
	}
	return e
}
