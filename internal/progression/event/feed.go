// Package event provides the notification channels exposed by the
// progression components. Each channel is an explicit subscription list;
// publishing invokes subscribers synchronously in subscription order,
// which keeps dispatch deterministic and easy to inspect in tests.
package event

// Feed is a single notification channel carrying a payload of type T.
// The zero value is ready to use. Feeds are not safe for concurrent use;
// the host guarantees a single mutating context.
type Feed[T any] struct {
	subs []func(T)
}

// Subscribe appends fn to the subscription list. A nil fn is ignored.
func (f *Feed[T]) Subscribe(fn func(T)) {
	if fn == nil {
		return
	}
	f.subs = append(f.subs, fn)
}

// Publish invokes every subscriber with v, in subscription order.
func (f *Feed[T]) Publish(v T) {
	for _, fn := range f.subs {
		fn(v)
	}
}

// Len returns the number of subscribers.
func (f *Feed[T]) Len() int {
	return len(f.subs)
}

// Signal is a payload-less notification channel.
type Signal struct {
	subs []func()
}

// Subscribe appends fn to the subscription list. A nil fn is ignored.
func (s *Signal) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.subs = append(s.subs, fn)
}

// Publish invokes every subscriber in subscription order.
func (s *Signal) Publish() {
	for _, fn := range s.subs {
		fn()
	}
}

// Len returns the number of subscribers.
func (s *Signal) Len() int {
	return len(s.subs)
}
