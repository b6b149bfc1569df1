package navigation

import "sync"

// Location is a navigation target. From, when set, is the path the user
// originally asked for and should be returned to after logging in.
type Location struct {
	Path string
	From string
}

func (l Location) String() string {
	if l.From == "" {
		return l.Path
	}
	return l.Path + " (from " + l.From + ")"
}

// Navigator moves the client to a location.
type Navigator interface {
	Navigate(loc Location)
}

// History is an in-memory Navigator that records every location visited.
type History struct {
	mu      sync.Mutex
	entries []Location
}

func NewHistory(start Location) *History {
	return &History{entries: []Location{start}}
}

func (h *History) Navigate(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, loc)
}

// Current returns the latest location, or the zero Location when empty.
func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Location{}
	}
	return h.entries[len(h.entries)-1]
}

func (h *History) Entries() []Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Location(nil), h.entries...)
}

// Back drops the current location and returns the one before it. It never
// removes the first entry.
func (h *History) Back() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	if len(h.entries) == 0 {
		return Location{}
	}
	return h.entries[len(h.entries)-1]
}
