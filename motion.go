package unveil

// MotionPreference answers whether the user prefers reduced motion. It is
// read once per registration.
type MotionPreference interface {
	PrefersReducedMotion() bool
}

// MotionNotifier is a MotionPreference that also reports live changes.
type MotionNotifier interface {
	MotionPreference
	OnChange(fn func(reduced bool)) CallbackHandle
}

type motionHandler struct {
	id uint32
	fn func(bool)
}

// MotionToggle is a settable MotionPreference. The zero value prefers full
// motion.
type MotionToggle struct {
	reduced  bool
	handlers []motionHandler
	nextID   uint32
}

// NewMotionToggle returns a toggle with the given initial preference.
func NewMotionToggle(reduced bool) *MotionToggle {
	return &MotionToggle{reduced: reduced}
}

// PrefersReducedMotion implements MotionPreference.
func (m *MotionToggle) PrefersReducedMotion() bool {
	return m != nil && m.reduced
}

// Set updates the preference and notifies subscribers when it changes.
func (m *MotionToggle) Set(reduced bool) {
	if m.reduced == reduced {
		return
	}
	m.reduced = reduced
	// Handlers may remove themselves while being notified.
	snapshot := append([]motionHandler(nil), m.handlers...)
	for _, h := range snapshot {
		h.fn(reduced)
	}
}

// OnChange registers fn to be called whenever the preference flips.
func (m *MotionToggle) OnChange(fn func(reduced bool)) CallbackHandle {
	m.nextID++
	m.handlers = append(m.handlers, motionHandler{id: m.nextID, fn: fn})
	id := m.nextID
	return CallbackHandle{remove: func() { m.remove(id) }}
}

func (m *MotionToggle) remove(id uint32) {
	for i := range m.handlers {
		if m.handlers[i].id == id {
			copy(m.handlers[i:], m.handlers[i+1:])
			m.handlers[len(m.handlers)-1] = motionHandler{}
			m.handlers = m.handlers[:len(m.handlers)-1]
			return
		}
	}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters the callback. Safe to call on the zero value and more
// than once.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
}
