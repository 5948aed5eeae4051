package core

import "sync"

type EventContext struct {
	Data struct {
		I64 [2]int64
		U64 [2]uint64
		F64 [2]float64

		I32 [4]int32
		U32 [4]uint32
		F32 [4]float32

		U16 [8]uint16
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// The window asked to close. Listeners decide whether it actually closes.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * u32 width = data.data.u32[0];
	 * u32 height = data.data.u32[1];
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// The window was iconified or restored.
	/* Context usage:
	 * u32 iconified = data.data.u32[0];
	 */
	EVENT_CODE_ICONIFIED SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

const MAX_MESSAGE_CODES = 512

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

var (
	eventMu       sync.Mutex
	isInitialized bool
	eventState    *eventSystemState
)

// EventInitialize sets up the event system. Returns false if it was already running.
func EventInitialize() bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if isInitialized {
		return false
	}
	eventState = &eventSystemState{}
	isInitialized = true
	return true
}

func EventShutdown() error {
	eventMu.Lock()
	defer eventMu.Unlock()
	if !isInitialized {
		return nil
	}
	// Drop every registration, listeners are owned elsewhere.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		eventState.registered[i].events = nil
	}
	isInitialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A listener instance. Can be nil.
 * @param on_event The callback to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.listener == listener {
			LogWarn("event code %d already has this listener registered", code)
			return false
		}
	}
	eventState.registered[code].events = append(eventState.registered[code].events, &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 */
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if !isInitialized {
		return false
	}
	events := eventState.registered[code].events
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	eventMu.Lock()
	if !isInitialized {
		eventMu.Unlock()
		return false
	}
	// Listeners may register or unregister from inside a callback.
	events := append([]*registeredEvent(nil), eventState.registered[code].events...)
	eventMu.Unlock()

	for _, e := range events {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
