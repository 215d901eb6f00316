package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// A watched frame description changed on disk.
	/* Context usage:
	 * path := context.Data.(string)
	 */
	EVENT_CODE_FRAME_RELOADED SystemEventCode = 0x02

	// A frame was compiled into command streams.
	/* Context usage:
	 * count := context.Data.(int) // number of commands across every view
	 */
	EVENT_CODE_QUEUE_BUILT SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	id       uint64
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.RWMutex
	nextID     uint64
	registered map[SystemEventCode][]*registeredEvent
}

var eventState = &eventSystemState{
	registered: make(map[SystemEventCode][]*registeredEvent),
}

// EventRegister subscribes onEvent to code and returns a handle for EventUnregister.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) uint64 {
	if code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return 0
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	eventState.nextID++
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		id:       eventState.nextID,
		callback: onEvent,
	})
	return eventState.nextID
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @param code The event code to stop listening for.
 * @param handle The value returned by EventRegister.
 * @returns TRUE if the event is successfully unregistered; otherwise false.
 */
func EventUnregister(code SystemEventCode, handle uint64) bool {
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	events := eventState.registered[code]
	for i, e := range events {
		if e.id == handle {
			eventState.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param context The event data, context.Type selects the listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(context EventContext) bool {
	eventState.mu.RLock()
	events := make([]*registeredEvent, len(eventState.registered[context.Type]))
	copy(events, eventState.registered[context.Type])
	eventState.mu.RUnlock()

	for _, e := range events {
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
