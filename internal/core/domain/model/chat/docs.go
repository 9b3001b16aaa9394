// Package chat models chat sessions, the admin-opened windows that unlock
// otherwise forbidden peer conversations, and the append-only messages.
//
// Whether a given message may be sent is decided by services.ChatGate.
package chat
