// Package jsonextract pulls conversation-style records out of arbitrary JSON
// documents and flattens them into plain text.
//
// A document is parsed into a Value tree and walked depth-first. In records
// mode every object owning the keys "name", "role" and "content" becomes a
// Record; in content mode every scalar found under a "content" key becomes a
// fragment. Intake (media type gating, decoding, parsing and error mapping)
// is driven by the state machine in the intake package.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., jsontext/, text/, pdf/).
package jsonextract
