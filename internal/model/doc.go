// Package model defines the project aggregate edited by appsketch.
//
// A Project is the single top-level value: screens positioned on a canvas,
// directed connections between them, named user journeys, instantiated
// feature bundles, a design-token set, and advisory bookkeeping from the
// AI assistant.
//
// Mutation discipline: the aggregate is always replaced as a whole. Every
// operation in internal/project produces a fully-formed Project value and
// hands it to persistence; readers never observe a partially-applied change.
// Clone exists so that consumers holding a snapshot (advisor, exporter) are
// isolated from later mutations.
//
// JSON field names match the persisted document layout and are part of the
// storage format. Renaming a tag is a breaking change for existing databases.
package model
