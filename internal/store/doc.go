// Package store defines the persistence interfaces and shared error
// taxonomy for the entity store. Implementations live under
// internal/platform/postgres.
//
// Stored entities hold bare ID references; the read paths return hydrated
// view types (TaskView, NotificationView) with referenced users expanded to
// sanitized summaries. Hydration is the store's responsibility so that
// services and handlers never perform their own joins.
package store
