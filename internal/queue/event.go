// Package queue defines message payloads exchanged over the message broker.
package queue

// MovieChangedEvent is published whenever an admin creates, updates or
// deletes a catalog entry.  It carries enough information for downstream
// consumers to log or trigger analytics without querying the database.
type MovieChangedEvent struct {
	Action     string `json:"action"` // "created", "updated" or "deleted"
	MovieID    string `json:"movie_id"`
	Title      string `json:"title,omitempty"`
	ActorID    string `json:"actor_id,omitempty"` // user id of the admin who made the change
	OccurredAt string `json:"occurred_at"`
}
