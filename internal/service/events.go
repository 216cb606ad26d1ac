package service

import "github.com/srivastan1999/elfsod-2-sub000/internal/domain"

// EventBroadcaster pushes admin-portal events to connected clients. A nil
// broadcaster is allowed; services treat broadcasting as best-effort.
type EventBroadcaster interface {
	BroadcastEvent(event domain.AdminEvent)
}
