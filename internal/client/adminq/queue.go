// Package adminq implements the moderation queue view logic: the admin
// gate, the concurrent queue fetch, and row splicing after actions.
package adminq

import (
	"context"
	"errors"

	"github.com/sahayak/sahayak-backend/internal/client/api"
	"github.com/sahayak/sahayak-backend/internal/client/session"
	"github.com/sahayak/sahayak-backend/internal/domain"
)

// ErrNotAdmin is returned by the gate; the caller redirects without
// having issued any admin API call.
var ErrNotAdmin = errors.New("admin access required")

// ErrHydrating is returned when the session has not resolved yet; the
// gate must not decide on an unknown session.
var ErrHydrating = errors.New("session not resolved yet")

// Queue is the moderation view state: pending submissions first, then
// the published list, concatenated as the backend returned them (no
// dedup, duplicates render verbatim).
type Queue struct {
	client   api.Client
	Rows     []domain.Subject
	Selected string
}

// NewQueue creates an empty moderation queue bound to the API client
func NewQueue(client api.Client) *Queue {
	return &Queue{client: client}
}

// Gate checks admin access. It must only be called once the session
// store has hydrated; an unresolved session is an error, not a denial.
func Gate(store *session.Store) error {
	if store.State() != session.StateResolved {
		return ErrHydrating
	}
	if !store.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// Load fetches the pending queue and the published list concurrently
// and concatenates them, pending first
func (q *Queue) Load(ctx context.Context) error {
	type result struct {
		subjects []domain.Subject
		err      error
	}

	pendingCh := make(chan result, 1)
	publishedCh := make(chan result, 1)

	go func() {
		subjects, err := q.client.AdminQueue(ctx)
		pendingCh <- result{subjects, err}
	}()
	go func() {
		subjects, err := q.client.ListSubjects(ctx, "", 0, "")
		publishedCh <- result{subjects, err}
	}()

	pending := <-pendingCh
	published := <-publishedCh

	if pending.err != nil {
		return pending.err
	}
	if published.err != nil {
		return published.err
	}

	q.Rows = append(pending.subjects, published.subjects...)
	return nil
}

// splice removes the row with the given ID and clears the selection
func (q *Queue) splice(id string) {
	for i := range q.Rows {
		if q.Rows[i].ID == id {
			q.Rows = append(q.Rows[:i], q.Rows[i+1:]...)
			break
		}
	}
	q.Selected = ""
}

// Publish publishes one submission. On success the row is spliced out;
// on failure the rows and selection are left untouched.
func (q *Queue) Publish(ctx context.Context, id string) error {
	if err := q.client.PublishSubject(ctx, id); err != nil {
		return err
	}
	q.splice(id)
	return nil
}

// Reject rejects one submission with a reason
func (q *Queue) Reject(ctx context.Context, id, reason string) error {
	if err := q.client.RejectSubject(ctx, id, reason); err != nil {
		return err
	}
	q.splice(id)
	return nil
}

// Delete removes one subject. Callers must have confirmed with the user
// before invoking this.
func (q *Queue) Delete(ctx context.Context, id string) error {
	if err := q.client.DeleteSubject(ctx, id); err != nil {
		return err
	}
	q.splice(id)
	return nil
}
