// Package wizard implements the five-step subject contribution flow.
// Steps advance locally; only the final submit performs network I/O.
package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/sahayak/sahayak-backend/internal/client/api"
	"github.com/sahayak/sahayak-backend/internal/client/draft"
	"github.com/sahayak/sahayak-backend/internal/domain"
)

// Wizard steps, in order
const (
	StepBasicInfo = iota
	StepOverview
	StepIntro
	StepUnits
	StepStrategies

	stepCount
)

// StepName returns a display name for a step index
func StepName(step int) string {
	switch step {
	case StepBasicInfo:
		return "Basic info"
	case StepOverview:
		return "Overview"
	case StepIntro:
		return "Introduction"
	case StepUnits:
		return "Units"
	case StepStrategies:
		return "Strategies & resources"
	default:
		return "Unknown"
	}
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// submit has not finished.
var ErrSubmitInFlight = errors.New("submit already in progress")

// ErrNotFinalStep is returned when Submit is called before the last step.
var ErrNotFinalStep = errors.New("not on the final step")

// Wizard is the contribution flow state machine. Every committed edit
// saves the draft; a successful submit deletes it, a failed one keeps it.
type Wizard struct {
	client     api.Client
	drafts     *draft.Store
	step       int
	payload    domain.SubjectCreateRequest
	submitting bool
}

// New creates a Wizard, restoring a saved draft when one exists
func New(client api.Client, drafts *draft.Store) (*Wizard, error) {
	w := &Wizard{client: client, drafts: drafts}
	w.payload.Units = []domain.Unit{{UnitNumber: 1, Topics: []string{""}}}

	saved, err := drafts.Load()
	if err != nil {
		return nil, err
	}
	if saved != nil {
		w.step = saved.Step
		w.payload = saved.Payload
		if w.step < 0 || w.step >= stepCount {
			w.step = StepBasicInfo
		}
		if len(w.payload.Units) == 0 {
			w.payload.Units = []domain.Unit{{UnitNumber: 1, Topics: []string{""}}}
		}
	}
	return w, nil
}

// Step returns the current step index
func (w *Wizard) Step() int {
	return w.step
}

// Resumed reports whether the wizard restored a non-initial draft
func (w *Wizard) Resumed() bool {
	return w.step != StepBasicInfo || w.payload.Name != ""
}

// Payload returns a pointer to the working payload for field edits.
// Call Commit after mutating it so the draft stays current.
func (w *Wizard) Payload() *domain.SubjectCreateRequest {
	return &w.payload
}

// Commit persists the current payload and step to the draft store
func (w *Wizard) Commit() error {
	return w.drafts.Save(&draft.Draft{Step: w.step, Payload: w.payload})
}

// Next advances to the following step. No network call happens here,
// including on the last step; submission is explicit via Submit.
func (w *Wizard) Next() error {
	if w.step < stepCount-1 {
		w.step++
	}
	return w.Commit()
}

// Back returns to the previous step
func (w *Wizard) Back() error {
	if w.step > 0 {
		w.step--
	}
	return w.Commit()
}

// IsFinal reports whether the wizard is on the last step
func (w *Wizard) IsFinal() bool {
	return w.step == stepCount-1
}

// AddUnit appends a new unit numbered after the last one
func (w *Wizard) AddUnit() {
	next := len(w.payload.Units) + 1
	w.payload.Units = append(w.payload.Units, domain.Unit{UnitNumber: next, Topics: []string{""}})
}

// RemoveUnit deletes the unit at index. At least one unit always remains.
func (w *Wizard) RemoveUnit(index int) {
	if len(w.payload.Units) <= 1 || index < 0 || index >= len(w.payload.Units) {
		return
	}
	w.payload.Units = append(w.payload.Units[:index], w.payload.Units[index+1:]...)
	for i := range w.payload.Units {
		w.payload.Units[i].UnitNumber = i + 1
	}
}

// AddTopic appends an empty topic to the unit at index
func (w *Wizard) AddTopic(unitIndex int) {
	if unitIndex < 0 || unitIndex >= len(w.payload.Units) {
		return
	}
	w.payload.Units[unitIndex].Topics = append(w.payload.Units[unitIndex].Topics, "")
}

// RemoveTopic deletes a topic from a unit. At least one topic always remains.
func (w *Wizard) RemoveTopic(unitIndex, topicIndex int) {
	if unitIndex < 0 || unitIndex >= len(w.payload.Units) {
		return
	}
	topics := w.payload.Units[unitIndex].Topics
	if len(topics) <= 1 || topicIndex < 0 || topicIndex >= len(topics) {
		return
	}
	w.payload.Units[unitIndex].Topics = append(topics[:topicIndex], topics[topicIndex+1:]...)
}

// CleanPayload returns a copy of the payload with whitespace-only topics
// and materials missing a title or URL removed. The working draft keeps
// the raw values; only the submitted payload is cleaned.
func CleanPayload(p domain.SubjectCreateRequest) domain.SubjectCreateRequest {
	cleaned := p

	cleaned.Units = make([]domain.Unit, 0, len(p.Units))
	for _, u := range p.Units {
		topics := make([]string, 0, len(u.Topics))
		for _, t := range u.Topics {
			if strings.TrimSpace(t) != "" {
				topics = append(topics, t)
			}
		}
		u.Topics = topics
		cleaned.Units = append(cleaned.Units, u)
	}

	cleaned.Materials = make([]domain.Material, 0, len(p.Materials))
	for _, m := range p.Materials {
		if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.URL) == "" {
			continue
		}
		cleaned.Materials = append(cleaned.Materials, m)
	}

	return cleaned
}

// Submit sends the cleaned payload to the server. Exactly one POST per
// call; the draft is deleted only when the server accepted the subject.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	if !w.IsFinal() {
		return "", ErrNotFinalStep
	}
	if w.submitting {
		return "", ErrSubmitInFlight
	}
	w.submitting = true
	defer func() { w.submitting = false }()

	payload := CleanPayload(w.payload)
	id, err := w.client.CreateSubject(ctx, &payload)
	if err != nil {
		return "", err
	}

	if err := w.drafts.Delete(); err != nil {
		return id, err
	}
	return id, nil
}
