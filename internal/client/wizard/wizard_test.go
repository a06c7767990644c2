package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/sahayak/sahayak-backend/internal/client/draft"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient counts submissions; only CreateSubject is reachable from the wizard
type fakeClient struct {
	createCalls int
	createID    string
	createErr   error
}

func (f *fakeClient) Register(ctx context.Context, req *domain.RegisterRequest) error { return nil }
func (f *fakeClient) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	return nil, nil
}
func (f *fakeClient) Me(ctx context.Context) (*domain.UserResponse, error) { return nil, nil }
func (f *fakeClient) ListSubjects(ctx context.Context, department string, semester int, search string) ([]domain.Subject, error) {
	return nil, nil
}
func (f *fakeClient) GetSubject(ctx context.Context, slug string) (*domain.Subject, error) {
	return nil, nil
}
func (f *fakeClient) CreateSubject(ctx context.Context, req *domain.SubjectCreateRequest) (string, error) {
	f.createCalls++
	return f.createID, f.createErr
}
func (f *fakeClient) UpdateSubject(ctx context.Context, id string, req *domain.SubjectUpdateRequest) error {
	return nil
}
func (f *fakeClient) DeleteSubject(ctx context.Context, id string) error        { return nil }
func (f *fakeClient) MySubjects(ctx context.Context) ([]domain.Subject, error)  { return nil, nil }
func (f *fakeClient) AdminQueue(ctx context.Context) ([]domain.Subject, error)  { return nil, nil }
func (f *fakeClient) PublishSubject(ctx context.Context, id string) error       { return nil }
func (f *fakeClient) RejectSubject(ctx context.Context, id, reason string) error { return nil }

func newTestWizard(t *testing.T, client *fakeClient) (*Wizard, *draft.Store) {
	t.Helper()
	drafts := draft.NewStore(t.TempDir())
	w, err := New(client, drafts)
	require.NoError(t, err)
	return w, drafts
}

func advanceToFinal(t *testing.T, w *Wizard) {
	t.Helper()
	for !w.IsFinal() {
		require.NoError(t, w.Next())
	}
}

func TestNew_StartsWithOneUnit(t *testing.T) {
	w, _ := newTestWizard(t, &fakeClient{})

	assert.Equal(t, StepBasicInfo, w.Step())
	assert.False(t, w.Resumed())
	require.Len(t, w.Payload().Units, 1)
	assert.Equal(t, 1, w.Payload().Units[0].UnitNumber)
	assert.Len(t, w.Payload().Units[0].Topics, 1)
}

func TestNew_RestoresDraft(t *testing.T) {
	dir := t.TempDir()
	drafts := draft.NewStore(dir)

	saved := &draft.Draft{
		Step: StepUnits,
		Payload: domain.SubjectCreateRequest{
			Name: "Operating Systems",
			Slug: "os",
			Units: []domain.Unit{
				{UnitNumber: 1, Title: "Processes", Topics: []string{"Scheduling"}},
			},
		},
	}
	require.NoError(t, drafts.Save(saved))

	w, err := New(&fakeClient{}, drafts)
	require.NoError(t, err)

	assert.True(t, w.Resumed())
	assert.Equal(t, StepUnits, w.Step())
	assert.Equal(t, "Operating Systems", w.Payload().Name)
	assert.Equal(t, "Processes", w.Payload().Units[0].Title)
}

func TestNew_ClampsOutOfRangeStep(t *testing.T) {
	dir := t.TempDir()
	drafts := draft.NewStore(dir)
	require.NoError(t, drafts.Save(&draft.Draft{Step: 99}))

	w, err := New(&fakeClient{}, drafts)
	require.NoError(t, err)
	assert.Equal(t, StepBasicInfo, w.Step())
	assert.Len(t, w.Payload().Units, 1)
}

func TestNextBack_StayInRange(t *testing.T) {
	w, _ := newTestWizard(t, &fakeClient{})

	require.NoError(t, w.Back())
	assert.Equal(t, StepBasicInfo, w.Step())

	advanceToFinal(t, w)
	assert.Equal(t, StepStrategies, w.Step())

	require.NoError(t, w.Next())
	assert.Equal(t, StepStrategies, w.Step())
}

func TestRemoveUnit_KeepsAtLeastOneAndRenumbers(t *testing.T) {
	w, _ := newTestWizard(t, &fakeClient{})

	w.AddUnit()
	w.AddUnit()
	require.Len(t, w.Payload().Units, 3)

	w.RemoveUnit(0)
	require.Len(t, w.Payload().Units, 2)
	assert.Equal(t, 1, w.Payload().Units[0].UnitNumber)
	assert.Equal(t, 2, w.Payload().Units[1].UnitNumber)

	w.RemoveUnit(0)
	w.RemoveUnit(0) // last unit must survive
	assert.Len(t, w.Payload().Units, 1)
}

func TestRemoveTopic_KeepsAtLeastOne(t *testing.T) {
	w, _ := newTestWizard(t, &fakeClient{})

	w.AddTopic(0)
	require.Len(t, w.Payload().Units[0].Topics, 2)

	w.RemoveTopic(0, 1)
	assert.Len(t, w.Payload().Units[0].Topics, 1)

	w.RemoveTopic(0, 0) // last topic must survive
	assert.Len(t, w.Payload().Units[0].Topics, 1)
}

func TestCleanPayload_FiltersBlankTopicsAndIncompleteMaterials(t *testing.T) {
	payload := domain.SubjectCreateRequest{
		Units: []domain.Unit{
			{UnitNumber: 1, Topics: []string{"Scheduling", "  ", "", "Deadlocks"}},
		},
		Materials: []domain.Material{
			{Title: "Notes", URL: "https://example.com/notes.pdf", Type: domain.MaterialDocument},
			{Title: "", URL: "https://example.com/untitled"},
			{Title: "No link", URL: "   "},
		},
	}

	cleaned := CleanPayload(payload)

	assert.Equal(t, []string{"Scheduling", "Deadlocks"}, cleaned.Units[0].Topics)
	require.Len(t, cleaned.Materials, 1)
	assert.Equal(t, "Notes", cleaned.Materials[0].Title)

	// the working payload is untouched
	assert.Len(t, payload.Units[0].Topics, 4)
	assert.Len(t, payload.Materials, 3)
}

func TestSubmit_NotOnFinalStep(t *testing.T) {
	client := &fakeClient{}
	w, _ := newTestWizard(t, client)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotFinalStep)
	assert.Equal(t, 0, client.createCalls)
}

func TestSubmit_SuccessDeletesDraft(t *testing.T) {
	client := &fakeClient{createID: "s-new"}
	w, drafts := newTestWizard(t, client)

	w.Payload().Name = "Operating Systems"
	require.NoError(t, w.Commit())
	advanceToFinal(t, w)

	id, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s-new", id)
	assert.Equal(t, 1, client.createCalls)

	saved, err := drafts.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	client := &fakeClient{createErr: errors.New("slug already in use")}
	w, drafts := newTestWizard(t, client)

	w.Payload().Name = "Operating Systems"
	require.NoError(t, w.Commit())
	advanceToFinal(t, w)

	_, err := w.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, client.createCalls)

	saved, err := drafts.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Operating Systems", saved.Payload.Name)
}
