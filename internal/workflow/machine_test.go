package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmafields/rubriq/internal/domain"
	"github.com/emmafields/rubriq/internal/testutil"
)

func TestStateMachine_InitialState(t *testing.T) {
	m := NewStateMachine()

	assert.Equal(t, domain.StepUpload, m.Step())
	assert.Nil(t, m.Attachment())
	assert.Nil(t, m.Rubric())
	assert.Nil(t, m.Result())
	assert.False(t, m.Pending())
}

func TestStateMachine_SetAttachment_AdvancesToSelectRubric(t *testing.T) {
	m := NewStateMachine()

	require.NoError(t, m.SetAttachment(testutil.NewPDFAttachment("essay.pdf")))
	assert.Equal(t, domain.StepSelectRubric, m.Step())
	assert.NotNil(t, m.Attachment())
}

func TestStateMachine_SetAttachment_UnsupportedMediaLeavesStateUnchanged(t *testing.T) {
	unsupported := []string{"image/png", "application/zip", "text/html", ""}

	for _, mt := range unsupported {
		t.Run(mt, func(t *testing.T) {
			m := NewStateMachine()
			err := m.SetAttachment(&domain.Attachment{
				ID: "a1", Filename: "essay.bin", MediaType: mt, Data: []byte("x"),
			})

			assert.ErrorIs(t, err, ErrUnsupportedMedia)
			assert.Equal(t, domain.StepUpload, m.Step())
			assert.Nil(t, m.Attachment())
		})
	}
}

func TestStateMachine_SetAttachment_ReuploadFromLaterStep(t *testing.T) {
	m := NewStateMachine()
	require.NoError(t, m.SetAttachment(testutil.NewPDFAttachment("v1.pdf")))
	require.NoError(t, m.SetRubric(domain.DefaultRubricRef()))
	require.Equal(t, domain.StepReview, m.Step())

	// Re-upload drops back to rubric selection, keeping the new file.
	require.NoError(t, m.SetAttachment(testutil.NewPDFAttachment("v2.pdf")))
	assert.Equal(t, domain.StepSelectRubric, m.Step())
	assert.Equal(t, "v2.pdf", m.Attachment().Filename)
}

func TestStateMachine_SetRubric_RequiresAttachment(t *testing.T) {
	m := NewStateMachine()

	err := m.SetRubric(domain.DefaultRubricRef())
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, domain.StepUpload, m.Step())
}

func TestStateMachine_BeginGrading_OnlyFromReview(t *testing.T) {
	m := NewStateMachine()

	// From Upload.
	err := m.BeginGrading()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, m.Pending())

	// From SelectRubric.
	require.NoError(t, m.SetAttachment(testutil.NewPDFAttachment("essay.pdf")))
	err = m.BeginGrading()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, m.Pending())

	// From Review.
	require.NoError(t, m.SetRubric(domain.DefaultRubricRef()))
	require.NoError(t, m.BeginGrading())
	assert.True(t, m.Pending())
}

func TestStateMachine_CompleteWithResult_Terminal(t *testing.T) {
	m := readyMachine(t)
	require.NoError(t, m.BeginGrading())

	result := testutil.NewGradingResult(92, "A")
	m.CompleteWithResult(result)

	assert.False(t, m.Pending())
	assert.Equal(t, domain.StepResult, m.Step())
	assert.Equal(t, result, m.Result())
	assert.NoError(t, m.LastError())
}

func TestStateMachine_CompleteWithError_PreservesStep(t *testing.T) {
	m := readyMachine(t)
	require.NoError(t, m.BeginGrading())

	failure := errors.New("submission rejected")
	m.CompleteWithError(failure)

	assert.False(t, m.Pending())
	assert.Equal(t, domain.StepReview, m.Step())
	assert.Nil(t, m.Result())
	assert.ErrorIs(t, m.LastError(), failure)
	// Collected input survives for retry.
	assert.NotNil(t, m.Attachment())
	assert.NotNil(t, m.Rubric())
}

func TestStateMachine_Reset_ClearsEverything(t *testing.T) {
	m := readyMachine(t)
	require.NoError(t, m.BeginGrading())
	m.CompleteWithResult(testutil.NewGradingResult(80, "B"))

	m.Reset()

	assert.Equal(t, domain.StepUpload, m.Step())
	assert.Nil(t, m.Attachment())
	assert.Nil(t, m.Rubric())
	assert.Nil(t, m.Result())
	assert.False(t, m.Pending())
	assert.NoError(t, m.LastError())
}

func readyMachine(t *testing.T) *StateMachine {
	t.Helper()
	m := NewStateMachine()
	require.NoError(t, m.SetAttachment(testutil.NewPDFAttachment("essay.pdf")))
	require.NoError(t, m.SetRubric(domain.DefaultRubricRef()))
	return m
}
