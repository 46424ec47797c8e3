package togglejobpreference

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/models"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) SetJobPreference(ctx context.Context, userID, jobID string, kind models.PreferenceKind, enabled bool) error {
	return m.Called(ctx, userID, jobID, kind, enabled).Error(0)
}

func TestHandler_Execute(t *testing.T) {
	seeker := models.Actor{UserID: "s-1", Role: models.RoleSeeker}

	tests := []struct {
		name           string
		input          *Input
		setupMock      func(*MockWriter)
		wantErr        errors.ErrorCode
		validateOutput func(*testing.T, *Output)
	}{
		{
			name:  "save job",
			input: &Input{Actor: seeker, JobID: "j2", Kind: models.PreferenceSaved, CurrentIDs: []string{"j9"}},
			setupMock: func(m *MockWriter) {
				m.On("SetJobPreference", mock.Anything, "s-1", "j2", models.PreferenceSaved, true).Return(nil).Once()
			},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Equal(t, []string{"j2", "j9"}, out.IDs)
				assert.True(t, out.Enabled)
				assert.True(t, out.Committed)
				assert.Equal(t, "Job saved", out.Notifications[0].Message)
			},
		},
		{
			name:  "unhide job",
			input: &Input{Actor: seeker, JobID: "j9", Kind: models.PreferenceHidden, CurrentIDs: []string{"j9"}},
			setupMock: func(m *MockWriter) {
				m.On("SetJobPreference", mock.Anything, "s-1", "j9", models.PreferenceHidden, false).Return(nil).Once()
			},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Empty(t, out.IDs)
				assert.False(t, out.Enabled)
				assert.Equal(t, "Job unhidden", out.Notifications[0].Message)
			},
		},
		{
			name:  "rejected write restores set",
			input: &Input{Actor: seeker, JobID: "j2", Kind: models.PreferenceSaved, CurrentIDs: []string{"j9"}},
			setupMock: func(m *MockWriter) {
				m.On("SetJobPreference", mock.Anything, "s-1", "j2", models.PreferenceSaved, true).Return(stderrors.New("offline")).Once()
			},
			validateOutput: func(t *testing.T, out *Output) {
				assert.Equal(t, []string{"j9"}, out.IDs)
				assert.False(t, out.Enabled)
				assert.True(t, out.RolledBack)
				require.Len(t, out.Notifications, 2)
				assert.Equal(t, "Failed to update job preferences", out.Notifications[1].Message)
			},
		},
		{
			name:      "unknown kind",
			input:     &Input{Actor: seeker, JobID: "j2", Kind: "starred"},
			setupMock: func(m *MockWriter) {},
			wantErr:   errors.ErrCodeInputValidationFailed,
		},
		{
			name:      "missing actor",
			input:     &Input{JobID: "j2", Kind: models.PreferenceSaved},
			setupMock: func(m *MockWriter) {},
			wantErr:   errors.ErrCodeInputValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := new(MockWriter)
			tt.setupMock(w)
			h := NewHandler(&Config{Enabled: true, MaxJobsActive: 1, Timeout: time.Second}, w, nil, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), tt.input)
			if tt.wantErr != "" {
				var stdErr *errors.StandardError
				require.True(t, stderrors.As(err, &stdErr))
				assert.Equal(t, tt.wantErr, stdErr.Code)
				w.AssertNotCalled(t, "SetJobPreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, out)
			w.AssertExpectations(t)
		})
	}
}
