package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
)

func setupVerificationTest(t *testing.T) (IVerificationService, *MockUploader, *MockAuthClient, context.Context) {
	db := utils.SetupTestDB(t, "testdb_verification_service", "agent_profiles")

	uploader := new(MockUploader)
	mockAuth := new(MockAuthClient)
	mockAuth.On("UpdateAgentStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewVerificationService(db, &config.Config{}, uploader, mockAuth)
	return svc, uploader, mockAuth, context.Background()
}

func testDocs() ProfileDocuments {
	return ProfileDocuments{NationalID: []byte("id-scan"), AgencyLogo: []byte("logo-bytes")}
}

func expectDocUploads(uploader *MockUploader) {
	uploader.On("Upload", mock.Anything, mock.Anything, "agents/nationalIds").
		Return("https://cdn.example.com/agents/nationalIds/id.jpg", nil)
	uploader.On("Upload", mock.Anything, mock.Anything, "agents/logos").
		Return("https://cdn.example.com/agents/logos/logo.jpg", nil)
}

func TestVerification_SubmitCreatesPending(t *testing.T) {
	svc, uploader, mockAuth, ctx := setupVerificationTest(t)
	expectDocUploads(uploader)

	profile, err := svc.Submit(ctx, "agent-1", VerificationInput{
		AgencyName: "Prime Homes", State: "Lagos",
	}, testDocs())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, profile.Status)
	assert.Equal(t, "Prime Homes", profile.AgencyName)
	assert.NotEmpty(t, profile.NationalID)
	assert.False(t, profile.SubmittedAt.IsZero())
	assert.Empty(t, profile.ReviewMessage)

	mockAuth.AssertCalled(t, "UpdateAgentStatus", mock.Anything, "agent-1", string(models.StatusPending))
}

func TestVerification_SubmitTwiceConflicts(t *testing.T) {
	svc, uploader, _, ctx := setupVerificationTest(t)
	expectDocUploads(uploader)

	_, err := svc.Submit(ctx, "agent-1", VerificationInput{AgencyName: "Prime Homes"}, testDocs())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "agent-1", VerificationInput{AgencyName: "Prime Homes"}, testDocs())
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestVerification_ResubmitOnlyFromRejected(t *testing.T) {
	svc, uploader, _, ctx := setupVerificationTest(t)
	expectDocUploads(uploader)

	// No submission yet
	_, err := svc.Resubmit(ctx, "agent-1", VerificationInput{}, ProfileDocuments{})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Submit(ctx, "agent-1", VerificationInput{AgencyName: "Prime Homes"}, testDocs())
	require.NoError(t, err)

	// Pending submission cannot be resubmitted
	_, err = svc.Resubmit(ctx, "agent-1", VerificationInput{}, ProfileDocuments{})
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestVerification_ResubmitAfterRejection(t *testing.T) {
	svc, uploader, _, ctx := setupVerificationTest(t)
	expectDocUploads(uploader)

	db := utils.SetupTestDB(t, "testdb_verification_service")

	_, err := svc.Submit(ctx, "agent-1", VerificationInput{
		AgencyName: "Prime Homes", State: "Lagos",
	}, testDocs())
	require.NoError(t, err)

	// Admin rejects out of band.
	_, err = db.Collection("agent_profiles").UpdateOne(ctx,
		bson.M{"user_id": "agent-1"},
		bson.M{"$set": bson.M{"status": models.StatusRejected, "review_message": "Logo unreadable"}},
	)
	require.NoError(t, err)

	// Provided fields replace, absent fields are retained.
	profile, err := svc.Resubmit(ctx, "agent-1", VerificationInput{AgencyName: "Prime Homes Ltd"}, ProfileDocuments{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, profile.Status)
	assert.Equal(t, "Prime Homes Ltd", profile.AgencyName)
	assert.Equal(t, "Lagos", profile.State)
	assert.Empty(t, profile.ReviewMessage)
}

func TestVerification_Receipt(t *testing.T) {
	svc, uploader, _, ctx := setupVerificationTest(t)
	expectDocUploads(uploader)

	_, err := svc.GetReceipt(ctx, "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Submit(ctx, "agent-1", VerificationInput{AgencyName: "Prime Homes"}, testDocs())
	require.NoError(t, err)

	receipt, err := svc.GetReceipt(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "agent-1", receipt.Agent)
	assert.Equal(t, models.StatusPending, receipt.Status)
	assert.False(t, receipt.SubmittedAt.IsZero())
}
