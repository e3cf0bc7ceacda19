package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pointofsale/internal/domain"
	"pointofsale/internal/mocks"
	"pointofsale/internal/service"
)

func TestSessionService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewSessionRepository(t)
		qr := mocks.NewQRGenerator(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewSessionService(repo, qr, publisher)

		qr.On("Generate", mock.AnythingOfType("string")).Return([]byte("png"), nil).Once()
		repo.On("InsertSession", ctx, mock.MatchedBy(func(s *domain.TableSession) bool {
			return s.TableNumber == 4 && s.IsActive && len(s.Token) == 32 && s.BranchID == "branch-1"
		}), []byte("png")).Return(nil).Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool {
			return e.Type == domain.EventSessionOpened
		})).Return(nil).Once()

		session, err := svc.Open(ctx, staffScope, 4)
		require.NoError(t, err)
		assert.True(t, session.IsActive)
		assert.Len(t, session.Token, 32)
	})

	t.Run("duplicate_open_session_conflicts", func(t *testing.T) {
		repo := mocks.NewSessionRepository(t)
		qr := mocks.NewQRGenerator(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewSessionService(repo, qr, publisher)

		qr.On("Generate", mock.AnythingOfType("string")).Return([]byte("png"), nil).Once()
		repo.On("InsertSession", ctx, mock.Anything, mock.Anything).Return(domain.ErrConflict).Once()

		_, err := svc.Open(ctx, staffScope, 4)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("invalid_table_number", func(t *testing.T) {
		repo := mocks.NewSessionRepository(t)
		qr := mocks.NewQRGenerator(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewSessionService(repo, qr, publisher)

		_, err := svc.Open(ctx, staffScope, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSessionService_Close(t *testing.T) {
	ctx := context.Background()

	t.Run("closes_active_session", func(t *testing.T) {
		repo := mocks.NewSessionRepository(t)
		qr := mocks.NewQRGenerator(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewSessionService(repo, qr, publisher)

		closedAt := time.Now()
		repo.On("GetSession", ctx, "sess-1", "branch-1").
			Return(&domain.TableSession{ID: "sess-1", BranchID: "branch-1", IsActive: true}, nil).Once()
		repo.On("CloseSession", ctx, "sess-1", "branch-1").
			Return(&domain.TableSession{ID: "sess-1", BranchID: "branch-1", IsActive: false, ClosedAt: &closedAt}, nil).Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool {
			return e.Type == domain.EventSessionClosed
		})).Return(nil).Once()

		session, err := svc.Close(ctx, staffScope, "sess-1")
		require.NoError(t, err)
		assert.False(t, session.IsActive)
	})

	t.Run("close_is_idempotent", func(t *testing.T) {
		repo := mocks.NewSessionRepository(t)
		qr := mocks.NewQRGenerator(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewSessionService(repo, qr, publisher)

		repo.On("GetSession", ctx, "sess-1", "branch-1").
			Return(&domain.TableSession{ID: "sess-1", BranchID: "branch-1", IsActive: false}, nil).Once()

		session, err := svc.Close(ctx, staffScope, "sess-1")
		require.NoError(t, err)
		assert.False(t, session.IsActive)
		repo.AssertNotCalled(t, "CloseSession", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSessionService_ResolveToken(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewSessionRepository(t)
	qr := mocks.NewQRGenerator(t)
	publisher := mocks.NewEventPublisher(t)
	svc := service.NewSessionService(repo, qr, publisher)

	// resolution works for closed sessions; ordering against them is the
	// caller's error
	repo.On("GetSessionByToken", ctx, "tok-closed").
		Return(&domain.TableSession{ID: "sess-1", IsActive: false}, nil).Once()

	session, err := svc.ResolveToken(ctx, "tok-closed")
	require.NoError(t, err)
	assert.False(t, session.IsActive)
}
