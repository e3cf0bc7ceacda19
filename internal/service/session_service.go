package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pointofsale/internal/domain"
)

type SessionService struct {
	repository SessionRepository
	qr         QRGenerator
	publisher  EventPublisher
}

func NewSessionService(repository SessionRepository, qr QRGenerator, publisher EventPublisher) *SessionService {
	return &SessionService{
		repository: repository,
		qr:         qr,
		publisher:  publisher,
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Open starts a session for a table. The storage layer enforces at most one
// active session per table, surfacing ErrConflict on a duplicate.
func (s *SessionService) Open(ctx context.Context, scope domain.Scope, tableNumber int) (*domain.TableSession, error) {
	if tableNumber <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", domain.ErrValidation)
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(token)
	if err != nil {
		return nil, err
	}

	session := &domain.TableSession{
		ID:             uuid.NewString(),
		Token:          token,
		TableNumber:    tableNumber,
		OrganizationID: scope.OrganizationID,
		BranchID:       scope.BranchID,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	if err := s.repository.InsertSession(ctx, session, png); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventSessionOpened, session)
	return session, nil
}

// Close is idempotent: closing an already-closed session returns it unchanged.
func (s *SessionService) Close(ctx context.Context, scope domain.Scope, id string) (*domain.TableSession, error) {
	session, err := s.repository.GetSession(ctx, id, scope.BranchID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return session, nil
	}

	closed, err := s.repository.CloseSession(ctx, id, scope.BranchID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventSessionClosed, closed)
	return closed, nil
}

// ResolveToken works for closed sessions too; the caller decides whether a
// closed session is acceptable for its operation.
func (s *SessionService) ResolveToken(ctx context.Context, token string) (*domain.TableSession, error) {
	return s.repository.GetSessionByToken(ctx, token)
}

func (s *SessionService) List(ctx context.Context, scope domain.Scope, activeOnly *bool) ([]domain.TableSession, error) {
	return s.repository.ListSessions(ctx, scope.BranchID, activeOnly)
}

func (s *SessionService) QRCodePNG(ctx context.Context, scope domain.Scope, id string) ([]byte, error) {
	return s.repository.GetSessionQR(ctx, id, scope.BranchID)
}

func (s *SessionService) emit(ctx context.Context, eventType string, session *domain.TableSession) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, domain.Event{
		Type:           eventType,
		SessionID:      session.ID,
		BranchID:       session.BranchID,
		OrganizationID: session.OrganizationID,
		Payload: map[string]interface{}{
			"table_number": session.TableNumber,
		},
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("session-service: failed to publish %s event: %v", eventType, err)
	}
}
