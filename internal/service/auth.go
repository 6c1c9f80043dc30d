package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/model"
	"kebab-shop-demo/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.Profile, error)
	Authenticate(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	EndSession(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*model.Account, error)
}

type authServiceImpl struct {
	accountRepo     repository.AccountRepository
	sessionRepo     repository.SessionRepository
	sessionTTL      time.Duration
	startingBalance int64
}

func NewAuthService(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	sessionTTL time.Duration,
	startingBalance int64,
) AuthService {
	return &authServiceImpl{
		accountRepo:     accountRepo,
		sessionRepo:     sessionRepo,
		sessionTTL:      sessionTTL,
		startingBalance: startingBalance,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.Profile, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	account := &model.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Balance:      s.startingBalance,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("store account: %w", err)
	}

	return profileOf(account), nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		// unknown identity and wrong credential are indistinguishable
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &dto.LoginResponse{
		Token:   token,
		Profile: *profileOf(account),
	}, nil
}

// EndSession is idempotent: ending an absent session succeeds.
func (s *authServiceImpl) EndSession(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

func (s *authServiceImpl) Resolve(ctx context.Context, token string) (*model.Account, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionRepo.Delete(ctx, token)
		return nil, ErrNotAuthenticated
	}

	account, err := s.accountRepo.FindByID(ctx, session.AccountID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	return account, nil
}

func profileOf(account *model.Account) *dto.Profile {
	return &dto.Profile{
		ID:      account.ID,
		Email:   account.Email,
		Name:    account.Name,
		Phone:   account.Phone,
		Address: account.Address,
		Balance: account.Balance,
	}
}

// generateToken draws 32 bytes from crypto/rand; the result is opaque and
// unguessable, never derived from time or a counter.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
