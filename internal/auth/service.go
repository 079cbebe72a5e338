// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

// NewProfile describes the profile created alongside a principal.
// Empty fields take the profile defaults.
type NewProfile struct {
	PrincipalID       ulid.ULID
	UserType          UserType
	SkillLevel        string
	Specialization    string
	YearsOfExperience *int
	Department        string
	CreatedAt         time.Time
}

// ProfileStore creates and locates the role-specific profile of a principal.
type ProfileStore interface {
	// CreateProfile stores the profile for p.UserType and returns its ID.
	CreateProfile(ctx context.Context, p NewProfile) (ulid.ULID, error)

	// ProfileID returns the profile of the given type owned by principalID.
	// Returns ErrNotFound if there is none.
	ProfileID(ctx context.Context, principalID ulid.ULID, userType UserType) (ulid.ULID, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// dummyPasswordHash is verified when no principal matches the email so that
// unknown and known emails take the same time. It matches no password.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service provides registration and login.
type Service struct {
	principals PrincipalRepository
	roles      RoleRepository
	profiles   ProfileStore
	tx         Transactor
	tokens     *TokenIssuer
	hasher     PasswordHasher
	passwords  PasswordPolicy
	lockout    LockoutPolicy
	now        func() time.Time
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPasswordPolicy sets the registration password policy.
func WithPasswordPolicy(p PasswordPolicy) ServiceOption {
	return func(s *Service) { s.passwords = p }
}

// WithLockoutPolicy sets the login lockout policy.
func WithLockoutPolicy(p LockoutPolicy) ServiceOption {
	return func(s *Service) { s.lockout = p }
}

// WithHasher replaces the argon2id hasher.
func WithHasher(h PasswordHasher) ServiceOption {
	return func(s *Service) { s.hasher = h }
}

// WithClock sets the time source used for timestamps and lockout checks.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service. All collaborators are required.
func NewService(
	principals PrincipalRepository,
	roles RoleRepository,
	profiles ProfileStore,
	tx Transactor,
	tokens *TokenIssuer,
	opts ...ServiceOption,
) (*Service, error) {
	if principals == nil {
		return nil, oops.Errorf("principal repository is required")
	}
	if roles == nil {
		return nil, oops.Errorf("role repository is required")
	}
	if profiles == nil {
		return nil, oops.Errorf("profile store is required")
	}
	if tx == nil {
		return nil, oops.Errorf("transactor is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token issuer is required")
	}

	s := &Service{
		principals: principals,
		roles:      roles,
		profiles:   profiles,
		tx:         tx,
		tokens:     tokens,
		hasher:     NewArgon2idHasher(),
		passwords:  DefaultPasswordPolicy(),
		lockout:    DefaultLockoutPolicy(),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates a principal, grants the role for the requested user type
// and creates the matching profile in one transaction, then mints a token.
// Input is fully validated before the store is touched.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	userType, err := ParseUserType(req.UserType)
	if err != nil {
		return nil, err
	}
	if err := s.passwords.Check(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.principals.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "check email").
			Wrap(err)
	}
	if exists {
		return nil, duplicateEmail(req.Email)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	now := s.now()
	principal, err := NewPrincipal(req.Email, hash, req.FirstName, req.LastName, now)
	if err != nil {
		return nil, err
	}
	role := userType.Role()

	var profileID ulid.ULID
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.principals.Create(ctx, principal); err != nil {
			return err
		}
		if err := s.roles.Grant(ctx, principal.ID, role); err != nil {
			return err
		}
		var err error
		profileID, err = s.profiles.CreateProfile(ctx, NewProfile{
			PrincipalID:       principal.ID,
			UserType:          userType,
			SkillLevel:        req.SkillLevel,
			Specialization:    req.Specialization,
			YearsOfExperience: req.YearsOfExperience,
			Department:        req.Department,
			CreatedAt:         now,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, duplicateEmail(req.Email)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist registration").
			With("email", req.Email).
			Wrap(err)
	}

	roles := []Role{role}
	token, err := s.tokens.Issue(principal, roles)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "issue token").
			With("principal_id", principal.ID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "principal registered",
		"principal_id", principal.ID.String(),
		"profile_id", profileID.String(),
		"user_type", userType.String())

	return &AuthResult{
		Token:       token.Value,
		ExpiresAt:   token.ExpiresAt,
		PrincipalID: principal.ID,
		ProfileID:   profileID,
		Email:       principal.Email,
		UserType:    userType,
		Roles:       roles,
	}, nil
}

// Login authenticates a principal and mints a token.
// Unknown emails and wrong passwords fail identically; a locked account fails
// with AUTH_ACCOUNT_LOCKED even when the password is correct.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	principal, lookupErr := s.principals.GetByEmail(ctx, req.Email)

	var targetHash string
	var exists bool
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get principal by email").
				Wrap(lookupErr)
		}
		targetHash = dummyPasswordHash
	} else {
		targetHash = principal.PasswordHash
		exists = true
	}

	// Always verify, even for unknown emails.
	valid, verifyErr := s.hasher.Verify(req.Password, targetHash)
	if verifyErr != nil {
		if !exists {
			return nil, invalidCredentials()
		}
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}
	if !exists {
		return nil, invalidCredentials()
	}

	now := s.now()
	if principal.IsLocked(now) {
		return nil, oops.Code(CodeAccountLocked).
			With("locked_until", principal.LockedUntil).
			Errorf("account is temporarily locked")
	}
	if !valid {
		s.recordFailure(ctx, principal.ID)
		return nil, invalidCredentials()
	}

	roles, err := s.roles.ListForPrincipal(ctx, principal.ID)
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "list roles").
			With("principal_id", principal.ID.String()).
			Wrap(err)
	}

	if principal.FailedAttempts > 0 || principal.LockedUntil != nil {
		principal.RecordSuccess(now)
		if err := s.principals.UpdateLoginState(ctx, principal); err != nil {
			errutil.LogWarn(ctx, s.logger, "failed to reset login failures", err,
				"principal_id", principal.ID.String())
		}
	}
	s.upgradeHash(ctx, principal, req.Password)

	token, err := s.tokens.Issue(principal, roles)
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			With("principal_id", principal.ID.String()).
			Wrap(err)
	}

	result := &AuthResult{
		Token:       token.Value,
		ExpiresAt:   token.ExpiresAt,
		PrincipalID: principal.ID,
		Email:       principal.Email,
		Roles:       roles,
	}
	if userType, ok := UserTypeForRoles(roles); ok {
		result.UserType = userType
		result.ProfileID = s.profileID(ctx, principal.ID, userType)
	}
	return result, nil
}

// Authorize verifies a bearer token and requires at least one of roles.
// With no roles any valid token is accepted.
func (s *Service) Authorize(token string, roles ...Role) (*Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if !HasAnyRole(claims.RoleSet(), roles...) {
		return nil, oops.Code(CodeForbidden).
			With("sub", claims.Subject).
			With("required", roles).
			Errorf("principal lacks a required role")
	}
	return claims, nil
}

// recordFailure increments the failure counter under a row lock. Errors are
// logged; the caller still reports invalid credentials.
func (s *Service) recordFailure(ctx context.Context, id ulid.ULID) {
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.principals.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		now := s.now()
		if locked.IsLocked(now) {
			return nil
		}
		locked.RecordFailure(s.lockout, now)
		if locked.LockedUntil != nil {
			s.logger.WarnContext(ctx, "account locked",
				"principal_id", id.String(),
				"failed_attempts", locked.FailedAttempts,
				"locked_until", *locked.LockedUntil)
		}
		return s.principals.UpdateLoginState(ctx, locked)
	})
	if err != nil {
		errutil.LogWarn(ctx, s.logger, "failed to record login failure", err, "principal_id", id.String())
	}
}

func (s *Service) upgradeHash(ctx context.Context, principal *Principal, password string) {
	if !s.hasher.NeedsUpgrade(principal.PasswordHash) {
		return
	}
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.principals.UpdatePassword(ctx, principal.ID, hash)
	}
	if err != nil {
		errutil.LogWarn(ctx, s.logger, "failed to upgrade password hash", err, "principal_id", principal.ID.String())
		return
	}
	principal.PasswordHash = hash
}

func (s *Service) profileID(ctx context.Context, principalID ulid.ULID, userType UserType) ulid.ULID {
	id, err := s.profiles.ProfileID(ctx, principalID, userType)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			errutil.LogWarn(ctx, s.logger, "failed to resolve profile", err,
				"principal_id", principalID.String(), "user_type", userType.String())
		}
		return ulid.ULID{}
	}
	return id
}

func invalidCredentials() error {
	return oops.Code(CodeInvalidCredentials).Errorf("invalid email or password")
}

func duplicateEmail(email string) error {
	return oops.Code(CodeDuplicateEmail).
		With("email", email).
		Errorf("email is already registered")
}
