package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smartpletude_backend/internal/feature/auth/domain/entity"
)

const (
	// passwordHashCost is the fixed bcrypt cost factor for stored hashes.
	passwordHashCost = 12

	// minPasswordLength defines the minimum password length.
	minPasswordLength = 6

	// defaultSessionTTL is the lifetime of a session when the user did not
	// ask to be remembered.
	defaultSessionTTL = 30 * time.Minute

	// rememberSessionTTL is the lifetime of a remembered session.
	rememberSessionTTL = 30 * 24 * time.Hour

	maxEmailLength = 120
	minNameLength  = 2
	maxNameLength  = 100
)

// Field rules, applied after trimming. min/max on strings count runes, so
// accented names measure the same as the lengths shown to the user.
var (
	validate     = validator.New()
	emailRule    = fmt.Sprintf("required,email,max=%d", maxEmailLength)
	nameRule     = fmt.Sprintf("min=%d,max=%d", minNameLength, maxNameLength)
	passwordRule = fmt.Sprintf("min=%d", minPasswordLength)
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists when the email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email (exact match).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// SessionStore abstracts the session mechanism: create on login, look up on
// each gated request, revoke on logout.
type SessionStore interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Revoke(ctx context.Context, id string) error
}

// RegisterInput is the validated-and-trimmed unit of a registration attempt.
type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	LastName        string
	FirstName       string
	UserType        string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	sessions SessionStore
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionStore) *authUsecase {
	return &authUsecase{users: users, sessions: sessions}
}

// normalize trims every text field and lowercases the email before
// validation, so "  A@B.COM " and "a@b.com" are the same account.
func (in *RegisterInput) normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.LastName = strings.TrimSpace(in.LastName)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.UserType = strings.TrimSpace(in.UserType)
}

// validate checks every field and collects all failures at once, so the form
// can show them together.
func (in *RegisterInput) validate() error {
	ve := newValidationError()

	switch {
	case in.Email == "":
		ve.Fields["email"] = "Email is required."
	case validate.Var(in.Email, emailRule) != nil:
		ve.Fields["email"] = "Please enter a valid email address."
	}

	if validate.Var(in.LastName, nameRule) != nil {
		ve.Fields["last_name"] = fmt.Sprintf("Last name must be between %d and %d characters.", minNameLength, maxNameLength)
	}
	if validate.Var(in.FirstName, nameRule) != nil {
		ve.Fields["first_name"] = fmt.Sprintf("First name must be between %d and %d characters.", minNameLength, maxNameLength)
	}

	if validate.Var(in.Password, passwordRule) != nil {
		ve.Fields["password"] = fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength)
	} else if in.Password != in.PasswordConfirm {
		ve.Fields["password_confirm"] = "Passwords must match."
	}

	if !entity.ValidUserType(in.UserType) {
		ve.Fields["user_type"] = "Please choose a valid account type."
	}

	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

// Register creates a new user with a hashed password and returns its ID.
// Input failures come back as *ValidationError; a taken email comes back as
// ErrEmailAlreadyExists.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (uint, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return 0, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hashed),
		LastName:     in.LastName,
		FirstName:    in.FirstName,
		UserType:     in.UserType,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login authenticates a user and establishes a new session on success.
// To prevent timing attacks, a bcrypt comparison runs even when the user
// does not exist, and the returned error never distinguishes an unknown
// email from a wrong password.
func (u *authUsecase) Login(ctx context.Context, email, password string, remember bool) (*entity.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path for
	// unknown emails.
	passwordHash := "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := defaultSessionTTL
	if remember {
		ttl = rememberSessionTTL
	}
	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserType:  user.UserType,
		Remember:  remember,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Logout revokes the session. Logging out twice is not an error.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	err := u.sessions.Revoke(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// CurrentUser resolves a session ID to its session and user. Expiry is
// evaluated lazily here; an expired record is revoked on first sight.
func (u *authUsecase) CurrentUser(ctx context.Context, sessionID string) (*entity.Session, *entity.User, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsRevoked() {
		return nil, nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		_ = u.sessions.Revoke(ctx, sessionID) // best effort
		return nil, nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}
