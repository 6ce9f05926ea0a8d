package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/labreserva/booking-api/internal/core/domain"
	"github.com/labreserva/booking-api/internal/core/ports"
)

const (
	defaultBcryptCost = 12
	// bcrypt only hashes the first 72 bytes and x/crypto refuses anything longer.
	maxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthConfig holds the tunables for AuthService.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	AllowedDomains []string
}

// AuthService implements registration, login and bearer token verification.
type AuthService struct {
	repo       ports.AuthRepository
	mx         ports.MailDomainChecker
	guard      ports.LoginGuard
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	domains    map[string]struct{}
	domainErr  *domain.Error
	log        zerolog.Logger
}

// NewAuthService wires an AuthService. guard may be nil, which disables lockout.
func NewAuthService(
	repo ports.AuthRepository,
	mx ports.MailDomainChecker,
	guard ports.LoginGuard,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaultBcryptCost
	}
	domains := make(map[string]struct{}, len(cfg.AllowedDomains))
	ordered := make([]string, 0, len(cfg.AllowedDomains))
	for _, d := range cfg.AllowedDomains {
		if d = strings.TrimSpace(d); d != "" {
			if _, dup := domains[d]; !dup {
				ordered = append(ordered, d)
			}
			domains[d] = struct{}{}
		}
	}
	return &AuthService{
		repo:       repo,
		mx:         mx,
		guard:      guard,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		domains:    domains,
		domainErr:  domainNotAllowedError(ordered),
		log:        log,
	}
}

// Register validates the signup form and stores a new user. Checks run in a
// fixed order and the first failure is returned.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return domain.ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(in.Password) > maxPasswordBytes {
		return domain.ErrPasswordTooLong
	}
	if !emailPattern.MatchString(in.Email) {
		return domain.ErrInvalidEmailFormat
	}

	emailDomain := in.Email[strings.IndexByte(in.Email, '@')+1:]
	if _, ok := s.domains[emailDomain]; !ok {
		return s.domainErr
	}

	ok, err := s.mx.HasMX(ctx, emailDomain)
	if err != nil || !ok {
		s.log.Warn().Err(err).Str("domain", emailDomain).Msg("mx lookup rejected domain")
		return domain.ErrDomainUnreachable
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("domain", emailDomain).Msg("user registered")
	return nil
}

// domainNotAllowedError names the accepted domains, e.g.
// "Por favor, utilize um email institucional (@kroton.com.br ou @cogna.com.br)".
func domainNotAllowedError(domains []string) *domain.Error {
	if len(domains) == 0 {
		return domain.ErrDomainNotAllowed
	}
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = "@" + d
	}
	list := names[len(names)-1]
	if len(names) > 1 {
		list = strings.Join(names[:len(names)-1], ", ") + " ou " + list
	}
	return domain.ErrDomainNotAllowed.WithMessage(fmt.Sprintf("%s (%s)", domain.ErrDomainNotAllowed.Message, list))
}

// Login checks the credentials and issues a signed token carrying the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	if s.guard != nil {
		locked, err := s.guard.Locked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login guard unavailable, skipping lockout check")
		} else if locked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.guard != nil {
			if err := s.guard.RecordFailure(ctx, email); err != nil {
				s.log.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		return "", nil, domain.ErrInvalidPassword
	}

	if s.guard != nil {
		if err := s.guard.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login failures")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser returns the stored user for id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// tokenClaims is the JWT payload. The user id is carried both as "id" and "sub".
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// VerifyToken checks signature, algorithm and expiry, and returns the user id.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}
