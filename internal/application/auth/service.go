package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domainStudent "github.com/campus-hub/campus-hub/internal/domain/student"
	domainTeacher "github.com/campus-hub/campus-hub/internal/domain/teacher"
	domainUser "github.com/campus-hub/campus-hub/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotApproved        = errors.New("account is awaiting admin approval")
)

// Service handles registration, login and bearer token verification.
type Service struct {
	userRepo    domainUser.Repository
	studentRepo domainStudent.Repository
	teacherRepo domainTeacher.Repository
	secret      []byte
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewService(userRepo domainUser.Repository, studentRepo domainStudent.Repository, teacherRepo domainTeacher.Repository, secret string, tokenTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		logger:      logger.With().Str("service", "auth").Logger(),
	}
}

// StudentProfile is the role-specific data supplied at student registration.
type StudentProfile struct {
	Name           string  `json:"name"`
	RollNumber     string  `json:"rollNumber"`
	Department     string  `json:"department"`
	Semester       int     `json:"semester"`
	EnrollmentYear int     `json:"enrollmentYear"`
	Phone          *string `json:"phone,omitempty"`
}

// TeacherProfile is the role-specific data supplied at teacher registration.
type TeacherProfile struct {
	Name       string  `json:"name"`
	EmployeeID string  `json:"employeeId"`
	Department string  `json:"department"`
	Phone      *string `json:"phone,omitempty"`
}

// RegisterInput carries a registration request. Exactly one of Student or
// Teacher must be set, matching Role.
type RegisterInput struct {
	Email    string
	Password string
	Role     domainUser.Role
	Student  *StudentProfile
	Teacher  *TeacherProfile
}

// RegisterResult contains the created account and a login token.
type RegisterResult struct {
	User  *domainUser.User
	Token string
}

// Register creates the account plus its role profile. A teacher account
// starts PENDING and cannot log in until approved.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := domainUser.NormalizeEmail(in.Email)
	if err := domainUser.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domainUser.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := domainUser.ValidateRole(in.Role); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := domainUser.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domainUser.User{
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       domainUser.InitialStatus(in.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, u, in); err != nil {
		// Roll the account back so a rejected roll number or employee id
		// does not leave an orphaned login.
		_ = s.userRepo.Delete(ctx, u.UserID)
		return nil, err
	}

	token, err := s.mintToken(u)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.UserID.String()).Str("role", string(u.Role)).Msg("user registered")
	return &RegisterResult{User: u, Token: token}, nil
}

func (s *Service) createProfile(ctx context.Context, u *domainUser.User, in RegisterInput) error {
	switch in.Role {
	case domainUser.RoleStudent:
		if in.Student == nil {
			return errors.New("student profile data is required")
		}
		p := in.Student
		st := &domainStudent.Student{
			StudentID:      uuid.New(),
			UserID:         u.UserID,
			Name:           p.Name,
			RollNumber:     domainStudent.NormalizeRollNumber(p.RollNumber),
			Email:          u.Email,
			Department:     p.Department,
			Semester:       p.Semester,
			EnrollmentYear: p.EnrollmentYear,
			Phone:          p.Phone,
			CreatedAt:      u.CreatedAt,
			UpdatedAt:      u.CreatedAt,
		}
		if err := st.Validate(); err != nil {
			return err
		}
		if dup, err := s.studentRepo.GetByRollNumber(ctx, st.RollNumber); err != nil {
			return err
		} else if dup != nil {
			return errors.New("roll number is already registered")
		}
		return s.studentRepo.Create(ctx, st)
	case domainUser.RoleTeacher:
		if in.Teacher == nil {
			return errors.New("teacher profile data is required")
		}
		p := in.Teacher
		tc := &domainTeacher.Teacher{
			TeacherID:  uuid.New(),
			UserID:     u.UserID,
			Name:       p.Name,
			EmployeeID: domainTeacher.NormalizeEmployeeID(p.EmployeeID),
			Email:      u.Email,
			Department: p.Department,
			Phone:      p.Phone,
			CreatedAt:  u.CreatedAt,
			UpdatedAt:  u.CreatedAt,
		}
		if err := tc.Validate(); err != nil {
			return err
		}
		return s.teacherRepo.Create(ctx, tc)
	case domainUser.RoleAdmin:
		return nil
	}
	return errors.New("invalid role")
}

// LoginResult contains login response.
type LoginResult struct {
	User      *domainUser.User
	Token     string
	ExpiresAt time.Time
}

// Login authenticates a user and mints a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domainUser.NormalizeEmail(email)
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !domainUser.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if u.Status == domainUser.StatusPending {
		return nil, ErrNotApproved
	}
	if !u.IsActive() {
		return nil, ErrInvalidCredentials
	}

	token, err := s.mintToken(u)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.UserID.String()).Msg("user login")
	return &LoginResult{User: u, Token: token, ExpiresAt: time.Now().UTC().Add(s.tokenTTL)}, nil
}

// Authenticate verifies a bearer token and loads the user behind it.
func (s *Service) Authenticate(ctx context.Context, token string) (*domainUser.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive() {
		return nil, ErrInvalidToken
	}
	return u, nil
}

func (s *Service) mintToken(u *domainUser.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   u.UserID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		Issuer:    "campus-hub",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
