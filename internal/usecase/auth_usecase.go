package usecase

import (
	"context"
	"net/http"
	"time"

	"healthsystem/internal/converter"
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/domain/repository"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/internal/infrastructure/session"
	"healthsystem/internal/service"
	"healthsystem/pkg/apperror"
	"healthsystem/pkg/hasher"
	"healthsystem/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = apperror.Authentication("Invalid credentials")
	ErrAccountDeactivated = apperror.Authentication("Account deactivated").WithStatus(http.StatusForbidden)
	ErrEmailAlreadyExists = apperror.Conflict("Email already registered", nil)
	ErrNotAuthenticated   = apperror.Authentication("Authentication required")
	ErrUserNotFound       = apperror.NotFound("User not found")
)

// SessionStore persists logged-in sessions.
type SessionStore interface {
	Create(ctx context.Context, user *entity.User, remember bool, ttl time.Duration) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

type AuthUsecase interface {
	Verify(ctx context.Context, email, password string) (*entity.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.RegisterResponse, error)
	RegisterPhysician(ctx context.Context, req *dto.RegisterPhysicianRequest) (*dto.RegisterResponse, error)
	CurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	log           *logrus.Logger
	hasher        hasher.Hasher
	userRepo      repository.UserRepository
	patientRepo   repository.PatientRepository
	physicianRepo repository.PhysicianRepository
	clinicRepo    repository.ClinicRepository
	worksAtRepo   repository.WorksAtRepository
	profileRepo   repository.ProfileRepository
	sessions      SessionStore
	jwtService    *jwt.JWTService
	auditService  service.AuditService
	throttle      service.LoginThrottle
}

func NewAuthUsecase(
	log *logrus.Logger,
	hasher hasher.Hasher,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	physicianRepo repository.PhysicianRepository,
	clinicRepo repository.ClinicRepository,
	worksAtRepo repository.WorksAtRepository,
	profileRepo repository.ProfileRepository,
	sessions SessionStore,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
	throttle service.LoginThrottle,
) AuthUsecase {
	return &authUsecase{
		log:           log,
		hasher:        hasher,
		userRepo:      userRepo,
		patientRepo:   patientRepo,
		physicianRepo: physicianRepo,
		clinicRepo:    clinicRepo,
		worksAtRepo:   worksAtRepo,
		profileRepo:   profileRepo,
		sessions:      sessions,
		jwtService:    jwtService,
		auditService:  auditService,
		throttle:      throttle,
	}
}

// Verify checks email and password. An unknown email and a wrong password
// produce the same error. last_login is only touched on success.
func (u *authUsecase) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(ctx, db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil || !u.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := u.userRepo.UpdateLastLogin(ctx, db, user.ID); err != nil {
		u.log.Warnf("Failed to update last login for user %d: %+v", user.ID, err)
		return nil, err
	}
	now := time.Now()
	user.LastLogin = &now

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := u.throttle.Allow(ctx, req.Email); err != nil {
		return nil, err
	}

	user, err := u.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			u.throttle.RegisterFailure(ctx, req.Email)
		}
		return nil, err
	}
	u.throttle.Reset(ctx, req.Email)

	ttl := u.jwtService.GetExpiry(req.RememberMe)
	sess, err := u.sessions.Create(ctx, user, req.RememberMe, ttl)
	if err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	token, err := u.jwtService.GenerateSessionToken(sess.ID, user.ID, ttl)
	if err != nil {
		u.log.Warnf("Failed to sign session token: %+v", err)
		_ = u.sessions.Delete(ctx, sess.ID)
		return nil, err
	}

	if db, err := database.BrokerFromContext(ctx); err == nil {
		_ = u.auditService.LogUpdate(ctx, db, &user.ID, entity.AuditActionUserLogin, "user_account", user.ID, nil,
			map[string]interface{}{"remember_me": req.RememberMe})
	}

	return &dto.LoginResponse{
		User:      *converter.UserToResponse(user),
		ExpiresIn: int64(ttl.Seconds()),
		Token:     token,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context) error {
	id := identity.FromContext(ctx)
	if !id.Authenticated {
		return ErrNotAuthenticated
	}

	if err := u.sessions.Delete(ctx, id.SessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	if db, err := database.BrokerFromContext(ctx); err == nil {
		_ = u.auditService.LogDelete(ctx, db, &id.UserID, entity.AuditActionUserLogout, "session", id.UserID, nil)
	}

	return nil
}

// RegisterPatient creates the patient row and its account in one transaction.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.RegisterResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var res dto.RegisterResponse
	err = db.WithinTransaction(ctx, func(tx database.Querier) error {
		patient := converter.RegisterPatientRequestToEntity(req)
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return err
		}

		user, err := u.createAccount(ctx, tx, req.Email, hashedPassword, entity.RolePatient, patient.ID)
		if err != nil {
			return err
		}

		res = dto.RegisterResponse{UserID: user.ID, ReferenceID: patient.ID}
		return u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionPatientRegister, "patient", patient.ID, patient)
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// RegisterPhysician reuses the clinic with the same name and address, then
// creates the physician, the clinic link and the account, all or nothing.
func (u *authUsecase) RegisterPhysician(ctx context.Context, req *dto.RegisterPhysicianRequest) (*dto.RegisterResponse, error) {
	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var res dto.RegisterResponse
	err = db.WithinTransaction(ctx, func(tx database.Querier) error {
		physician, clinic := converter.RegisterPhysicianRequestToEntity(req)
		if err := u.clinicRepo.Upsert(ctx, tx, clinic); err != nil {
			u.log.Warnf("Failed to resolve clinic: %+v", err)
			return err
		}

		if err := u.physicianRepo.Create(ctx, tx, physician); err != nil {
			u.log.Warnf("Failed to create physician: %+v", err)
			return err
		}

		if err := u.worksAtRepo.Create(ctx, tx, &entity.WorksAt{PhysicianID: physician.ID, ClinicID: clinic.ID}); err != nil {
			u.log.Warnf("Failed to link physician to clinic: %+v", err)
			return err
		}

		user, err := u.createAccount(ctx, tx, req.Email, hashedPassword, entity.RolePhysician, physician.ID)
		if err != nil {
			return err
		}

		res = dto.RegisterResponse{UserID: user.ID, ReferenceID: physician.ID}
		return u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionPhysicianRegister, "physician", physician.ID,
			map[string]interface{}{"physician": physician, "clinic_id": clinic.ID})
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (u *authUsecase) createAccount(ctx context.Context, tx database.Querier, email, passwordHash string, role entity.Role, referenceID int64) (*entity.User, error) {
	user := &entity.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		ReferenceID:  &referenceID,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if database.IsUniqueViolation(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	id := identity.FromContext(ctx)
	if !id.Authenticated {
		return nil, ErrNotAuthenticated
	}

	db, err := database.BrokerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, db, id.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := converter.UserToResponse(user)
	if user.ReferenceID != nil {
		var profile database.Row
		switch user.Role {
		case entity.RolePatient:
			profile, err = u.profileRepo.FindPatientProfile(ctx, db, *user.ReferenceID)
		case entity.RolePhysician:
			profile, err = u.profileRepo.FindPhysicianProfile(ctx, db, *user.ReferenceID)
		}
		if err != nil {
			u.log.Warnf("Failed to load profile for user %d: %+v", user.ID, err)
			return nil, err
		}
		if profile != nil {
			profile["email"] = user.Email
			resp.Profile = profile
		}
	}

	return resp, nil
}
