package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"driver-auth/internal/auth-service/core/domain/dto"
	"driver-auth/internal/auth-service/core/domain/models"
	"driver-auth/internal/auth-service/core/myerrors"
	"driver-auth/internal/auth-service/core/ports/driven"
	"driver-auth/internal/auth-service/core/ports/driver"
	"driver-auth/internal/mylogger"
)

type DriverService struct {
	driverRepo driven.IDriverRepo
	hasher     driven.IPasswordHasher
	tokens     *TokenManager
	publisher  driven.IDriverEventPublisher
	mylog      mylogger.Logger
}

var _ driver.IDriverService = (*DriverService)(nil)

func NewDriverService(
	driverRepo driven.IDriverRepo,
	hasher driven.IPasswordHasher,
	tokens *TokenManager,
	publisher driven.IDriverEventPublisher,
	mylogger mylogger.Logger,
) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		hasher:     hasher,
		tokens:     tokens,
		publisher:  publisher,
		mylog:      mylogger,
	}
}

// ======================= Register =======================
func (ds *DriverService) Register(ctx context.Context, regReq dto.DriverRegistrationRequest) error {
	mylog := ds.mylog.Action("Register")

	if err := validateRegistration(regReq); err != nil {
		return err
	}
	email := strings.TrimSpace(regReq.Email)

	exists, err := ds.driverRepo.ExistsByEmail(ctx, email)
	if err != nil {
		mylog.Error("Failed to look up email", err)
		return fmt.Errorf("cannot check email: %w", err)
	}
	if exists {
		mylog.Warn("Failed to register, email already registered")
		return myerrors.ErrEmailRegistered
	}

	hashedPassword, err := ds.hasher.Hash(regReq.Password)
	if err != nil {
		mylog.Error("Failed to hash password", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	driver := models.Driver{
		Nama:         strings.TrimSpace(regReq.Nama),
		Email:        email,
		NoHP:         strings.TrimSpace(regReq.NoHP),
		PasswordHash: hashedPassword,
		Alamat:       optional(regReq.Alamat),
		Kendaraan:    optional(regReq.Kendaraan),
		Status:       models.StatusPending,
	}
	id, err := ds.driverRepo.Create(ctx, driver)
	if err != nil {
		if errors.Is(err, myerrors.ErrEmailRegistered) {
			// lost the race against a concurrent registration
			mylog.Warn("Failed to register, email already registered")
			return err
		}
		mylog.Error("Failed to save driver in db", err)
		return fmt.Errorf("cannot save driver in db: %w", err)
	}

	event := dto.DriverRegisteredEvent{
		DriverID:     id,
		Email:        email,
		Status:       models.StatusPending,
		RegisteredAt: time.Now().UTC(),
	}
	if err := ds.publisher.PublishDriverRegistered(ctx, event); err != nil {
		mylog.Warn("Failed to publish driver.registered", "driver_id", id, "error", err.Error())
	}

	mylog.Info("Driver registered successfully", "driver_id", id)
	return nil
}

// ======================= Login =======================
func (ds *DriverService) Login(ctx context.Context, authReq dto.DriverAuthRequest) (string, models.Profile, error) {
	mylog := ds.mylog.Action("Login")

	if err := validateLogin(authReq); err != nil {
		return "", models.Profile{}, err
	}

	driver, err := ds.driverRepo.GetByEmail(ctx, strings.TrimSpace(authReq.Email))
	if err != nil {
		if errors.Is(err, myerrors.ErrDriverNotFound) {
			mylog.Debug("Failed to login, unknown email")
			return "", models.Profile{}, myerrors.ErrInvalidCredentials
		}
		mylog.Error("Failed to load driver", err)
		return "", models.Profile{}, fmt.Errorf("cannot load driver: %w", err)
	}

	if !ds.hasher.Check(authReq.Password, driver.PasswordHash) {
		mylog.Debug("Failed to login, wrong password", "driver_id", driver.ID)
		return "", models.Profile{}, myerrors.ErrInvalidCredentials
	}

	token, err := ds.tokens.Issue(models.Claims{DriverID: driver.ID, Email: driver.Email})
	if err != nil {
		mylog.Error("error to create jwt token", err)
		return "", models.Profile{}, err
	}

	mylog.Info("Driver login successfully", "driver_id", driver.ID)
	return token, driver.Profile(), nil
}

// ======================= Profile =======================
func (ds *DriverService) GetProfile(ctx context.Context, driverID int64) (models.Profile, error) {
	mylog := ds.mylog.Action("GetProfile")

	profile, err := ds.driverRepo.GetProfileByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, myerrors.ErrDriverNotFound) {
			mylog.Warn("Token refers to a missing driver", "driver_id", driverID)
			return models.Profile{}, err
		}
		mylog.Error("Failed to load profile", err)
		return models.Profile{}, fmt.Errorf("cannot load profile: %w", err)
	}
	return profile, nil
}
