package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-booking-bot/internal/converter"
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/internal/domain/entity"
	"clinic-booking-bot/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNameRequired      = errors.New("doctor name is required")
	ErrDoctorSpecialtyRequired = errors.New("doctor specialty is required")
	ErrServiceNameRequired     = errors.New("service name is required")
	ErrDuplicateService        = errors.New("service with this name already exists")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrServiceNotFound         = errors.New("service not found")
)

type CatalogUsecase interface {
	AddDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID int) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	AddService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetServiceByName(ctx context.Context, name string) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context) (*dto.ServiceListResponse, error)
}

type catalogUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	doctorRepo       repository.DoctorRepository
	serviceRepo      repository.ServiceRepository
	storeTimeout     time.Duration
	rejectDuplicates bool
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	serviceRepo repository.ServiceRepository,
	storeTimeout time.Duration,
	rejectDuplicates bool,
) CatalogUsecase {
	return &catalogUsecase{
		db:               db,
		log:              log,
		doctorRepo:       doctorRepo,
		serviceRepo:      serviceRepo,
		storeTimeout:     storeTimeout,
		rejectDuplicates: rejectDuplicates,
	}
}

func (u *catalogUsecase) AddDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	name := strings.TrimSpace(req.Name)
	specialty := strings.TrimSpace(req.Specialty)
	if name == "" {
		return nil, ErrDoctorNameRequired
	}
	if specialty == "" {
		return nil, ErrDoctorSpecialtyRequired
	}

	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	doctor := &entity.Doctor{
		Name:      name,
		Specialty: specialty,
	}

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, classifyStoreErr(err)
	}

	u.log.Infof("Doctor created: id=%d, name=%s", doctor.ID, doctor.Name)
	return converter.DoctorToResponse(doctor), nil
}

func (u *catalogUsecase) GetDoctor(ctx context.Context, doctorID int) (*dto.DoctorResponse, error) {
	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, classifyStoreErr(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// ListDoctors returns all doctors in creation order. An empty list is a
// valid result and must be handled by callers.
func (u *catalogUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, classifyStoreErr(err)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// AddService appends a service. Under the reject-duplicates policy a second
// service with the same name fails with ErrDuplicateService; otherwise the
// call is an idempotent no-op returning the existing row.
func (u *catalogUsecase) AddService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrServiceNameRequired
	}

	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	existing, err := u.serviceRepo.FindByName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to check existing service: %+v", err)
		return nil, classifyStoreErr(err)
	}
	if existing != nil {
		if u.rejectDuplicates {
			return nil, ErrDuplicateService
		}
		return converter.ServiceToResponse(existing), nil
	}

	service := &entity.Service{Name: name}
	if err := u.serviceRepo.Create(u.db.WithContext(ctx), service); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, classifyStoreErr(err)
	}

	u.log.Infof("Service created: id=%d, name=%s", service.ID, service.Name)
	return converter.ServiceToResponse(service), nil
}

func (u *catalogUsecase) GetServiceByName(ctx context.Context, name string) (*dto.ServiceResponse, error) {
	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	service, err := u.serviceRepo.FindByName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", name, err)
		return nil, classifyStoreErr(err)
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceToResponse(service), nil
}

func (u *catalogUsecase) ListServices(ctx context.Context) (*dto.ServiceListResponse, error) {
	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, classifyStoreErr(err)
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}
