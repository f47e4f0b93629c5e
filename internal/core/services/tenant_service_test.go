package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
	"github.com/bizbooks/ledgercore/internal/core/rules"
	"github.com/bizbooks/ledgercore/internal/core/services"
	"github.com/bizbooks/ledgercore/internal/dto"
	"github.com/bizbooks/ledgercore/internal/tenant"
)

type TenantServiceTestSuite struct {
	suite.Suite
	tenantRepo  *MockTenantRepository
	accountRepo *MockAccountRepository
	accountSvc  *MockAccountService
	service     portssvc.TenantSvcFacade
}

func (s *TenantServiceTestSuite) SetupTest() {
	s.tenantRepo = new(MockTenantRepository)
	s.accountRepo = new(MockAccountRepository)
	s.accountSvc = new(MockAccountService)
	s.service = services.NewTenantService(s.tenantRepo, s.accountRepo, s.accountSvc)
}

func (s *TenantServiceTestSuite) TestCreateTenant_ProvisionsAndSeeds() {
	s.tenantRepo.On("SaveTenant", mock.Anything, mock.MatchedBy(func(t domain.Tenant) bool {
		return t.Name == "Acme Books" && t.DefaultCurrencyCode == "EUR" && t.IsActive
	})).Return(nil)
	s.accountSvc.On("SeedDefaultChart", mock.Anything, mock.Anything, testUserID).Return(nil)

	created, err := s.service.CreateTenant(context.Background(), dto.CreateTenantRequest{
		Name:                "Acme Books",
		DefaultCurrencyCode: "EUR",
	}, testUserID)

	s.Require().NoError(err)
	s.NotEmpty(created.TenantID)
	s.NotNil(created.GLSettings)
	s.accountSvc.AssertCalled(s.T(), "SeedDefaultChart", mock.Anything, created.TenantID, testUserID)
}

func (s *TenantServiceTestSuite) TestCreateTenant_BadCurrency() {
	created, err := s.service.CreateTenant(context.Background(), dto.CreateTenantRequest{
		Name:                "Acme Books",
		DefaultCurrencyCode: "EURO",
	}, testUserID)

	s.Nil(created)
	s.True(errors.Is(err, apperrors.ErrValidation))
	s.tenantRepo.AssertNotCalled(s.T(), "SaveTenant", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestUpdateGLSettings_VerifiesCodes() {
	ctx := tenant.WithID(context.Background(), testTenantID)
	account := &domain.ChartOfAccount{AccountID: "acc-1", TenantID: testTenantID, Code: "4000", IsActive: true}
	s.accountRepo.On("FindAccountByCode", mock.Anything, "4000").Return(account, nil)
	settings := map[string]string{rules.RoleSalesRevenue: "4000"}
	s.tenantRepo.On("UpdateGLSettings", mock.Anything, testTenantID, settings, testUserID).Return(nil)

	err := s.service.UpdateGLSettings(ctx, dto.UpdateGLSettingsRequest{Settings: settings}, testUserID)

	s.Require().NoError(err)
	s.tenantRepo.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestUpdateGLSettings_UnknownCodeRejected() {
	ctx := tenant.WithID(context.Background(), testTenantID)
	s.accountRepo.On("FindAccountByCode", mock.Anything, "9999").Return(nil, apperrors.ErrNotFound)

	err := s.service.UpdateGLSettings(ctx, dto.UpdateGLSettingsRequest{
		Settings: map[string]string{rules.RoleSalesRevenue: "9999"},
	}, testUserID)

	s.True(errors.Is(err, apperrors.ErrValidation))
	s.tenantRepo.AssertNotCalled(s.T(), "UpdateGLSettings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestUpdateGLSettings_TenantRequired() {
	err := s.service.UpdateGLSettings(context.Background(), dto.UpdateGLSettingsRequest{
		Settings: map[string]string{rules.RoleSalesRevenue: "4000"},
	}, testUserID)

	s.True(errors.Is(err, apperrors.ErrTenantRequired))
}

func (s *TenantServiceTestSuite) TestGetGLSettings() {
	ctx := tenant.WithID(context.Background(), testTenantID)
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).Return(&domain.Tenant{
		TenantID:   testTenantID,
		GLSettings: map[string]string{rules.RoleBank: "1001"},
	}, nil)

	settings, err := s.service.GetGLSettings(ctx)

	s.Require().NoError(err)
	s.Equal("1001", settings[rules.RoleBank])
}

func (s *TenantServiceTestSuite) TestDeactivateTenant() {
	s.tenantRepo.On("SetTenantActive", mock.Anything, testTenantID, false, testUserID).Return(nil)

	err := s.service.DeactivateTenant(context.Background(), testTenantID, testUserID)

	s.Require().NoError(err)
	s.tenantRepo.AssertExpectations(s.T())
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
