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
	"github.com/bizbooks/ledgercore/internal/tenant"
)

type GLResolverTestSuite struct {
	suite.Suite
	tenantRepo  *MockTenantRepository
	accountRepo *MockAccountRepository
	service     portssvc.GLResolverSvcFacade
	ctx         context.Context
}

func (s *GLResolverTestSuite) SetupTest() {
	s.tenantRepo = new(MockTenantRepository)
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewGLResolverService(s.tenantRepo, s.accountRepo)
	s.ctx = tenant.WithID(context.Background(), testTenantID)
}

func (s *GLResolverTestSuite) tenantWithSettings(settings map[string]string) *domain.Tenant {
	return &domain.Tenant{
		TenantID:            testTenantID,
		Name:                "Test Tenant",
		DefaultCurrencyCode: "USD",
		GLSettings:          settings,
		IsActive:            true,
	}
}

func (s *GLResolverTestSuite) TestResolveCode_UsesTenantSetting() {
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).
		Return(s.tenantWithSettings(map[string]string{rules.RoleSalesRevenue: "4000"}), nil)

	code, err := s.service.ResolveCode(s.ctx, rules.RoleSalesRevenue, rules.FallbackSalesRevenue)

	s.Require().NoError(err)
	s.Equal("4000", code)
}

func (s *GLResolverTestSuite) TestResolveCode_FallsBackWhenUnconfigured() {
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).
		Return(s.tenantWithSettings(map[string]string{}), nil)

	code, err := s.service.ResolveCode(s.ctx, rules.RoleSalesRevenue, rules.FallbackSalesRevenue)

	s.Require().NoError(err)
	s.Equal(rules.FallbackSalesRevenue, code)
}

func (s *GLResolverTestSuite) TestResolveCode_TenantRequired() {
	_, err := s.service.ResolveCode(context.Background(), rules.RoleSalesRevenue, rules.FallbackSalesRevenue)
	s.True(errors.Is(err, apperrors.ErrTenantRequired))
}

func (s *GLResolverTestSuite) TestGetAccountID_ResolvesThroughChart() {
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).
		Return(s.tenantWithSettings(map[string]string{}), nil)
	account := &domain.ChartOfAccount{
		AccountID:   "acc-sales",
		TenantID:    testTenantID,
		Code:        rules.FallbackSalesRevenue,
		AccountType: domain.Income,
		IsActive:    true,
	}
	s.accountRepo.On("FindAccountByCode", mock.Anything, rules.FallbackSalesRevenue).Return(account, nil)

	accountID, err := s.service.GetAccountID(s.ctx, rules.RoleSalesRevenue, rules.FallbackSalesRevenue)

	s.Require().NoError(err)
	s.Equal("acc-sales", accountID)
}

func (s *GLResolverTestSuite) TestGetAccountID_CodeMissingFromChart() {
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).
		Return(s.tenantWithSettings(map[string]string{}), nil)
	s.accountRepo.On("FindAccountByCode", mock.Anything, rules.FallbackSalesRevenue).
		Return(nil, apperrors.ErrNotFound)

	accountID, err := s.service.GetAccountID(s.ctx, rules.RoleSalesRevenue, rules.FallbackSalesRevenue)

	s.Require().NoError(err)
	s.Empty(accountID, "unresolvable role must yield empty id, not an error")
}

func (s *GLResolverTestSuite) TestGetAccountID_InactiveAccountDoesNotResolve() {
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).
		Return(s.tenantWithSettings(map[string]string{}), nil)
	account := &domain.ChartOfAccount{
		AccountID: "acc-sales",
		TenantID:  testTenantID,
		Code:      rules.FallbackSalesRevenue,
		IsActive:  false,
	}
	s.accountRepo.On("FindAccountByCode", mock.Anything, rules.FallbackSalesRevenue).Return(account, nil)

	accountID, err := s.service.GetAccountID(s.ctx, rules.RoleSalesRevenue, rules.FallbackSalesRevenue)

	s.Require().NoError(err)
	s.Empty(accountID)
}

func (s *GLResolverTestSuite) TestValidateConfiguration_ReportsMissingRoles() {
	s.tenantRepo.On("FindTenantByID", mock.Anything, testTenantID).
		Return(s.tenantWithSettings(map[string]string{}), nil)
	arAccount := &domain.ChartOfAccount{AccountID: "acc-ar", TenantID: testTenantID, IsActive: true}
	s.accountRepo.On("FindAccountByCode", mock.Anything, rules.FallbackAccountsReceivable).Return(arAccount, nil)
	s.accountRepo.On("FindAccountByCode", mock.Anything, rules.FallbackSalesRevenue).
		Return(nil, apperrors.ErrNotFound)

	missing, err := s.service.ValidateConfiguration(s.ctx, []string{rules.RoleAccountsReceivable, rules.RoleSalesRevenue})

	s.Require().NoError(err)
	s.Equal([]string{rules.RoleSalesRevenue}, missing)
}

func TestGLResolverService(t *testing.T) {
	suite.Run(t, new(GLResolverTestSuite))
}
