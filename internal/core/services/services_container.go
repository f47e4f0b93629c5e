package services

import (
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
)

// NewServiceContainer wires the service layer from a repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	tenantSvc := NewTenantService(repos.TenantRepo, repos.AccountRepo, accountSvc)
	resolverSvc := NewGLResolverService(repos.TenantRepo, repos.AccountRepo)
	postingSvc := NewPostingService(repos.JournalRepo, repos.AccountRepo, repos.TenantRepo, resolverSvc)

	return &portssvc.ServiceContainer{
		Tenant:   tenantSvc,
		Account:  accountSvc,
		Resolver: resolverSvc,
		Posting:  postingSvc,
	}
}
