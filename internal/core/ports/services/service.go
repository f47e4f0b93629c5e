package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing the posting engine from
// document-lifecycle code and operational tooling.
type ServiceContainer struct {
	Tenant   TenantSvcFacade
	Account  AccountSvcFacade
	Resolver GLResolverSvcFacade
	Posting  PostingSvcFacade
}
