package container

import (
	"github.com/samber/do"
	"github.com/serroba/sharelink-go/internal/plan"
)

// PlanPackage provides the billing collaborator and the plan gate.
func PlanPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (plan.Service, error) {
		options := do.MustInvoke[*Options](i)

		if options.BillingURL != "" {
			return plan.NewHTTPClient(options.BillingURL), nil
		}

		// Development fallback: everyone holds a paying plan.
		return &plan.Static{Default: plan.Pro}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*plan.Gate, error) {
		return plan.NewGate(do.MustInvoke[plan.Service](i)), nil
	})
}
