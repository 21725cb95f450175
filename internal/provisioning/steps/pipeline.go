package steps

import (
	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/provisioning"
)

// NewInstallPipeline assembles the standard installation pipeline in its
// fixed order: dependencies, keygen, funding, init, config, deploy, verify.
func NewInstallPipeline(profile *config.InstallProfile) *provisioning.Pipeline {
	return provisioning.NewPipeline(
		NewDependencies(),
		NewKeygen(),
		NewFunding(),
		NewRegister(),
		NewNodeConfig(profile),
		NewDeploy(""),
		NewVerify(),
	)
}
