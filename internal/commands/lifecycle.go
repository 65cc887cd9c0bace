package commands

// mutatingOperations lists operations that change remote state. After one of
// them succeeds the shell waits for its default data center to become
// available again.
var mutatingOperations = map[string]struct{}{
	"createDataCenter":                {},
	"updateDataCenter":                {},
	"clearDataCenter":                 {},
	"deleteDataCenter":                {},
	"createServer":                    {},
	"rebootServer":                    {},
	"updateServer":                    {},
	"deleteServer":                    {},
	"createStorage":                   {},
	"connectStorageToServer":          {},
	"disconnectStorageFromServer":     {},
	"updateStorage":                   {},
	"deleteStorage":                   {},
	"createLoadBalancer":              {},
	"registerServersOnLoadBalancer":   {},
	"deregisterServersOnLoadBalancer": {},
	"activateLoadBalancingOnServer":   {},
	"deactivateLoadBalancingOnServer": {},
	"deleteLoadBalancer":              {},
	"addRomDriveToServer":             {},
	"removeRomDriveFromServer":        {},
	"setImageOsType":                  {},
	"deleteImage":                     {},
	"createNic":                       {},
	"enableInternetAccess":            {},
	"disableInternetAccess":           {},
	"updateNic":                       {},
	"deleteNic":                       {},
	"reservePublicIpBlock":            {},
	"addPublicIpToNic":                {},
	"removePublicIpFromNic":           {},
	"releasePublicIpBlock":            {},
	"addFirewallRuleToNic":            {},
	"addFirewallRuleToLoadBalancer":   {},
}

// destroyedContexts maps operations to the context class they remove.
var destroyedContexts = map[string]string{
	"deleteDataCenter": ContextDataCenter,
}

// withLifecycle marks operations from the lifecycle tables.
func withLifecycle(ops []Operation) []Operation {
	for i := range ops {
		if _, ok := mutatingOperations[ops[i].Name]; ok {
			ops[i].Mutates = true
		}
		if class, ok := destroyedContexts[ops[i].Name]; ok {
			ops[i].Destroys = class
		}
	}
	return ops
}

// Default is the registry of all operations.
var Default = MustNewRegistry(withLifecycle(catalog()))
