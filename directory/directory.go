// Package directory is the static lookup collaborator for the AdWords SOAP
// API: which versions exist, which services each version carries, and where
// each {version, service, environment} combination lives. Pure data, no
// mutable state.
package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-adwords/core"
)

const (
	latestVersion      = "v201809"
	namespaceBase      = "https://adwords.google.com/api/adwords"
	productionServer   = "https://adwords.google.com"
	sandboxServer      = "https://adwords-sandbox.google.com"
	productionScope    = "https://www.googleapis.com/auth/adwords"
	sandboxScope       = "https://adwords-sandbox.google.com/api/adwords/"
	legacyLoginServer  = "https://www.google.com/accounts/ClientLogin"
	legacyLoginService = "adwords"
)

// Service groups map to URL path segments and XML namespaces: cm (campaign
// management), mcm (account management), rm (remarketing), billing.
var serviceGroups = map[string]string{
	"AdGroupAdService":         "cm",
	"AdGroupCriterionService":  "cm",
	"AdGroupService":           "cm",
	"BatchJobService":          "cm",
	"BudgetService":            "cm",
	"CampaignCriterionService": "cm",
	"CampaignService":          "cm",
	"ConstantDataService":      "cm",
	"ReportDefinitionService":  "cm",
	"AccountLabelService":      "mcm",
	"CustomerService":          "mcm",
	"ManagedCustomerService":   "mcm",
	"AdwordsUserListService":   "rm",
	"BudgetOrderService":       "billing",
}

var versionServices = map[string][]string{
	"v201802": {
		"AdGroupAdService", "AdGroupCriterionService", "AdGroupService",
		"BatchJobService", "BudgetOrderService", "BudgetService",
		"CampaignCriterionService", "CampaignService", "ConstantDataService",
		"CustomerService", "ManagedCustomerService", "ReportDefinitionService",
	},
	"v201806": {
		"AdGroupAdService", "AdGroupCriterionService", "AdGroupService",
		"AdwordsUserListService", "BatchJobService", "BudgetOrderService",
		"BudgetService", "CampaignCriterionService", "CampaignService",
		"ConstantDataService", "CustomerService", "ManagedCustomerService",
		"ReportDefinitionService",
	},
	"v201809": {
		"AccountLabelService", "AdGroupAdService", "AdGroupCriterionService",
		"AdGroupService", "AdwordsUserListService", "BatchJobService",
		"BudgetOrderService", "BudgetService", "CampaignCriterionService",
		"CampaignService", "ConstantDataService", "CustomerService",
		"ManagedCustomerService", "ReportDefinitionService",
	},
}

var environmentConfig = map[core.Environment]map[string]string{
	core.EnvironmentProduction: {
		core.EnvKeyServer:     productionServer,
		core.EnvKeyOAuthScope: productionScope,
		core.EnvKeyReportHost: productionServer,
	},
	core.EnvironmentSandbox: {
		core.EnvKeyServer:     sandboxServer,
		core.EnvKeyOAuthScope: sandboxScope,
		core.EnvKeyReportHost: sandboxServer,
	},
}

var legacyLoginConfig = map[string]string{
	core.LegacyLoginKeyServer:      legacyLoginServer,
	core.LegacyLoginKeyServiceName: legacyLoginService,
}

type Directory struct{}

func New() *Directory {
	return &Directory{}
}

func (*Directory) DefaultVersion() string {
	return latestVersion
}

func (*Directory) DefaultEnvironment() core.Environment {
	return core.EnvironmentProduction
}

func (*Directory) Versions() []string {
	versions := make([]string, 0, len(versionServices))
	for version := range versionServices {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions
}

func (*Directory) Services(version string) ([]string, error) {
	services, ok := versionServices[strings.TrimSpace(version)]
	if !ok {
		return nil, core.NewConfigurationError(fmt.Sprintf("directory: unknown API version %q", version))
	}
	return append([]string(nil), services...), nil
}

func (d *Directory) Endpoint(version string, service string, env core.Environment) (string, error) {
	version = strings.TrimSpace(version)
	service = strings.TrimSpace(service)

	services, err := d.Services(version)
	if err != nil {
		return "", err
	}
	found := false
	for _, known := range services {
		if known == service {
			found = true
			break
		}
	}
	if !found {
		return "", core.NewConfigurationError(
			fmt.Sprintf("directory: service %q is not available in version %q", service, version),
		)
	}

	server, ok := d.EnvironmentConfig(env, core.EnvKeyServer)
	if !ok {
		return "", core.NewConfigurationError(fmt.Sprintf("directory: unknown environment %q", env))
	}
	return fmt.Sprintf("%s/api/adwords/%s/%s/%s", server, serviceGroups[service], version, service), nil
}

func (*Directory) EnvironmentConfig(env core.Environment, key string) (string, bool) {
	entries, ok := environmentConfig[env]
	if !ok {
		return "", false
	}
	value, ok := entries[key]
	return value, ok
}

func (*Directory) LegacyLoginConfig(key string) (string, bool) {
	value, ok := legacyLoginConfig[key]
	return value, ok
}

// HeaderNamespace is the namespace qualifying RequestHeader fields. Headers
// always live in the cm group namespace, whatever group the called service
// belongs to.
func (*Directory) HeaderNamespace(version string) string {
	return fmt.Sprintf("%s/cm/%s", namespaceBase, strings.TrimSpace(version))
}

// ServiceNamespace is the namespace of a service's own message types.
func (d *Directory) ServiceNamespace(version string, service string) (string, error) {
	version = strings.TrimSpace(version)
	service = strings.TrimSpace(service)
	group, ok := serviceGroups[service]
	if !ok {
		return "", core.NewConfigurationError(fmt.Sprintf("directory: unknown service %q", service))
	}
	if _, err := d.Services(version); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", namespaceBase, group, version), nil
}

var _ core.ServiceDirectory = (*Directory)(nil)
