package edition

import "math"

// Feature names accepted by limit checks. Unknown names are allowed by
// default so that adding a feature never locks tenants out before every
// edition has a limit configured for it.
const (
	FeatureMaxUsers         = "max_users"
	FeatureMaxProjects      = "max_projects"
	FeatureStorageQuotaGB   = "storage_quota_gb"
	FeatureAPICallsPerMonth = "api_calls_per_month"
)

// FeatureLimits captures what a tenant on an edition is entitled to.
// Pure data; the presets below are convenience constructors, not a hierarchy.
type FeatureLimits struct {
	MaxUsers              int  `json:"max_users"`
	MaxProjects           int  `json:"max_projects"`
	StorageQuotaGB        int  `json:"storage_quota_gb"`
	APICallsPerMonth      int  `json:"api_calls_per_month"`
	EnableAdvancedReports bool `json:"enable_advanced_reports"`
	EnablePrioritySupport bool `json:"enable_priority_support"`
	EnableCustomBranding  bool `json:"enable_custom_branding"`
}

func FreeLimits() FeatureLimits {
	return FeatureLimits{
		MaxUsers:         5,
		MaxProjects:      3,
		StorageQuotaGB:   5,
		APICallsPerMonth: 1000,
	}
}

func BasicLimits() FeatureLimits {
	return FeatureLimits{
		MaxUsers:              25,
		MaxProjects:           10,
		StorageQuotaGB:        50,
		APICallsPerMonth:      10000,
		EnableAdvancedReports: true,
	}
}

func ProfessionalLimits() FeatureLimits {
	return FeatureLimits{
		MaxUsers:              100,
		MaxProjects:           50,
		StorageQuotaGB:        200,
		APICallsPerMonth:      100000,
		EnableAdvancedReports: true,
		EnablePrioritySupport: true,
		EnableCustomBranding:  true,
	}
}

// EnterpriseLimits is effectively unlimited.
func EnterpriseLimits() FeatureLimits {
	return FeatureLimits{
		MaxUsers:              math.MaxInt32,
		MaxProjects:           math.MaxInt32,
		StorageQuotaGB:        math.MaxInt32,
		APICallsPerMonth:      math.MaxInt32,
		EnableAdvancedReports: true,
		EnablePrioritySupport: true,
		EnableCustomBranding:  true,
	}
}

func (l FeatureLimits) CanAddUser(currentUsers int) bool {
	return currentUsers < l.MaxUsers
}

func (l FeatureLimits) CanAddProject(currentProjects int) bool {
	return currentProjects < l.MaxProjects
}

func (l FeatureLimits) HasStorageAvailable(currentStorageGB int) bool {
	return currentStorageGB < l.StorageQuotaGB
}

func (l FeatureLimits) CanMakeAPICall(currentCalls int) bool {
	return currentCalls < l.APICallsPerMonth
}

func (l FeatureLimits) RemainingUsers(currentUsers int) int {
	return l.MaxUsers - currentUsers
}

func (l FeatureLimits) RemainingProjects(currentProjects int) int {
	return l.MaxProjects - currentProjects
}
