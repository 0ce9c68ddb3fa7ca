package access

import "github.com/bansalsd420/smart-ambulance-api/internal/model"

// Decide is the pure authorization rule for one principal and one
// ambulance. connected reports a standing connected link between the
// principal's hospital and the ambulance; activeOnboarding is the
// current in-flight transport, or nil.
//
// Keeping this a pure function makes the rule unit-testable without a
// database or HTTP plumbing; the Service loads the two mutable inputs
// fresh on every request.
func Decide(principal *model.Principal, ambulance *model.Ambulance, connected bool, activeOnboarding *model.Onboarding) bool {
	if principal == nil || ambulance == nil {
		return false
	}
	switch {
	case principal.Role == model.RoleSuperadmin:
		return true

	case principal.Role == model.RoleFleetAdmin:
		return ambulance.Owner.Type == model.OwnerTypeFleet &&
			principal.FleetID != nil && *principal.FleetID == ambulance.Owner.ID

	case principal.Role.HospitalAffiliated():
		if principal.HospitalID == nil {
			return false
		}
		if ambulance.Owner.Type == model.OwnerTypeHospital {
			return ambulance.Owner.ID == *principal.HospitalID
		}
		// Fleet-owned: a connection is required, and an active
		// transport with a chosen destination locks visibility to
		// that hospital alone.
		if !connected {
			return false
		}
		if activeOnboarding == nil || activeOnboarding.SelectedHospitalID == nil {
			return true
		}
		return *activeOnboarding.SelectedHospitalID == *principal.HospitalID
	}
	return false
}
