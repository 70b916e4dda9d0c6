// Package actor models the authenticated caller: a resolved role plus the
// subject (employee/user) id the role acts as.
package actor

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHRAdmin  = "hr_admin"
)

type Actor struct {
	Role      string `json:"role"`
	SubjectID string `json:"subjectId"`
}

func Employee(subjectID string) Actor {
	return Actor{Role: RoleEmployee, SubjectID: subjectID}
}

func Manager(subjectID string) Actor {
	return Actor{Role: RoleManager, SubjectID: subjectID}
}

func HRAdmin(subjectID string) Actor {
	return Actor{Role: RoleHRAdmin, SubjectID: subjectID}
}

func (a Actor) IsEmployee() bool {
	return a.Role == RoleEmployee && a.SubjectID != ""
}

func (a Actor) IsManager() bool {
	return a.Role == RoleManager && a.SubjectID != ""
}

func (a Actor) IsHRAdmin() bool {
	return a.Role == RoleHRAdmin
}

// ValidRole reports whether name is one of the three known roles.
func ValidRole(name string) bool {
	switch name {
	case RoleEmployee, RoleManager, RoleHRAdmin:
		return true
	}
	return false
}
