package domain

// TimesheetStatus is the lifecycle state of a timesheet.
type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "DRAFT"
	TimesheetStatusSubmitted TimesheetStatus = "SUBMITTED"
	TimesheetStatusApproved  TimesheetStatus = "APPROVED"
	TimesheetStatusReturned  TimesheetStatus = "RETURNED"
)

func (s TimesheetStatus) String() string { return string(s) }

func (s TimesheetStatus) IsValid() bool {
	switch s {
	case TimesheetStatusDraft, TimesheetStatusSubmitted, TimesheetStatusApproved, TimesheetStatusReturned:
		return true
	}
	return false
}

// IsEditable reports whether entries may be replaced in this status.
func (s TimesheetStatus) IsEditable() bool {
	return s == TimesheetStatusDraft || s == TimesheetStatusReturned
}

// AuditAction identifies the kind of timesheet transition being logged.
type AuditAction string

const (
	AuditActionCreated   AuditAction = "CREATED"
	AuditActionSubmitted AuditAction = "SUBMITTED"
	AuditActionApproved  AuditAction = "APPROVED"
	AuditActionReturned  AuditAction = "RETURNED"
	AuditActionWithdrawn AuditAction = "WITHDRAWN"
	AuditActionUnlocked  AuditAction = "UNLOCKED"
	AuditActionModified  AuditAction = "MODIFIED"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreated, AuditActionSubmitted, AuditActionApproved, AuditActionReturned,
		AuditActionWithdrawn, AuditActionUnlocked, AuditActionModified:
		return true
	}
	return false
}

// ProjectType classifies what kind of time a project records.
type ProjectType string

const (
	ProjectTypeWork    ProjectType = "WORK"
	ProjectTypePTO     ProjectType = "PTO"
	ProjectTypeHoliday ProjectType = "HOLIDAY"
)

func (t ProjectType) String() string { return string(t) }

func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeWork, ProjectTypePTO, ProjectTypeHoliday:
		return true
	}
	return false
}

// IsLeave reports whether time on this project type is leave rather than work.
func (t ProjectType) IsLeave() bool {
	return t == ProjectTypePTO || t == ProjectTypeHoliday
}

// ProjectVisibility determines which employees may log time against a project.
type ProjectVisibility string

const (
	ProjectVisibilityAllDepartments      ProjectVisibility = "ALL_DEPARTMENTS"
	ProjectVisibilitySpecificDepartments ProjectVisibility = "SPECIFIC_DEPARTMENTS"
	ProjectVisibilitySpecificEmployees   ProjectVisibility = "SPECIFIC_EMPLOYEES"
)

func (v ProjectVisibility) String() string { return string(v) }

func (v ProjectVisibility) IsValid() bool {
	switch v {
	case ProjectVisibilityAllDepartments, ProjectVisibilitySpecificDepartments, ProjectVisibilitySpecificEmployees:
		return true
	}
	return false
}

// WorkLocation is where the hours of a time entry were worked.
type WorkLocation string

const (
	WorkLocationOffice WorkLocation = "OFFICE"
	WorkLocationWFH    WorkLocation = "WFH"
	WorkLocationOther  WorkLocation = "OTHER"
)

func (l WorkLocation) String() string { return string(l) }

func (l WorkLocation) IsValid() bool {
	switch l {
	case WorkLocationOffice, WorkLocationWFH, WorkLocationOther:
		return true
	}
	return false
}

// UserRole is the role carried by the authenticated principal.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleManager  UserRole = "manager"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleEmployee, UserRoleManager, UserRoleAdmin:
		return true
	}
	return false
}

// IsAdmin returns true if the role is admin.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// RAGStatus is the display-only escalation colour of a pending approval.
type RAGStatus string

const (
	RAGGreen RAGStatus = "GREEN"
	RAGAmber RAGStatus = "AMBER"
	RAGRed   RAGStatus = "RED"
)

func (s RAGStatus) String() string { return string(s) }
