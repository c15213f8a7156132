package domain

// DistributionStatus is the lifecycle state of a distribution.
type DistributionStatus string

const (
	DistributionStatusOpen       DistributionStatus = "OPEN"
	DistributionStatusInProgress DistributionStatus = "IN_PROGRESS"
	DistributionStatusEscalated  DistributionStatus = "ESCALATED"
	DistributionStatusClosed     DistributionStatus = "CLOSED"
)

func (s DistributionStatus) String() string { return string(s) }

func (s DistributionStatus) IsValid() bool {
	switch s {
	case DistributionStatusOpen, DistributionStatusInProgress,
		DistributionStatusEscalated, DistributionStatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s DistributionStatus) IsTerminal() bool { return s == DistributionStatusClosed }

// ActiveDistributionStatuses are the statuses eligible for SLA scanning.
var ActiveDistributionStatuses = []DistributionStatus{
	DistributionStatusOpen,
	DistributionStatusInProgress,
	DistributionStatusEscalated,
}

// NotificationSeverity classifies how urgent a notification is.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeverityDanger  NotificationSeverity = "danger"
)

func (s NotificationSeverity) String() string { return string(s) }

func (s NotificationSeverity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityDanger:
		return true
	}
	return false
}

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "UNREAD"
	NotificationStatusRead   NotificationStatus = "READ"
)

func (s NotificationStatus) String() string { return string(s) }

// UserRole is the directory role of a user.
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleManager UserRole = "MANAGER"
	UserRoleStaff   UserRole = "STAFF"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleStaff:
		return true
	}
	return false
}

// AuditActionType names the kind of routing action recorded in the audit trail.
type AuditActionType string

const (
	AuditDocumentRegistered   AuditActionType = "DOCUMENT_REGISTERED"
	AuditDistributionCreated  AuditActionType = "DISTRIBUTION_CREATED"
	AuditDistributionStatus   AuditActionType = "DISTRIBUTION_STATUS_CHANGED"
	AuditDistributionAssigned AuditActionType = "DISTRIBUTION_ASSIGNED"
	AuditDistributionNote     AuditActionType = "DISTRIBUTION_NOTE_ADDED"
	AuditDistributionEscalate AuditActionType = "DISTRIBUTION_ESCALATED"
)

func (a AuditActionType) String() string { return string(a) }
