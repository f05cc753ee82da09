package domain

// Role represents an identity role in the system
type Role string

const (
	RoleClient Role = "client"
	RoleLawyer Role = "lawyer"
)

// Valid reports whether the role is one of the known role tags
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleLawyer
}

// Case compensation types
const (
	CaseTypePaid    = "paid"
	CaseTypeProBono = "pro_bono"
)

// Case statuses
const (
	CaseStatusOpen       = "open"
	CaseStatusAssigned   = "assigned"
	CaseStatusInProgress = "in_progress"
	CaseStatusCompleted  = "completed"
	CaseStatusClosed     = "closed"
)

// caseTransitions lists the allowed status moves. A case opens, is claimed
// by a lawyer, progresses, and terminates; a client may also close an open
// case before any lawyer claims it.
var caseTransitions = map[string][]string{
	CaseStatusOpen:       {CaseStatusAssigned, CaseStatusClosed},
	CaseStatusAssigned:   {CaseStatusInProgress, CaseStatusClosed},
	CaseStatusInProgress: {CaseStatusCompleted, CaseStatusClosed},
}

// ValidCaseStatus reports whether s is a known case status
func ValidCaseStatus(s string) bool {
	switch s {
	case CaseStatusOpen, CaseStatusAssigned, CaseStatusInProgress, CaseStatusCompleted, CaseStatusClosed:
		return true
	}
	return false
}

// CanTransition reports whether a case may move from one status to another
func CanTransition(from, to string) bool {
	for _, next := range caseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Legal specializations offered in the lawyer directory
var Specializations = []string{
	"Criminal Law",
	"Corporate Law",
	"Environmental Law",
	"Intellectual Property Law",
	"Tax Law",
	"Labor Law",
	"Family Law",
}

// ValidSpecialization reports whether s is a known specialization
func ValidSpecialization(s string) bool {
	for _, known := range Specializations {
		if known == s {
			return true
		}
	}
	return false
}
