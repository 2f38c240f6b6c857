package dashboard

import "teacher-transfer-system/internal/model"

// Action is one workflow decision the current user can take on a transfer.
type Action struct {
	Label  string
	Target model.TransferStatus
}

// ActionsFor lists the decisions open to role on a transfer in the given
// state. Terminal and unrecognized states yield nothing, so such transfers
// render read-only.
func ActionsFor(status model.TransferStatus, role model.Role) []Action {
	targets := model.AllowedTransitions(status, role)
	actions := make([]Action, 0, len(targets))
	for _, target := range targets {
		actions = append(actions, Action{Label: actionLabel(target), Target: target})
	}

	return actions
}

func actionLabel(target model.TransferStatus) string {
	switch target {
	case model.StatusHeadteacherApproved, model.StatusApproved:
		return "Approve"
	case model.StatusHeadteacherRejected, model.StatusRejected:
		return "Reject"
	default:
		return target.Display()
	}
}
