package api

// Operator-facing messages. The update-failure text deliberately does not
// distinguish "nothing selected" from "query failed"; the operator's next
// step is the same either way.
const (
	MsgChangesSaved = "Changes saved."
	MsgNoChanges    = "No changes made or the update failed."
	MsgAccessDenied = "Access denied for %s."
)
