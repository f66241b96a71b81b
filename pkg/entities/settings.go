package entities

import "github.com/Jacobbrewer1/ticketpanel/pkg/custom"

// Settings are the guild wide ticket settings.
type Settings struct {
	// SupportTeamRoleID is granted access to every ticket channel and may close any ticket.
	SupportTeamRoleID custom.Snowflake `json:"support_team_role_id,omitempty"`
}
