package messages

// User facing responses. Configuration errors are reported verbatim so the admin knows what to fix.
const (
	ErrUserErrorProcessing = "❌ An internal error occurred. Please try again later."
	ErrAdminOnly           = "❌ You must be an administrator to use this command."
	ErrGuildOnly           = "❌ This can only be used inside a server."
	ErrUnknownCommand      = "❌ Unknown command."

	ErrPanelNotFound        = "❌ Panel not found."
	ErrPanelExists          = "❌ A panel with that name already exists."
	ErrPanelNameInvalid     = "❌ Panel names cannot be empty or contain `;`."
	ErrPanelNoOptions       = "❌ This panel has no options yet. Add one with `/ticket panel add-option`."
	ErrPanelTooManyOptions  = "❌ A panel can have at most 25 options."
	ErrOptionNotFound       = "❌ Option not found on that panel."
	ErrOptionNoLongerValid  = "❌ This option is no longer valid. The panel may have been edited."
	ErrOptionInvalid        = "❌ That option is not valid: %s"
	ErrEmbedNotFound        = "❌ Attached embed not found."
	ErrSavedEmbedNotFound   = "❌ No saved embed with that name."
	ErrNoTranscriptChannel  = "❌ No transcript channel configured for this panel!"
	ErrTranscriptNotFound   = "❌ Transcript channel not found!"
	ErrNotTicketChannel     = "❌ This channel is not a ticket."
	ErrAlreadyClosed        = "❌ This ticket is already closed."
	ErrNoClosePermission    = "❌ You don't have permission to close this ticket."
	ErrTicketLimit          = "❌ You can only have **%d** open ticket(s) for **%s**."
	ErrBotMissingPermission = "❌ I don't have permission to do that. Please check my role permissions."
	ErrNoSupportTeam        = "❌ No support team role is configured. Use `/ticket support-team set` first."
	ErrNotTicketOption      = "❌ Only ticket options have a ticket message."
	ErrEmbedTypeNeedsEmbed  = "❌ Embed options need the name of a saved embed."
	ErrEmbedTooManyFields   = "❌ An embed can have at most 25 fields."
	ErrEmbedTooManyButtons  = "❌ An embed can have at most 25 buttons."
	ErrInvalidURL           = "❌ Links must be http or https URLs."
	ErrNotTextChannel       = "❌ Please choose a text channel."
	ErrFieldNotFound        = "❌ No field at that position. Fields are numbered from 1."
	ErrFieldIncomplete      = "❌ A field needs both a name and a value."

	TicketCreated         = "✅ Ticket created: <#%s>"
	TicketClosed          = "✅ Ticket closed! The transcript has been sent to <#%s>."
	TranscriptGenerating  = "⏳ Generating transcript..."
	PanelCreated          = "✅ Panel **%s** created. Add options with `/ticket panel add-option`."
	PanelDeleted          = "✅ Panel **%s** deleted."
	PanelSent             = "✅ Panel **%s** sent to <#%s>."
	PanelStyleSet         = "✅ Panel **%s** now uses **%s**."
	PanelUpdated          = "✅ Panel **%s** updated. Send it again to show the changes."
	PanelFieldAdded       = "✅ Field added to panel **%s**."
	PanelFieldRemoved     = "✅ Field %d removed from panel **%s**."
	OptionAdded           = "✅ Option **%s** (`%s`) added to **%s**."
	OptionRemoved         = "✅ Option `%s` removed from **%s**."
	TicketMessageSet      = "✅ Ticket message updated for option `%s`."
	TranscriptChannelSet  = "✅ Transcripts for **%s** will be sent to <#%s>."
	SupportTeamSet        = "✅ Support team role set to <@&%s>."
	SupportTeamView       = "Support team role: <@&%s>"
	SupportAccessGranted  = "✅ Granted <@&%s> access to %d ticket channel(s)."
	NoPanels              = "No panels configured yet."
	EmbedSaved            = "✅ Embed **%s** saved."
	EmbedDeleted          = "✅ Embed **%s** deleted."
	EmbedSent             = "✅ Embed **%s** sent to <#%s>."
	EmbedFieldAdded       = "✅ Field added to embed **%s**."
	EmbedFieldRemoved     = "✅ Field %d removed from embed **%s**."
	EmbedButtonAdded      = "✅ Button added to embed **%s**."
	NoEmbeds              = "No embeds saved yet."
	CloseTicketPrompt     = "Click the button below to close this ticket and generate a transcript:"
	CloseTicketButtonText = "Close Ticket"
)
