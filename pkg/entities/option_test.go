package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOption_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Option
		wantErr error
	}{
		{
			name:  "legacy ticket without type or id",
			input: `{"label":"General","ticket_prefix":"gen","category_id":1234,"limit":2}`,
			want: &Option{
				Label: "General",
				Ticket: &TicketOption{
					CategoryID: "1234",
					Prefix:     "gen",
					Limit:      2,
				},
			},
		},
		{
			name:  "null limit is unlimited",
			input: `{"id":"ab12cd34","label":"General","type":"ticket","panel_name":"support","limit":null}`,
			want: &Option{
				ID:        "ab12cd34",
				Label:     "General",
				PanelName: "support",
				Ticket:    &TicketOption{},
			},
		},
		{
			name:  "embed",
			input: `{"id":"ff00ff00","label":"Rules","type":"embed","embed_name":"rules","panel_name":"support"}`,
			want: &Option{
				ID:        "ff00ff00",
				Label:     "Rules",
				PanelName: "support",
				Embed:     &EmbedOption{EmbedName: "rules"},
			},
		},
		{
			name:    "unknown type",
			input:   `{"label":"x","type":"modal"}`,
			wantErr: ErrInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := new(Option)
			err := json.Unmarshal([]byte(tt.input), got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOption_MarshalJSON_FlatLayout(t *testing.T) {
	o := NewTicketOption("ab12cd34", "support", "General")
	o.Ticket.Limit = 1
	o.Ticket.Prefix = "help"

	got, err := json.Marshal(o)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "ab12cd34",
		"label": "General",
		"type": "ticket",
		"panel_name": "support",
		"ticket_prefix": "help",
		"limit": 1
	}`, string(got))

	e := NewEmbedOption("ff00ff00", "support", "Rules", "rules")
	got, err = json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "ff00ff00",
		"label": "Rules",
		"type": "embed",
		"panel_name": "support",
		"embed_name": "rules"
	}`, string(got))
}

func TestOption_Validate(t *testing.T) {
	tests := []struct {
		name    string
		option  *Option
		wantErr bool
	}{
		{name: "valid ticket", option: NewTicketOption("a", "support", "General")},
		{name: "valid embed", option: NewEmbedOption("b", "support", "Rules", "rules")},
		{name: "ticket without panel", option: NewTicketOption("a", "", "General"), wantErr: true},
		{name: "embed without embed name", option: NewEmbedOption("b", "support", "Rules", ""), wantErr: true},
		{name: "no label", option: NewTicketOption("a", "support", ""), wantErr: true},
		{name: "no type", option: &Option{ID: "c", Label: "x", PanelName: "support"}, wantErr: true},
		{
			name: "both types",
			option: &Option{
				ID: "d", Label: "x", PanelName: "support",
				Ticket: new(TicketOption), Embed: &EmbedOption{EmbedName: "e"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.option.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOption)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPanel_JSONLayout(t *testing.T) {
	raw := `{
		"title": "Support",
		"description": "Pick one",
		"color": "#ff0000",
		"style": "dropdown",
		"transcript_channel_id": 555,
		"fields": [{"name": "Hours", "value": "9-5", "inline": true}],
		"options": [{"id": "ab12cd34", "label": "General", "panel_name": "support"}]
	}`

	p := new(Panel)
	require.NoError(t, json.Unmarshal([]byte(raw), p))
	require.Equal(t, "Support", p.Title)
	require.Equal(t, PanelStyleDropdown, p.EffectiveStyle())
	require.Equal(t, "555", p.TranscriptChannelID.String())
	require.Len(t, p.Fields, 1)
	require.Len(t, p.Options, 1)
	require.Equal(t, OptionTypeTicket, p.Options[0].Type())

	require.NotNil(t, p.OptionByID("ab12cd34"))
	require.True(t, p.RemoveOption("ab12cd34"))
	require.False(t, p.RemoveOption("ab12cd34"))
	require.Empty(t, p.Options)

	require.Equal(t, PanelStyleButtons, (&Panel{Style: "grid"}).EffectiveStyle())
}
