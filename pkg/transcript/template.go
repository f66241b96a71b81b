package transcript

import "html/template"

var documentTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { background: #313338; color: #dbdee1; font-family: "gg sans", "Helvetica Neue", Helvetica, Arial, sans-serif; margin: 0; }
header { background: #2b2d31; padding: 16px 24px; border-bottom: 1px solid #1e1f22; }
header h1 { margin: 0 0 8px; font-size: 20px; color: #f2f3f5; }
header dl { display: grid; grid-template-columns: max-content auto; gap: 4px 16px; margin: 0; font-size: 14px; }
header dt { color: #949ba4; }
main { padding: 16px 24px; }
.message { display: flex; gap: 12px; padding: 6px 0; }
.avatar { width: 40px; height: 40px; border-radius: 50%; flex-shrink: 0; }
.author { font-weight: 600; color: #f2f3f5; }
.bot { background: #5865f2; color: #fff; font-size: 10px; padding: 1px 4px; border-radius: 3px; margin-left: 4px; }
.time, .edited, .reply { color: #949ba4; font-size: 12px; margin-left: 6px; }
.content { white-space: normal; word-wrap: break-word; }
.mention { background: rgba(88, 101, 242, .3); color: #c9cdfb; border-radius: 3px; padding: 0 2px; }
code.inline { background: #1e1f22; padding: 0 4px; border-radius: 3px; }
pre { background: #1e1f22; padding: 8px; border-radius: 4px; overflow-x: auto; }
img.emoji { width: 22px; height: 22px; vertical-align: bottom; }
.embed { background: #2b2d31; border-left: 4px solid; border-radius: 4px; padding: 8px 12px; margin-top: 4px; max-width: 520px; }
.embed-title { font-weight: 600; color: #f2f3f5; }
.embed-fields { display: flex; flex-wrap: wrap; gap: 8px; }
.embed-field { flex: 1 1 100%; }
.embed-field.inline { flex: 1 1 30%; }
.embed-field-name { font-weight: 600; font-size: 14px; }
.embed-thumbnail { float: right; max-width: 80px; max-height: 80px; border-radius: 4px; }
.embed-image, .attachment-image { max-width: 400px; max-height: 300px; border-radius: 4px; margin-top: 4px; display: block; }
.embed-footer { color: #949ba4; font-size: 12px; margin-top: 6px; }
.attachment { display: inline-block; background: #2b2d31; border: 1px solid #1e1f22; border-radius: 4px; padding: 8px; margin-top: 4px; }
.components { display: flex; gap: 6px; margin-top: 4px; }
.components button, .components select { border: 0; border-radius: 3px; padding: 4px 12px; color: #fff; cursor: not-allowed; }
.primary { background: #5865f2; } .secondary { background: #4e5058; } .success { background: #248046; }
.danger { background: #da373c; } .link { background: #4e5058; } .select { background: #1e1f22; }
.reactions { display: flex; gap: 4px; margin-top: 4px; }
.reaction { background: #2b2d31; border-radius: 8px; padding: 0 6px; font-size: 14px; }
.reaction img { width: 16px; height: 16px; vertical-align: middle; }
</style>
</head>
<body>
<header>
<h1>#{{ .ChannelName }}</h1>
<dl>
{{ if .GuildName }}<dt>Server</dt><dd>{{ .GuildName }}</dd>{{ end }}
{{ if .PanelName }}<dt>Panel</dt><dd>{{ .PanelName }}</dd>{{ end }}
{{ if .OwnerName }}<dt>Owner</dt><dd>{{ .OwnerName }}</dd>{{ end }}
{{ if .CreatedAt }}<dt>Created</dt><dd>{{ .CreatedAt }}</dd>{{ end }}
{{ if .ClosedAt }}<dt>Closed</dt><dd>{{ .ClosedAt }}</dd>{{ end }}
{{ if .ClosedBy }}<dt>Closed by</dt><dd>{{ .ClosedBy }}</dd>{{ end }}
<dt>Messages</dt><dd>{{ .MessageCount }}</dd>
<dt>Participants</dt><dd>{{ range $i, $p := .Participants }}{{ if $i }}, {{ end }}{{ $p }}{{ end }}</dd>
</dl>
</header>
<main>
{{ range .Messages }}
<div class="message" id="m-{{ .ID }}">
<img class="avatar" src="{{ .AvatarURL }}" alt="">
<div>
<div><span class="author">{{ .Author }}</span>{{ if .Bot }}<span class="bot">BOT</span>{{ end }}<span class="time">{{ .Timestamp }}</span>{{ if .Edited }}<span class="edited">(edited)</span>{{ end }}{{ if .IsReply }}<a class="reply" href="#m-{{ .ReplyToID }}">reply</a>{{ end }}</div>
{{ if .Content }}<div class="content">{{ .Content }}</div>{{ end }}
{{ range .Embeds }}
<div class="embed" style="border-color: {{ .Color }}">
{{ if .ThumbnailURL }}<img class="embed-thumbnail" src="{{ .ThumbnailURL }}" alt="">{{ end }}
{{ if .Author }}<div class="embed-author">{{ .Author }}</div>{{ end }}
{{ if .Title }}<div class="embed-title">{{ if .URL }}<a href="{{ .URL }}">{{ .Title }}</a>{{ else }}{{ .Title }}{{ end }}</div>{{ end }}
{{ if .Description }}<div class="embed-description">{{ .Description }}</div>{{ end }}
{{ if .Fields }}<div class="embed-fields">{{ range .Fields }}<div class="embed-field{{ if .Inline }} inline{{ end }}"><div class="embed-field-name">{{ .Name }}</div><div>{{ .Value }}</div></div>{{ end }}</div>{{ end }}
{{ if .ImageURL }}<img class="embed-image" src="{{ .ImageURL }}" alt="">{{ end }}
{{ if .Footer }}<div class="embed-footer">{{ .Footer }}</div>{{ end }}
</div>
{{ end }}
{{ range .Files }}
{{ if .Image }}<a href="{{ .URL }}"><img class="attachment-image" src="{{ .URL }}" alt="{{ .Name }}"></a>{{ else }}<div class="attachment"><a href="{{ .URL }}">{{ .Name }}</a> ({{ .Size }})</div>{{ end }}
{{ end }}
{{ range .Rows }}
<div class="components">{{ range . }}{{ if .Select }}<select class="select" disabled><option>{{ .Label }}</option>{{ range .Options }}<option>{{ . }}</option>{{ end }}</select>{{ else }}<button class="{{ .Style }}" disabled>{{ .Label }}</button>{{ end }}{{ end }}</div>
{{ end }}
{{ range .Stickers }}<div class="attachment">Sticker: {{ . }}</div>{{ end }}
{{ if .Reactions }}<div class="reactions">{{ range .Reactions }}<span class="reaction">{{ if .ImageURL }}<img src="{{ .ImageURL }}" alt="{{ .Emoji }}">{{ else }}{{ .Emoji }}{{ end }} {{ .Count }}</span>{{ end }}</div>{{ end }}
</div>
</div>
{{ end }}
</main>
</body>
</html>
`))
