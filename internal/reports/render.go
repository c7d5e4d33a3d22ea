package reports

import (
	"fmt"
	"html/template"
	"strings"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"date": func(t interface{ Format(string) string }) string {
		return t.Format("Jan 2, 2006")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 640px; margin: 0 auto;">
  <h1 style="color: #722F37;">{{.PeriodLabel}} Report — {{.BusinessName}}</h1>
  <p>{{date .From}} to {{date .To}}</p>

  <table style="width: 100%; border-collapse: collapse;">
    <tr style="background: #f4f4f4;">
      <th style="text-align: left; padding: 8px;">Metric</th>
      <th style="text-align: right; padding: 8px;">This Period</th>
      <th style="text-align: right; padding: 8px;">Change</th>
    </tr>
    <tr>
      <td style="padding: 8px;">Conversations</td>
      <td style="text-align: right; padding: 8px;">{{.Conversations.Current}}</td>
      <td style="text-align: right; padding: 8px;">{{.Conversations.Change}}</td>
    </tr>
    <tr>
      <td style="padding: 8px;">Messages</td>
      <td style="text-align: right; padding: 8px;">{{.Messages.Current}}</td>
      <td style="text-align: right; padding: 8px;">{{.Messages.Change}}</td>
    </tr>
    <tr>
      <td style="padding: 8px;">Unique Visitors</td>
      <td style="text-align: right; padding: 8px;">{{.Visitors.Current}}</td>
      <td style="text-align: right; padding: 8px;">{{.Visitors.Change}}</td>
    </tr>
    <tr>
      <td style="padding: 8px;">Leads Captured</td>
      <td style="text-align: right; padding: 8px;">{{.Leads.Current}}</td>
      <td style="text-align: right; padding: 8px;">{{.Leads.Change}}</td>
    </tr>
  </table>

  {{if .NewLeads}}
  <h2 style="color: #722F37;">New Leads</h2>
  <ul>
    {{range .NewLeads}}
    <li>{{if .Name}}{{.Name}}{{else}}Anonymous{{end}}{{if .Email}} &lt;{{.Email}}&gt;{{end}}{{if .Interest}} — {{.Interest}}{{end}}</li>
    {{end}}
  </ul>
  {{end}}

  {{if .Daily}}
  <h2 style="color: #722F37;">Daily Breakdown</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="background: #f4f4f4;">
      <th style="text-align: left; padding: 8px;">Date</th>
      <th style="text-align: right; padding: 8px;">Conversations</th>
      <th style="text-align: right; padding: 8px;">Messages</th>
      <th style="text-align: right; padding: 8px;">Visitors</th>
      <th style="text-align: right; padding: 8px;">Leads</th>
    </tr>
    {{range .Daily}}
    <tr>
      <td style="padding: 8px;">{{date .Date}}</td>
      <td style="text-align: right; padding: 8px;">{{.TotalConversations}}</td>
      <td style="text-align: right; padding: 8px;">{{.TotalMessages}}</td>
      <td style="text-align: right; padding: 8px;">{{.UniqueVisitors}}</td>
      <td style="text-align: right; padding: 8px;">{{.LeadsCaptured}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}
</body>
</html>
`))

// RenderHTML turns a report into the email body.
func RenderHTML(r *Report) (string, error) {
	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return sb.String(), nil
}

// RenderText is the plain-text alternative for the same report.
func RenderText(r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Report - %s\n", r.PeriodLabel, r.BusinessName)
	fmt.Fprintf(&sb, "%s to %s\n\n", r.From.Format("Jan 2, 2006"), r.To.Format("Jan 2, 2006"))
	fmt.Fprintf(&sb, "Conversations: %d (%s)\n", r.Conversations.Current, r.Conversations.Change)
	fmt.Fprintf(&sb, "Messages: %d (%s)\n", r.Messages.Current, r.Messages.Change)
	fmt.Fprintf(&sb, "Unique Visitors: %d (%s)\n", r.Visitors.Current, r.Visitors.Change)
	fmt.Fprintf(&sb, "Leads Captured: %d (%s)\n", r.Leads.Current, r.Leads.Change)
	if len(r.NewLeads) > 0 {
		sb.WriteString("\nNew leads:\n")
		for _, lead := range r.NewLeads {
			name := lead.Name
			if name == "" {
				name = "Anonymous"
			}
			fmt.Fprintf(&sb, "- %s %s %s\n", name, lead.Email, lead.Interest)
		}
	}
	return sb.String()
}
