package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sapliy/contractplus/internal/contract"
)

// DashboardURL is the reference link embedded in every notification.
const DashboardURL = "https://contractplus.sapliy.com/dashboard"

// DefaultSubject is used when the caller does not supply one.
const DefaultSubject = "Contract Notification - ContractPlus"

const emailLayout = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
</head>
<body style="font-family:Arial,sans-serif;padding:20px;background:#f1f5f9;">
    <div style="max-width:700px;margin:0 auto;background:white;border-radius:12px;overflow:hidden;box-shadow:0 10px 25px rgba(0,0,0,.08)">
        <div style="background:{{.Color}};color:white;padding:18px 22px;">
            <div style="font-size:22px;font-weight:800;">CONTRACT<span style="color:#fbbf24;">+</span></div>
            <div style="opacity:.9">Contract Management</div>
        </div>
        <div style="padding:22px;">
            <h2 style="margin:0 0 8px 0;">{{.Title}}</h2>
            <div style="display:inline-block;background:{{.Color}}22;color:{{.Color}};padding:8px 14px;border-radius:999px;font-weight:700;margin-bottom:14px;">
                {{.TierLabel}}
            </div>
            <div style="color:#0f172a;line-height:1.6;">{{.Body}}</div>
            {{with .Details}}
            <div style="background:#f8fafc;border-radius:8px;padding:20px;margin:20px 0;border-left:4px solid {{$.Color}};">
                <h3 style="margin-top:0;color:#1e293b;">Contract Details</h3>
                <table style="width:100%;border-collapse:collapse;">
                    <tr>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;"><strong>Name:</strong></td>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;">{{.Name}}</td>
                    </tr>
                    <tr>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;"><strong>Description:</strong></td>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;">{{.Description}}</td>
                    </tr>
                    <tr>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;"><strong>Start Date:</strong></td>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;">{{.Start}}</td>
                    </tr>
                    <tr>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;"><strong>End Date:</strong></td>
                        <td style="padding:8px 0;border-bottom:1px solid #e2e8f0;">{{.End}}</td>
                    </tr>
                    {{with .Badge}}
                    <tr>
                        <td style="padding:8px 0;"><strong>Days Remaining:</strong></td>
                        <td style="padding:8px 0;">
                            <span style="background:{{.Bg}};color:{{.Fg}};padding:4px 12px;border-radius:20px;font-weight:bold;">
                                {{.Days}} days
                            </span>
                        </td>
                    </tr>
                    {{end}}
                </table>
            </div>
            {{end}}
            <div style="text-align:center;margin-top:18px;">
                <a href="{{.Link}}" style="background:{{.Color}};color:white;padding:12px 22px;border-radius:999px;text-decoration:none;display:inline-block;font-weight:800;">
                    Open Dashboard
                </a>
            </div>
        </div>
        <div style="padding:16px 22px;border-top:1px solid #e2e8f0;color:#64748b;font-size:12px;text-align:center;">
            © 2026 CONTRACT+ · Automated message.
        </div>
    </div>
</body>
</html>
`

var emailTmpl = template.Must(template.New("notification_email").Parse(emailLayout))

type emailBadge struct {
	Days int
	Bg   string
	Fg   string
}

type emailDetails struct {
	Name        string
	Description string
	Start       string
	End         string
	Badge       *emailBadge
}

type emailData struct {
	Subject   string
	Title     string
	Body      string
	TierLabel string
	Color     string
	Details   *emailDetails
	Link      string
}

// badgeFor buckets days-remaining into the badge colors: red under 7, amber
// under 30, green otherwise. Independent of the tier color.
func badgeFor(days int) *emailBadge {
	switch {
	case days < 7:
		return &emailBadge{Days: days, Bg: "#fee2e2", Fg: "#991b1b"}
	case days < 30:
		return &emailBadge{Days: days, Bg: "#fef3c7", Fg: "#92400e"}
	default:
		return &emailBadge{Days: days, Bg: "#d1fae5", Fg: "#065f46"}
	}
}

func renderEmailHTML(subject, title, body string, tier Tier, c *contract.Contract, now time.Time) (string, error) {
	start, err := contract.FormatDisplay(c.StartDate)
	if err != nil {
		return "", fmt.Errorf("failed to format start date: %w", err)
	}
	end, err := contract.FormatDisplay(c.EndDate)
	if err != nil {
		return "", fmt.Errorf("failed to format end date: %w", err)
	}

	description := c.Description
	if description == "" {
		description = "Not provided"
	}

	details := &emailDetails{
		Name:        c.Name,
		Description: description,
		Start:       start,
		End:         end,
	}
	if days, ok := contract.DaysRemaining(c.EndDate, now); ok {
		details.Badge = badgeFor(days)
	}

	data := emailData{
		Subject:   subject,
		Title:     title,
		Body:      body,
		TierLabel: strings.ToUpper(string(tier)),
		Color:     tier.Color(),
		Details:   details,
		Link:      DashboardURL,
	}

	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

// renderEmailText builds the plain-text alternative: no markup, same facts.
func renderEmailText(subject, title, body string, c *contract.Contract) (string, error) {
	end, err := contract.FormatDisplay(c.EndDate)
	if err != nil {
		return "", fmt.Errorf("failed to format end date: %w", err)
	}

	text := fmt.Sprintf(`CONTRACT+ - %s

%s

%s

Contract: %s
End Date: %s
Status: %s

Visit: %s
`, subject, title, body, c.Name, end, c.Status, DashboardURL)
	return text, nil
}
