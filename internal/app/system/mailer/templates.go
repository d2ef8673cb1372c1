// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// PasswordResetData holds data for the password reset email.
type PasswordResetData struct {
	SiteName  string
	Name      string
	ResetLink string
	ExpiresIn string // e.g., "1 hour"
}

// BuildPasswordResetEmail creates the reset email with both HTML and text bodies.
func BuildPasswordResetEmail(to string, data PasswordResetData) Email {
	return Email{
		To:       to,
		Subject:  fmt.Sprintf("Reset your %s password", data.SiteName),
		TextBody: buildResetText(data),
		HTMLBody: buildResetHTML(data),
	}
}

func buildResetText(data PasswordResetData) string {
	var buf bytes.Buffer
	if data.Name != "" {
		fmt.Fprintf(&buf, "Hello %s,\n\n", data.Name)
	}
	fmt.Fprintf(&buf, "We received a request to reset your %s password.\n\n", data.SiteName)
	buf.WriteString("Open this link to choose a new password:\n")
	buf.WriteString(data.ResetLink + "\n\n")
	fmt.Fprintf(&buf, "This link expires in %s.\n\n", data.ExpiresIn)
	buf.WriteString("If you did not ask for this, you can safely ignore this email.\n")
	return buf.String()
}

var resetHTML = template.Must(template.New("reset").Parse(resetHTMLTemplate))

func buildResetHTML(data PasswordResetData) string {
	var buf bytes.Buffer
	_ = resetHTML.Execute(&buf, data)
	return buf.String()
}

const resetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Reset your password</title>
</head>
<body style="margin: 0; padding: 0; font-family: Georgia, 'Times New Roman', serif; background-color: #f7f3ee;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f7f3ee;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 16px; text-align: center; border-bottom: 1px solid #eee6dc;">
              <h1 style="margin: 0; font-size: 24px; color: #7a4b1e;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px; font-size: 16px; color: #3b3b3b; line-height: 1.5;">
              {{if .Name}}<p style="margin: 0 0 16px;">Hello {{.Name}},</p>{{end}}
              <p style="margin: 0 0 24px;">We received a request to reset your password.</p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ResetLink}}" style="display: inline-block; padding: 14px 32px; background-color: #7a4b1e; color: #ffffff; text-decoration: none; border-radius: 6px;">
                      Choose a new password
                    </a>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; font-size: 13px; color: #8a8a8a; text-align: center;">
                This link expires in {{.ExpiresIn}}.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #faf7f3; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #8a8a8a; text-align: center;">
                If you did not ask for this, you can safely ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
