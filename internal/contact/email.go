package contact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pintudigital/contact-api/internal/notify"
)

var nonPhoneChars = regexp.MustCompile(`[^0-9+]`)

// waNumber normalizes a displayed phone number into the digits wa.me
// expects: separators removed, leading 0 swapped for the 62 country code.
func waNumber(phone string) string {
	cleaned := nonPhoneChars.ReplaceAllString(phone, "")
	if strings.HasPrefix(cleaned, "0") {
		cleaned = "62" + cleaned[1:]
	}
	return cleaned
}

const emailBodyTemplate = `
      <div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 600px; margin: 0 auto; background-color: #f8fafc; border-radius: 16px; overflow: hidden;">
        <div style="background: linear-gradient(135deg, #072331, #0d3a54); padding: 32px; text-align: center;">
          <h1 style="color: #8BCDF0; margin: 0; font-size: 24px; font-weight: 700;">
            📬 Pesan Baru dari Website
          </h1>
          <p style="color: #94a3b8; margin: 8px 0 0; font-size: 14px;">
            Pintu Digital Teknologi — Contact Form
          </p>
        </div>
        <div style="padding: 32px;">
          <table style="width: 100%%; border-collapse: collapse;">
            <tr>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #64748b; font-size: 13px; font-weight: 600; width: 120px; vertical-align: top;">Nama</td>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #1e293b; font-size: 15px;">%s</td>
            </tr>
            <tr>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #64748b; font-size: 13px; font-weight: 600; vertical-align: top;">Email</td>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #1e293b; font-size: 15px;"><a href="mailto:%s" style="color: #3b82f6; text-decoration: none;">%s</a></td>
            </tr>
            <tr>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #64748b; font-size: 13px; font-weight: 600; vertical-align: top;">Perusahaan</td>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #1e293b; font-size: 15px;">%s</td>
            </tr>
            <tr>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #64748b; font-size: 13px; font-weight: 600; vertical-align: top;">No. HP / WA</td>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #1e293b; font-size: 15px;"><a href="https://wa.me/%s" style="color: #25D366; text-decoration: none;">%s</a></td>
            </tr>
            <tr>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #64748b; font-size: 13px; font-weight: 600; vertical-align: top;">Jenis Project</td>
              <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; color: #1e293b; font-size: 15px;"><span style="display: inline-block; background-color: #dbeafe; color: #1e40af; padding: 4px 12px; border-radius: 16px; font-size: 13px; font-weight: 600;">%s</span></td>
            </tr>
            <tr>
              <td style="padding: 12px 0; color: #64748b; font-size: 13px; font-weight: 600; vertical-align: top;">Pesan</td>
              <td style="padding: 12px 0; color: #1e293b; font-size: 15px; line-height: 1.6;">%s</td>
            </tr>
          </table>
        </div>
        <div style="background-color: #f1f5f9; padding: 16px 32px; text-align: center; border-top: 1px solid #e2e8f0;">
          <p style="color: #94a3b8; font-size: 11px; margin: 0;">
            Email ini dikirim melalui form kontak di website pintudigitalteknologi.com
          </p>
        </div>
      </div>
    `

// composeEmail builds the notification relayed to the agency inbox. All
// interpolated values must already be sanitized; the template does no
// escaping of its own.
func composeEmail(s sanitized, to string) notify.EmailMessage {
	html := fmt.Sprintf(emailBodyTemplate,
		s.Name,
		s.Email, s.Email,
		s.Company,
		waNumber(s.Phone), s.Phone,
		s.ProjectType,
		strings.ReplaceAll(s.Message, "\n", "<br/>"),
	)

	text := fmt.Sprintf(
		"Pesan baru dari form kontak website.\n\nNama: %s\nEmail: %s\nPerusahaan: %s\nNo. HP / WA: %s\nJenis Project: %s\n\nPesan:\n%s\n",
		s.Name, s.Email, s.Company, s.Phone, s.ProjectType, s.Message,
	)

	return notify.EmailMessage{
		To:      to,
		ReplyTo: s.Email,
		Subject: fmt.Sprintf("💬 [%s] Pesan dari %s — Pintu Digital", s.ProjectType, s.Name),
		Body:    text,
		HTML:    html,
	}
}
