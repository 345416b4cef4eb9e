package usecase

import (
	"fmt"
	"regexp"

	"github.com/serenelion/earthcare-network/internal/entity"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// RenderTemplate substitutes every {{key}} placeholder (whitespace tolerant)
// with the string form of variables[key]. Missing or nil variables render as
// an empty string, never as the literal placeholder.
func RenderTemplate(text string, variables map[string]interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]

		value, ok := variables[key]
		if !ok || value == nil {
			return ""
		}

		return fmt.Sprintf("%v", value)
	})
}

// TemplateRenderer personalizes campaign templates for a lead. Base URLs come
// from configuration (DIRECTORY_BASE_URL / SPATIAL_NETWORK_BASE_URL).
type TemplateRenderer struct {
	DirectoryBaseURL string
	SpatialBaseURL   string
}

func NewTemplateRenderer(directoryBaseURL, spatialBaseURL string) *TemplateRenderer {
	if directoryBaseURL == "" {
		directoryBaseURL = "https://app.earthcare.network"
	}
	if spatialBaseURL == "" {
		spatialBaseURL = "https://spatial.network"
	}
	return &TemplateRenderer{
		DirectoryBaseURL: directoryBaseURL,
		SpatialBaseURL:   spatialBaseURL,
	}
}

// Personalize renders subject, HTML body and text body for one lead. Computed
// defaults are built first; template-supplied variables are layered on top and
// win on key collisions.
func (r *TemplateRenderer) Personalize(template entity.EmailTemplate, lead *entity.LeadProspect, companyName string) entity.EmailTemplate {
	if companyName == "" {
		companyName = "your company"
	}

	variables := map[string]interface{}{
		"firstName":   lead.FirstName,
		"lastName":    lead.LastName,
		"fullName":    lead.FullName(),
		"jobTitle":    lead.JobTitle,
		"companyName": companyName,
		"email":       lead.Email,
		"claimUrl":    r.ClaimURL(lead.CompanyID),
		"trialUrl":    r.TrialURL(),
	}

	for key, value := range template.Variables {
		variables[key] = value
	}

	return entity.EmailTemplate{
		Subject:   RenderTemplate(template.Subject, variables),
		HTMLBody:  RenderTemplate(template.HTMLBody, variables),
		TextBody:  RenderTemplate(template.TextBody, variables),
		Variables: variables,
	}
}

// ClaimURL points a prospect at the claim flow for their company listing.
func (r *TemplateRenderer) ClaimURL(companyID string) string {
	return fmt.Sprintf("%s/claim/%s", r.DirectoryBaseURL, companyID)
}

// TrialURL is the Build Pro trial signup link with campaign attribution.
func (r *TemplateRenderer) TrialURL() string {
	return fmt.Sprintf("%s/build-pro/trial?utm_source=earthcare&utm_medium=email&utm_campaign=business_claim", r.SpatialBaseURL)
}

// DefaultBusinessClaimTemplate is the canned claim-invitation email used by
// automated campaigns.
func DefaultBusinessClaimTemplate() entity.EmailTemplate {
	return entity.EmailTemplate{
		Subject: "Claim Your {{companyName}} Profile on EarthCare Network",
		HTMLBody: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #059669, #10b981); padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">EarthCare Network</h1>
    <p style="color: #e6fffa; margin: 5px 0 0 0;">Building a Sustainable Future Together</p>
  </div>

  <div style="padding: 30px 20px;">
    <p>Hi {{firstName}},</p>

    <p>We've listed <strong>{{companyName}}</strong> in our EarthCare Network directory of sustainability-focused businesses, and we'd love for you to claim and manage your profile!</p>

    <div style="background: #f0fdf4; border-left: 4px solid #059669; padding: 20px; margin: 20px 0;">
      <h3 style="color: #059669; margin: 0 0 10px 0;">Why claim your profile?</h3>
      <ul style="margin: 0; padding-left: 20px;">
        <li>Showcase your sustainability initiatives</li>
        <li>Connect with eco-conscious customers</li>
        <li>Join a growing network of green businesses</li>
        <li>Get access to EarthCare Pledge certification</li>
      </ul>
    </div>

    <div style="text-align: center; margin: 30px 0;">
      <a href="{{claimUrl}}" style="background: #059669; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold;">
        Claim Your Profile
      </a>
    </div>

    <p>After claiming your profile, you'll also get a special invitation to try our <strong>Build Pro</strong> platform with a free 1-month trial - perfect for managing your sustainability projects and impact tracking.</p>

    <p>Questions? Just reply to this email.</p>

    <p>Best regards,<br>The EarthCare Network Team</p>
  </div>

  <div style="background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280;">
    <p>EarthCare Network | Building a sustainable future, one business at a time</p>
    <p>If you don't want to receive these emails, <a href="#">unsubscribe here</a></p>
  </div>
</div>`,
		TextBody: `Hi {{firstName}},

We've listed {{companyName}} in our EarthCare Network directory of sustainability-focused businesses, and we'd love for you to claim and manage your profile!

Why claim your profile?
- Showcase your sustainability initiatives
- Connect with eco-conscious customers
- Join a growing network of green businesses
- Get access to EarthCare Pledge certification

Claim your profile here: {{claimUrl}}

After claiming your profile, you'll also get a special invitation to try our Build Pro platform with a free 1-month trial - perfect for managing your sustainability projects and impact tracking.

Questions? Just reply to this email.

Best regards,
The EarthCare Network Team

---
EarthCare Network | Building a sustainable future, one business at a time`,
		Variables: map[string]interface{}{},
	}
}
