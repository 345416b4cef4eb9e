package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

func TestRenderTemplate(t *testing.T) {
	variables := map[string]interface{}{
		"firstName": "Sam",
		"count":     3,
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple substitution", "Hi {{firstName}}", "Hi Sam"},
		{"whitespace inside braces", "Hi {{ firstName }}", "Hi Sam"},
		{"missing variable renders empty", "Hi {{nickname}}!", "Hi !"},
		{"non-string values are formatted", "{{count}} leads", "3 leads"},
		{"repeated placeholder", "{{firstName}} and {{firstName}}", "Sam and Sam"},
		{"no placeholders passes through", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usecase.RenderTemplate(tt.input, variables))
		})
	}
}

func TestRenderTemplateNilValue(t *testing.T) {
	out := usecase.RenderTemplate("Hi {{firstName}}", map[string]interface{}{"firstName": nil})
	assert.Equal(t, "Hi ", out)
}

func TestPersonalizeComputedDefaults(t *testing.T) {
	renderer := usecase.NewTemplateRenderer("https://directory.test", "https://spatial.test")

	lead := &entity.LeadProspect{
		FirstName: "Sarah",
		LastName:  "Johnson",
		JobTitle:  "CEO",
		Email:     "sarah.johnson@greentech.eco",
		CompanyID: "company-1",
	}

	template := entity.EmailTemplate{
		Subject:  "Claim {{companyName}}",
		HTMLBody: "<p>Hi {{firstName}}, visit {{claimUrl}}</p>",
		TextBody: "Hi {{fullName}}, trial: {{trialUrl}}",
	}

	out := renderer.Personalize(template, lead, "GreenTech Solutions")

	assert.Equal(t, "Claim GreenTech Solutions", out.Subject)
	assert.Equal(t, "<p>Hi Sarah, visit https://directory.test/claim/company-1</p>", out.HTMLBody)
	assert.Contains(t, out.TextBody, "Hi Sarah Johnson")
	assert.Contains(t, out.TextBody, "https://spatial.test/build-pro/trial?utm_source=earthcare")
}

func TestPersonalizeCompanyNameFallback(t *testing.T) {
	renderer := usecase.NewTemplateRenderer("", "")
	lead := &entity.LeadProspect{FirstName: "Sam", CompanyID: "company-1"}

	out := renderer.Personalize(entity.EmailTemplate{Subject: "About {{companyName}}"}, lead, "")
	assert.Equal(t, "About your company", out.Subject)
}

func TestPersonalizeTemplateVariablesWin(t *testing.T) {
	renderer := usecase.NewTemplateRenderer("", "")
	lead := &entity.LeadProspect{FirstName: "Sam", CompanyID: "company-1"}

	template := entity.EmailTemplate{
		Subject:   "Hi {{firstName}}",
		Variables: map[string]interface{}{"firstName": "Friend"},
	}

	out := renderer.Personalize(template, lead, "Acme Corp")
	assert.Equal(t, "Hi Friend", out.Subject)
}

func TestNewTemplateRendererDefaults(t *testing.T) {
	renderer := usecase.NewTemplateRenderer("", "")
	assert.Equal(t, "https://app.earthcare.network/claim/abc", renderer.ClaimURL("abc"))
	assert.Contains(t, renderer.TrialURL(), "https://spatial.network/build-pro/trial")
}

func TestDefaultBusinessClaimTemplate(t *testing.T) {
	template := usecase.DefaultBusinessClaimTemplate()

	assert.Contains(t, template.Subject, "{{companyName}}")
	assert.Contains(t, template.HTMLBody, "{{claimUrl}}")
	assert.Contains(t, template.TextBody, "{{claimUrl}}")
	assert.NotEmpty(t, template.TextBody)
}
