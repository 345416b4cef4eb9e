package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serenelion/earthcare-network/internal/entity"
)

// DiscoveryParams narrow a discovery run. Zero-value fields fall back to the
// stored company record (domain, location) or the default job-title list.
type DiscoveryParams struct {
	CompanyDomain string   `json:"companyDomain,omitempty"`
	CompanyName   string   `json:"companyName,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	LocationCity  string   `json:"locationCity,omitempty"`
	LocationState string   `json:"locationState,omitempty"`
	JobTitles     []string `json:"jobTitles,omitempty"`
	ExcludeEmails []string `json:"excludeEmails,omitempty"`
}

// EnrichmentResult summarizes one discovery run. Per-lead failures are
// collected into Errors without aborting the batch.
type EnrichmentResult struct {
	Success       bool     `json:"success"`
	LeadsFound    int      `json:"leadsFound"`
	LeadsEnriched int      `json:"leadsEnriched"`
	Errors        []string `json:"errors"`
}

type LeadDiscoveryUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Companies entity.CompanyRepositoryInterface
	Sources   []ProspectSource
}

// NewLeadDiscoveryUseCase wires the discovery pipeline. Source order matters:
// when two sources return the same email, the earlier source wins dedup.
func NewLeadDiscoveryUseCase(
	leads entity.LeadRepositoryInterface,
	companies entity.CompanyRepositoryInterface,
	sources ...ProspectSource,
) *LeadDiscoveryUseCase {
	return &LeadDiscoveryUseCase{
		Leads:     leads,
		Companies: companies,
		Sources:   sources,
	}
}

// DiscoverLeadsForCompany runs the full pipeline for one company: resolve the
// company record, query every source, dedupe by email, persist new leads
// (existing email+company pairs are skipped, never duplicated), then run the
// enrichment pass over everything that was saved.
func (uc *LeadDiscoveryUseCase) DiscoverLeadsForCompany(ctx context.Context, companyID string, params DiscoveryParams) EnrichmentResult {
	log.Printf("discovery: starting for company %s", companyID)

	company, err := uc.Companies.FindByID(ctx, companyID)
	if err != nil {
		return EnrichmentResult{Errors: []string{companyNotFound(companyID).Error()}}
	}

	merged := uc.mergeParams(company, params)

	var all []entity.ProspectCandidate
	var runErrors []string

	for _, source := range uc.Sources {
		candidates, err := source.Discover(ctx, merged)
		if err != nil {
			log.Printf("discovery: source %s failed: %v", source.Name(), err)
			runErrors = append(runErrors, fmt.Sprintf("source %s: %v", source.Name(), err))
			continue
		}
		all = append(all, candidates...)
	}

	unique := dedupeCandidates(all)
	unique = filterExcluded(unique, merged.ExcludeEmails)

	saved, saveErrors := uc.saveLeads(ctx, unique, companyID)
	runErrors = append(runErrors, saveErrors...)

	enriched, enrichErrors := uc.enrichLeads(ctx, saved, company.Name)
	runErrors = append(runErrors, enrichErrors...)

	log.Printf("discovery: company %s done, %d found, %d enriched, %d errors",
		companyID, len(unique), enriched, len(runErrors))

	return EnrichmentResult{
		Success:       true,
		LeadsFound:    len(unique),
		LeadsEnriched: enriched,
		Errors:        runErrors,
	}
}

// GetLeadsForCompany returns the company's leads, highest score first.
func (uc *LeadDiscoveryUseCase) GetLeadsForCompany(ctx context.Context, companyID string) ([]*entity.LeadProspect, error) {
	return uc.Leads.ListByCompany(ctx, companyID)
}

// UpdateLeadScore overrides a lead's score, clamped to [0,100].
func (uc *LeadDiscoveryUseCase) UpdateLeadScore(ctx context.Context, leadID string, score int) error {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return leadNotFound(leadID)
	}

	lead.AIScore = clampScore(score)
	lead.UpdatedAt = time.Now()

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead score: " + err.Error()}
	}
	return nil
}

func (uc *LeadDiscoveryUseCase) mergeParams(company *entity.Company, params DiscoveryParams) DiscoveryParams {
	merged := params

	if merged.CompanyName == "" {
		merged.CompanyName = company.Name
	}
	if merged.CompanyDomain == "" {
		merged.CompanyDomain = extractDomain(company.DomainURL)
	}
	if merged.LocationCity == "" {
		merged.LocationCity = company.AddressCity
	}
	if merged.LocationState == "" {
		merged.LocationState = company.AddressState
	}
	if len(merged.JobTitles) == 0 {
		merged.JobTitles = defaultJobTitles()
	}

	return merged
}

// dedupeCandidates keeps the first occurrence of each email. Candidates arrive
// in source registration order, so earlier sources take precedence.
func dedupeCandidates(candidates []entity.ProspectCandidate) []entity.ProspectCandidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]entity.ProspectCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		if seen[candidate.Email] {
			continue
		}
		seen[candidate.Email] = true
		unique = append(unique, candidate)
	}

	return unique
}

func filterExcluded(candidates []entity.ProspectCandidate, excludeEmails []string) []entity.ProspectCandidate {
	if len(excludeEmails) == 0 {
		return candidates
	}

	excluded := make(map[string]bool, len(excludeEmails))
	for _, email := range excludeEmails {
		excluded[strings.ToLower(email)] = true
	}

	kept := candidates[:0]
	for _, candidate := range candidates {
		if !excluded[strings.ToLower(candidate.Email)] {
			kept = append(kept, candidate)
		}
	}
	return kept
}

func (uc *LeadDiscoveryUseCase) saveLeads(ctx context.Context, candidates []entity.ProspectCandidate, companyID string) ([]*entity.LeadProspect, []string) {
	var saved []*entity.LeadProspect
	var saveErrors []string

	for _, candidate := range candidates {
		existing, err := uc.Leads.FindByEmailAndCompany(ctx, candidate.Email, companyID)
		if err != nil {
			saveErrors = append(saveErrors, fmt.Sprintf("lookup %s: %v", candidate.Email, err))
			continue
		}

		if existing != nil {
			log.Printf("discovery: lead already exists: %s", candidate.Email)
			saved = append(saved, existing)
			continue
		}

		now := time.Now()
		lead := &entity.LeadProspect{
			ID:               uuid.New().String(),
			FirstName:        candidate.FirstName,
			LastName:         candidate.LastName,
			Email:            candidate.Email,
			JobTitle:         candidate.JobTitle,
			LinkedinURL:      candidate.LinkedinURL,
			DataSource:       candidate.DataSource,
			AIScore:          clampScore(candidate.AIScore),
			EnrichmentStatus: entity.EnrichmentPending,
			CompanyID:        companyID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if err := uc.Leads.Create(ctx, lead); err != nil {
			// A concurrent run may have inserted the same pair; the unique
			// constraint makes the upsert idempotent either way.
			if errors.Is(err, entity.ErrLeadAlreadyExists) {
				log.Printf("discovery: lead already exists: %s", candidate.Email)
				continue
			}
			saveErrors = append(saveErrors, fmt.Sprintf("save %s: %v", candidate.Email, err))
			continue
		}

		log.Printf("discovery: saved new lead %s", candidate.Email)
		saved = append(saved, lead)
	}

	return saved, saveErrors
}

// enrichLeads runs the second pass: profile-link guessing and the enhanced
// score recompute. A lead that fails enrichment is marked failed and the rest
// of the batch continues.
func (uc *LeadDiscoveryUseCase) enrichLeads(ctx context.Context, leads []*entity.LeadProspect, companyName string) (int, []string) {
	enriched := 0
	var enrichErrors []string

	for _, lead := range leads {
		lead.EnrichmentStatus = entity.EnrichmentEnriching
		lead.UpdatedAt = time.Now()
		if err := uc.Leads.Update(ctx, lead); err != nil {
			enrichErrors = append(enrichErrors, fmt.Sprintf("enrich %s: %v", lead.Email, err))
			continue
		}

		if lead.LinkedinURL == "" && lead.FirstName != "" && lead.LastName != "" {
			lead.LinkedinURL = guessLinkedInProfile(lead.FirstName, lead.LastName)
		}

		now := time.Now()
		lead.AIScore = CalculateEnhancedScore(lead, companyName, now)
		lead.EnrichmentStatus = entity.EnrichmentCompleted
		lead.LastEnriched = &now
		lead.UpdatedAt = now

		if err := uc.Leads.Update(ctx, lead); err != nil {
			lead.EnrichmentStatus = entity.EnrichmentFailed
			if updateErr := uc.Leads.Update(ctx, lead); updateErr != nil {
				log.Printf("discovery: could not mark %s failed: %v", lead.Email, updateErr)
			}
			enrichErrors = append(enrichErrors, fmt.Sprintf("enrich %s: %v", lead.Email, err))
			continue
		}

		enriched++
	}

	return enriched, enrichErrors
}

// guessLinkedInProfile builds the conventional profile slug from first and
// last name, keeping lowercase letters only.
func guessLinkedInProfile(firstName, lastName string) string {
	var slug strings.Builder
	for _, r := range strings.ToLower(firstName + lastName) {
		if r >= 'a' && r <= 'z' {
			slug.WriteRune(r)
		}
	}
	return "https://linkedin.com/in/" + slug.String()
}

func extractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if parsed.Hostname() != "" {
		return parsed.Hostname()
	}

	// Stored link may be a bare domain without scheme.
	return strings.TrimSuffix(rawURL, "/")
}

func defaultJobTitles() []string {
	return []string{
		"CEO", "Founder", "President", "Director",
		"Manager", "Head of", "Vice President", "Chief",
	}
}
