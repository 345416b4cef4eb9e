package usecase

import (
	"strings"
	"time"

	"github.com/serenelion/earthcare-network/internal/entity"
)

var decisionMakerTitles = []string{
	"ceo", "founder", "president", "director", "manager", "head", "vp", "chief",
}

var sustainabilityKeywords = []string{
	"green", "eco", "sustainable", "renewable", "organic", "environmental",
}

const maxScore = 100

// CalculateScore rates a prospect from job-title and company-name signals.
// Base 50, +30 for decision-maker titles, +20 for sustainability-focused
// companies, capped at 100.
func CalculateScore(jobTitle, companyName string) int {
	score := 50

	title := strings.ToLower(jobTitle)
	for _, keyword := range decisionMakerTitles {
		if strings.Contains(title, keyword) {
			score += 30
			break
		}
	}

	company := strings.ToLower(companyName)
	if company != "" {
		for _, keyword := range sustainabilityKeywords {
			if strings.Contains(company, keyword) {
				score += 20
				break
			}
		}
	}

	return clampScore(score)
}

// CalculateEnhancedScore is the enrichment-time score. It recomputes the base
// formula from the lead's current signals rather than stacking bonuses on the
// stored value, so repeated enrichment runs cannot drift the score upward.
// +10 for a known LinkedIn profile, +5 for data enriched within 30 days.
func CalculateEnhancedScore(lead *entity.LeadProspect, companyName string, now time.Time) int {
	score := CalculateScore(lead.JobTitle, companyName)

	if lead.LinkedinURL != "" {
		score += 10
	}

	if lead.LastEnriched != nil && now.Sub(*lead.LastEnriched) < 30*24*time.Hour {
		score += 5
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
