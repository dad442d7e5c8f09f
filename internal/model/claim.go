package model

// RiskLevel grades the regulatory exposure of a marketing claim.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Action is the recommended follow-up for a claim assessment.
type Action string

const (
	ActionNone        Action = "none"
	ActionLegalReview Action = "legal_review"
	ActionEscalate    Action = "escalate"
)

// ClaimRiskResult is the immutable assessment of one claim statement.
// MatchedTerms records every lexicon hit verbatim for auditability.
type ClaimRiskResult struct {
	Language          Language  `json:"language"`
	ClaimText         string    `json:"claim_text"`
	RiskLevel         RiskLevel `json:"risk_level"`
	MatchedTerms      []string  `json:"matched_terms,omitempty"`
	Regions           []string  `json:"applicable_regions,omitempty"`
	RecommendedAction Action    `json:"recommended_action"`
}
