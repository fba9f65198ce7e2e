package models

import (
	"time"
)

// CaseType represents the kind of legal matter a consultation concerns
type CaseType string

const (
	CaseTypeLabor          CaseType = "labor"
	CaseTypeCommercial     CaseType = "commercial"
	CaseTypeFamily         CaseType = "family"
	CaseTypeCriminal       CaseType = "criminal"
	CaseTypeCivil          CaseType = "civil"
	CaseTypeRealEstate     CaseType = "real_estate"
	CaseTypeAdministrative CaseType = "administrative"
)

// CaseTypes lists every supported case type in display order
var CaseTypes = []CaseType{
	CaseTypeLabor,
	CaseTypeCommercial,
	CaseTypeFamily,
	CaseTypeCriminal,
	CaseTypeCivil,
	CaseTypeRealEstate,
	CaseTypeAdministrative,
}

// Valid reports whether c is one of the enumerated case types
func (c CaseType) Valid() bool {
	for _, ct := range CaseTypes {
		if c == ct {
			return true
		}
	}
	return false
}

// Category returns the knowledge category for the case type, or "" when
// the case type is empty or unknown
func (c CaseType) Category() string {
	if !c.Valid() {
		return ""
	}
	return string(c) + "_law"
}

// Language represents the answer language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
	LanguageBoth    Language = "both"
)

// DefaultLanguage is the primary jurisdiction language
const DefaultLanguage = LanguageArabic

// ConsultationRequest represents an inbound consultation query
type ConsultationRequest struct {
	QueryText         string   `json:"query" validate:"required,min=10,max=1000"`
	CaseType          CaseType `json:"case_type,omitempty" validate:"omitempty,oneof=labor commercial family criminal civil real_estate administrative"`
	FreeformContext   string   `json:"context,omitempty" validate:"max=500"`
	Language          Language `json:"language,omitempty" validate:"oneof=en ar both"`
	IncludeReferences *bool    `json:"include_references,omitempty"`
}

// WantsReferences reports whether references should be returned (default true)
func (r ConsultationRequest) WantsReferences() bool {
	return r.IncludeReferences == nil || *r.IncludeReferences
}

// ValidationResult holds the outcome of the heuristic answer checks
type ValidationResult struct {
	IsValid         bool     `json:"is_valid"`
	Issues          []string `json:"issues"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}

// ConsultationResponse represents the assembled answer returned to the caller
type ConsultationResponse struct {
	ID                 string           `json:"id"`
	Answer             string           `json:"answer"`
	CaseType           CaseType         `json:"case_type,omitempty"`
	Language           Language         `json:"language"`
	Confidence         float64          `json:"confidence"`
	References         LegalReferences  `json:"references"`
	Suggestions        []string         `json:"suggestions"`
	SuccessProbability float64          `json:"success_probability"`
	Validation         ValidationResult `json:"validation"`
	Disclaimers        []string         `json:"disclaimers"`
	LastUpdated        time.Time        `json:"last_updated"`
}

// Clone returns a deep copy so downstream stages cannot mutate the original
func (r ConsultationResponse) Clone() ConsultationResponse {
	out := r
	if r.References != nil {
		out.References = append(make(LegalReferences, 0, len(r.References)), r.References...)
	}
	out.Suggestions = cloneStrings(r.Suggestions)
	out.Disclaimers = cloneStrings(r.Disclaimers)
	out.Validation.Issues = cloneStrings(r.Validation.Issues)
	out.Validation.Recommendations = cloneStrings(r.Validation.Recommendations)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
