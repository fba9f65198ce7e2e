package service

import (
	"fmt"
	"strings"

	"legalconsult-backend/models"
)

// caseTypeGuidance holds one guidance sentence per case type
var caseTypeGuidance = map[models.CaseType]string{
	models.CaseTypeLabor:          "Focus on the Saudi Labor Law, employee and employer rights, contract terms, end-of-service benefits and the labor dispute settlement process.",
	models.CaseTypeCommercial:     "Focus on the Companies Law, commercial registration, commercial contracts and commercial court jurisdiction.",
	models.CaseTypeFamily:         "Focus on the Personal Status Law, custody, maintenance and family reconciliation procedures.",
	models.CaseTypeCriminal:       "Focus on the Criminal Procedure Law, the rights of the accused and the stages of investigation and trial.",
	models.CaseTypeCivil:          "Focus on the Civil Transactions Law, liability, compensation and limitation periods.",
	models.CaseTypeRealEstate:     "Focus on real estate registration, lease contracts documented through Ejar and property disputes.",
	models.CaseTypeAdministrative: "Focus on the Board of Grievances, administrative grievances, annulment claims and time limits against government decisions.",
}

const genericGuidance = "Identify the area of law that governs the question and answer within that framework."

// DefaultDisclaimers are attached to every response
var DefaultDisclaimers = []string{
	"This consultation is general legal information and is not specific legal advice.",
	"Laws and regulations change; verify the current text of any cited provision before relying on it.",
	"Consult a licensed Saudi lawyer before taking action on this matter.",
}

var languageInstruction = map[models.Language]string{
	models.LanguageArabic:  "Answer in Arabic.",
	models.LanguageEnglish: "Answer in English.",
	models.LanguageBoth:    "Answer in Arabic, followed by an English translation.",
}

// ComposeContext builds the system prompt for a consultation. Sections appear
// in a fixed order and are omitted when their input is absent; the disclaimer
// block is always present.
func ComposeContext(
	req models.ConsultationRequest,
	refs []models.LegalReference,
	firm *models.FirmContext,
	prefs *models.LawyerPreferences,
) string {
	var b strings.Builder

	// 1. System framing
	b.WriteString("You are a legal consultant specialized in the legal system of the Kingdom of Saudi Arabia. ")
	b.WriteString("Answer only on the basis of Saudi laws and regulations, cite the relevant law and article where possible, and say so when the question falls outside Saudi law.\n")
	lang, ok := languageInstruction[req.Language]
	if !ok {
		lang = languageInstruction[models.DefaultLanguage]
	}
	b.WriteString(lang)
	b.WriteString("\n")

	// 2. References
	if len(refs) > 0 {
		b.WriteString("\n## Relevant legal references\n")
		for _, ref := range refs {
			fmt.Fprintf(&b, "- %s, %s: %s\n", ref.Law, ref.Article, ref.Title)
		}
	}

	// 3. Case-type guidance
	b.WriteString("\n## Case guidance\n")
	if guidance, ok := caseTypeGuidance[req.CaseType]; ok {
		b.WriteString(guidance)
	} else {
		b.WriteString(genericGuidance)
	}
	b.WriteString("\n")

	// 4. Freeform context
	if req.FreeformContext != "" {
		b.WriteString("\n## Additional context from the lawyer\n")
		b.WriteString(req.FreeformContext)
		b.WriteString("\n")
	}

	// 5. Firm knowledge
	if firm != nil {
		writeFirmSection(&b, firm)
	}

	// 6. Lawyer preferences
	if prefs != nil {
		writePreferenceSection(&b, prefs)
	}

	// 7. Disclaimers
	b.WriteString("\n## Disclaimers\n")
	b.WriteString("Include the following notices at the end of the answer:\n")
	for _, d := range DefaultDisclaimers {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	return b.String()
}

func writeFirmSection(b *strings.Builder, firm *models.FirmContext) {
	b.WriteString("\n## Firm knowledge\n")
	if len(firm.Specializations) > 0 {
		fmt.Fprintf(b, "Firm specializations: %s\n", strings.Join(firm.Specializations, ", "))
	}
	if firm.SuccessPatterns != "" {
		fmt.Fprintf(b, "Success patterns: %s\n", firm.SuccessPatterns)
	}
	if firm.PreferredApproaches != "" {
		fmt.Fprintf(b, "Preferred approaches: %s\n", firm.PreferredApproaches)
	}
}

func writePreferenceSection(b *strings.Builder, prefs *models.LawyerPreferences) {
	b.WriteString("\n## Lawyer preferences\n")
	if prefs.ResponseStyle != "" {
		fmt.Fprintf(b, "Response style: %s\n", prefs.ResponseStyle)
	}
	if prefs.DetailLevel != "" {
		fmt.Fprintf(b, "Detail level: %s\n", prefs.DetailLevel)
	}
	if len(prefs.Specializations) > 0 {
		fmt.Fprintf(b, "Lawyer specializations: %s\n", strings.Join(prefs.Specializations, ", "))
	}
	if prefs.RiskTolerance != "" {
		fmt.Fprintf(b, "Risk tolerance: %s\n", prefs.RiskTolerance)
	}
	if prefs.ClientCommunicationStyle != "" {
		fmt.Fprintf(b, "Client communication style: %s\n", prefs.ClientCommunicationStyle)
	}
	fmt.Fprintf(b, "Include practical examples: %s\n", yesNo(prefs.IncludeExamples))
	fmt.Fprintf(b, "Include detailed citations: %s\n", yesNo(prefs.IncludeCitations))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
