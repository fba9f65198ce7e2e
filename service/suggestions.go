package service

import "legalconsult-backend/models"

// universalSuggestions open every suggestion list
var universalSuggestions = []string{
	"Consult a qualified lawyer licensed in Saudi Arabia about the specifics of your case",
	"Review all documentation related to the matter, including contracts and correspondence",
}

var caseTypeSuggestions = map[models.CaseType][]string{
	models.CaseTypeLabor: {
		"Check the employment contract terms and its registration with the Ministry of Human Resources",
		"Consider amicable settlement through the labor office before filing with the labor court",
	},
	models.CaseTypeCommercial: {
		"Verify the commercial registration of all parties",
		"Review the dispute resolution and arbitration clauses in the commercial contract",
	},
	models.CaseTypeFamily: {
		"Consider mediation through family reconciliation offices",
		"Keep the children's best interests central to any custody arrangement",
	},
	models.CaseTypeCriminal: {
		"Exercise the right to legal representation from the start of the investigation",
		"Do not make statements to investigators without a lawyer present",
	},
	models.CaseTypeCivil: {
		"Document the damage and the losses suffered with supporting evidence",
		"Check the limitation period before filing the claim",
	},
	models.CaseTypeRealEstate: {
		"Verify the property title deed and its registration status",
		"Confirm that the lease contract is documented on the Ejar platform",
	},
	models.CaseTypeAdministrative: {
		"File a grievance with the issuing authority within the statutory deadline",
		"Keep copies of the administrative decision and the date you were notified",
	},
}

// Suggest returns the universal suggestions followed by the case type's own.
// Unknown or empty case types get only the universal suggestions.
func Suggest(caseType models.CaseType) []string {
	specific := caseTypeSuggestions[caseType]
	out := make([]string, 0, len(universalSuggestions)+len(specific))
	out = append(out, universalSuggestions...)
	out = append(out, specific...)
	return out
}
