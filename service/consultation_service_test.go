package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"legalconsult-backend/logger"
	"legalconsult-backend/models"
	"legalconsult-backend/observability"
	"legalconsult-backend/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const laborQuery = "ما هي حقوق العامل في نظام العمل؟"

var laborAnswer = strings.Repeat("وفقاً لنظام العمل في المملكة العربية السعودية يستحق العامل أجره في موعده ومكافأة نهاية الخدمة. ", 4)

func newTestService(t *testing.T, gen Generator, opts ...ConsultationServiceOption) *ConsultationService {
	t.Helper()
	base := []ConsultationServiceOption{
		ConsultWithReferenceStore(repository.NewReferenceStore(repository.DefaultReferenceEntries())),
		ConsultWithGenerator(gen),
		ConsultWithLogger(logger.NewTestLogger(t)),
		ConsultWithClock(newFakeClock()),
	}
	return NewConsultationService(append(base, opts...)...)
}

func assertResponseInvariants(t *testing.T, resp *models.ConsultationResponse) {
	t.Helper()
	assert.GreaterOrEqual(t, resp.Confidence, 0.0)
	assert.LessOrEqual(t, resp.Confidence, MaxScore)
	assert.GreaterOrEqual(t, resp.SuccessProbability, 0.0)
	assert.LessOrEqual(t, resp.SuccessProbability, MaxScore)
	assert.LessOrEqual(t, len(resp.References), repository.MaxReferences)
	for _, ref := range resp.References {
		assert.GreaterOrEqual(t, ref.RelevanceScore, 0.0)
		assert.LessOrEqual(t, ref.RelevanceScore, 1.0)
	}
	for i := 1; i < len(resp.References); i++ {
		assert.GreaterOrEqual(t, resp.References[i-1].RelevanceScore, resp.References[i].RelevanceScore)
	}
	assert.NotEmpty(t, resp.Disclaimers)
}

func TestProcessConsultation_LaborRights(t *testing.T) {
	gen := &recordingGenerator{answer: laborAnswer}
	svc := newTestService(t, gen)

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
	})
	require.NoError(t, err)
	assertResponseInvariants(t, resp)

	var titles []string
	for _, r := range resp.References {
		titles = append(titles, r.Title)
		assert.Greater(t, r.RelevanceScore, 0.0)
	}
	assert.Contains(t, titles, "حقوق العامل")

	for _, s := range caseTypeSuggestions[models.CaseTypeLabor] {
		assert.Contains(t, resp.Suggestions, s)
	}
	for _, s := range universalSuggestions {
		assert.Contains(t, resp.Suggestions, s)
	}

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, laborAnswer, resp.Answer)
	assert.Equal(t, models.LanguageArabic, resp.Language)
	assert.True(t, resp.Validation.IsValid)
	assert.Equal(t, DefaultDisclaimers, resp.Disclaimers)
	assert.Greater(t, resp.Confidence, 0.3)
	assert.Greater(t, resp.SuccessProbability, 0.75)
	assert.False(t, resp.LastUpdated.IsZero())

	require.Equal(t, 1, gen.Calls())
	assert.Contains(t, gen.prompts[0], "حقوق العامل")
}

func TestProcessConsultation_InvalidRequestMakesNoExternalCalls(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"nine characters", "abcdefghi"},
		{"one thousand and one characters", strings.Repeat("a", 1001)},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &recordingGenerator{answer: laborAnswer}
			enhancerCalled := false
			svc := newTestService(t, gen, ConsultWithEnhancer(enhancerFunc(
				func(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
					enhancerCalled = true
					return &resp, nil
				})))

			_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
				Request: models.ConsultationRequest{QueryText: tt.query},
			})

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, "query", ve.Field)
			assert.Equal(t, 0, gen.Calls())
			assert.False(t, enhancerCalled)
		})
	}
}

func TestProcessConsultation_BoundaryLengthAccepted(t *testing.T) {
	svc := newTestService(t, &recordingGenerator{answer: "answer"})

	_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: "abcdefghij"},
	})
	assert.NoError(t, err)
}

func TestProcessConsultation_NoReferencesConfidenceIsExact(t *testing.T) {
	tests := []struct {
		name     string
		caseType models.CaseType
		query    string
	}{
		{"no case type", "", laborQuery},
		{"no matching entries", models.CaseTypeLabor, "zzzz yyyy xxxx wwww"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &recordingGenerator{answer: laborAnswer})

			resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
				Request: models.ConsultationRequest{QueryText: tt.query, CaseType: tt.caseType},
			})
			require.NoError(t, err)
			assert.Empty(t, resp.References)
			assert.NotNil(t, resp.References)
			assert.Equal(t, 0.3, resp.Confidence)
			assert.Equal(t, 0.5, resp.SuccessProbability)
			assertResponseInvariants(t, resp)
		})
	}
}

func TestProcessConsultation_ExcludeReferences(t *testing.T) {
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer})
	no := false

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{
			QueryText:         laborQuery,
			CaseType:          models.CaseTypeLabor,
			IncludeReferences: &no,
		},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.References)
	// scoring still used the references
	assert.Greater(t, resp.Confidence, 0.3)
}

func TestProcessConsultation_GenerationFailure(t *testing.T) {
	enhancerCalled := false
	svc := newTestService(t,
		generatorFunc(func(ctx context.Context, systemPrompt, userQuery string) (string, error) {
			return "", errors.New("503 from upstream")
		}),
		ConsultWithEnhancer(enhancerFunc(
			func(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
				enhancerCalled = true
				return &resp, nil
			})),
	)

	_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
	})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "503 from upstream")
	assert.False(t, enhancerCalled)
}

func TestProcessConsultation_GenerationTimeout(t *testing.T) {
	svc := newTestService(t,
		generatorFunc(func(ctx context.Context, systemPrompt, userQuery string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}),
		ConsultWithGenerationTimeout(20*time.Millisecond),
	)

	_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery},
	})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), context.DeadlineExceeded.Error())
}

func TestProcessConsultation_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := newTestService(t, generatorFunc(func(ctx context.Context, systemPrompt, userQuery string) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}))

	_, err := svc.ProcessConsultation(ctx, ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery},
	})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestProcessConsultation_EnhancementFailureIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		enhancer ResponseEnhancer
	}{
		{
			name: "error",
			enhancer: enhancerFunc(func(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
				return nil, errors.New("feedback service down")
			}),
		},
		{
			name: "nil response",
			enhancer: enhancerFunc(func(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
				return nil, nil
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := newFakeHistory()
			svc := newTestService(t, &recordingGenerator{answer: laborAnswer},
				ConsultWithEnhancer(tt.enhancer),
				ConsultWithRecorder(history),
			)

			resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
				Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
			})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrEnhancementFailed)
			assert.Equal(t, 0, history.Len())
		})
	}
}

func TestProcessConsultation_EnhancerOutputIsReturnedAndClamped(t *testing.T) {
	var seen models.ConsultationResponse
	var seenQuery, seenFirm string
	enhancer := enhancerFunc(func(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
		seen = resp.Clone()
		seenQuery, seenFirm = query, firmID

		// mutate the copy it was given, then return something out of bounds
		resp.Suggestions[0] = "mutated"
		out := resp
		out.Answer = "enhanced answer"
		out.Confidence = 1.7
		out.SuccessProbability = -0.2
		out.Disclaimers = nil
		out.References = append(models.LegalReferences{}, refsWithScores(0.1, 0.9, 0.3, 0.8, 0.2, 0.7, 0.5)...)
		return &out, nil
	})
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer}, ConsultWithEnhancer(enhancer))

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
		FirmID:  "F1",
	})
	require.NoError(t, err)

	assert.Equal(t, laborQuery, seenQuery)
	assert.Equal(t, "F1", seenFirm)
	assert.Equal(t, laborAnswer, seen.Answer)
	assert.Equal(t, seen.ID, resp.ID)

	assert.Equal(t, "enhanced answer", resp.Answer)
	assert.Equal(t, MaxScore, resp.Confidence)
	assert.Equal(t, 0.0, resp.SuccessProbability)
	assert.Equal(t, DefaultDisclaimers, resp.Disclaimers)
	require.Len(t, resp.References, repository.MaxReferences)
	assert.Equal(t, 0.9, resp.References[0].RelevanceScore)
	assertResponseInvariants(t, resp)

	// the shared suggestion table was not touched
	assert.Equal(t, universalSuggestions[0], Suggest("")[0])
}

func TestProcessConsultation_PersonalizationLayers(t *testing.T) {
	gen := &recordingGenerator{answer: laborAnswer}
	clock := newFakeClock()
	cache := NewFirmContextCache(PlaceholderFirmKnowledge{Clock: clock}, FirmCacheWithClock(clock))
	prefs := NewPreferenceResolver(&fakePreferenceStore{prefs: map[string]*models.LawyerPreferences{
		"U1": {UserID: "U1", ResponseStyle: "formal", DetailLevel: "brief"},
	}}, nil)
	svc := newTestService(t, gen, ConsultWithFirmContext(cache), ConsultWithPreferences(prefs))

	_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
		FirmID:  "F1",
		UserID:  "U1",
	})
	require.NoError(t, err)

	require.Equal(t, 1, gen.Calls())
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "## Firm knowledge")
	assert.Contains(t, prompt, "Response style: formal")
	assert.Equal(t, 1, cache.Len())
}

func TestProcessConsultation_PersonalizationFailuresAreTolerated(t *testing.T) {
	gen := &recordingGenerator{answer: laborAnswer}
	svc := newTestService(t, gen,
		ConsultWithFirmContext(NewFirmContextCache(&countingSource{err: errors.New("history down")})),
		ConsultWithPreferences(NewPreferenceResolver(&fakePreferenceStore{err: errors.New("db down")}, nil)),
	)

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
		FirmID:  "F1",
		UserID:  "U1",
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)

	prompt := gen.prompts[0]
	assert.NotContains(t, prompt, "## Firm knowledge")
	assert.NotContains(t, prompt, "## Lawyer preferences")
	assert.Contains(t, prompt, "## Disclaimers")
}

func TestProcessConsultation_RecordsAndRetrieves(t *testing.T) {
	history := newFakeHistory()
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer}, ConsultWithRecorder(history))

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
		FirmID:  "F1",
		UserID:  "U1",
	})
	require.NoError(t, err)

	rec, err := svc.GetConsultation(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, laborQuery, rec.QueryText)
	assert.Equal(t, resp.Confidence, rec.Confidence)
	require.NotNil(t, rec.FirmID)
	assert.Equal(t, "F1", *rec.FirmID)

	_, err = svc.GetConsultation(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrConsultationNotFound)
	_, err = svc.GetConsultation(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestProcessConsultation_RecorderFailureIsNotFatal(t *testing.T) {
	history := newFakeHistory()
	history.err = errors.New("disk full")
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer}, ConsultWithRecorder(history))

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestGetConsultation_WithoutRecorder(t *testing.T) {
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer})

	_, err := svc.GetConsultation(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrRecorderNotConfigured)
}

func TestProcessConsultation_MissingGenerator(t *testing.T) {
	svc := NewConsultationService()

	_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery},
	})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

// requestCaseTypeLabels returns the case_type label values recorded on the
// request counter
func requestCaseTypeLabels(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	labels := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "legalconsult_consultation_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "case_type" {
					labels[lp.GetValue()] = true
				}
			}
		}
	}
	return labels
}

func TestProcessConsultation_RejectedCaseTypesShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	gen := &recordingGenerator{answer: laborAnswer}
	svc := newTestService(t, gen, ConsultWithMetrics(observability.NewConsultationMetrics(reg)))

	caseTypes := []models.CaseType{"\xff\xfe", "  \xc3\x28 "}
	for i := 0; i < 50; i++ {
		caseTypes = append(caseTypes, models.CaseType(fmt.Sprintf("junk-%d", i)))
	}

	for _, ct := range caseTypes {
		var err error
		require.NotPanics(t, func() {
			_, err = svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
				Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: ct},
			})
		})

		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "case type %q: got %v", ct, err)
		assert.Equal(t, "case_type", ve.Field)
	}

	assert.Equal(t, map[string]bool{"invalid": true}, requestCaseTypeLabels(t, reg))
	assert.Equal(t, 0, gen.Calls())
}

func TestProcessConsultation_ValidCaseTypeLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer},
		ConsultWithMetrics(observability.NewConsultationMetrics(reg)))

	_, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
	})
	require.NoError(t, err)
	_, err = svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: "short"},
	})
	require.Error(t, err)

	assert.Equal(t, map[string]bool{"labor": true, "none": true}, requestCaseTypeLabels(t, reg))
}

func TestProcessConsultation_ReferenceScoresAreClamped(t *testing.T) {
	enhancer := enhancerFunc(func(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
		out := resp
		out.References = append(models.LegalReferences{}, refsWithScores(1.4, 0.6, -0.2, 1.0)...)
		return &out, nil
	})
	svc := newTestService(t, &recordingGenerator{answer: laborAnswer}, ConsultWithEnhancer(enhancer))

	resp, err := svc.ProcessConsultation(context.Background(), ProcessConsultationRequest{
		Request: models.ConsultationRequest{QueryText: laborQuery, CaseType: models.CaseTypeLabor},
	})
	require.NoError(t, err)

	require.Len(t, resp.References, 4)
	ids := make([]string, 0, len(resp.References))
	scores := make([]float64, 0, len(resp.References))
	for _, ref := range resp.References {
		ids = append(ids, ref.ID)
		scores = append(scores, ref.RelevanceScore)
	}
	// clamped ties keep the enhancer's order
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids)
	assert.Equal(t, []float64{1, 1, 0.6, 0}, scores)
	assertResponseInvariants(t, resp)
}
