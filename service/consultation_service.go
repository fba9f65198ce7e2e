package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"legalconsult-backend/logger"
	"legalconsult-backend/models"
	"legalconsult-backend/observability"
	"legalconsult-backend/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGenerationTimeout  = 30 * time.Second
	DefaultEnhancementTimeout = 10 * time.Second
)

// ReferenceFinder retrieves references relevant to a query within a category
type ReferenceFinder interface {
	FindRelevant(query, category string, maxResults int) []models.LegalReference
}

// ConsultationHistory stores and reads finished consultations
type ConsultationHistory interface {
	Create(ctx context.Context, rec *models.ConsultationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ConsultationRecord, error)
}

// ConsultationService runs the consultation pipeline
type ConsultationService struct {
	references  ReferenceFinder
	generator   Generator
	enhancer    ResponseEnhancer
	firmContext FirmContextProvider
	preferences *PreferenceResolver
	history     ConsultationHistory
	metrics     *observability.ConsultationMetrics
	logger      logger.Logger
	clock       Clock

	generationTimeout  time.Duration
	enhancementTimeout time.Duration
}

// ConsultationServiceOption is a functional option for ConsultationService
type ConsultationServiceOption func(*ConsultationService)

// ConsultWithReferenceStore sets the reference source
func ConsultWithReferenceStore(refs ReferenceFinder) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.references = refs
	}
}

// ConsultWithGenerator sets the generative backend
func ConsultWithGenerator(g Generator) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.generator = g
	}
}

// ConsultWithEnhancer sets the response enhancer
func ConsultWithEnhancer(e ResponseEnhancer) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.enhancer = e
	}
}

// ConsultWithFirmContext sets the firm context provider
func ConsultWithFirmContext(p FirmContextProvider) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.firmContext = p
	}
}

// ConsultWithPreferences sets the lawyer preference resolver
func ConsultWithPreferences(r *PreferenceResolver) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.preferences = r
	}
}

// ConsultWithRecorder sets where finished consultations are stored
func ConsultWithRecorder(h ConsultationHistory) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.history = h
	}
}

// ConsultWithMetrics sets the metrics recorder
func ConsultWithMetrics(m *observability.ConsultationMetrics) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.metrics = m
	}
}

// ConsultWithLogger sets the logger
func ConsultWithLogger(l logger.Logger) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.logger = logger.OrNoOp(l)
	}
}

// ConsultWithClock sets the clock used for timestamps
func ConsultWithClock(c Clock) ConsultationServiceOption {
	return func(s *ConsultationService) {
		if c != nil {
			s.clock = c
		}
	}
}

// ConsultWithGenerationTimeout bounds each generative backend call
func ConsultWithGenerationTimeout(d time.Duration) ConsultationServiceOption {
	return func(s *ConsultationService) {
		if d > 0 {
			s.generationTimeout = d
		}
	}
}

// ConsultWithEnhancementTimeout bounds each enhancer call
func ConsultWithEnhancementTimeout(d time.Duration) ConsultationServiceOption {
	return func(s *ConsultationService) {
		if d > 0 {
			s.enhancementTimeout = d
		}
	}
}

// NewConsultationService creates a new consultation service. Without an
// enhancer, responses pass through unchanged.
func NewConsultationService(opts ...ConsultationServiceOption) *ConsultationService {
	s := &ConsultationService{
		enhancer:           PassthroughEnhancer{},
		logger:             logger.NewNoOpLogger(),
		clock:              SystemClock{},
		generationTimeout:  DefaultGenerationTimeout,
		enhancementTimeout: DefaultEnhancementTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessConsultationRequest represents a request to run a consultation
type ProcessConsultationRequest struct {
	Request models.ConsultationRequest
	FirmID  string // optional
	UserID  string // optional
}

// ProcessConsultation validates the request, retrieves references, layers
// firm and lawyer context into the prompt, generates and scores an answer and
// hands the result to the enhancer. Generation and enhancement failures are
// fatal; firm context and preference failures only drop that layer.
func (s *ConsultationService) ProcessConsultation(
	ctx context.Context,
	in ProcessConsultationRequest,
) (*models.ConsultationResponse, error) {
	start := s.clock.Now()

	// 1. Validate before any external call
	req, err := ValidateConsultationRequest(in.Request)
	if err != nil {
		s.metrics.ObserveConsultation(observability.OutcomeInvalidRequest, caseTypeLabel(req.CaseType), s.clock.Now().Sub(start))
		return nil, err
	}

	// 2. References
	refs := make([]models.LegalReference, 0)
	if s.references != nil {
		refs = s.references.FindRelevant(req.QueryText, req.CaseType.Category(), repository.MaxReferences)
	}

	// 3. Firm context and lawyer preferences, independently
	firm, prefs := s.loadPersonalization(ctx, in.FirmID, in.UserID)

	// 4. Generate
	prompt := ComposeContext(req, refs, firm, prefs)
	answer, err := s.generate(ctx, prompt, req.QueryText)
	if err != nil {
		s.metrics.ObserveConsultation(observability.OutcomeGenerationFailed, caseTypeLabel(req.CaseType), s.clock.Now().Sub(start))
		return nil, err
	}

	// 5. Validate and score
	validation := ValidateAnswer(answer, refs)
	resp := models.ConsultationResponse{
		ID:                 uuid.NewString(),
		Answer:             answer,
		CaseType:           req.CaseType,
		Language:           req.Language,
		Confidence:         ScoreConfidence(refs, answer, validation),
		References:         refs,
		Suggestions:        Suggest(req.CaseType),
		SuccessProbability: EstimateSuccess(refs, req.CaseType),
		Validation:         validation,
		Disclaimers:        append([]string(nil), DefaultDisclaimers...),
		LastUpdated:        s.clock.Now(),
	}
	if !req.WantsReferences() {
		resp.References = make(models.LegalReferences, 0)
	}

	// 6. Enhance
	enhanced, err := s.enhance(ctx, resp, req.QueryText, in.FirmID)
	if err != nil {
		s.metrics.ObserveConsultation(observability.OutcomeEnhancementFailed, caseTypeLabel(req.CaseType), s.clock.Now().Sub(start))
		return nil, err
	}
	finalizeResponse(enhanced, &resp, req.WantsReferences())

	// 7. Record
	s.record(ctx, enhanced, req.QueryText, in.FirmID, in.UserID)

	s.metrics.ObserveConsultation(observability.OutcomeSuccess, caseTypeLabel(req.CaseType), s.clock.Now().Sub(start))
	s.metrics.ObserveConfidence(enhanced.Confidence)
	s.logger.Info("consultation completed", map[string]interface{}{
		"consultation_id": enhanced.ID,
		"case_type":       string(req.CaseType),
		"references":      len(refs),
		"confidence":      enhanced.Confidence,
		"firm_id":         in.FirmID,
	})

	return enhanced, nil
}

// caseTypeLabel bounds the case_type metric label to the enumerated case
// types, so rejected input never becomes a label value
func caseTypeLabel(ct models.CaseType) string {
	switch {
	case ct == "":
		return ""
	case !ct.Valid():
		return invalidCaseTypeLabel
	default:
		return string(ct)
	}
}

const invalidCaseTypeLabel = "invalid"

// loadPersonalization fetches the firm and lawyer layers concurrently. Each
// branch swallows its own failure, so the group never returns an error.
func (s *ConsultationService) loadPersonalization(ctx context.Context, firmID, userID string) (*models.FirmContext, *models.LawyerPreferences) {
	var (
		firm  *models.FirmContext
		prefs *models.LawyerPreferences
	)

	g, gctx := errgroup.WithContext(ctx)
	if firmID != "" && s.firmContext != nil {
		g.Go(func() error {
			fc, err := s.firmContext.Get(gctx, firmID)
			if err != nil {
				s.logger.WithError(err).Warn("firm context unavailable", map[string]interface{}{"firm_id": firmID})
				return nil
			}
			firm = fc
			return nil
		})
	}
	if userID != "" && s.preferences != nil {
		g.Go(func() error {
			prefs = s.preferences.Resolve(gctx, userID)
			return nil
		})
	}
	_ = g.Wait()

	return firm, prefs
}

func (s *ConsultationService) generate(ctx context.Context, prompt, query string) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: generator not set", ErrGenerationFailed)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.generationTimeout)
	defer cancel()

	started := s.clock.Now()
	answer, err := s.generator.Generate(genCtx, prompt, query)
	s.metrics.ObserveGeneration(err, s.clock.Now().Sub(started))
	if err != nil {
		s.logger.WithError(err).Error("generation failed", nil)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return answer, nil
}

func (s *ConsultationService) enhance(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
	enhCtx, cancel := context.WithTimeout(ctx, s.enhancementTimeout)
	defer cancel()

	enhanced, err := s.enhancer.Enhance(enhCtx, resp.Clone(), query, firmID)
	if err != nil {
		s.logger.WithError(err).Error("enhancement failed", map[string]interface{}{"consultation_id": resp.ID})
		return nil, fmt.Errorf("%w: %v", ErrEnhancementFailed, err)
	}
	if enhanced == nil {
		return nil, fmt.Errorf("%w: enhancer returned no response", ErrEnhancementFailed)
	}
	return enhanced, nil
}

// finalizeResponse re-applies the response invariants to the enhancer's
// output, falling back to the assembled response for missing fields
func finalizeResponse(out, assembled *models.ConsultationResponse, includeReferences bool) {
	if out.ID == "" {
		out.ID = assembled.ID
	}
	if out.LastUpdated.IsZero() {
		out.LastUpdated = assembled.LastUpdated
	}
	out.Confidence = clampScore(out.Confidence)
	out.SuccessProbability = clampScore(out.SuccessProbability)

	if !includeReferences || out.References == nil {
		out.References = make(models.LegalReferences, 0)
	}
	for i := range out.References {
		out.References[i].RelevanceScore = clampUnit(out.References[i].RelevanceScore)
	}
	repository.SortReferences(out.References)
	if len(out.References) > repository.MaxReferences {
		out.References = out.References[:repository.MaxReferences]
	}

	if len(out.Disclaimers) == 0 {
		out.Disclaimers = append([]string(nil), DefaultDisclaimers...)
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
}

func (s *ConsultationService) record(ctx context.Context, resp *models.ConsultationResponse, query, firmID, userID string) {
	if s.history == nil {
		return
	}
	rec := models.NewConsultationRecord(resp, query, firmID, userID)
	if err := s.history.Create(ctx, rec); err != nil {
		s.logger.WithError(err).Warn("failed to record consultation", map[string]interface{}{"consultation_id": resp.ID})
	}
}

// GetConsultation returns a stored consultation by id
func (s *ConsultationService) GetConsultation(ctx context.Context, id string) (*models.ConsultationRecord, error) {
	if s.history == nil {
		return nil, ErrRecorderNotConfigured
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrConsultationNotFound
	}

	rec, err := s.history.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, repository.ErrConsultationNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	return rec, nil
}
