package service

import (
	"context"
	"errors"

	"legalconsult-backend/logger"
	"legalconsult-backend/models"
	"legalconsult-backend/repository"
)

// PreferenceStore reads stored lawyer preferences
type PreferenceStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.LawyerPreferences, error)
}

// PreferenceResolver looks up lawyer preferences on a best-effort basis
type PreferenceResolver struct {
	store  PreferenceStore
	logger logger.Logger
}

// NewPreferenceResolver creates a resolver over store
func NewPreferenceResolver(store PreferenceStore, log logger.Logger) *PreferenceResolver {
	return &PreferenceResolver{store: store, logger: logger.OrNoOp(log)}
}

// Resolve returns the preferences for userID, or nil when there are none or
// the lookup fails. Failures are logged and never returned.
func (r *PreferenceResolver) Resolve(ctx context.Context, userID string) *models.LawyerPreferences {
	if r == nil || r.store == nil || userID == "" {
		return nil
	}

	prefs, err := r.store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			r.logger.Debug("no stored lawyer preferences", map[string]interface{}{"user_id": userID})
		} else {
			r.logger.WithError(err).Warn("lawyer preference lookup failed", map[string]interface{}{"user_id": userID})
		}
		return nil
	}
	return prefs
}
