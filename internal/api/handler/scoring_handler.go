package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"credit-advisor/internal/api/handler/dto"
	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

type ScoringHandler struct {
	assessments assessment.AssessmentService
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewScoringHandler(assessments assessment.AssessmentService, l *slog.Logger) *ScoringHandler {
	return &ScoringHandler{
		assessments: assessments,
		validate:    newValidator(),
		logger:      l.With("component", "ScoringHandler"),
	}
}

// Predict handles POST /scoring/predict
// @Summary Score an applicant
// @Description Runs the credit model on the supplied attributes without storing anything.
// @Tags Scoring
// @Accept json
// @Produce json
// @Param request body dto.PredictRequest true "Applicant attributes"
// @Success 200 {object} dto.PredictResponse "Recommendation"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 422 {object} dto.ErrorResponse "Category has no model encoding"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scoring/predict [post]
// @Security BearerAuth
func (h *ScoringHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := validateRequest(h.validate, req); err != nil {
		respondError(w, err)
		return
	}

	rec, err := h.assessments.Score(r.Context(), req.ToApplicant())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Scoring failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPredictResponse(rec))
}
