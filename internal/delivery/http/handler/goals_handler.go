package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/savelxev/biteplan-backend/internal/usecase/goals"
)

type GoalsHandler struct {
	goalsUseCase *goals.GoalsUseCase
}

func NewGoalsHandler(goalsUseCase *goals.GoalsUseCase) *GoalsHandler {
	return &GoalsHandler{
		goalsUseCase: goalsUseCase,
	}
}

type recalculateRequest struct {
	GoalWeight float64 `json:"goal_weight" binding:"required,min=30,max=300"`
}

// goalsPayload is the wire shape of a recalculated goal set.
type goalsPayload struct {
	GoalWeight       float64 `json:"goalWeight"`
	DailyCalorieGoal int     `json:"dailyCalorieGoal"`
	ProteinGoal      int     `json:"proteinGoal"`
	CarbsGoal        int     `json:"carbsGoal"`
	FatGoal          int     `json:"fatGoal"`
	FiberGoal        int     `json:"fiberGoal"`
}

type recalculateSuccessResponse struct {
	Success   bool         `json:"success"`
	Goals     goalsPayload `json:"goals"`
	Reasoning string       `json:"reasoning"`
}

type recalculateFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// GetTargets handles GET /goals: the latest targets, cache first.
func (h *GoalsHandler) GetTargets(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	targets, fiber, err := h.goalsUseCase.GetTargets(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get targets"})
		return
	}

	resp := gin.H{"targets": targets}
	if fiber != nil {
		resp["fiber_goal"] = *fiber
	}
	c.JSON(http.StatusOK, resp)
}

// Recalculate handles POST /goals/recalculate. Goal weight bounds are
// enforced here, before the service runs; the service itself only checks the
// proposal shape. On any failure the previous targets stay in place and the
// client gets an explicit error.
func (h *GoalsHandler) Recalculate(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, recalculateFailureResponse{Error: "unauthorized"})
		return
	}

	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, recalculateFailureResponse{Error: bindErrorMessage(err)})
		return
	}

	result, err := h.goalsUseCase.Recalculate(c.Request.Context(), id, req.GoalWeight)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, recalculateFailureResponse{Error: "profile not found"})
		case errors.Is(err, domain.ErrInvalidProposal):
			c.JSON(http.StatusBadGateway, recalculateFailureResponse{Error: "reasoning engine returned an invalid proposal"})
		default:
			c.JSON(http.StatusBadGateway, recalculateFailureResponse{Error: "recalculation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, recalculateSuccessResponse{
		Success: true,
		Goals: goalsPayload{
			GoalWeight:       result.GoalWeightKg,
			DailyCalorieGoal: result.Targets.Calories,
			ProteinGoal:      result.Targets.Protein,
			CarbsGoal:        result.Targets.Carbs,
			FatGoal:          result.Targets.Fat,
			FiberGoal:        result.FiberGoal,
		},
		Reasoning: result.Reasoning,
	})
}
