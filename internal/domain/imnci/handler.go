package imnci

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/phu/phu/internal/platform/auth"
	"github.com/phu/phu/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Classification endpoints are pure: they persist nothing.
	classifyGroup := api.Group("", auth.RequireRole("admin", "clinician"))
	classifyGroup.POST("/imnci/classify/danger-signs", h.ClassifyDangerSigns)
	classifyGroup.POST("/imnci/classify/cough", h.ClassifyCough)
	classifyGroup.POST("/imnci/classify/diarrhea", h.ClassifyDiarrhea)
	classifyGroup.POST("/imnci/classify/fever", h.ClassifyFever)
	classifyGroup.POST("/imnci/classify/ear", h.ClassifyEar)
	classifyGroup.POST("/imnci/classify/nutrition", h.ClassifyNutrition)
	classifyGroup.POST("/assessments", h.CreateAssessment)

	readGroup := api.Group("", auth.RequireRole("admin", "clinician", "pharmacist"))
	readGroup.GET("/imnci/colors", h.ListColors)
	readGroup.GET("/assessments/:id", h.GetAssessment)
	readGroup.GET("/assessments/:id/overall", h.GetOverall)
	readGroup.GET("/cases/:id/assessments", h.ListCaseAssessments)
	readGroup.GET("/patients/:id/assessments", h.ListPatientAssessments)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.DELETE("/assessments/:id", h.DeleteAssessment)
}

// -- Classification Handlers --

func (h *Handler) ClassifyDangerSigns(c echo.Context) error {
	var obs DangerSignsObservation
	if err := c.Bind(&obs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AssessDangerSigns(obs))
}

func (h *Handler) ClassifyCough(c echo.Context) error {
	var obs CoughObservation
	if err := c.Bind(&obs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AssessCough(obs))
}

func (h *Handler) ClassifyDiarrhea(c echo.Context) error {
	var obs DiarrheaObservation
	if err := c.Bind(&obs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AssessDiarrhea(obs))
}

func (h *Handler) ClassifyFever(c echo.Context) error {
	var obs FeverObservation
	if err := c.Bind(&obs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AssessFever(obs))
}

func (h *Handler) ClassifyEar(c echo.Context) error {
	var obs EarObservation
	if err := c.Bind(&obs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AssessEar(obs))
}

func (h *Handler) ClassifyNutrition(c echo.Context) error {
	var obs NutritionObservation
	if err := c.Bind(&obs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AssessNutrition(obs))
}

func (h *Handler) ListColors(c echo.Context) error {
	return c.JSON(http.StatusOK, ColorDisplays())
}

// -- Assessment Handlers --

func (h *Handler) CreateAssessment(c echo.Context) error {
	var req AssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	detail, err := h.svc.CreateAssessment(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *Handler) GetAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	detail, err := h.svc.GetAssessment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) GetOverall(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	overall, err := h.svc.GetOverall(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	return c.JSON(http.StatusOK, overall)
}

func (h *Handler) ListCaseAssessments(c echo.Context) error {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAssessmentsByCase(c.Request().Context(), caseID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListPatientAssessments(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAssessmentsByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteAssessment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
