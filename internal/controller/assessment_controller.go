package controller

import (
	"errors"
	"strconv"

	"competency-assessment-be/internal/dto"
	"competency-assessment-be/internal/mapper"
	"competency-assessment-be/internal/pkg/serverutils"
	"competency-assessment-be/internal/service"
	"competency-assessment-be/pkg/batch"
	"competency-assessment-be/pkg/skillsource"

	"github.com/gofiber/fiber/v2"
)

type IAssessmentController interface {
	RegisterRoutes(api fiber.Router)
}

type assessmentController struct {
	service service.IAssessmentService
	mapper  *mapper.AssessmentMapper
}

func NewAssessmentController(service service.IAssessmentService) IAssessmentController {
	return &assessmentController{
		service: service,
		mapper:  mapper.NewAssessmentMapper(),
	}
}

func (c *assessmentController) RegisterRoutes(api fiber.Router) {
	h := api.Group("/assessments")
	h.Post("", c.Start)
	h.Get("/:id", c.GetSession)
	h.Get("/:id/competencies", c.GetCompetencies)
	h.Post("/:id/sections", c.OrganizeSections)
	h.Get("/:id/sections/:index", c.GetSection)
	h.Post("/:id/sections/:index/submit", c.SubmitSection)
	h.Get("/:id/results", c.GetResults)
	h.Delete("/:id", c.Restart)
}

// Start loads skills for the chosen occupation and opens a session
// @Summary Start an assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param request body dto.StartAssessmentRequest true "Occupation"
// @Success 201 {object} dto.StartAssessmentResponse
// @Router /api/assessments [post]
func (c *assessmentController) Start(ctx *fiber.Ctx) error {
	var req dto.StartAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	session, err := c.service.StartSession(ctx.UserContext(), skillsource.Occupation{Code: req.Code, Title: req.Title})
	if err != nil {
		return statusFor(ctx, err)
	}

	res := dto.StartAssessmentResponse{
		Session:      c.mapper.ToSessionResponse(session),
		Competencies: c.mapper.ToCompetencyCategories(session.Competencies),
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Assessment started", res))
}

func (c *assessmentController) GetSession(ctx *fiber.Ctx) error {
	session, err := c.service.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return statusFor(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Assessment session", c.mapper.ToSessionResponse(session)))
}

// GetCompetencies returns the merged skills and the grouped representative competencies
func (c *assessmentController) GetCompetencies(ctx *fiber.Ctx) error {
	session, err := c.service.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return statusFor(ctx, err)
	}

	res := dto.CompetenciesResponse{
		Skills:       c.mapper.ToSkillResponses(session.Skills),
		Competencies: c.mapper.ToCompetencyCategories(session.Competencies),
	}
	return ctx.JSON(serverutils.SuccessResponse("Competencies retrieved", res))
}

// OrganizeSections partitions the question pool into sections.
// Answers 422 when no section could be built.
func (c *assessmentController) OrganizeSections(ctx *fiber.Ctx) error {
	session, err := c.service.OrganizeSections(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return statusFor(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Sections organized", c.mapper.ToOrganizeResponse(session)))
}

func (c *assessmentController) GetSection(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section index")
	}

	view, err := c.service.GetSection(ctx.UserContext(), ctx.Params("id"), index)
	if err != nil {
		return statusFor(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Section retrieved", c.mapper.ToSectionResponse(view)))
}

// SubmitSection scores one section; unanswered questions count as empty answers
func (c *assessmentController) SubmitSection(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section index")
	}

	var req dto.SubmitSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	answers := make(map[int]string, len(req.Answers))
	for key, text := range req.Answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Answer keys must be question ids")
		}
		answers[id] = text
	}

	sessionID := ctx.Params("id")
	feedback, err := c.service.SubmitSection(ctx.UserContext(), sessionID, index, answers)
	if err != nil {
		return statusFor(ctx, err)
	}

	session, err := c.service.GetSession(ctx.UserContext(), sessionID)
	if err != nil {
		return statusFor(ctx, err)
	}

	res := dto.SubmitSectionResponse{
		Index:             index,
		TotalSectionCount: len(session.Sections),
		Completed:         session.Complete(),
		Feedback:          c.mapper.ToFeedbackResponses(feedback),
	}
	return ctx.JSON(serverutils.SuccessResponse("Section submitted", res))
}

func (c *assessmentController) GetResults(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")
	session, err := c.service.GetSession(ctx.UserContext(), sessionID)
	if err != nil {
		return statusFor(ctx, err)
	}
	report, err := c.service.GetResults(ctx.UserContext(), sessionID)
	if err != nil {
		return statusFor(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Results retrieved", c.mapper.ToResultsResponse(session.ID, session.Complete(), report)))
}

// Restart discards the session so the user can pick another occupation
func (c *assessmentController) Restart(ctx *fiber.Ctx) error {
	if err := c.service.Restart(ctx.UserContext(), ctx.Params("id")); err != nil {
		return statusFor(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Assessment restarted", nil))
}

func statusFor(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSectionOutOfRange):
		code = fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionBusy), errors.Is(err, service.ErrSectionSubmitted):
		code = fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidOccupation):
		code = fiber.StatusBadRequest
	case errors.Is(err, batch.ErrNoSections):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(fiber.StatusUnprocessableEntity,
			"No assessment sections could be built for this occupation. Please select a different role."))
	}
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
}
