package controller

import (
	"competency-assessment-be/internal/mapper"
	"competency-assessment-be/internal/pkg/serverutils"
	"competency-assessment-be/internal/service"
	"competency-assessment-be/pkg/scoring"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(api fiber.Router)
}

// catalogController serves the read-only lookups: occupations and the rubric
type catalogController struct {
	service service.IAssessmentService
	mapper  *mapper.AssessmentMapper
}

func NewCatalogController(service service.IAssessmentService) ICatalogController {
	return &catalogController{
		service: service,
		mapper:  mapper.NewAssessmentMapper(),
	}
}

func (c *catalogController) RegisterRoutes(api fiber.Router) {
	api.Get("/occupations", c.ListOccupations)
	api.Get("/occupations/search", c.SearchOccupations)
	api.Get("/rubrics", c.GetRubrics)
}

func (c *catalogController) ListOccupations(ctx *fiber.Ctx) error {
	occs := c.service.ListOccupations(ctx.UserContext())
	return ctx.JSON(serverutils.SuccessResponse("Occupations retrieved", c.mapper.ToOccupationResponses(occs)))
}

// SearchOccupations searches O*NET, falling back to the local catalogue
// @Summary Search occupations
// @Tags Occupations
// @Produce json
// @Param term query string true "Job title or O*NET code"
// @Router /api/occupations/search [get]
func (c *catalogController) SearchOccupations(ctx *fiber.Ctx) error {
	term := ctx.Query("term")
	if term == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Please enter a job title to search"))
	}

	occs := c.service.SearchOccupations(ctx.UserContext(), term)
	return ctx.JSON(serverutils.SuccessResponse("Occupations found", c.mapper.ToOccupationResponses(occs)))
}

func (c *catalogController) GetRubrics(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Rubric levels", c.mapper.ToRubricResponses(scoring.RubricLevels)))
}
