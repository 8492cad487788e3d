package reports

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/screening"
	"github.com/ssvp-lar/ilpi-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	residents *residents.Service
	screening *screening.Service
	settings  *services.SettingsService
}

func NewHandler(residentService *residents.Service, screeningService *screening.Service, settingsService *services.SettingsService) *Handler {
	return &Handler{
		residents: residentService,
		screening: screeningService,
		settings:  settingsService,
	}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": true, "message": message})
}

func (h *Handler) ResidentFile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	resident, err := h.residents.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Residente não encontrado")
	}
	institution, err := h.settings.Get()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao carregar a instituição")
	}
	doc, err := RenderResidentFile(institution, *resident)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao gerar o documento")
	}
	c.Type("html", "utf-8")
	return c.Send(doc)
}

func (h *Handler) ScreeningForm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	candidate, err := h.screening.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Candidato não encontrado")
	}
	institution, err := h.settings.Get()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao carregar a instituição")
	}
	doc, err := RenderScreeningForm(institution, *candidate)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao gerar o documento")
	}
	c.Type("html", "utf-8")
	return c.Send(doc)
}

func (h *Handler) ResidentCensus(c *fiber.Ctx) error {
	rows, err := h.residents.List(c.Query("q"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao listar residentes")
	}
	book, err := BuildResidentCensus(rows)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao gerar a planilha")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="residentes.xlsx"`)
	return c.Send(book)
}

func (h *Handler) Waitlist(c *fiber.Ctx) error {
	candidates, err := h.screening.List("", screening.StageAguardandoVaga)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao listar a fila de espera")
	}
	book, err := BuildWaitlist(candidates)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao gerar a planilha")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fila-de-espera.xlsx"`)
	return c.Send(book)
}
