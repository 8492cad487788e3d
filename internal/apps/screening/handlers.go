package screening

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": true, "message": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrCandidateNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidStage),
		errors.Is(err, ErrArchiveReasonInvalid),
		errors.Is(err, ErrNotArchived),
		errors.Is(err, ErrAlreadyTerminal),
		errors.Is(err, ErrTerminalStage),
		errors.Is(err, ErrBoardOpinionRequired),
		errors.Is(err, ErrMedicalNotFavorable),
		errors.Is(err, ErrContractNotSigned):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) List(c *fiber.Ctx) error {
	found, err := h.service.List(c.Query("q"), Stage(c.Query("stage")))
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "candidates": found})
}

func (h *Handler) Board(c *fiber.Ctx) error {
	board, err := h.service.Board(c.Query("q"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao montar o painel de triagem")
	}
	counts := make(map[Stage]int, len(board))
	for stage, list := range board {
		counts[stage] = len(list)
	}
	return c.JSON(fiber.Map{"error": false, "board": board, "counts": counts})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	candidate, err := h.service.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Candidato não encontrado")
	}
	return c.JSON(fiber.Map{"error": false, "candidate": candidate})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var candidate Candidate
	if err := c.BodyParser(&candidate); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	created, err := h.service.Create(&candidate)
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "candidate": created})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	var candidate Candidate
	if err := c.BodyParser(&candidate); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	updated, err := h.service.Update(id, &candidate)
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "candidate": updated})
}

func (h *Handler) Advance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	candidate, err := h.service.Advance(id)
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "candidate": candidate})
}

func (h *Handler) Archive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	candidate, err := h.service.Archive(id, req.Reason)
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "candidate": candidate})
}

func (h *Handler) Reopen(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	candidate, err := h.service.Reopen(id)
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "candidate": candidate})
}

func (h *Handler) ListArchiveReasons(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"error": false, "reasons": ArchiveReasons})
}
