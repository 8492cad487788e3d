package residents

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

func (h *Handler) statusFor(err error) int {
	switch {
	case errors.Is(err, ErrResidentNotFound), errors.Is(err, ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNameRequired):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) List(c *fiber.Ctx) error {
	rows, err := h.service.List(c.Query("q"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao listar residentes")
	}
	return c.JSON(fiber.Map{"error": false, "residents": rows})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	resident, err := h.service.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Residente não encontrado")
	}
	return c.JSON(fiber.Map{"error": false, "resident": resident})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var resident Resident
	if err := c.BodyParser(&resident); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	created, err := h.service.Create(&resident)
	if err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "resident": created})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	var resident Resident
	if err := c.BodyParser(&resident); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	updated, err := h.service.Update(id, &resident)
	if err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "resident": updated})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	if err := h.service.Delete(id); err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "message": "Residente removido"})
}

func parentID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func recordIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	residentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	recordID, err := uuid.Parse(c.Params("recordID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return residentID, recordID, nil
}

// addChild wraps the shared shape of every nested-list append handler.
func addChild[T any](h *Handler, c *fiber.Ctx, key string, add func(uuid.UUID, *T) (*T, error)) error {
	residentID, err := parentID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	var record T
	if err := c.BodyParser(&record); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	created, err := add(residentID, &record)
	if err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, key: created})
}

// updateChild wraps the shared shape of every nested-list row update.
func updateChild[T any](h *Handler, c *fiber.Ctx, key string, update func(uuid.UUID, uuid.UUID, *T) (*T, error)) error {
	residentID, recordID, err := recordIDs(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	var record T
	if err := c.BodyParser(&record); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	updated, err := update(residentID, recordID, &record)
	if err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, key: updated})
}

func removeChild(h *Handler, c *fiber.Ctx, remove func(uuid.UUID, uuid.UUID) error) error {
	residentID, recordID, err := recordIDs(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	if err := remove(residentID, recordID); err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "message": "Registro removido"})
}

func (h *Handler) AddRelative(c *fiber.Ctx) error {
	return addChild(h, c, "relative", h.service.AddRelative)
}

func (h *Handler) UpdateRelative(c *fiber.Ctx) error {
	return updateChild(h, c, "relative", h.service.UpdateRelative)
}

func (h *Handler) RemoveRelative(c *fiber.Ctx) error {
	return removeChild(h, c, h.service.RemoveRelative)
}

func (h *Handler) ReplaceRelatives(c *fiber.Ctx) error {
	residentID, err := parentID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	var list []Relative
	if err := c.BodyParser(&list); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	saved, err := h.service.ReplaceRelatives(residentID, list)
	if err != nil {
		return fail(c, h.statusFor(err), err.Error())
	}
	return c.JSON(fiber.Map{"error": false, "relatives": saved})
}

func (h *Handler) AddVisit(c *fiber.Ctx) error {
	return addChild(h, c, "visit", h.service.AddVisit)
}

func (h *Handler) UpdateVisit(c *fiber.Ctx) error {
	return updateChild(h, c, "visit", h.service.UpdateVisit)
}

func (h *Handler) RemoveVisit(c *fiber.Ctx) error {
	return removeChild(h, c, h.service.RemoveVisit)
}

func (h *Handler) AddFinancial(c *fiber.Ctx) error {
	return addChild(h, c, "financial", h.service.AddFinancial)
}

func (h *Handler) UpdateFinancial(c *fiber.Ctx) error {
	return updateChild(h, c, "financial", h.service.UpdateFinancial)
}

func (h *Handler) RemoveFinancial(c *fiber.Ctx) error {
	return removeChild(h, c, h.service.RemoveFinancial)
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	residentID, err := parentID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}
	balance, err := h.service.ComputeBalance(residentID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Falha ao calcular saldo")
	}
	return c.JSON(fiber.Map{"error": false, "balance": balance})
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	return addChild(h, c, "item", h.service.AddItem)
}

func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	return updateChild(h, c, "item", h.service.UpdateItem)
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	return removeChild(h, c, h.service.RemoveItem)
}

func (h *Handler) AddHealthUpdate(c *fiber.Ctx) error {
	return addChild(h, c, "health_update", h.service.AddHealthUpdate)
}

func (h *Handler) UpdateHealthUpdate(c *fiber.Ctx) error {
	return updateChild(h, c, "health_update", h.service.UpdateHealthUpdate)
}

func (h *Handler) RemoveHealthUpdate(c *fiber.Ctx) error {
	return removeChild(h, c, h.service.RemoveHealthUpdate)
}

func (h *Handler) AddMedication(c *fiber.Ctx) error {
	return addChild(h, c, "medication", h.service.AddMedication)
}

func (h *Handler) UpdateMedication(c *fiber.Ctx) error {
	return updateChild(h, c, "medication", h.service.UpdateMedication)
}

func (h *Handler) RemoveMedication(c *fiber.Ctx) error {
	return removeChild(h, c, h.service.RemoveMedication)
}
