package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"managerapi/internal/model"
	"managerapi/internal/service"
)

const managerNotFound = "manager not found"

// ListManagers returns a page of managers.
//
// @Summary List managers
// @Tags managers
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} service.ManagerListResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /managers [get]
func ListManagers(svc service.ManagerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, managerNotFound)
		}
		return c.JSON(res)
	}
}

// GetManager returns one manager.
//
// @Summary Get a manager
// @Tags managers
// @Produce json
// @Param id path string true "Manager ID (UUID)"
// @Success 200 {object} model.Manager
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /managers/{id} [get]
func GetManager(svc service.ManagerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := managerID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, managerNotFound)
		}
		return c.JSON(m)
	}
}

// CreateManager stores a new manager. The id is always generated server side.
//
// @Summary Create a manager
// @Tags managers
// @Accept json
// @Produce json
// @Param manager body model.ManagerInput true "Manager"
// @Success 201 {object} model.Manager
// @Failure 400 {object} errorPayload
// @Router /managers [post]
func CreateManager(svc service.ManagerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.ManagerInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		m, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err, managerNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// UpdateManager applies a partial update.
//
// @Summary Update a manager
// @Tags managers
// @Accept json
// @Produce json
// @Param id path string true "Manager ID (UUID)"
// @Param manager body model.ManagerPatch true "Fields to change"
// @Success 200 {object} model.Manager
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /managers/{id} [put]
func UpdateManager(svc service.ManagerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := managerID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var patch model.ManagerPatch
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		m, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err, managerNotFound)
		}
		return c.JSON(m)
	}
}

// DeleteManager removes a manager.
//
// @Summary Delete a manager
// @Tags managers
// @Produce json
// @Param id path string true "Manager ID (UUID)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /managers/{id} [delete]
func DeleteManager(svc service.ManagerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := managerID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, managerNotFound)
		}
		return c.JSON(fiber.Map{"message": "Manager deleted"})
	}
}

// managerID returns the :id param in canonical UUID form.
func managerID(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
