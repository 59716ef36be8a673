package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/store"
)

// GetEvents handles GET /events: the event taxonomy (goal, cards,
// substitution, penalty, assist).
func GetEvents(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := st.Events()
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Events", events)
	}
}

// GetFormations handles GET /formations.
func GetFormations(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		formations, err := st.Formations()
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "Formations", formations)
	}
}

// GetFormationPositions handles GET /formations/:id: the formation's spots
// plus the generic ones that apply to every formation.
func GetFormationPositions(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid formation id")
		}
		positions, err := st.FormationPositions(id)
		if err != nil {
			return storeFail(c, err)
		}
		return respond(c, fiber.StatusOK, "FormationPositions", positions)
	}
}
