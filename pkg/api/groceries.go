package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"

	"groceries/pkg/grocery"
	gotel "groceries/pkg/otel"
)

// groceryRequest is the body accepted by create and update.
type groceryRequest struct {
	Name  *string  `json:"name" example:"Bread"`
	Price *float64 `json:"price" example:"2.5"`
}

// Validate requires both fields to be present.
func (p groceryRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NotNil),
		validation.Field(&p.Price, validation.NotNil),
	)
}

func decodeGrocery(r *http.Request) (groceryRequest, error) {
	var p groceryRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&p); err != nil {
		return p, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return p, errors.New("body must contain a single JSON object")
	}
	return p, p.Validate()
}

// pathID parses the {id} route variable. The route pattern already limits
// it to digits, so a failure means the value overflows int.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// listGroceries lists all grocery items.
// @Summary List groceries
// @Produce json
// @Success 200 {array} grocery.Item
// @Router /api/groceries [get]
func (h *Handler) listGroceries(w http.ResponseWriter, r *http.Request) {
	ctx, span := gotel.AddSpan(r.Context(), "listGroceriesHandler")
	defer span.End()

	items, err := h.repo.List(ctx)
	if err != nil {
		h.log.Error(ctx, "list groceries", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// getGrocery retrieves a grocery item by ID.
// @Summary Get grocery
// @Produce json
// @Param id path int true "Grocery ID"
// @Success 200 {object} grocery.Item
// @Failure 404 {string} string "Grocery item not found"
// @Router /api/groceries/{id} [get]
func (h *Handler) getGrocery(w http.ResponseWriter, r *http.Request) {
	ctx, span := gotel.AddSpan(r.Context(), "getGroceryHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, itemNotFoundBody)
		return
	}
	span.SetAttributes(attribute.Int("grocery.id", id))

	it, err := h.repo.Get(ctx, id)
	if err != nil {
		h.writeError(w, r, "get grocery", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// createGrocery adds a new grocery item.
// @Summary Create grocery
// @Accept json
// @Produce json
// @Param grocery body groceryRequest true "Grocery"
// @Success 201 {object} grocery.Item
// @Failure 400 {string} string "invalid body"
// @Router /api/groceries [post]
func (h *Handler) createGrocery(w http.ResponseWriter, r *http.Request) {
	ctx, span := gotel.AddSpan(r.Context(), "createGroceryHandler")
	defer span.End()

	p, err := decodeGrocery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	it, err := h.repo.Create(ctx, *p.Name, *p.Price)
	if err != nil {
		h.writeError(w, r, "create grocery", err)
		return
	}
	span.SetAttributes(attribute.Int("grocery.id", it.ID))
	h.log.Info(ctx, "grocery created", "id", it.ID)
	writeJSON(w, http.StatusCreated, it)
}

// updateGrocery replaces the name and price of a grocery item.
// @Summary Update grocery
// @Accept json
// @Produce json
// @Param id path int true "Grocery ID"
// @Param grocery body groceryRequest true "Grocery"
// @Success 200 {object} grocery.Item
// @Failure 400 {string} string "invalid body"
// @Failure 404 {string} string "Grocery item not found"
// @Router /api/groceries/{id} [put]
func (h *Handler) updateGrocery(w http.ResponseWriter, r *http.Request) {
	ctx, span := gotel.AddSpan(r.Context(), "updateGroceryHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, itemNotFoundBody)
		return
	}
	span.SetAttributes(attribute.Int("grocery.id", id))

	p, err := decodeGrocery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	it, err := h.repo.Update(ctx, id, *p.Name, *p.Price)
	if err != nil {
		h.writeError(w, r, "update grocery", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// deleteGrocery removes a grocery item and returns it.
// @Summary Delete grocery
// @Produce json
// @Param id path int true "Grocery ID"
// @Success 200 {object} grocery.Item
// @Failure 404 {string} string "Grocery item not found"
// @Router /api/groceries/{id} [delete]
func (h *Handler) deleteGrocery(w http.ResponseWriter, r *http.Request) {
	ctx, span := gotel.AddSpan(r.Context(), "deleteGroceryHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, itemNotFoundBody)
		return
	}
	span.SetAttributes(attribute.Int("grocery.id", id))

	it, err := h.repo.Delete(ctx, id)
	if err != nil {
		h.writeError(w, r, "delete grocery", err)
		return
	}
	h.log.Info(ctx, "grocery deleted", "id", it.ID)
	writeJSON(w, http.StatusOK, it)
}

// writeError maps repository errors to responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, grocery.ErrNotFound):
		writeText(w, http.StatusNotFound, itemNotFoundBody)
	case errors.Is(err, grocery.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error(r.Context(), op, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
