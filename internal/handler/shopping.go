package handler

import (
	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/service"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// Success messages returned by the mutating operations.
const (
	MessageItemAdded   = "Item added!"
	MessageItemUpdated = "Item updated!"
	MessageItemDeleted = "Item deleted!"
)

// MessageResponse is the body of a successful POST, PUT or DELETE.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func success(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

// ListItemsRequest holds the GET query. Every field is optional and they
// combine. Any sort other than "place" lists newest first.
type ListItemsRequest struct {
	Sort   string `query:"sort"`
	Search string `query:"search"`
	Place  string `query:"place"`
}

func (r *ListItemsRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ListItemsRequest) query() model.ListQuery {
	q := model.ListQuery{Search: r.Search, Place: r.Place}
	if r.Sort == string(model.SortPlace) {
		q.Sort = model.SortPlace
	}
	return q
}

type CreateItemRequest struct {
	Name     string         `json:"name" validate:"required"`
	Quantity model.Quantity `json:"quantity"`
	Place    *string        `json:"place"`
}

func (r *CreateItemRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateItemRequest writes only the fields present in the body. A null
// quantity or place clears the column; a null name or purchased is
// ignored, since neither column can be empty.
type UpdateItemRequest struct {
	ID        model.ID                       `json:"id" validate:"required"`
	Name      *string                        `json:"name"`
	Quantity  model.Nullable[model.Quantity] `json:"quantity"`
	Place     model.Nullable[string]         `json:"place"`
	Purchased *bool                          `json:"purchased"`
}

func (r *UpdateItemRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateItemRequest) patch() model.ItemPatch {
	return model.ItemPatch{
		Name:      r.Name,
		Quantity:  r.Quantity,
		Place:     r.Place,
		Purchased: r.Purchased,
	}
}

type DeleteItemRequest struct {
	ID model.ID `json:"id" validate:"required"`
}

func (r *DeleteItemRequest) Validate() error {
	return validation.Struct(r)
}

// ShoppingHandler serves the shopping list endpoint.
type ShoppingHandler struct {
	Handler
	items *service.ItemService
}

func NewShoppingHandler(s *server.Server, items *service.ItemService) *ShoppingHandler {
	return &ShoppingHandler{
		Handler: NewHandler(s),
		items:   items,
	}
}

// ListItems returns the matching items as a JSON array, never null.
func (h *ShoppingHandler) ListItems(c echo.Context, req *ListItemsRequest) ([]model.Item, error) {
	return h.items.List(c.Request().Context(), req.query())
}

// CreateItem inserts the item with purchased=false.
func (h *ShoppingHandler) CreateItem(c echo.Context, req *CreateItemRequest) (MessageResponse, error) {
	err := h.items.Create(c.Request().Context(), model.NewItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Place:    req.Place,
	})
	if err != nil {
		return MessageResponse{}, err
	}
	return success(MessageItemAdded), nil
}

// UpdateItem succeeds whether or not the id exists.
func (h *ShoppingHandler) UpdateItem(c echo.Context, req *UpdateItemRequest) (MessageResponse, error) {
	if err := h.items.Update(c.Request().Context(), req.ID, req.patch()); err != nil {
		return MessageResponse{}, err
	}
	return success(MessageItemUpdated), nil
}

// DeleteItem succeeds whether or not the id exists.
func (h *ShoppingHandler) DeleteItem(c echo.Context, req *DeleteItemRequest) (MessageResponse, error) {
	if err := h.items.Delete(c.Request().Context(), req.ID); err != nil {
		return MessageResponse{}, err
	}
	return success(MessageItemDeleted), nil
}
