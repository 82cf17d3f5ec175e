package handler

import (
	"encoding/json"
	"testing"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_FreshValue(t *testing.T) {
	purchased := true
	prototype := &UpdateItemRequest{ID: model.TextID("stale"), Purchased: &purchased}

	req := newRequest(prototype)

	assert.NotSame(t, prototype, req)
	assert.True(t, req.ID.IsZero())
	assert.Nil(t, req.Purchased)
}

func TestListItemsRequest_Query(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{sort: "place", want: "place"},
		{sort: "", want: ""},
		{sort: "created_at", want: ""},
		{sort: "PLACE", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			req := &ListItemsRequest{Sort: tt.sort, Search: "milk", Place: "Fridge"}
			q := req.query()

			assert.Equal(t, tt.want, string(q.Sort))
			assert.Equal(t, "milk", q.Search)
			assert.Equal(t, "Fridge", q.Place)
		})
	}
}

func TestUpdateItemRequest_Patch(t *testing.T) {
	name := "Bread"
	req := &UpdateItemRequest{ID: model.TextID("8c3f1b54-2b8e-4d5c-9a6e-1f0c2d3e4b5a"), Name: &name}

	patch := req.patch()
	assert.Equal(t, &name, patch.Name)
	assert.False(t, patch.Quantity.Set)
	assert.False(t, patch.Place.Set)
	assert.Nil(t, patch.Purchased)
	assert.False(t, patch.IsEmpty())
}

func TestUpdateItemRequest_Decode(t *testing.T) {
	var req UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"place":null,"quantity":"2 bags"}`), &req))

	assert.Equal(t, "5", req.ID.String())

	patch := req.patch()
	assert.True(t, patch.Place.Set)
	assert.Nil(t, patch.Place.Ptr())
	assert.True(t, patch.Quantity.Set)
	assert.Equal(t, "2 bags", patch.Quantity.Value.String())
	assert.Nil(t, patch.Name)
}
