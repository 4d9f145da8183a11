// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package bid

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tranminhvu/taskhive/internal/platform/request"
	"github.com/tranminhvu/taskhive/internal/platform/respond"
	"github.com/tranminhvu/taskhive/internal/platform/validate"
)

// Handler implements bid-related HTTP endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the bid endpoints on the given router.
//
// # Endpoints
//   - POST / : Place a bid on a task. No session is required; the bidder is
//     named in the body and checked against the account table.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.placeBid)
}

type placeBidRequest struct {
	TaskID       string  `json:"task_id"`
	FreelancerID string  `json:"freelancer_id"`
	Amount       float64 `json:"amount"`
	Message      string  `json:"message"`
}

/*
placeBid records a freelancer's offer on a task.

POST /bids

Request:
  - Body: placeBidRequest (TaskID, FreelancerID, Amount, Message)

Response:
  - 201: Bid: Created bid
  - 400: ErrInvalidJSON: Bad input, invalid UUID, or unknown task/freelancer
*/
func (handler *Handler) placeBid(writer http.ResponseWriter, request *http.Request) {
	var input placeBidRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTaskID, input.TaskID).
		UUID(FieldTaskID, input.TaskID).
		Required(FieldFreelancerID, input.FreelancerID).
		UUID(FieldFreelancerID, input.FreelancerID).
		Positive(FieldAmount, input.Amount).
		MaxLen(FieldMessage, input.Message, 1000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bid, err := handler.service.Place(request.Context(), PlaceInput{
		TaskID:       input.TaskID,
		FreelancerID: input.FreelancerID,
		Amount:       input.Amount,
		Message:      input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bid)
}

/*
ListForTask returns the bids placed against a specific task.

GET /tasks/{id}/bids

Mounted by the server under the task router so the URL reads naturally.

Response:
  - 200: []Bid
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) ListForTask(writer http.ResponseWriter, request *http.Request) {
	taskID := requestutil.Param(request, "id")

	bids, err := handler.service.ListForTask(request.Context(), taskID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bids)
}
