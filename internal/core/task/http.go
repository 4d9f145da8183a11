// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranminhvu/taskhive/internal/platform/middleware"
	requestutil "github.com/tranminhvu/taskhive/internal/platform/request"
	"github.com/tranminhvu/taskhive/internal/platform/respond"
	"github.com/tranminhvu/taskhive/internal/platform/validate"
	"github.com/tranminhvu/taskhive/pkg/pagination"
)

// Handler implements task-related HTTP endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the task endpoints on the given router.
//
// # Endpoints
//   - GET  /     : Paginated task feed (authenticated).
//   - POST /     : Post a new task (authenticated).
//   - GET  /{id} : Single task detail (public).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.getTask)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.listTasks)
		r.Post("/", handler.createTask)
	})
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

/*
listTasks returns the task feed, newest first.

GET /tasks?page=1&limit=20

Response:
  - 200: PaginatedEnvelope of Task
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	tasks, meta, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, meta)
}

/*
createTask posts a new task owned by the authenticated user.

POST /tasks

Request:
  - Body: createTaskRequest (Title, Description, Budget)

Response:
  - 201: Task: Created task
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	clientID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description).
		Positive(FieldBudget, input.Budget)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.Create(request.Context(), CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		ClientID:    clientID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

/*
getTask returns a single task by its ID.

GET /tasks/{id}

Response:
  - 200: Task
  - 404: ErrNotFound: Unknown task ID
*/
func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	task, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}
