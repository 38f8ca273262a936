package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/daybook-hq/daybook/internal/api/respond"
	"github.com/daybook-hq/daybook/internal/api/validate"
	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/services"
)

// TodoHandler is a thin HTTP transport over TodoService.
type TodoHandler struct {
	svc *services.TodoService
}

func NewTodoHandler(svc *services.TodoService) *TodoHandler { return &TodoHandler{svc: svc} }

// CreateTodo POST /v0/projects/{projectId}/todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string  `json:"content"`
		Priority string  `json:"priority"`
		DueDate  *string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateTodo(req.Content, req.Priority, req.DueDate); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.CreateTodo(r.Context(), &model.TodoItem{
		UserID:    requestUserID(r),
		ProjectID: mux.Vars(r)["projectId"],
		Content:   req.Content,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListProjectTodos GET /v0/projects/{projectId}/todos
func (h *TodoHandler) ListProjectTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListTodos(r.Context(), requestUserID(r), mux.Vars(r)["projectId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"todos": todos, "count": len(todos)})
}

// ListTodos GET /v0/todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListAllTodos(r.Context(), requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"todos": todos, "count": len(todos)})
}

// Summary GET /v0/todos/summary
// Sidebar badge counters plus recent completions.
func (h *TodoHandler) Summary(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Summary(r.Context(), requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UpdateTodo PATCH /v0/todos/{todoId}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	cur, err := h.svc.GetTodo(r.Context(), userID, mux.Vars(r)["todoId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		Content  *string `json:"content"`
		Priority *string `json:"priority"`
		Status   *string `json:"status"`
		DueDate  *string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Content != nil {
		cur.Content = *req.Content
	}
	if req.Priority != nil {
		cur.Priority = *req.Priority
	}
	if req.Status != nil {
		// Completion goes through the dedicated endpoint so its entry
		// side effect cannot be skipped.
		if *req.Status == model.StatusCompleted {
			respond.WriteBadRequest(w, "use the complete endpoint to finish a todo")
			return
		}
		cur.Status = *req.Status
	}
	if req.DueDate != nil {
		cur.DueDate = req.DueDate
	}
	if err := validate.CreateTodo(cur.Content, cur.Priority, cur.DueDate); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := validate.TodoStatus(cur.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.UpdateTodo(r.Context(), cur)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// CompleteTodo POST /v0/todos/{todoId}/complete
// The completion date must be explicit; the server never guesses the
// caller's timezone.
func (h *TodoHandler) CompleteTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Date("date", req.Date); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.CompleteTodo(r.Context(), requestUserID(r), mux.Vars(r)["todoId"], req.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteTodo DELETE /v0/todos/{todoId}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTodo(r.Context(), requestUserID(r), mux.Vars(r)["todoId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
