package api

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/daybook-hq/daybook/internal/api/recovery"
	"github.com/daybook-hq/daybook/internal/auth"
	"github.com/daybook-hq/daybook/internal/services"
	"github.com/daybook-hq/daybook/internal/store"
)

// NewRouter wires every HTTP route. All /v0 routes except health and the
// public share resolver require a bearer API key.
func NewRouter(st store.Store, authorizer auth.Authorizer, cacheTTL time.Duration) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Domain services
	projectSvc := services.NewProjectService(st)
	entrySvc := services.NewEntryService(st)
	reportSvc := services.NewReportService(st)
	todoSvc := services.NewTodoService(st, cacheTTL)
	workItemSvc := services.NewWorkItemService(st)
	shareSvc := services.NewShareService(st, workItemSvc)

	// Handlers
	healthHandler := NewHealthHandler()
	projectHandler := NewProjectHandler(projectSvc)
	entryHandler := NewEntryHandler(entrySvc)
	reportHandler := NewReportHandler(reportSvc)
	todoHandler := NewTodoHandler(todoSvc)
	workItemHandler := NewWorkItemHandler(workItemSvc)
	shareHandler := NewShareHandler(shareSvc)

	// Public endpoints
	router.HandleFunc("/v0/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/v0/shared/{token}", shareHandler.ResolveShare).Methods("POST")

	// Authenticated endpoints
	v0 := router.PathPrefix("/v0").Subrouter()
	v0.Use(authMiddleware(authorizer))

	// Projects
	v0.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	v0.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	v0.HandleFunc("/projects/{projectId}", projectHandler.GetProject).Methods("GET")
	v0.HandleFunc("/projects/{projectId}", projectHandler.UpdateProject).Methods("PATCH")
	v0.HandleFunc("/projects/{projectId}", projectHandler.ArchiveProject).Methods("DELETE")

	// Daily entries
	v0.HandleFunc("/entries", entryHandler.ListEntries).Methods("GET")
	v0.HandleFunc("/entries/{date}", entryHandler.PutEntry).Methods("PUT")
	v0.HandleFunc("/entries/{date}", entryHandler.GetEntry).Methods("GET")
	v0.HandleFunc("/entries/{date}", entryHandler.DeleteEntry).Methods("DELETE")

	// Period reports
	v0.HandleFunc("/reports/periods", reportHandler.ListPeriods).Methods("GET")
	v0.HandleFunc("/reports/preview", reportHandler.PreviewReport).Methods("GET")
	v0.HandleFunc("/reports", reportHandler.SaveReport).Methods("POST")
	v0.HandleFunc("/reports", reportHandler.ListReports).Methods("GET")
	v0.HandleFunc("/reports/{kind}/{year:[0-9]{4}}/{index:[0-9]+}", reportHandler.GetReport).Methods("GET")

	// Todos
	v0.HandleFunc("/projects/{projectId}/todos", todoHandler.CreateTodo).Methods("POST")
	v0.HandleFunc("/projects/{projectId}/todos", todoHandler.ListProjectTodos).Methods("GET")
	v0.HandleFunc("/todos", todoHandler.ListTodos).Methods("GET")
	v0.HandleFunc("/todos/summary", todoHandler.Summary).Methods("GET")
	v0.HandleFunc("/todos/{todoId}", todoHandler.UpdateTodo).Methods("PATCH")
	v0.HandleFunc("/todos/{todoId}/complete", todoHandler.CompleteTodo).Methods("POST")
	v0.HandleFunc("/todos/{todoId}", todoHandler.DeleteTodo).Methods("DELETE")

	// Work breakdown
	v0.HandleFunc("/projects/{projectId}/workitems", workItemHandler.CreateWorkItem).Methods("POST")
	v0.HandleFunc("/projects/{projectId}/workitems/tree", workItemHandler.Tree).Methods("GET")
	v0.HandleFunc("/workitems/{itemId}", workItemHandler.UpdateWorkItem).Methods("PATCH")
	v0.HandleFunc("/workitems/{itemId}", workItemHandler.DeleteWorkItem).Methods("DELETE")

	// Shares (owner side)
	v0.HandleFunc("/shares", shareHandler.CreateShare).Methods("POST")
	v0.HandleFunc("/shares", shareHandler.ListShares).Methods("GET")
	v0.HandleFunc("/shares/{shareId}/revoke", shareHandler.RevokeShare).Methods("POST")
	v0.HandleFunc("/shares/{shareId}", shareHandler.DeleteShare).Methods("DELETE")

	return router
}
