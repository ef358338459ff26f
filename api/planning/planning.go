package planning

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"FleetPlanOffice/api"
)

// StartPlanningService wires the planning ledger routes and serves them
// on the given port behind session and CORS middleware.
func StartPlanningService(pool *pgxpool.Pool, port string) {
	router := mux.NewRouter()
	cache := newListCache()

	sub := router.PathPrefix("/planning").Subrouter()
	sub.HandleFunc("/accounts", GetAccounts(pool)).Methods("GET")
	sub.HandleFunc("/accounts/upload", UploadAccounts(pool)).Methods("POST")
	sub.HandleFunc("/{id}/entries", GetPlanningEntries(pool, cache)).Methods("GET")
	sub.HandleFunc("/{id}/entries", CreatePlanningEntry(pool, cache)).Methods("POST")
	sub.HandleFunc("/{id}/entries/export", ExportPlanningEntries(pool)).Methods("GET")
	sub.HandleFunc("/{id}/entries/row/{compositeId}", GetEntryByRow(pool)).Methods("GET")
	sub.HandleFunc("/{id}/entries/{entryId}", UpdatePlanningEntry(pool, cache)).Methods("PATCH")
	sub.HandleFunc("/{id}/entries/{entryId}", DeletePlanningEntry(pool, cache)).Methods("DELETE")
	sub.HandleFunc("/{id}/statistics", GetPlanningStatistics(pool, cache)).Methods("GET")
	sub.HandleFunc("/{id}/categories/select", GetCategoriesForSelect(pool)).Methods("GET")
	sub.HandleFunc("/{id}/categories/remove-account", RemoveAccountsFromCategory(pool)).Methods("POST")
	sub.HandleFunc("/{id}/reports/cash-flow", GetCashFlowReport(pool)).Methods("GET")
	sub.HandleFunc("/{id}/reports/profit-loss", GetProfitLossReport(pool)).Methods("GET")

	handler := api.CORSMiddleware(api.SessionMiddleware(router))

	log.Println("Planning Service started on :" + port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Planning Service failed: %v", err)
	}
}
