package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/job-radar/internal/middleware"
	"github.com/job-radar/internal/model"
	"github.com/job-radar/internal/scheduler"
	"github.com/job-radar/internal/storage"
)

// Handler contains all API handlers
type Handler struct {
	userRepo   *storage.UserRepository
	jobRepo    *storage.JobRepository
	searchRepo *storage.SearchRepository
	runRepo    *storage.RunRepository
	scheduler  *scheduler.Scheduler
	auth       *middleware.AuthMiddleware
	sources    []string
}

// NewHandler creates a new API handler
func NewHandler(
	userRepo *storage.UserRepository,
	jobRepo *storage.JobRepository,
	searchRepo *storage.SearchRepository,
	runRepo *storage.RunRepository,
	sched *scheduler.Scheduler,
	auth *middleware.AuthMiddleware,
	sources []string,
) *Handler {
	return &Handler{
		userRepo:   userRepo,
		jobRepo:    jobRepo,
		searchRepo: searchRepo,
		runRepo:    runRepo,
		scheduler:  sched,
		auth:       auth,
		sources:    sources,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Auth handlers

// Register godoc
// @Summary Register a new user
// @Description Create a new user account with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration details"
// @Success 201 {object} model.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "email, password, and name are required")
		return
	}
	if !isValidEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	existing, _ := h.userRepo.FindByEmail(r.Context(), req.Email)
	if existing != nil {
		respondError(w, http.StatusConflict, "email already registered")
		return
	}

	user, err := h.userRepo.Create(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, expiresAt, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil || user == nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !h.userRepo.ValidatePassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.userRepo.UpdateLastLogin(r.Context(), user.ID)

	respondJSON(w, http.StatusOK, model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get the current user's profile information
// @Tags Authentication
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), claims.UserID)
	if err != nil || user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// RegenerateAPIKey godoc
// @Summary Regenerate API key
// @Description Generate a new API key for the current user
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]string "New API key"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/api-key/regenerate [post]
func (h *Handler) RegenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apiKey, err := h.userRepo.RegenerateAPIKey(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to regenerate API key")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"api_key": apiKey})
}

// Job handlers

// ListJobs godoc
// @Summary List scraped jobs
// @Description Get jobs ordered by relevance, with optional filters
// @Tags Jobs
// @Produce json
// @Param q query string false "Match against title or company"
// @Param source query string false "Filter by source platform"
// @Param remote query bool false "Remote jobs only"
// @Param min_score query number false "Minimum relevance score"
// @Param limit query int false "Number of jobs to return" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} map[string]interface{} "Jobs list with pagination"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := model.JobFilter{
		Query:  r.URL.Query().Get("q"),
		Source: r.URL.Query().Get("source"),
		Limit:  50,
	}
	if v := r.URL.Query().Get("remote"); v != "" {
		filter.RemoteOnly, _ = strconv.ParseBool(v)
	}
	if v := r.URL.Query().Get("min_score"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinScore = score
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			filter.Offset = offset
		}
	}

	jobs, err := h.jobRepo.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}

	total, _ := h.jobRepo.Count(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":   jobs,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetJob godoc
// @Summary Get a job
// @Description Get a single scraped job by ID
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Job not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "job ID required")
		return
	}

	job, err := h.jobRepo.GetByID(r.Context(), jobID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// DeleteJob godoc
// @Summary Delete a job
// @Description Remove a scraped job from storage
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]string "Deletion status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Job not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /jobs/{id} [delete]
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "job ID required")
		return
	}

	if err := h.jobRepo.Delete(r.Context(), jobID); err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Saved search handlers

// CreateSearch godoc
// @Summary Create a saved search
// @Description Create a scheduled job search against a scraper source
// @Tags Searches
// @Accept json
// @Produce json
// @Param request body model.CreateSearchRequest true "Search configuration"
// @Success 201 {object} model.SavedSearch
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches [post]
func (h *Handler) CreateSearch(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "search name is required")
		return
	}
	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.Schedule == "" {
		respondError(w, http.StatusBadRequest, "schedule is required")
		return
	}
	if req.Source != "" && !h.knownSource(req.Source) {
		respondError(w, http.StatusBadRequest, "unknown source: "+req.Source)
		return
	}

	search, err := h.searchRepo.Create(r.Context(), &req, claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create saved search")
		return
	}

	if err := h.scheduler.AddSearch(*search); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, search)
}

// ListSearches godoc
// @Summary List saved searches
// @Description Get all saved searches with their next run times
// @Tags Searches
// @Produce json
// @Success 200 {object} map[string]interface{} "Searches list"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches [get]
func (h *Handler) ListSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := h.searchRepo.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch saved searches")
		return
	}

	type searchWithNext struct {
		*model.SavedSearch
		NextRunAt *string `json:"next_run_at,omitempty"`
	}
	out := make([]searchWithNext, 0, len(searches))
	for _, search := range searches {
		entry := searchWithNext{SavedSearch: search}
		if next := h.scheduler.GetNextRun(search.ID); next != nil {
			formatted := next.Format("2006-01-02T15:04:05Z07:00")
			entry.NextRunAt = &formatted
		}
		out = append(out, entry)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"searches": out,
		"total":    len(out),
	})
}

// GetSearch godoc
// @Summary Get a saved search
// @Description Get details of a saved search by ID
// @Tags Searches
// @Produce json
// @Param id path string true "Search ID"
// @Success 200 {object} model.SavedSearch
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Search not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches/{id} [get]
func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	searchID := r.PathValue("id")
	if searchID == "" {
		respondError(w, http.StatusBadRequest, "search ID required")
		return
	}

	search, err := h.searchRepo.GetByID(r.Context(), searchID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch saved search")
		return
	}
	if search == nil {
		respondError(w, http.StatusNotFound, "saved search not found")
		return
	}

	respondJSON(w, http.StatusOK, search)
}

// UpdateSearch godoc
// @Summary Update a saved search
// @Description Update a saved search and reschedule it
// @Tags Searches
// @Accept json
// @Produce json
// @Param id path string true "Search ID"
// @Param request body model.UpdateSearchRequest true "Updated configuration"
// @Success 200 {object} model.SavedSearch
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Search not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches/{id} [put]
func (h *Handler) UpdateSearch(w http.ResponseWriter, r *http.Request) {
	searchID := r.PathValue("id")
	if searchID == "" {
		respondError(w, http.StatusBadRequest, "search ID required")
		return
	}

	var req model.UpdateSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	search, err := h.searchRepo.Update(r.Context(), searchID, &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update saved search")
		return
	}
	if search == nil {
		respondError(w, http.StatusNotFound, "saved search not found")
		return
	}

	if err := h.scheduler.UpdateSearch(*search); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, search)
}

// DeleteSearch godoc
// @Summary Delete a saved search
// @Description Delete a saved search and unschedule it
// @Tags Searches
// @Produce json
// @Param id path string true "Search ID"
// @Success 200 {object} map[string]string "Deletion status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Search not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches/{id} [delete]
func (h *Handler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	searchID := r.PathValue("id")
	if searchID == "" {
		respondError(w, http.StatusBadRequest, "search ID required")
		return
	}

	if err := h.searchRepo.Delete(r.Context(), searchID); err != nil {
		respondError(w, http.StatusNotFound, "saved search not found")
		return
	}

	h.scheduler.RemoveSearch(searchID)

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// TriggerSearch godoc
// @Summary Run a saved search now
// @Description Execute a saved search immediately regardless of its schedule
// @Tags Searches
// @Produce json
// @Param id path string true "Search ID"
// @Success 200 {object} model.ScrapeRun
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Run error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches/{id}/run [post]
func (h *Handler) TriggerSearch(w http.ResponseWriter, r *http.Request) {
	searchID := r.PathValue("id")
	if searchID == "" {
		respondError(w, http.StatusBadRequest, "search ID required")
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	triggeredBy := "api"
	if claims != nil {
		triggeredBy = claims.UserID
	}

	run, err := h.scheduler.TriggerSearch(r.Context(), searchID, triggeredBy)
	if err != nil {
		if run != nil {
			// Partial results were stored before the failure.
			respondJSON(w, http.StatusOK, run)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// Run handlers

// GetSearchRuns godoc
// @Summary Get runs for a search
// @Description Get the scrape run history of a saved search
// @Tags Runs
// @Produce json
// @Param id path string true "Search ID"
// @Param limit query int false "Number of runs to return" default(20)
// @Success 200 {object} map[string]interface{} "Runs list"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /searches/{id}/runs [get]
func (h *Handler) GetSearchRuns(w http.ResponseWriter, r *http.Request) {
	searchID := r.PathValue("id")
	if searchID == "" {
		respondError(w, http.StatusBadRequest, "search ID required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	runs, err := h.runRepo.ListBySearch(r.Context(), searchID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// GetRecentRuns godoc
// @Summary Get recent runs
// @Description Get the most recent scrape runs across all searches
// @Tags Runs
// @Produce json
// @Param limit query int false "Number of runs to return" default(20)
// @Success 200 {object} map[string]interface{} "Recent runs"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /runs/recent [get]
func (h *Handler) GetRecentRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	runs, err := h.runRepo.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// Health and status handlers

// Health godoc
// @Summary Health check
// @Description Check if the API is running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"scheduler": h.scheduler.IsRunning(),
	})
}

// Status godoc
// @Summary System status
// @Description Get job counts, scheduled searches and available sources
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "System status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	jobCount, _ := h.jobRepo.Count(r.Context())
	searches, _ := h.searchRepo.List(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scheduler_running":  h.scheduler.IsRunning(),
		"total_jobs":         jobCount,
		"saved_searches":     len(searches),
		"scheduled_searches": len(h.scheduler.GetScheduledSearches()),
		"sources":            h.sources,
	})
}

func (h *Handler) knownSource(name string) bool {
	for _, s := range h.sources {
		if s == name {
			return true
		}
	}
	return false
}

// isValidEmail performs a basic email validation
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	if !strings.Contains(parts[1], ".") {
		return false
	}
	return true
}
