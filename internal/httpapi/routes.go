package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"concierge-backend/internal/model"
)

// Publisher enqueues a captured fulfillment request for the worker.
type Publisher interface {
	PublishRequest(ctx context.Context, req *model.FulfillmentRequest) error
}

// Handler is the front-end intent boundary: the conversational layer posts a
// recognized intent with its slots here, and the reply confirms the request
// is durably queued before the worker ever runs.
type Handler struct {
	publisher Publisher
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewHandler(publisher Publisher, log zerolog.Logger) *Handler {
	return &Handler{
		publisher: publisher,
		validate:  validator.New(),
		log:       log.With().Str("component", "httpapi").Logger(),
	}
}

// RegisterRoutes wires the intent ingest routes.
// gorilla/mux: Router provides method-based routing.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/intents", h.intentHandler).Methods(http.MethodPost)
}

func (h *Handler) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// intentHandler validates the intent payload, stamps a request id, and
// publishes to the request topic. Slot values beyond presence are not
// validated here; the worker owns those checks.
func (h *Handler) intentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.FulfillmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	// go-playground/validator/v10: checks required intentName and slots.
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "shape validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if err := h.publisher.PublishRequest(r.Context(), &req); err != nil {
		h.log.Error().Err(err).Str("intent", req.IntentName).Msg("failed to enqueue request")
		http.Error(w, "failed to queue request", http.StatusInternalServerError)
		return
	}

	h.log.Info().Str("requestId", req.RequestID).Str("intent", req.IntentName).
		Msg("request queued")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"requestId": req.RequestID,
		"status":    "queued",
	})
}
