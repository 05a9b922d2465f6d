package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/subhub/subhub/internal/application/service"
	"github.com/subhub/subhub/internal/domain"
	"github.com/subhub/subhub/internal/observability"
	"github.com/subhub/subhub/internal/pricing"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type ServerWithStats interface {
	GetByIDWithStats(ctx context.Context, id string) (*domain.Subscription, service.LookupStats, error)
	UpsertWithStats(ctx context.Context, sub *domain.Subscription) (service.UpsertStats, error)
}

type Relations interface {
	Link(ctx context.Context, orderID, subscriptionID string, t domain.RelationType) error
	RelatedOrders(ctx context.Context, subscriptionID string, types ...domain.RelationType) ([]string, error)
	RelatedSubscriptions(ctx context.Context, orderID string, t domain.RelationType) ([]string, error)
	Unlink(ctx context.Context, orderID, subscriptionID string, t domain.RelationType) error
	UnlinkAll(ctx context.Context, orderID string) error
}

type RetryLog interface {
	IDsForOrder(ctx context.Context, orderID string) ([]string, error)
	CountForOrder(ctx context.Context, orderID string) (int, error)
}

type PriceRanger interface {
	Range(ctx context.Context, productID string) (pricing.Range, error)
}

type Products interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p *domain.Product) error
}

type Server struct {
	service   ServerWithStats
	relations Relations
	retries   RetryLog
	prices    PriceRanger
	products  Products

	mux     *http.ServeMux
	logger  *zap.Logger
	metrics observability.Metrics

	// metricsHandler serves GET /metrics; nil disables the route.
	metricsHandler http.Handler
}

type Deps struct {
	Service        ServerWithStats
	Relations      Relations
	Retries        RetryLog
	Prices         PriceRanger
	Products       Products
	Logger         *zap.Logger
	Metrics        observability.Metrics
	MetricsHandler http.Handler
}

func New(d Deps) *Server {
	s := &Server{
		service:        d.Service,
		relations:      d.Relations,
		retries:        d.Retries,
		prices:         d.Prices,
		products:       d.Products,
		logger:         d.Logger,
		mux:            http.NewServeMux(),
		metrics:        d.Metrics,
		metricsHandler: d.MetricsHandler,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /subscription/{id}", s.getSubscription)
	s.mux.HandleFunc("POST /subscription/", s.upsertSubscription)
	s.mux.HandleFunc("GET /subscription/{id}/orders", s.relatedOrders)

	s.mux.HandleFunc("GET /order/{id}/relations", s.getRelations)
	s.mux.HandleFunc("POST /order/{id}/relations", s.linkRelation)
	s.mux.HandleFunc("DELETE /order/{id}/relations", s.unlinkRelations)

	s.mux.HandleFunc("GET /order/{id}/retries", s.orderRetries)
	s.mux.HandleFunc("GET /order/{id}/retries/count", s.orderRetryCount)

	s.mux.HandleFunc("GET /product/{id}/range", s.productRange)
	s.mux.HandleFunc("GET /product/{id}/schema", s.getSchema)
	s.mux.HandleFunc("PUT /product/{id}/schema", s.putSchema)

	if s.metricsHandler != nil {
		s.mux.Handle("GET /metrics", s.metricsHandler)
	}
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sub, st, err := s.service.GetByIDWithStats(r.Context(), id)
	if err != nil {
		http.Error(w, "no subscription with this id", http.StatusNotFound)
		return
	}

	observability.AppendServerTiming(w, "cache", st.CacheMs, "")
	observability.AppendServerTiming(w, "db", st.DBMs, "")
	observability.AppendServerTiming(w, "source", 0, string(st.Source))
	w.Header().Set("X-Source", string(st.Source))
	observability.SetIfPos(w, "X-Cache-Time", st.CacheMs)
	observability.SetIfPos(w, "X-DB-Time", st.DBMs)

	writeJSON(w, sub)
}

func (s *Server) upsertSubscription(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var sub domain.Subscription
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&sub); err != nil {
		s.logger.Error(
			"Error while decoding JSON",
			zap.Error(err),
		)
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if err := validateSubscription(sub); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := s.service.UpsertWithStats(r.Context(), &sub)
	if err != nil {
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}

	observability.AppendServerTiming(w, "db_write", st.DBWriteMs, "")

	writeJSON(w, sub)
}

func (s *Server) relatedOrders(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var types []domain.RelationType
	if raw := r.URL.Query().Get("relation"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			types = append(types, domain.RelationType(strings.TrimSpace(part)))
		}
	}

	orders, err := s.relations.RelatedOrders(r.Context(), id, types...)
	if err != nil {
		s.relationError(w, err)
		return
	}
	writeJSON(w, map[string]any{"order_uids": orders})
}

func (s *Server) getRelations(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := r.Context()

	if raw := r.URL.Query().Get("type"); raw != "" {
		subs, err := s.relations.RelatedSubscriptions(ctx, id, domain.RelationType(raw))
		if err != nil {
			s.relationError(w, err)
			return
		}
		writeJSON(w, map[string]any{"subscription_uids": subs})
		return
	}

	out := make(map[string][]string, 3)
	for _, t := range []domain.RelationType{domain.RelationRenewal, domain.RelationSwitch, domain.RelationResubscribe} {
		subs, err := s.relations.RelatedSubscriptions(ctx, id, t)
		if err != nil {
			s.relationError(w, err)
			return
		}
		out[string(t)] = subs
	}
	writeJSON(w, out)
}

func (s *Server) linkRelation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		SubscriptionID string              `json:"subscription_uid"`
		Type           domain.RelationType `json:"type"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if err := s.relations.Link(r.Context(), id, body.SubscriptionID, body.Type); err != nil {
		s.relationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unlinkRelations(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	q := r.URL.Query()

	subID, typ := q.Get("subscription_uid"), q.Get("type")
	if subID == "" && typ == "" {
		if err := s.relations.UnlinkAll(r.Context(), id); err != nil {
			s.relationError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if subID == "" || typ == "" {
		http.Error(w, "subscription_uid and type are both required", http.StatusBadRequest)
		return
	}

	if err := s.relations.Unlink(r.Context(), id, subID, domain.RelationType(typ)); err != nil {
		s.relationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) orderRetries(w http.ResponseWriter, r *http.Request) {
	ids, err := s.retries.IDsForOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"retry_ids": ids})
}

func (s *Server) orderRetryCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.retries.CountForOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"count": n})
}

func (s *Server) productRange(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rng, err := s.prices.Range(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, pricing.ErrNoVisibleVariations) {
			http.Error(w, "no price range for this product", http.StatusNotFound)
			return
		}
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = "USD"
	}
	writeJSON(w, map[string]any{
		"min_cents": rng.MinCents,
		"max_cents": rng.MaxCents,
		"display":   rng.Format(currency),
	})
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "no product with this id", http.StatusNotFound)
			return
		}
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p.Scheme)
}

func (s *Server) putSchema(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var scheme domain.SubscriptionScheme
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&scheme); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := scheme.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := s.products.GetByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		p = &domain.Product{ID: id, Type: domain.ProductSubscription}
	} else if err != nil {
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}

	p.Scheme = scheme
	if err := s.products.Upsert(r.Context(), p); err != nil {
		http.Error(w, "Service error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p.Scheme)
}

// relationError distinguishes a bad relation type (caller mistake) from a
// missing relation (not found) and everything else (server fault).
func (s *Server) relationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRelationType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "Service error", http.StatusInternalServerError)
	}
}

func validateSubscription(sub domain.Subscription) error {
	if sub.ID == "" {
		return errors.New("subscription_uid is required")
	}
	if sub.BillingPeriod != "" && !sub.BillingPeriod.Valid() {
		return errors.New("billing_period must be one of day, week, month, year")
	}
	if sub.BillingInterval < 0 {
		return errors.New("billing_interval must not be negative")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	// Connect middleware
	handler := ServerTimingApp(s.metrics)(s.mux)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.mux }
