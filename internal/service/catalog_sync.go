package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/adiwijaya/storefront-service/internal/domain"
	"github.com/adiwijaya/storefront-service/internal/dto"
	"github.com/adiwijaya/storefront-service/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type CatalogSyncImpl struct {
	mongoDBRepo repository.MongoDBProductRepository
	kafkaReader *kafka.Reader

	mu        sync.RWMutex
	products  []domain.Product
	subs      map[uint64]chan []domain.Product
	nextSubID uint64
}

func CreateCatalogSync(mongoDBRepo repository.MongoDBProductRepository, kafkaReader *kafka.Reader) CatalogSync {
	return &CatalogSyncImpl{
		mongoDBRepo: mongoDBRepo,
		kafkaReader: kafkaReader,
		subs:        make(map[uint64]chan []domain.Product),
	}
}

// Refresh re-fetches the entire collection and replaces the snapshot
// wholesale. On fetch failure the previous snapshot stays in place and no
// delivery happens.
func (s *CatalogSyncImpl) Refresh(ctx context.Context) (err error) {
	data, err := s.mongoDBRepo.GetProducts(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Refresh").Msg("")
		return
	}

	s.mu.Lock()
	s.products = data
	for _, ch := range s.subs {
		// Drop an undelivered stale snapshot first so a slow subscriber
		// always reads the newest one, never an intermediate state.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- copyProducts(data):
		default:
		}
	}
	s.mu.Unlock()

	return
}

// Products projects the current snapshot through a case-insensitive
// substring filter on the product name. The filter never touches the
// subscription state.
func (s *CatalogSyncImpl) Products(q string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if q == "" {
		return copyProducts(s.products)
	}

	q = strings.ToLower(q)
	filtered := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), q) {
			filtered = append(filtered, product)
		}
	}

	return filtered
}

func (s *CatalogSyncImpl) Subscribe() (<-chan []domain.Product, func()) {
	ch := make(chan []domain.Product, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()
	}

	return ch, unsubscribe
}

func (s *CatalogSyncImpl) ConsumeEvent() {
	for {
		msg, err := s.kafkaReader.ReadMessage(context.Background())
		if err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		s.handleMessage(msg)
	}
}

func (s *CatalogSyncImpl) handleMessage(msg kafka.Message) {
	var receivedMsg dto.KafkaMessage
	if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
		log.Error().Err(err).Str("component", "handleMessage").Msg("")
		return
	}

	switch receivedMsg.EventType {
	case "add_product", "update_product", "delete_product":
		if err := s.Refresh(context.Background()); err != nil {
			log.Error().Err(err).Str("component", "handleMessage").Str("event_type", receivedMsg.EventType).Msg("")
			return
		}
	default:
		log.Info().Str("component", "handleMessage").Str("event_type", receivedMsg.EventType).Msg("Unknown event type")
	}
}

func copyProducts(products []domain.Product) []domain.Product {
	snapshot := make([]domain.Product, len(products))
	copy(snapshot, products)
	return snapshot
}
