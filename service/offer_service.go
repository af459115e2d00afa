package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"me-python-boutique/config"
	"me-python-boutique/models"
	"me-python-boutique/repository"
)

// ErrInvalidOffer is returned when an offer is missing required fields
var ErrInvalidOffer = errors.New("invalid price offer")

const offerForwardTimeout = 10 * time.Second

// OfferService accepts price offers, records them when a database is
// configured and forwards them to the external form
type OfferService struct {
	catalog    *CatalogService
	repo       repository.OfferRepositoryInterface
	form       config.OfferFormConfig
	httpClient *http.Client
	wg         sync.WaitGroup
}

// NewOfferService creates a new OfferService. repo may be nil.
func NewOfferService(catalog *CatalogService, repo repository.OfferRepositoryInterface, form config.OfferFormConfig, httpClient *http.Client) *OfferService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: offerForwardTimeout}
	}
	if form.URL == "" {
		log.Printf("⚠️  OFFER_FORM_URL not set, price offers will not be forwarded")
	}
	return &OfferService{catalog: catalog, repo: repo, form: form, httpClient: httpClient}
}

// Submit validates the offer, stores it and schedules forwarding. It returns
// as soon as the offer is accepted; forwarding failures are only logged.
func (s *OfferService) Submit(ctx context.Context, offer *models.PriceOffer) error {
	offer.SnakeID = strings.TrimSpace(offer.SnakeID)
	offer.Name = strings.TrimSpace(offer.Name)
	offer.Contact = strings.TrimSpace(offer.Contact)
	offer.Message = strings.TrimSpace(offer.Message)

	switch {
	case offer.SnakeID == "":
		return fmt.Errorf("%w: snakeId is required", ErrInvalidOffer)
	case offer.Contact == "":
		return fmt.Errorf("%w: contact is required", ErrInvalidOffer)
	case offer.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrInvalidOffer)
	}

	if s.catalog != nil {
		snake, err := s.catalog.Get(offer.SnakeID)
		if err != nil {
			return err
		}
		offer.SnakeID = snake.ID
	}

	if s.repo != nil {
		if _, err := s.repo.Insert(ctx, offer); err != nil {
			log.Printf("❌ Error recording price offer for %s: %v", offer.SnakeID, err)
		}
	}

	if s.form.URL != "" {
		forwarded := *offer
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.forward(forwarded)
		}()
	}

	log.Printf("✓ Price offer accepted for %s (NT$ %d)", offer.SnakeID, offer.Amount)
	return nil
}

// Wait blocks until every pending forward has finished
func (s *OfferService) Wait() {
	s.wg.Wait()
}

// formValues maps offer attributes onto the form's entry ids. Attributes
// without a configured entry id are skipped.
func (s *OfferService) formValues(offer models.PriceOffer) url.Values {
	attrs := map[string]string{
		"snakeId": offer.SnakeID,
		"name":    offer.Name,
		"contact": offer.Contact,
		"amount":  strconv.FormatInt(offer.Amount, 10),
		"message": offer.Message,
	}

	values := url.Values{}
	for attr, value := range attrs {
		if entry, ok := s.form.Fields[attr]; ok {
			values.Set(entry, value)
		}
	}
	return values
}

func (s *OfferService) forward(offer models.PriceOffer) {
	ctx, cancel := context.WithTimeout(context.Background(), offerForwardTimeout)
	defer cancel()

	body := s.formValues(offer).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.form.URL, strings.NewReader(body))
	if err != nil {
		log.Printf("❌ Error building offer form request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Error forwarding price offer for %s: %v", offer.SnakeID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("⚠️  Offer form responded %d for %s", resp.StatusCode, offer.SnakeID)
		return
	}
	log.Printf("✓ Price offer for %s forwarded", offer.SnakeID)
}
