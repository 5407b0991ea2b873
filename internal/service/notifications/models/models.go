package models

import (
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

// Actor identifica quem consulta ou marca o feed
type Actor struct {
	ID      int64
	Role    string
	CondoID int64
}

// IsManager informa se o ator é síndico
func (a Actor) IsManager() bool {
	return a.Role == domain.RoleManager
}

// MarkSeenRequest marcação de itens do feed como vistos
type MarkSeenRequest struct {
	Actor          Actor
	ReservationIDs []int64
}

// FeedItemResponse um item do feed de notificações
type FeedItemResponse struct {
	ReservationID int64     `json:"reservationId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Urgent        bool      `json:"urgent"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FeedResponse o feed completo
type FeedResponse struct {
	Items []FeedItemResponse `json:"items"`
}

// FromDomainFeedItems converte os itens de domínio em DTO
func FromDomainFeedItems(items []domain.FeedItem) *FeedResponse {
	out := make([]FeedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FeedItemResponse{
			ReservationID: item.ReservationID,
			Title:         item.Title,
			Description:   item.Description,
			Urgent:        item.Urgent,
			CreatedAt:     item.CreatedAt,
		})
	}
	return &FeedResponse{Items: out}
}
